package jsonwebtoken

import (
	"errors"
	"fmt"

	"github.com/cybergodev/jsonwebtoken/internal/asn1sig"
	"github.com/cybergodev/jsonwebtoken/internal/base64url"
	"github.com/cybergodev/jsonwebtoken/internal/jws"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// Engine errors. Match them with errors.Is.
var (
	// Encoding errors
	ErrInvalidEncoding        = base64url.ErrInvalidEncoding
	ErrInvalidStrength        = asn1sig.ErrInvalidStrength
	ErrInvalidSignatureLength = asn1sig.ErrInvalidSignatureLength
	ErrInvalidDER             = asn1sig.ErrInvalidDER

	// Key and algorithm errors
	ErrWeakKey               = signing.ErrWeakKey
	ErrInvalidKey            = signing.ErrInvalidKey
	ErrInvalidSignature      = signing.ErrInvalidSignature
	ErrUnrecognizedAlgorithm = signing.ErrUnrecognizedAlgorithm

	// Header and payload errors
	ErrMissingAlgorithm  = jws.ErrMissingAlgorithm
	ErrInvalidAlgHeader  = jws.ErrInvalidAlgHeader
	ErrAlgorithmMismatch = jws.ErrAlgorithmMismatch
	ErrInvalidPayload    = jws.ErrInvalidPayload
	ErrEmptyClaims       = errors.New("claims must not be empty")
)

// Processor errors.
var (
	// Configuration errors
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrInvalidSecretKey     = errors.New("invalid secret key: must be at least 32 bytes with sufficient entropy")
	ErrInvalidSigningMethod = errors.New("invalid signing method")

	// Token errors
	ErrInvalidToken = errors.New("invalid token: signature verification failed or malformed")
	ErrEmptyToken   = errors.New("empty token: token string cannot be empty")

	// Claims errors
	ErrInvalidClaims = errors.New("invalid claims: UserID or Username is required")

	// System errors
	ErrRateLimitExceeded = errors.New("rate limit exceeded: too many requests")
	ErrProcessorClosed   = errors.New("processor is closed: cannot perform operations")
)

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string // The field that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
