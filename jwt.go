// Package jsonwebtoken issues and verifies JSON Web Tokens in JWS compact form.
//
// Create and Validate are the low-level entry points: they take a claim set as a
// map, an algorithm and a key. Processor wraps them with typed claims, expiry
// handling, metrics and logging.
package jsonwebtoken

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cybergodev/jsonwebtoken/internal/jws"
)

// DefaultAlgorithm is used when SignOptions.Alg or VerifyOptions.Alg is empty.
const DefaultAlgorithm = SigningMethodHS256

// Header is an ordered JOSE header.
type Header = jws.Header

// NewHeader returns an empty header.
func NewHeader() *Header {
	return jws.NewHeader()
}

// SignOptions select the algorithm and key for Create.
type SignOptions struct {
	// Alg defaults to HS256. SigningMethodNone produces an unsecured token
	// and ignores Key.
	Alg SigningMethod
	Key SigningKey
}

// VerifyOptions select the expected algorithm and key for Validate.
type VerifyOptions struct {
	// Alg is the only algorithm the token may use. It defaults to HS256.
	Alg SigningMethod
	Key VerifyingKey
}

// Create serializes claims and signs them. The header is {"typ":"JWT","alg":...}.
func Create(claims map[string]any, opts SignOptions) (string, error) {
	if len(claims) == 0 {
		return "", ErrEmptyClaims
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return createToken(payload, opts)
}

func createToken(payload []byte, opts SignOptions) (string, error) {
	alg := opts.Alg
	if alg == "" {
		alg = DefaultAlgorithm
	}

	header := jws.NewHeader()
	header.Set("typ", "JWT")
	header.Set("alg", string(alg))

	if alg == SigningMethodNone {
		return jws.Unsecured(header, payload)
	}
	return jws.Sign(header, payload, opts.Key)
}

// Validate verifies token and returns its claims. A token that fails
// verification yields (nil, false, nil). Errors report malformed headers, a
// header alg other than opts.Alg, unusable keys, or a payload that is not a JSON
// object.
func Validate(token string, opts VerifyOptions) (map[string]any, bool, error) {
	alg := opts.Alg
	if alg == "" {
		alg = DefaultAlgorithm
	}

	verified, ok, err := jws.Validate(token, string(alg), opts.Key)
	if err != nil || !ok {
		return nil, false, err
	}

	claims, err := decodeClaims(verified)
	if err != nil {
		return nil, false, err
	}
	return claims, true, nil
}

// Decode returns the header and claims of token without verifying anything.
// Never trust its output for authorization.
func Decode(token string) (*Header, map[string]any, error) {
	header, err := jws.ParseHeader(token)
	if err != nil {
		return nil, nil, err
	}
	claims, err := decodeClaims(token)
	if err != nil {
		return nil, nil, err
	}
	return header, claims, nil
}

func decodeClaims(token string) (map[string]any, error) {
	payload, err := jws.Payload(token)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var claims map[string]any
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidPayload)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after claims", ErrInvalidPayload)
	}
	return claims, nil
}
