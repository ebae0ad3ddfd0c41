package jsonwebtoken

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// Key kinds accepted by Create, Validate and the Processor. The engine never
// copies or retains them beyond a single call.
type (
	SigningKey   = signing.SigningKey
	VerifyingKey = signing.VerifyingKey
	SymmetricKey = signing.SymmetricKey
	PrivateKey   = signing.PrivateKey
	PublicKey    = signing.PublicKey
)

// ParsePrivateKeyPEM reads an RSA (PKCS#1 or PKCS#8) or EC (SEC 1 or PKCS#8)
// private key.
func ParsePrivateKeyPEM(data []byte) (PrivateKey, error) {
	rsaKey, rsaErr := jwt.ParseRSAPrivateKeyFromPEM(data)
	if rsaErr == nil {
		return PrivateKey{Signer: rsaKey}, nil
	}
	ecKey, ecErr := jwt.ParseECPrivateKeyFromPEM(data)
	if ecErr == nil {
		return PrivateKey{Signer: ecKey}, nil
	}
	return PrivateKey{}, fmt.Errorf("%w: %w", ErrInvalidKey, errors.Join(rsaErr, ecErr))
}

// ParsePublicKeyPEM reads an RSA or EC public key in PKIX form, an RSA key in
// PKCS#1 form, or the key of an X.509 certificate.
func ParsePublicKeyPEM(data []byte) (PublicKey, error) {
	rsaKey, rsaErr := jwt.ParseRSAPublicKeyFromPEM(data)
	if rsaErr == nil {
		return PublicKey{Key: rsaKey}, nil
	}
	ecKey, ecErr := jwt.ParseECPublicKeyFromPEM(data)
	if ecErr == nil {
		return PublicKey{Key: ecKey}, nil
	}
	return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidKey, errors.Join(rsaErr, ecErr))
}

// LoadPrivateKeyFile reads a PEM private key from path.
func LoadPrivateKeyFile(path string) (PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("read private key: %w", err)
	}
	return ParsePrivateKeyPEM(data)
}

// LoadPublicKeyFile reads a PEM public key or certificate from path.
func LoadPublicKeyFile(path string) (PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PublicKey{}, fmt.Errorf("read public key: %w", err)
	}
	return ParsePublicKeyPEM(data)
}
