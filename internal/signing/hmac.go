package signing

import (
	"crypto/hmac"
	"fmt"

	"github.com/cybergodev/jsonwebtoken/internal/security"
)

type hmacAdapter struct{}

func (hmacAdapter) sign(strength Strength, key SigningKey, data []byte) ([]byte, error) {
	secret, err := hmacSecret(strength, key)
	if err != nil {
		return nil, err
	}
	return hmacSum(strength, secret, data), nil
}

func (hmacAdapter) verify(mac []byte, strength Strength, key VerifyingKey, data []byte) (bool, error) {
	secret, err := hmacSecret(strength, key)
	if err != nil {
		return false, err
	}
	expected := hmacSum(strength, secret, data)
	defer security.ZeroBytes(expected)

	return security.ConstantTimeEqual(mac, expected), nil
}

func hmacSum(strength Strength, secret, data []byte) []byte {
	h := hmac.New(strength.Hash().New, secret)
	h.Write(data)
	return h.Sum(nil)
}

// hmacSecret requires a SymmetricKey with at least as many bits as the digest.
func hmacSecret(strength Strength, key any) ([]byte, error) {
	if IsAbsent(key) {
		return nil, fmt.Errorf("%w: missing HMAC secret", ErrWeakKey)
	}
	secret, ok := key.(SymmetricKey)
	if !ok {
		return nil, fmt.Errorf("%w: HMAC needs a SymmetricKey, got %T", ErrInvalidKey, key)
	}
	if len(secret)*8 < int(strength) {
		return nil, fmt.Errorf("%w: HMAC secret has %d bits, need %d", ErrWeakKey, len(secret)*8, int(strength))
	}
	return secret, nil
}
