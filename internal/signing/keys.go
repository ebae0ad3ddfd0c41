package signing

import (
	"crypto"
	"reflect"
)

// SigningKey is any key that can produce a signature: SymmetricKey or PrivateKey.
type SigningKey interface {
	canSign()
}

// VerifyingKey is any key that can check a signature: SymmetricKey, PrivateKey
// or PublicKey.
type VerifyingKey interface {
	canVerify()
}

// SymmetricKey is an HMAC shared secret.
type SymmetricKey []byte

func (SymmetricKey) canSign()   {}
func (SymmetricKey) canVerify() {}

// PrivateKey wraps an RSA or ECDSA signer. Verification goes through
// Signer.Public(), so hardware-backed signers work for both directions.
type PrivateKey struct {
	Signer crypto.Signer
}

func (PrivateKey) canSign()   {}
func (PrivateKey) canVerify() {}

// public returns the verification half, or nil when the signer is absent.
func (k PrivateKey) public() crypto.PublicKey {
	if isNil(k.Signer) {
		return nil
	}
	return k.Signer.Public()
}

// PublicKey wraps an *rsa.PublicKey or *ecdsa.PublicKey.
type PublicKey struct {
	Key crypto.PublicKey
}

func (PublicKey) canVerify() {}

// IsAbsent reports whether k carries no key material: a nil interface, an empty
// SymmetricKey, or a PrivateKey/PublicKey holding nil.
func IsAbsent(k any) bool {
	switch v := k.(type) {
	case nil:
		return true
	case SymmetricKey:
		return len(v) == 0
	case PrivateKey:
		return isNil(v.Signer)
	case PublicKey:
		return isNil(v.Key)
	default:
		return isNil(k)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
