package signing

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/cybergodev/jsonwebtoken/internal/asn1sig"
)

// ecdsaAdapter puts fixed-width r||s on the wire. The curve is not checked
// against the strength; a key whose integers fit the width works.
type ecdsaAdapter struct{}

func (ecdsaAdapter) sign(strength Strength, key SigningKey, data []byte) ([]byte, error) {
	if IsAbsent(key) {
		return nil, fmt.Errorf("%w: missing ECDSA private key", ErrInvalidKey)
	}
	pk, ok := key.(PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: ECDSA needs a PrivateKey, got %T", ErrInvalidKey, key)
	}
	if _, err := ecdsaPublic(pk.public()); err != nil {
		return nil, err
	}

	digest, err := strength.digest(data)
	if err != nil {
		return nil, err
	}
	der, err := pk.Signer.Sign(rand.Reader, digest, strength.Hash())
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	sig, err := asn1sig.ToFixedWidth(der, int(strength))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return sig, nil
}

func (ecdsaAdapter) verify(mac []byte, strength Strength, key VerifyingKey, data []byte) (bool, error) {
	width, err := asn1sig.ByteWidth(int(strength))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnrecognizedAlgorithm, err)
	}
	if len(mac) != 2*width {
		return false, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(mac), 2*width)
	}
	if IsAbsent(key) {
		return false, fmt.Errorf("%w: missing ECDSA public key", ErrInvalidKey)
	}

	var pub *ecdsa.PublicKey
	switch k := key.(type) {
	case PublicKey:
		pub, err = ecdsaPublic(k.Key)
	case PrivateKey:
		pub, err = ecdsaPublic(k.public())
	default:
		err = fmt.Errorf("%w: ECDSA needs a PublicKey or PrivateKey, got %T", ErrInvalidKey, key)
	}
	if err != nil {
		return false, err
	}

	der, err := asn1sig.ToDER(mac, int(strength))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	digest, err := strength.digest(data)
	if err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(pub, digest, der), nil
}

func ecdsaPublic(key any) (*ecdsa.PublicKey, error) {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok || pub == nil || pub.Curve == nil {
		return nil, fmt.Errorf("%w: expected an ECDSA key, got %T", ErrInvalidKey, key)
	}
	return pub, nil
}
