package signing

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// MinRSABits is the smallest modulus accepted for signing or verifying.
const MinRSABits = 2048

type rsaAdapter struct{}

func (rsaAdapter) sign(strength Strength, key SigningKey, data []byte) ([]byte, error) {
	if IsAbsent(key) {
		return nil, fmt.Errorf("%w: missing RSA private key", ErrWeakKey)
	}
	pk, ok := key.(PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: RSA needs a PrivateKey, got %T", ErrInvalidKey, key)
	}
	if _, err := rsaPublic(pk.public()); err != nil {
		return nil, err
	}

	digest, err := strength.digest(data)
	if err != nil {
		return nil, err
	}
	sig, err := pk.Signer.Sign(rand.Reader, digest, strength.Hash())
	if err != nil {
		return nil, fmt.Errorf("rsa sign: %w", err)
	}
	return sig, nil
}

func (rsaAdapter) verify(mac []byte, strength Strength, key VerifyingKey, data []byte) (bool, error) {
	if IsAbsent(key) {
		return false, fmt.Errorf("%w: missing RSA public key", ErrWeakKey)
	}

	var pub *rsa.PublicKey
	var err error
	switch k := key.(type) {
	case PublicKey:
		pub, err = rsaPublic(k.Key)
	case PrivateKey:
		pub, err = rsaPublic(k.public())
	default:
		err = fmt.Errorf("%w: RSA needs a PublicKey or PrivateKey, got %T", ErrInvalidKey, key)
	}
	if err != nil {
		return false, err
	}

	digest, err := strength.digest(data)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(pub, strength.Hash(), digest, mac) == nil, nil
}

func rsaPublic(key any) (*rsa.PublicKey, error) {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: expected an RSA key, got %T", ErrInvalidKey, key)
	}
	if pub == nil || pub.N == nil {
		return nil, fmt.Errorf("%w: missing RSA modulus", ErrWeakKey)
	}
	if bits := pub.N.BitLen(); bits < MinRSABits {
		return nil, fmt.Errorf("%w: RSA modulus has %d bits, need %d", ErrWeakKey, bits, MinRSABits)
	}
	return pub, nil
}
