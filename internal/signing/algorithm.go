// Package signing implements the JWS algorithm families (HMAC, RSA PKCS#1 v1.5
// and ECDSA) behind a single dispatcher keyed by algorithm identifier.
package signing

import (
	"crypto"
	"fmt"
	"strconv"

	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/cybergodev/jsonwebtoken/internal/asn1sig"
)

// Family is the closed set of signature families.
type Family int

const (
	HMAC Family = iota + 1
	RSA
	ECDSA
)

func (f Family) String() string {
	switch f {
	case HMAC:
		return "HMAC"
	case RSA:
		return "RSA"
	case ECDSA:
		return "ECDSA"
	default:
		return "Family(" + strconv.Itoa(int(f)) + ")"
	}
}

func (f Family) prefix() string {
	switch f {
	case HMAC:
		return "HS"
	case RSA:
		return "RS"
	case ECDSA:
		return "ES"
	default:
		return ""
	}
}

// Strength is the SHA-2 digest size in bits.
type Strength int

const (
	Strength256 Strength = 256
	Strength384 Strength = 384
	Strength512 Strength = 512
)

// Hash returns the SHA-2 function for s, or 0 for an unknown strength.
func (s Strength) Hash() crypto.Hash {
	switch s {
	case Strength256:
		return crypto.SHA256
	case Strength384:
		return crypto.SHA384
	case Strength512:
		return crypto.SHA512
	default:
		return 0
	}
}

func (s Strength) digest(data []byte) ([]byte, error) {
	h := s.Hash()
	if h == 0 || !h.Available() {
		return nil, fmt.Errorf("%w: no hash for strength %d", ErrUnrecognizedAlgorithm, int(s))
	}
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

// Algorithm is a parsed JWS "alg" value other than "none".
type Algorithm struct {
	Family   Family
	Strength Strength
}

func (a Algorithm) String() string {
	return a.Family.prefix() + strconv.Itoa(int(a.Strength))
}

// MACSize is the signature length in bytes for HMAC and ECDSA. RSA signatures
// are as long as the modulus, so MACSize is 0 for RSA.
func (a Algorithm) MACSize() int {
	switch a.Family {
	case HMAC:
		return int(a.Strength) / 8
	case ECDSA:
		width, err := asn1sig.ByteWidth(int(a.Strength))
		if err != nil {
			return 0
		}
		return 2 * width
	default:
		return 0
	}
}

// ParseAlgorithm decomposes an identifier such as "ES384". Matching is exact and
// case-sensitive; "none" is not a signing algorithm and is rejected here.
func ParseAlgorithm(id string) (Algorithm, error) {
	if len(id) != 5 {
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnrecognizedAlgorithm, id)
	}

	var alg Algorithm
	switch id[:2] {
	case "HS":
		alg.Family = HMAC
	case "RS":
		alg.Family = RSA
	case "ES":
		alg.Family = ECDSA
	default:
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnrecognizedAlgorithm, id)
	}

	switch id[2:] {
	case "256":
		alg.Strength = Strength256
	case "384":
		alg.Strength = Strength384
	case "512":
		alg.Strength = Strength512
	default:
		return Algorithm{}, fmt.Errorf("%w: %q", ErrUnrecognizedAlgorithm, id)
	}

	return alg, nil
}
