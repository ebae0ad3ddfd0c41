// Package asn1sig converts ECDSA signatures between the ASN.1 DER form produced
// by crypto.Signer implementations and the fixed-width r||s form that JWS puts
// on the wire (RFC 7518 Section 3.4).
package asn1sig

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	ErrInvalidStrength        = errors.New("invalid digest strength")
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	ErrInvalidDER             = errors.New("invalid DER encoded signature")
)

// curveBits maps a digest strength onto the order size of the curve JWS pairs
// with it. ES512 uses P-521, not a 512-bit curve.
var curveBits = map[int]int{
	256: 256,
	384: 384,
	512: 521,
}

// ByteWidth returns the byte width of each of r and s for the given strength.
func ByteWidth(strength int) (int, error) {
	bits, ok := curveBits[strength]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStrength, strength)
	}
	return (bits + 7) / 8, nil
}

// ToFixedWidth decodes a DER SEQUENCE { INTEGER r, INTEGER s } and returns r and s
// left-padded to the curve width and concatenated.
func ToFixedWidth(der []byte, strength int) ([]byte, error) {
	width, err := ByteWidth(strength)
	if err != nil {
		return nil, err
	}

	r, s := new(big.Int), new(big.Int)
	input := cryptobyte.String(der)
	var inner cryptobyte.String
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, ErrInvalidDER
	}

	if r.Sign() < 0 || s.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative integer", ErrInvalidDER)
	}
	if len(r.Bytes()) > width || len(s.Bytes()) > width {
		return nil, fmt.Errorf("%w: integer wider than %d bytes", ErrInvalidDER, width)
	}

	out := make([]byte, 2*width)
	r.FillBytes(out[:width])
	s.FillBytes(out[width:])
	return out, nil
}

// ToDER splits a fixed-width r||s signature in half and encodes both halves as
// non-negative DER INTEGERs inside a SEQUENCE.
func ToDER(fixed []byte, strength int) ([]byte, error) {
	width, err := ByteWidth(strength)
	if err != nil {
		return nil, err
	}
	if len(fixed) != 2*width {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureLength, len(fixed), 2*width)
	}

	r := new(big.Int).SetBytes(fixed[:width])
	s := new(big.Int).SetBytes(fixed[width:])

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	return b.Bytes()
}
