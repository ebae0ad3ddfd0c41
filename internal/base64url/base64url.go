// Package base64url implements the unpadded URL-safe base64 encoding used for
// every segment of a compact JWS (RFC 7515 Appendix C).
package base64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is returned when a segment is not valid base64url.
var ErrInvalidEncoding = errors.New("invalid base64url encoding")

// Encode returns the URL-safe base64 encoding of data with all padding removed.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode re-pads s to a multiple of four characters and decodes it.
// Input that already carries its padding is accepted as well.
func Decode(s string) ([]byte, error) {
	if i := invalidByte(s); i >= 0 {
		return nil, fmt.Errorf("%w: illegal byte %q at offset %d", ErrInvalidEncoding, s[i], i)
	}
	padded, err := pad(s)
	if err != nil {
		return nil, err
	}

	data, err := base64.URLEncoding.Strict().DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}

func pad(s string) (string, error) {
	switch len(s) % 4 {
	case 0:
		return s, nil
	case 1:
		// no amount of padding makes a single trailing character decodable
		return "", fmt.Errorf("%w: length %d has no valid padding", ErrInvalidEncoding, len(s))
	default:
		return s + strings.Repeat("=", 4-len(s)%4), nil
	}
}

// invalidByte returns the offset of the first byte outside the URL-safe
// alphabet, or -1. '=' is allowed only as trailing padding. CR and LF must be
// caught here since the stdlib decoder skips them.
func invalidByte(s string) int {
	padding := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '=':
			padding = true
		case padding:
			return i
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9', c == '-', c == '_':
		default:
			return i
		}
	}
	return -1
}
