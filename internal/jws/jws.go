// Package jws produces and checks JWS compact serializations:
// BASE64URL(header) "." BASE64URL(payload) "." BASE64URL(signature).
package jws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cybergodev/jsonwebtoken/internal/base64url"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// None is the alg value of an unsecured JWS.
const None = "none"

var errUnrecognized = signing.ErrUnrecognizedAlgorithm

// SigningInput returns BASE64URL(header) "." BASE64URL(payload).
func SigningInput(header *Header, payload []byte) (string, error) {
	if header == nil {
		header = NewHeader()
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	h := base64url.Encode(headerJSON)
	p := base64url.Encode(payload)

	var b strings.Builder
	b.Grow(len(h) + 1 + len(p))
	b.WriteString(h)
	b.WriteByte('.')
	b.WriteString(p)
	return b.String(), nil
}

// Sign signs payload under the header's alg. "none" is refused; use Unsecured.
func Sign(header *Header, payload []byte, key signing.SigningKey) (string, error) {
	alg, err := header.algorithm()
	if err != nil {
		return "", err
	}
	if _, err := signing.ParseAlgorithm(alg); err != nil {
		return "", err
	}

	input, err := SigningInput(header, payload)
	if err != nil {
		return "", err
	}
	mac, err := signing.Sign(alg, key, []byte(input))
	if err != nil {
		return "", err
	}
	sig := base64url.Encode(mac)

	var b strings.Builder
	b.Grow(len(input) + 1 + len(sig))
	b.WriteString(input)
	b.WriteByte('.')
	b.WriteString(sig)
	return b.String(), nil
}

// Unsecured builds a token with an empty signature segment. The header's alg
// must be exactly "none".
func Unsecured(header *Header, payload []byte) (string, error) {
	alg, err := header.algorithm()
	if err != nil {
		return "", err
	}
	if alg != None {
		return "", fmt.Errorf("%w: unsecured token needs alg %q, got %q", ErrInvalidAlgHeader, None, alg)
	}

	input, err := SigningInput(header, payload)
	if err != nil {
		return "", err
	}
	return input + ".", nil
}

// Validate checks token against expectedAlg and key. It returns the token and
// true when the signature holds, or "" and false when it does not. Errors are
// returned for malformed headers, algorithm mismatches and unusable keys.
//
// The header alg is compared with expectedAlg before any key is used, so a
// token can not select its own verification algorithm.
func Validate(token, expectedAlg string, key signing.VerifyingKey) (string, bool, error) {
	segments, n := split(token)

	header, err := decodeHeader(segments[0])
	if err != nil {
		return "", false, err
	}
	alg, err := header.algorithm()
	if err != nil {
		return "", false, err
	}
	if alg != None {
		if _, err := signing.ParseAlgorithm(alg); err != nil {
			return "", false, err
		}
	}
	if alg != expectedAlg {
		return "", false, fmt.Errorf("%w: expected %q, got %q", ErrAlgorithmMismatch, expectedAlg, alg)
	}

	if expectedAlg == None {
		return token, true, nil
	}

	if n != 3 || signing.IsAbsent(key) {
		return "", false, nil
	}

	// Compact serialization carries no padding (RFC 7515 section 2).
	if strings.IndexByte(segments[2], '=') >= 0 {
		return "", false, nil
	}
	mac, err := base64url.Decode(segments[2])
	if err != nil {
		return "", false, nil
	}
	input := token[:len(segments[0])+1+len(segments[1])]

	ok, err := signing.Verify(mac, alg, key, []byte(input))
	if errors.Is(err, signing.ErrInvalidSignature) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ParseHeader decodes the header without verifying anything.
func ParseHeader(token string) (*Header, error) {
	segments, _ := split(token)
	return decodeHeader(segments[0])
}

// Payload decodes the payload segment without verifying anything.
func Payload(token string) ([]byte, error) {
	segments, n := split(token)
	if n < 2 {
		return nil, fmt.Errorf("%w: token has no payload segment", ErrInvalidPayload)
	}
	return base64url.Decode(segments[1])
}

func decodeHeader(segment string) (*Header, error) {
	raw, err := base64url.Decode(segment)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	h := NewHeader()
	if err := json.Unmarshal(raw, h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidPayload, err)
	}
	return h, nil
}

// split returns the first three dot-separated segments and the total segment
// count.
func split(token string) ([3]string, int) {
	var segs [3]string
	n := strings.Count(token, ".") + 1

	rest := token
	for i := 0; i < 3; i++ {
		idx := strings.IndexByte(rest, '.')
		if idx < 0 || i == 2 {
			segs[i] = rest
			break
		}
		segs[i] = rest[:idx]
		rest = rest[idx+1:]
	}
	return segs, n
}
