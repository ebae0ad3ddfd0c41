package security

import (
	"bytes"
	"strings"
)

var weakFragments = [...]string{
	"password", "secret", "changeme", "letmein", "welcome", "qwerty",
	"asdfgh", "zxcvbn", "12345678", "87654321", "admin", "default",
	"example", "test",
}

// IsWeakSecret flags shared secrets that are obviously guessable: empty,
// a single repeated byte, a short repeating unit, a run of sequential bytes,
// too few distinct bytes, or a well-known dictionary fragment.
//
// The check is a policy for human-chosen passphrases. Random key material of
// adequate length always passes.
func IsWeakSecret(key []byte) bool {
	if len(key) == 0 {
		return true
	}
	if repeatsUnit(key, 1) {
		return true
	}
	for unit := 2; unit <= 4 && unit*3 <= len(key); unit++ {
		if repeatsUnit(key, unit) {
			return true
		}
	}
	if isSequential(key) {
		return true
	}
	if lowDistinct(key) {
		return true
	}

	lower := strings.ToLower(string(key))
	for _, frag := range weakFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

func repeatsUnit(key []byte, unit int) bool {
	if len(key) <= unit {
		return unit == 1 && len(key) > 1
	}
	pattern := key[:unit]
	for i := unit; i < len(key); i += unit {
		end := min(i+unit, len(key))
		if !bytes.Equal(key[i:end], pattern[:end-i]) {
			return false
		}
	}
	return true
}

// isSequential reports whether the first 8 bytes step up or down by one.
func isSequential(key []byte) bool {
	if len(key) < 8 {
		return false
	}
	up, down := true, true
	for i := 1; i < 8; i++ {
		if key[i] != key[i-1]+1 {
			up = false
		}
		if key[i] != key[i-1]-1 {
			down = false
		}
	}
	return up || down
}

func lowDistinct(key []byte) bool {
	var seen [256]bool
	distinct := 0
	for _, b := range key {
		if !seen[b] {
			seen[b] = true
			distinct++
		}
	}
	// 30% of the length, capped so long random keys are not penalised by the
	// 256-symbol alphabet.
	need := min(len(key)*3/10, 64)
	return distinct < need
}
