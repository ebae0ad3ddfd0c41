package security

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b hold the same bytes. The time taken
// depends only on the lengths. Empty operands never compare equal, so a missing
// MAC can not match a missing expectation.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
