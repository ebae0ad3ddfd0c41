// Package security holds the small primitives the signing engine and the token
// processor share: constant-time comparison, key material zeroing and a
// couple of secret-quality heuristics.
package security

import (
	"crypto/rand"
	"encoding/binary"
	"runtime"
	"sync"
	"time"
)

// SecureBytes owns a private copy of secret material and wipes it on Destroy.
type SecureBytes struct {
	mu   sync.Mutex
	data []byte
}

// NewSecureBytes copies data into a new SecureBytes. The caller keeps ownership
// of data.
func NewSecureBytes(data []byte) *SecureBytes {
	s := &SecureBytes{data: make([]byte, len(data))}
	copy(s.data, data)
	runtime.SetFinalizer(s, (*SecureBytes).wipe)
	return s
}

// Bytes returns the held slice. It is nil after Destroy.
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Len reports the length of the held secret.
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Destroy zeroes the secret. Calling it more than once is harmless.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipe()
	runtime.SetFinalizer(s, nil)
}

func (s *SecureBytes) wipe() {
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
}

// ZeroBytes overwrites data with zeros.
func ZeroBytes(data []byte) {
	clear(data)
	runtime.KeepAlive(data)
}

// SecureRandomDelay sleeps for a random 10-99µs. Callers use it on failure
// paths so error timing does not reveal which check rejected the input.
func SecureRandomDelay() {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		time.Sleep(50 * time.Microsecond)
		return
	}
	n := binary.BigEndian.Uint16(b[:])
	time.Sleep(time.Duration(10+int(n)%90) * time.Microsecond)
}
