package jsonwebtoken

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
)

const maxCachedProcessors = 100

// processors caches default HS256 processors by a digest of their secret.
// Evicted processors are left to their finalizer, since a caller may still
// hold one.
var processors = mustProcessorCache()

func mustProcessorCache() *lru.Cache[[sha256.Size]byte, *Processor] {
	c, err := lru.New[[sha256.Size]byte, *Processor](maxCachedProcessors)
	if err != nil {
		panic(err)
	}
	return c
}

// CreateToken creates a token with a cached HS256 processor using
// DefaultConfig. Use a Processor for anything else.
func CreateToken(secretKey string, claims Claims) (string, error) {
	p, err := cachedProcessor(secretKey)
	if err != nil {
		return "", err
	}
	return p.CreateToken(claims)
}

// ValidateToken validates a token with a cached HS256 processor using
// DefaultConfig.
func ValidateToken(secretKey, tokenString string) (*Claims, bool, error) {
	p, err := cachedProcessor(secretKey)
	if err != nil {
		return nil, false, err
	}
	return p.ValidateToken(tokenString)
}

func cachedProcessor(secretKey string) (*Processor, error) {
	id := sha256.Sum256([]byte(secretKey))
	if p, ok := processors.Get(id); ok && !p.IsClosed() {
		return p, nil
	}

	p, err := New(secretKey)
	if err != nil {
		return nil, err
	}
	prev, found, _ := processors.PeekOrAdd(id, p)
	if !found {
		return p, nil
	}
	if !prev.IsClosed() {
		p.Close()
		return prev, nil
	}
	processors.Add(id, p)
	return p, nil
}

// ClearCache closes and forgets every cached processor.
func ClearCache() {
	for _, p := range processors.Values() {
		p.Close()
	}
	processors.Purge()
}
