package signing

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
)

const (
	hs256Secret = "gZH75aKtMN3Yj0iPS4hcgUuTwjAzZr9C"
	hs384Secret = "AyM1SysPpbyDfgZld3umj1qzKObwVMkoqQ-EstJQLr_T-1qS"
	hs512Secret = "ysPpbyDfgZld3umj1qzKObwVMkoqQ-EstJQLr_T-1qS0gZH75aKtMN3Yj0iPS4hc"
)

var signingInput = []byte("eyJ0eXAiOiJKV1QiLCJhbGciOiJIUzI1NiJ9.eyJpc3MiOiJqb2UifQ")

var (
	keysOnce  sync.Once
	rsaKey    *rsa.PrivateKey
	rsaWeak   *rsa.PrivateKey
	ecKeys    map[Strength]*ecdsa.PrivateKey
	keysError error
)

func loadKeys(t testing.TB) {
	t.Helper()
	keysOnce.Do(func() {
		if rsaKey, keysError = rsa.GenerateKey(rand.Reader, 2048); keysError != nil {
			return
		}
		if rsaWeak, keysError = rsa.GenerateKey(rand.Reader, 2047); keysError != nil {
			return
		}
		ecKeys = make(map[Strength]*ecdsa.PrivateKey)
		curves := map[Strength]elliptic.Curve{
			Strength256: elliptic.P256(),
			Strength384: elliptic.P384(),
			Strength512: elliptic.P521(),
		}
		for s, c := range curves {
			var k *ecdsa.PrivateKey
			if k, keysError = ecdsa.GenerateKey(c, rand.Reader); keysError != nil {
				return
			}
			ecKeys[s] = k
		}
	})
	if keysError != nil {
		t.Fatalf("Failed to generate test keys: %v", keysError)
	}
}

func hmacSecretFor(s Strength) SymmetricKey {
	switch s {
	case Strength384:
		return SymmetricKey(hs384Secret)
	case Strength512:
		return SymmetricKey(hs512Secret)
	default:
		return SymmetricKey(hs256Secret)
	}
}

// keyPair returns the signing and verifying key for alg.
func keyPair(t testing.TB, alg Algorithm) (SigningKey, VerifyingKey) {
	t.Helper()
	loadKeys(t)
	switch alg.Family {
	case HMAC:
		k := hmacSecretFor(alg.Strength)
		return k, k
	case RSA:
		return PrivateKey{Signer: rsaKey}, PublicKey{Key: &rsaKey.PublicKey}
	default:
		k := ecKeys[alg.Strength]
		return PrivateKey{Signer: k}, PublicKey{Key: &k.PublicKey}
	}
}

var allAlgorithms = []string{
	"HS256", "HS384", "HS512",
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
}
