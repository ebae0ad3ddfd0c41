package jsonwebtoken

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

const (
	testSecretKey = "Kx9#mP2$vL8@nQ5!wR7&tY3^uI6*oE4%aS1+dF0-gH9~jK2#bN5$cM8@xZ7&vB4!"
	shortSecret   = "this_a_32_character_private_key!"
)

var (
	keysOnce  sync.Once
	rsaKey    *rsa.PrivateKey
	rsaKey2   *rsa.PrivateKey
	rsaWeak   *rsa.PrivateKey
	ecKeys    map[SigningMethod]*ecdsa.PrivateKey
	keysError error
)

func loadKeys(t testing.TB) {
	t.Helper()
	keysOnce.Do(func() {
		for _, dst := range []**rsa.PrivateKey{&rsaKey, &rsaKey2} {
			if *dst, keysError = rsa.GenerateKey(rand.Reader, 2048); keysError != nil {
				return
			}
		}
		if rsaWeak, keysError = rsa.GenerateKey(rand.Reader, 2047); keysError != nil {
			return
		}
		ecKeys = make(map[SigningMethod]*ecdsa.PrivateKey)
		for m, c := range map[SigningMethod]elliptic.Curve{
			SigningMethodES256: elliptic.P256(),
			SigningMethodES384: elliptic.P384(),
			SigningMethodES512: elliptic.P521(),
		} {
			var k *ecdsa.PrivateKey
			if k, keysError = ecdsa.GenerateKey(c, rand.Reader); keysError != nil {
				return
			}
			ecKeys[m] = k
		}
	})
	if keysError != nil {
		t.Fatalf("Failed to generate test keys: %v", keysError)
	}
}

// testKeys returns a signing and a verifying key for m.
func testKeys(t testing.TB, m SigningMethod) (SigningKey, VerifyingKey) {
	t.Helper()
	loadKeys(t)
	switch m[:2] {
	case "HS":
		k := SymmetricKey(testSecretKey)
		return k, k
	case "RS":
		return PrivateKey{Signer: rsaKey}, PublicKey{Key: &rsaKey.PublicKey}
	default:
		k := ecKeys[m]
		return PrivateKey{Signer: k}, PublicKey{Key: &k.PublicKey}
	}
}

var allMethods = []SigningMethod{
	SigningMethodHS256, SigningMethodHS384, SigningMethodHS512,
	SigningMethodRS256, SigningMethodRS384, SigningMethodRS512,
	SigningMethodES256, SigningMethodES384, SigningMethodES512,
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	return cfg
}
