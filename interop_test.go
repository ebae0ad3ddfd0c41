package jsonwebtoken

import (
	"testing"
	"time"

	gjwt "github.com/gbrlsnchs/jwt/v3"
)

// gbrlsnchsAlgorithm builds the gbrlsnchs/jwt equivalent of m over the test keys.
func gbrlsnchsAlgorithm(t *testing.T, m SigningMethod) gjwt.Algorithm {
	t.Helper()
	loadKeys(t)
	switch m {
	case SigningMethodHS256:
		return gjwt.NewHS256([]byte(testSecretKey))
	case SigningMethodHS512:
		return gjwt.NewHS512([]byte(testSecretKey))
	case SigningMethodRS256:
		return gjwt.NewRS256(gjwt.RSAPrivateKey(rsaKey), gjwt.RSAPublicKey(&rsaKey.PublicKey))
	case SigningMethodES256:
		k := ecKeys[m]
		return gjwt.NewES256(gjwt.ECDSAPrivateKey(k), gjwt.ECDSAPublicKey(&k.PublicKey))
	case SigningMethodES512:
		k := ecKeys[m]
		return gjwt.NewES512(gjwt.ECDSAPrivateKey(k), gjwt.ECDSAPublicKey(&k.PublicKey))
	}
	t.Fatalf("no gbrlsnchs algorithm for %s", m)
	return nil
}

func TestGbrlsnchsInterop(t *testing.T) {
	methods := []SigningMethod{
		SigningMethodHS256, SigningMethodHS512, SigningMethodRS256,
		SigningMethodES256, SigningMethodES512,
	}

	for _, m := range methods {
		t.Run(string(m), func(t *testing.T) {
			alg := gbrlsnchsAlgorithm(t, m)
			signKey, verifyKey := testKeys(t, m)

			// theirs -> ours
			pl := gjwt.Payload{
				Issuer:   "joe",
				IssuedAt: gjwt.NumericDate(time.Unix(1300819380, 0)),
			}
			theirs, err := gjwt.Sign(pl, alg)
			if err != nil {
				t.Fatalf("gbrlsnchs Sign failed: %v", err)
			}
			claims, valid, err := Validate(string(theirs), VerifyOptions{Alg: m, Key: verifyKey})
			if err != nil || !valid {
				t.Fatalf("Expected their token to validate, got (%v, %v)", valid, err)
			}
			if claims["iss"] != "joe" {
				t.Errorf("Expected iss joe, got %v", claims["iss"])
			}

			// ours -> theirs
			ours, err := Create(map[string]any{"iss": "joe", "sub": "42"}, SignOptions{Alg: m, Key: signKey})
			if err != nil {
				t.Fatal(err)
			}
			var got gjwt.Payload
			if _, err := gjwt.Verify([]byte(ours), alg, &got); err != nil {
				t.Fatalf("gbrlsnchs rejected our token: %v", err)
			}
			if got.Issuer != "joe" || got.Subject != "42" {
				t.Errorf("Unexpected payload %+v", got)
			}
		})
	}
}
