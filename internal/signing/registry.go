package signing

type adapter interface {
	sign(strength Strength, key SigningKey, data []byte) ([]byte, error)
	verify(mac []byte, strength Strength, key VerifyingKey, data []byte) (bool, error)
}

// adapters is never written after init.
var adapters = map[Family]adapter{
	HMAC:  hmacAdapter{},
	RSA:   rsaAdapter{},
	ECDSA: ecdsaAdapter{},
}

// Sign produces the raw signature (MAC) of data under the algorithm id.
func Sign(id string, key SigningKey, data []byte) ([]byte, error) {
	alg, err := ParseAlgorithm(id)
	if err != nil {
		return nil, err
	}
	return adapters[alg.Family].sign(alg.Strength, key, data)
}

// Verify checks mac against data. A mismatch is reported as false with a nil
// error; errors are reserved for unusable keys or identifiers.
func Verify(mac []byte, id string, key VerifyingKey, data []byte) (bool, error) {
	alg, err := ParseAlgorithm(id)
	if err != nil {
		return false, err
	}
	return adapters[alg.Family].verify(mac, alg.Strength, key, data)
}
