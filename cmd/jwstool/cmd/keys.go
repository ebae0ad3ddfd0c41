package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	jwt "github.com/cybergodev/jsonwebtoken"
)

// keyFlags are shared by sign and verify.
type keyFlags struct {
	alg        string
	keyFile    string
	secret     string
	secretFile string
}

func (kf *keyFlags) register(fs *pflag.FlagSet, keyUsage string) {
	fs.StringVar(&kf.alg, "alg", string(jwt.DefaultAlgorithm), "signature algorithm (HS256..ES512 or none)")
	fs.StringVar(&kf.keyFile, "key", "", keyUsage)
	fs.StringVar(&kf.secret, "secret", "", "shared secret for HS algorithms")
	fs.StringVar(&kf.secretFile, "secret-file", "", "file holding the shared secret for HS algorithms")
}

func (kf *keyFlags) method() jwt.SigningMethod {
	return jwt.SigningMethod(kf.alg)
}

// symmetricKey returns nil for non-HMAC methods.
func (kf *keyFlags) symmetricKey() (jwt.SymmetricKey, error) {
	if kf.secret != "" && kf.secretFile != "" {
		return nil, errors.New("--secret and --secret-file are mutually exclusive")
	}
	if kf.secretFile == "" {
		if kf.secret == "" {
			return nil, fmt.Errorf("%s requires --secret or --secret-file", kf.alg)
		}
		return jwt.SymmetricKey(kf.secret), nil
	}

	data, err := os.ReadFile(kf.secretFile)
	if err != nil {
		return nil, err
	}
	return jwt.SymmetricKey(strings.TrimRight(string(data), "\r\n")), nil
}

func (kf *keyFlags) signingKey() (jwt.SigningKey, error) {
	m := kf.method()
	switch {
	case m == jwt.SigningMethodNone:
		return nil, nil
	case m.IsHMAC():
		return kf.symmetricKey()
	case kf.keyFile == "":
		return nil, fmt.Errorf("%s requires --key", kf.alg)
	}
	return jwt.LoadPrivateKeyFile(kf.keyFile)
}

// verifyingKey accepts a public key file or, failing that, a private key file.
func (kf *keyFlags) verifyingKey() (jwt.VerifyingKey, error) {
	m := kf.method()
	switch {
	case m == jwt.SigningMethodNone:
		return nil, nil
	case m.IsHMAC():
		return kf.symmetricKey()
	case kf.keyFile == "":
		return nil, fmt.Errorf("%s requires --key", kf.alg)
	}

	pub, err := jwt.LoadPublicKeyFile(kf.keyFile)
	if err == nil {
		return pub, nil
	}
	log.WithError(err).Debug("not a public key, trying private key")
	priv, privErr := jwt.LoadPrivateKeyFile(kf.keyFile)
	if privErr != nil {
		return nil, err
	}
	return priv, nil
}

// readInput returns arg, or stdin when arg is empty or "-".
func readInput(in io.Reader, arg string) (string, error) {
	if arg != "" && arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
