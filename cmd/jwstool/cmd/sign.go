package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
)

var signFlags struct {
	keyFlags
	claims string
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a claim set and print the compact token",
	Long: `Sign a JSON claim set. Claims come from --claims or, when absent, stdin.

  jwstool sign --alg ES256 --key key.pem --claims '{"iss":"joe"}'
  echo '{"sub":"42"}' | jwstool sign --secret-file secret.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd.InOrStdin(), signFlags.claims)
		if err != nil {
			return err
		}
		claims, err := parseClaims(raw)
		if err != nil {
			return err
		}

		key, err := signFlags.signingKey()
		if err != nil {
			return err
		}
		token, err := jwt.Create(claims, jwt.SignOptions{Alg: signFlags.method(), Key: key})
		if err != nil {
			return err
		}

		log.WithField("alg", signFlags.alg).Debug("token signed")
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func parseClaims(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var claims map[string]any
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("claims must be a JSON object: %w", err)
	}
	if dec.More() {
		return nil, errors.New("claims must be a single JSON object")
	}
	return claims, nil
}

func init() {
	signFlags.register(signCmd.Flags(), "PEM private key for RS and ES algorithms")
	signCmd.Flags().StringVar(&signFlags.claims, "claims", "", "JSON claim set (default: read stdin)")
	rootCmd.AddCommand(signCmd)
}
