package cmd

import (
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
)

var errTokenInvalid = errors.New("token is invalid")

var verifyFlags keyFlags

var verifyCmd = &cobra.Command{
	Use:   "verify [TOKEN]",
	Short: "Verify a token and print its claims",
	Long: `Verify a compact token against --alg and a key. The token comes from the
argument or, when absent or "-", stdin. Exits with status 1 when the token is
invalid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		token, err := readInput(cmd.InOrStdin(), arg)
		if err != nil {
			return err
		}

		key, err := verifyFlags.verifyingKey()
		if err != nil {
			return err
		}
		claims, valid, err := jwt.Validate(token, jwt.VerifyOptions{Alg: verifyFlags.method(), Key: key})
		if err != nil {
			return err
		}
		if !valid {
			log.WithField("alg", verifyFlags.alg).Info("signature did not verify")
			return errTokenInvalid
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(claims)
	},
}

func init() {
	verifyFlags.register(verifyCmd.Flags(), "PEM public (or private) key for RS and ES algorithms")
	rootCmd.AddCommand(verifyCmd)
}
