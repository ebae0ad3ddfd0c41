package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [TOKEN]",
	Short: "Print the header and claims of a token without verifying it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		token, err := readInput(cmd.InOrStdin(), arg)
		if err != nil {
			return err
		}

		header, claims, err := jwt.Decode(token)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Header *jwt.Header    `json:"header"`
			Claims map[string]any `json:"claims"`
		}{header, claims})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
