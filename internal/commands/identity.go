package commands

import (
	"github.com/spf13/cobra"

	"github.com/goodnatureofminers/fiatramps-backend/internal/identity"
)

func newIdentityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Generate and inspect ledger identities",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new",
			Short: "Generate a keypair and print its account identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				kp, err := identity.NewKeyProvider().Generate()
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"account":     string(kp.Account),
					"private_key": kp.PrivateKeyHex(),
				})
			},
		},
		&cobra.Command{
			Use:   "decode <account>",
			Short: "Validate an account identity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				account, err := identity.Decode(args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]string{"account": string(account)})
			},
		},
		&cobra.Command{
			Use:   "system <seed>",
			Short: "Print the keyless system account derived from seed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"account": string(identity.SystemAccount(args[0]))})
			},
		},
	)

	return cmd
}
