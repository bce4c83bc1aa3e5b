package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
)

type decodedReference struct {
	Identity    *model.AccountID `json:"identity"`
	Correlation *uint64          `json:"correlation"`
}

func newReferenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Work with bank transaction references",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "decode <reference>",
			Short: "Decode the identity and burn request id carried by a reference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref, err := reconcile.DecodeReference(args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), decodedReference{Identity: ref.Identity, Correlation: ref.Correlation})
			},
		},
		&cobra.Command{
			Use:   "encode <account> <request id>",
			Short: "Render the purpose line of an unpeg instruction",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), reconcile.EncodePurpose(model.AccountID(args[0]), id))
				return err
			},
		},
	)

	return cmd
}
