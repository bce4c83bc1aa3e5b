package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/transport"
)

func newTokenCommand() *cobra.Command {
	var secret, role string

	cmd := &cobra.Command{
		Use:   "token <account>",
		Short: "Sign a bearer token for the command surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret is required")
			}
			token, err := transport.IssueToken([]byte(secret), model.AccountID(args[0]), role)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HS256 secret of the API")
	cmd.Flags().StringVar(&role, "role", "", "optional role claim (admin)")

	return cmd
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid request id %q", s)
	}
	return id, nil
}
