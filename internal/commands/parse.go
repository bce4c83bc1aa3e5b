package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/statement"
)

func newParseCommand() *cobra.Command {
	limits := statement.DefaultLimits()

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a bank statement document and print the accepted statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			statements, err := statement.NewParser(limits, zap.NewNop()).Parse(data)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), statements)
		},
	}

	cmd.Flags().IntVar(&limits.MaxIBANLength, "max-iban-length", limits.MaxIBANLength, "max IBAN length")
	cmd.Flags().IntVar(&limits.MaxStringLength, "max-string-length", limits.MaxStringLength, "max length of free text fields")
	cmd.Flags().IntVar(&limits.MaxStatements, "max-statements", limits.MaxStatements, "max statements per document")
	cmd.Flags().IntVar(&limits.MaxTransactions, "max-transactions", limits.MaxTransactions, "max transactions per statement")
	cmd.Flags().BoolVar(&limits.Strict, "strict", false, "fail on the first malformed item")

	return cmd
}
