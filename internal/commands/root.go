// Package commands implements the rampsctl operator CLI.
package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rampsctl",
		Short: "Operator tooling for the fiat ramps ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newParseCommand(),
		newIdentityCommand(),
		newReferenceCommand(),
		newTokenCommand(),
		newEventsCommand(),
	)

	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
