package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goodnatureofminers/fiatramps-backend/internal/metrics"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/repository/clickhouse"
)

func newEventsCommand() *cobra.Command {
	var (
		dsn   string
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent events of one kind from the clickhouse event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return errors.New("--clickhouse-dsn is required")
			}
			repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository())
			if err != nil {
				return err
			}
			defer func() {
				_ = repo.Close()
			}()

			events, err := repo.EventsByKind(cmd.Context(), model.EventKind(kind), limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().StringVar(&dsn, "clickhouse-dsn", "", "ClickHouse DSN")
	cmd.Flags().StringVar(&kind, "kind", string(model.EventStatementProcessed), "event kind")
	cmd.Flags().IntVar(&limit, "limit", 20, "max events")

	return cmd
}
