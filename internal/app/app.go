// Package app assembles the ledger components shared by the ramps binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/burn"
	"github.com/goodnatureofminers/fiatramps-backend/internal/config"
	"github.com/goodnatureofminers/fiatramps-backend/internal/currency"
	"github.com/goodnatureofminers/fiatramps-backend/internal/directory"
	"github.com/goodnatureofminers/fiatramps-backend/internal/events"
	"github.com/goodnatureofminers/fiatramps-backend/internal/identity"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/metrics"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/ramps"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
	"github.com/goodnatureofminers/fiatramps-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/fiatramps-backend/pkg/batcher"
)

const DefaultEscrowSeed = "fiat-ramps/escrow"

// Options configures a Stack.
type Options struct {
	Store           kvstore.Options
	GenesisPath     string
	EscrowSeed      string
	Workers         []model.AccountID
	DefaultAPIURL   string
	MaxIBANLength   int
	MaxStatements   int
	MaxTransactions int

	// Optional event sinks.
	NATSURL           string
	NATSSubjectPrefix string
	NATSClientName    string
	ClickhouseDSN     string
	EventBatch        batcher.Options
}

// Stack holds the wired components.
type Stack struct {
	Store     kvstore.Store
	Directory *directory.Directory
	Currency  *currency.Ledger
	Burns     *burn.Ledger
	Engine    *reconcile.Engine
	Service   *ramps.Service
	Publisher events.Publisher
	Genesis   config.Genesis

	closers []func() error
	logger  *zap.Logger
}

// Build opens the store and event sinks, wires the ledger and applies the genesis file when given.
func Build(ctx context.Context, opts Options, logger *zap.Logger) (_ *Stack, err error) {
	s := &Stack{logger: logger}
	defer func() {
		if err != nil {
			if closeErr := s.Close(); closeErr != nil {
				logger.Warn("close after failed build", zap.Error(closeErr))
			}
		}
	}()

	if opts.GenesisPath != "" {
		if s.Genesis, err = config.LoadGenesis(opts.GenesisPath, opts.MaxIBANLength); err != nil {
			return nil, err
		}
	}

	if s.Store, err = kvstore.Open(ctx, opts.Store); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.closers = append(s.closers, s.Store.Close)
	if opts.Store.Backend == kvstore.BackendMemory || opts.Store.Backend == "" {
		logger.Warn("using in-memory store, state is not shared and is lost on exit")
	}

	if s.Publisher, err = s.publishers(ctx, opts); err != nil {
		return nil, err
	}

	seed := opts.EscrowSeed
	if seed == "" {
		seed = DefaultEscrowSeed
	}
	escrow := identity.SystemAccount(seed)

	s.Directory = directory.New(s.Store, identity.NewKeyProvider(), logger)
	s.Currency = currency.NewLedger(s.Store)
	s.Burns = burn.NewLedger(s.Store, s.Currency, escrow, logger)
	s.Engine = reconcile.NewEngine(s.Directory, s.Currency, s.Burns, s.Publisher, metrics.NewReconciler(), opts.MaxIBANLength, logger)
	s.Service = ramps.NewService(s.Store, s.Directory, s.Currency, s.Burns, s.Engine, s.Publisher, ramps.ServiceConfig{
		Workers:         mergeAccounts(s.Genesis.WorkerAccounts(), opts.Workers),
		MaxIBANLength:   opts.MaxIBANLength,
		MaxStatements:   opts.MaxStatements,
		MaxTransactions: opts.MaxTransactions,
		DefaultAPIURL:   opts.DefaultAPIURL,
	}, logger)

	if opts.GenesisPath != "" {
		if err = s.Service.ApplyGenesis(ctx, s.Genesis); err != nil {
			return nil, fmt.Errorf("apply genesis: %w", err)
		}
	}
	logger.Info("ledger ready", zap.String("escrow", string(escrow)), zap.String("store", opts.Store.Backend))
	return s, nil
}

// Admins returns the accounts acting as root on the command surface.
func (s *Stack) Admins() []model.AccountID {
	return s.Genesis.AdminAccounts()
}

// Close releases sinks and the store in reverse order of creation.
func (s *Stack) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Stack) publishers(ctx context.Context, opts Options) (events.Publisher, error) {
	sinks := events.Multi{events.NewLogPublisher(s.logger)}

	if opts.NATSURL != "" {
		name := opts.NATSClientName
		if name == "" {
			name = "fiatramps"
		}
		conn, err := events.DialNATS(opts.NATSURL, name)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, conn.Drain)
		prefix := opts.NATSSubjectPrefix
		if prefix == "" {
			prefix = "fiatramps.events"
		}
		sinks = append(sinks, events.NewNATSPublisher(conn, prefix))
		s.logger.Info("publishing events to nats", zap.String("prefix", prefix))
	}

	if opts.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(opts.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		s.closers = append(s.closers, repo.Close)

		writer := clickhouse.NewEventWriter(repo, opts.EventBatch, s.logger)
		writer.Start(ctx)
		s.closers = append(s.closers, func() error {
			writer.Stop()
			return nil
		})
		sinks = append(sinks, writer)
		s.logger.Info("writing events to clickhouse")
	}
	return sinks, nil
}

func mergeAccounts(lists ...[]model.AccountID) []model.AccountID {
	seen := make(map[model.AccountID]struct{})
	var out []model.AccountID
	for _, list := range lists {
		for _, a := range list {
			if a == "" {
				continue
			}
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
