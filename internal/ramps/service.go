// Package ramps exposes the host operations of the fiat ramps module and runs its background worker.
package ramps

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/burn"
	"github.com/goodnatureofminers/fiatramps-backend/internal/config"
	"github.com/goodnatureofminers/fiatramps-backend/internal/currency"
	"github.com/goodnatureofminers/fiatramps-backend/internal/directory"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
)

const apiURLKey = "settings/api_url"

var (
	ErrZeroAmount          = errors.New("amount is zero")
	ErrInsufficientBalance = errors.New("insufficient free balance")
	ErrAccountNotMapped    = errors.New("account has no mapped iban")
	ErrBadOrigin           = errors.New("caller is not allowed to perform this operation")
	ErrInvalidURL          = errors.New("api url must be an absolute http(s) url")
	ErrBatchTooLarge       = errors.New("statement batch exceeds bounds")
	ErrUnknownDestination  = errors.New("unknown transfer destination")
)

// ServiceConfig bounds and authorizes host operations.
type ServiceConfig struct {
	Workers         []model.AccountID
	MaxIBANLength   int
	MaxStatements   int
	MaxTransactions int
	DefaultAPIURL   string
}

// Service implements the host operations.
type Service struct {
	store     Store
	directory Directory
	currency  Currency
	burns     BurnLedger
	engine    Engine
	publisher Publisher
	workers   map[model.AccountID]struct{}
	cfg       ServiceConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	store Store,
	directory Directory,
	currency Currency,
	burns BurnLedger,
	engine Engine,
	publisher Publisher,
	cfg ServiceConfig,
	logger *zap.Logger,
) *Service {
	workers := make(map[model.AccountID]struct{}, len(cfg.Workers))
	for _, w := range cfg.Workers {
		workers[w] = struct{}{}
	}
	return &Service{
		store:     store,
		directory: directory,
		currency:  currency,
		burns:     burns,
		engine:    engine,
		publisher: publisher,
		workers:   workers,
		cfg:       cfg,
		logger:    logger.Named("ramps"),
		now:       time.Now,
	}
}

// CreateAccount maps the caller's ledger account to iban.
func (s *Service) CreateAccount(ctx context.Context, origin model.Origin, iban model.IBAN) error {
	if err := signed(origin); err != nil {
		return err
	}
	if err := model.ValidateIBAN(iban, s.cfg.MaxIBANLength); err != nil {
		return err
	}
	if err := s.directory.Create(ctx, origin.Account, iban); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	ev := model.NewEvent(model.EventAccountCreated, s.now())
	ev.Account = origin.Account
	ev.IBAN = iban
	s.publish(ctx, ev)
	return nil
}

// UnmapAccount removes the mapping of iban, which must belong to the caller.
func (s *Service) UnmapAccount(ctx context.Context, origin model.Origin, iban model.IBAN) error {
	if err := signed(origin); err != nil {
		return err
	}
	owner, found, err := s.directory.LookupAccount(ctx, iban)
	if err != nil {
		return fmt.Errorf("lookup iban: %w", err)
	}
	if !found || owner != origin.Account {
		return ErrAccountNotMapped
	}
	if err := s.directory.Remove(ctx, origin.Account); err != nil {
		if errors.Is(err, directory.ErrNotMapped) {
			return ErrAccountNotMapped
		}
		return fmt.Errorf("remove account: %w", err)
	}

	ev := model.NewEvent(model.EventAccountDestroyed, s.now())
	ev.Account = origin.Account
	ev.IBAN = iban
	s.publish(ctx, ev)
	return nil
}

// Transfer moves amount to another ledger account or raises a burn request paying out to an IBAN.
// The returned request is nil for ledger transfers.
func (s *Service) Transfer(ctx context.Context, origin model.Origin, amount model.Amount, dest model.Destination) (*model.BurnRequest, error) {
	if err := signed(origin); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}

	switch dest.Kind {
	case model.DestAccount:
		return nil, s.transferToAccount(ctx, origin.Account, dest.Account, amount)
	case model.DestIBAN:
		if err := model.ValidateIBAN(dest.IBAN, s.cfg.MaxIBANLength); err != nil {
			return nil, err
		}
		return s.raiseBurn(ctx, origin.Account, dest.IBAN, amount)
	case model.DestWithdraw:
		return s.raiseBurn(ctx, origin.Account, "", amount)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestination, dest.Kind)
	}
}

func (s *Service) transferToAccount(ctx context.Context, from, to model.AccountID, amount model.Amount) error {
	if to == "" {
		return fmt.Errorf("%w: empty account", ErrUnknownDestination)
	}
	free, err := s.currency.FreeBalance(ctx, from)
	if err != nil {
		return fmt.Errorf("free balance: %w", err)
	}
	if free < amount {
		return ErrInsufficientBalance
	}
	if err := s.currency.Transfer(ctx, from, to, amount); err != nil {
		if errors.Is(err, currency.ErrInsufficientBalance) {
			return ErrInsufficientBalance
		}
		return fmt.Errorf("transfer: %w", err)
	}

	ev := model.NewEvent(model.EventTransferred, s.now())
	ev.Account = from
	ev.Counterparty = to
	ev.Amount = amount
	s.publish(ctx, ev)
	return nil
}

// raiseBurn escrows amount and records a burn request. An empty dest pays out to the burner's own IBAN.
func (s *Service) raiseBurn(ctx context.Context, burner model.AccountID, dest model.IBAN, amount model.Amount) (*model.BurnRequest, error) {
	burnerIBAN, found, err := s.directory.LookupIBAN(ctx, burner)
	if err != nil {
		return nil, fmt.Errorf("lookup burner iban: %w", err)
	}
	if !found {
		return nil, ErrAccountNotMapped
	}
	if dest == "" {
		dest = burnerIBAN
	}

	req, err := s.burns.Create(ctx, burner, burnerIBAN, dest, amount)
	switch {
	case errors.Is(err, burn.ErrInsufficientBalance):
		return nil, ErrInsufficientBalance
	case errors.Is(err, burn.ErrZeroAmount):
		return nil, ErrZeroAmount
	case err != nil:
		return nil, fmt.Errorf("create burn request: %w", err)
	}

	ev := model.NewEvent(model.EventBurnRequestRaised, s.now())
	ev.Account = burner
	ev.IBAN = dest
	ev.Amount = amount
	ev.RequestID = req.ID
	s.publish(ctx, ev)
	return &req, nil
}

// ProcessStatements reconciles a fetched batch. Only authorized workers may call it.
func (s *Service) ProcessStatements(ctx context.Context, origin model.Origin, statements []model.Statement) ([]reconcile.StatementResult, error) {
	if _, ok := s.workers[origin.Account]; origin.Root || !ok {
		return nil, ErrBadOrigin
	}
	if s.cfg.MaxStatements > 0 && len(statements) > s.cfg.MaxStatements {
		return nil, fmt.Errorf("%w: %d statements", ErrBatchTooLarge, len(statements))
	}
	for _, st := range statements {
		if s.cfg.MaxTransactions > 0 && len(st.Transactions) > s.cfg.MaxTransactions {
			return nil, fmt.Errorf("%w: %d transactions for %s", ErrBatchTooLarge, len(st.Transactions), st.Account.IBAN)
		}
	}

	results := s.engine.ProcessStatements(ctx, statements)
	for _, r := range results {
		s.logger.Debug("statement reconciled",
			zap.String("iban", string(r.IBAN)),
			zap.Int("processed", r.Processed),
			zap.Ints("failed", r.Failed),
			zap.Error(r.Err))
	}
	return results, nil
}

// SetAPIURL replaces the bank API base url. Root only.
func (s *Service) SetAPIURL(ctx context.Context, origin model.Origin, raw string) error {
	if !origin.Root {
		return ErrBadOrigin
	}
	if err := validateURL(raw); err != nil {
		return err
	}
	if err := s.store.Txn(ctx, nil, []kvstore.Op{kvstore.Put(apiURLKey, []byte(raw))}); err != nil {
		return fmt.Errorf("store api url: %w", err)
	}

	ev := model.NewEvent(model.EventAPIURLChanged, s.now())
	ev.Detail = raw
	s.publish(ctx, ev)
	return nil
}

// APIURL returns the persisted bank API url, falling back to the configured default.
func (s *Service) APIURL(ctx context.Context) (string, error) {
	raw, found, err := s.store.Get(ctx, apiURLKey)
	if err != nil {
		return "", fmt.Errorf("read api url: %w", err)
	}
	if !found {
		return s.cfg.DefaultAPIURL, nil
	}
	return string(raw), nil
}

func (s *Service) BurnRequest(ctx context.Context, id uint64) (model.BurnRequest, error) {
	return s.burns.Get(ctx, id)
}

func (s *Service) LookupAccount(ctx context.Context, iban model.IBAN) (model.AccountID, bool, error) {
	return s.directory.LookupAccount(ctx, iban)
}

func (s *Service) LookupIBAN(ctx context.Context, account model.AccountID) (model.IBAN, bool, error) {
	return s.directory.LookupIBAN(ctx, account)
}

// ApplyGenesis seeds directory mappings and the initial api url. Re-applying the same genesis is a no-op.
func (s *Service) ApplyGenesis(ctx context.Context, g config.Genesis) error {
	for _, acc := range g.Accounts {
		account, iban := model.AccountID(acc.Account), model.IBAN(acc.IBAN)
		err := s.directory.Create(ctx, account, iban)
		if err == nil {
			s.logger.Info("genesis account mapped", zap.String("account", acc.Account), zap.String("iban", acc.IBAN))
			continue
		}
		if !errors.Is(err, directory.ErrAlreadyMapped) {
			return fmt.Errorf("genesis account %s: %w", acc.Account, err)
		}
		existing, found, lookupErr := s.directory.LookupAccount(ctx, iban)
		if lookupErr != nil {
			return fmt.Errorf("genesis account %s: %w", acc.Account, lookupErr)
		}
		if !found || existing != account {
			return fmt.Errorf("genesis account %s: %w", acc.Account, err)
		}
	}

	if g.APIURL == "" {
		return nil
	}
	if err := validateURL(g.APIURL); err != nil {
		return fmt.Errorf("genesis api url: %w", err)
	}
	err := s.store.Txn(ctx,
		[]kvstore.Cond{kvstore.Absent(apiURLKey)},
		[]kvstore.Op{kvstore.Put(apiURLKey, []byte(g.APIURL))},
	)
	if err != nil && !errors.Is(err, kvstore.ErrConflict) {
		return fmt.Errorf("store genesis api url: %w", err)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, ev model.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("event not published", zap.String("kind", string(ev.Kind)), zap.Error(err))
	}
}

func signed(origin model.Origin) error {
	if origin.Root || origin.Account == "" {
		return ErrBadOrigin
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
