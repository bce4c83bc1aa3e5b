// Package reconcile applies bank statement transactions to the ledger.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/burn"
	"github.com/goodnatureofminers/fiatramps-backend/internal/directory"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

// ErrAlreadyConfirmed is returned when a statement settles a request twice.
var ErrAlreadyConfirmed = errors.New("burn request already confirmed")

// Result summarizes one statement. Failed holds 1-based transaction positions.
type Result struct {
	Processed int
	Failed    []int
}

// StatementResult is the outcome of one statement of a batch.
type StatementResult struct {
	IBAN model.IBAN
	Result
	Err error
}

// Engine owns the mint, burn and transfer policy.
type Engine struct {
	directory     Directory
	currency      Currency
	burns         BurnLedger
	publisher     Publisher
	metrics       Metrics
	logger        *zap.Logger
	maxIBANLength int
	now           func() time.Time
}

// NewEngine wires an Engine.
func NewEngine(
	directory Directory,
	currency Currency,
	burns BurnLedger,
	publisher Publisher,
	metrics Metrics,
	maxIBANLength int,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		directory:     directory,
		currency:      currency,
		burns:         burns,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger.Named("reconcile"),
		maxIBANLength: maxIBANLength,
		now:           time.Now,
	}
}

// ProcessStatements reconciles every statement. A failing statement does not stop the batch.
func (e *Engine) ProcessStatements(ctx context.Context, statements []model.Statement) []StatementResult {
	out := make([]StatementResult, 0, len(statements))
	for _, st := range statements {
		res, err := e.ProcessTransactions(ctx, st.Account.IBAN, st.Transactions)
		if err != nil {
			e.logger.Error("statement not processed", zap.String("iban", string(st.Account.IBAN)), zap.Error(err))
		}
		out = append(out, StatementResult{IBAN: st.Account.IBAN, Result: res, Err: err})
	}
	return out
}

// ProcessTransactions applies txs of the statement owned by ownerIBAN in order.
// Individual failures are collected in the result; the error covers the owner only.
func (e *Engine) ProcessTransactions(ctx context.Context, ownerIBAN model.IBAN, txs []model.Transaction) (res Result, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveStatement(len(res.Failed), err, started)
	}()

	if err = model.ValidateIBAN(ownerIBAN, e.maxIBANLength); err != nil {
		return Result{}, fmt.Errorf("statement owner: %w", err)
	}
	owner, err := e.directory.EnsureMapped(ctx, ownerIBAN, nil)
	if err != nil {
		return Result{}, fmt.Errorf("map statement owner: %w", err)
	}

	logger := e.logger.With(zap.String("owner", string(owner)), zap.String("owner_iban", string(ownerIBAN)))
	for i, tx := range txs {
		txStarted := time.Now()
		txErr := e.apply(ctx, logger, owner, tx)
		e.metrics.ObserveTransaction(tx.Type, txErr, txStarted)
		if txErr != nil {
			logger.Warn("transaction not applied",
				zap.Int("position", i+1),
				zap.String("iban", string(tx.IBAN)),
				zap.String("type", string(tx.Type)),
				zap.Error(txErr),
			)
			res.Failed = append(res.Failed, i+1)
			continue
		}
		res.Processed++
	}

	ev := model.NewEvent(model.EventStatementProcessed, e.now())
	ev.Account = owner
	ev.IBAN = ownerIBAN
	ev.FailedIndices = res.Failed
	e.publish(ctx, ev)
	return res, nil
}

func (e *Engine) apply(ctx context.Context, logger *zap.Logger, owner model.AccountID, tx model.Transaction) error {
	ref, err := DecodeReference(tx.Reference)
	if err != nil {
		logger.Debug("reference carries no identity", zap.String("reference", tx.Reference), zap.Error(err))
	}
	if err = model.ValidateIBAN(tx.IBAN, e.maxIBANLength); err != nil {
		return fmt.Errorf("counterparty: %w", err)
	}

	switch tx.Type {
	case model.TxIncoming:
		return e.applyIncoming(ctx, owner, tx)
	case model.TxOutgoing:
		if ref.Correlation != nil {
			settled, err := e.settle(ctx, *ref.Correlation)
			if settled || err != nil {
				return err
			}
		}
		return e.applyOutgoing(ctx, owner, tx, ref.Identity)
	default:
		return fmt.Errorf("unsupported transaction type %q", tx.Type)
	}
}

func (e *Engine) applyIncoming(ctx context.Context, owner model.AccountID, tx model.Transaction) error {
	source, found, err := e.directory.LookupAccount(ctx, tx.IBAN)
	if err != nil {
		return err
	}
	if !found {
		if err = e.currency.Mint(ctx, owner, tx.Amount); err != nil {
			return fmt.Errorf("mint: %w", err)
		}
		e.publishMovement(ctx, model.EventMinted, owner, "", tx)
		return nil
	}
	if source == owner {
		return nil
	}
	if err = e.currency.Transfer(ctx, source, owner, tx.Amount); err != nil {
		return fmt.Errorf("transfer from %s: %w", source, err)
	}
	e.publishMovement(ctx, model.EventTransferred, source, owner, tx)
	return nil
}

func (e *Engine) applyOutgoing(ctx context.Context, owner model.AccountID, tx model.Transaction, decoded *model.AccountID) error {
	dest, found, err := e.destination(ctx, tx.IBAN, decoded)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	if !found {
		if err = e.currency.Burn(ctx, owner, tx.Amount); err != nil {
			return fmt.Errorf("burn: %w", err)
		}
		e.publishMovement(ctx, model.EventBurned, owner, "", tx)
		return nil
	}
	if dest == owner {
		return nil
	}
	if err = e.currency.Transfer(ctx, owner, dest, tx.Amount); err != nil {
		return fmt.Errorf("transfer to %s: %w", dest, err)
	}
	e.publishMovement(ctx, model.EventTransferred, owner, dest, tx)
	return nil
}

// destination prefers the identity named in the reference over the iban mapping.
// The iban is recorded for that identity only while both sides are unmapped.
func (e *Engine) destination(ctx context.Context, iban model.IBAN, decoded *model.AccountID) (model.AccountID, bool, error) {
	if decoded == nil {
		return e.directory.LookupAccount(ctx, iban)
	}
	err := e.directory.Create(ctx, *decoded, iban)
	if err != nil && !errors.Is(err, directory.ErrAlreadyMapped) {
		return "", false, err
	}
	return *decoded, true, nil
}

// settle closes request id with the escrow it holds. It reports false when no such request exists.
func (e *Engine) settle(ctx context.Context, id uint64) (bool, error) {
	req, err := e.burns.Get(ctx, id)
	if errors.Is(err, burn.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if req.Status == model.BurnConfirmed {
		return false, fmt.Errorf("%w: %d", ErrAlreadyConfirmed, id)
	}

	escrow := e.burns.Escrow()
	var dest model.AccountID
	if req.DestIBAN != req.BurnerIBAN {
		var found bool
		if dest, found, err = e.directory.LookupAccount(ctx, req.DestIBAN); err != nil {
			return false, fmt.Errorf("resolve request destination: %w", err)
		}
		if !found || dest == escrow {
			return true, e.evict(ctx, id)
		}
	}

	if req, err = e.burns.Settle(ctx, id, dest); err != nil {
		return false, fmt.Errorf("settle request %d: %w", id, err)
	}

	ev := model.NewEvent(model.EventBurnRequestConfirmed, e.now())
	ev.Account = req.Burner
	ev.Counterparty = dest
	ev.IBAN = req.DestIBAN
	ev.Amount = req.Amount
	ev.RequestID = req.ID
	e.publish(ctx, ev)

	kind := model.EventBurned
	if dest != "" {
		kind = model.EventTransferred
	}
	e.publishEscrowMovement(ctx, kind, dest, req)
	return true, nil
}

func (e *Engine) evict(ctx context.Context, id uint64) error {
	req, err := e.burns.Evict(ctx, id)
	if err != nil {
		return fmt.Errorf("evict request %d: %w", id, err)
	}
	e.logger.Info("burn request evicted, destination not mapped",
		zap.Uint64("request_id", id), zap.String("dest_iban", string(req.DestIBAN)))

	ev := model.NewEvent(model.EventBurnRequestEvicted, e.now())
	ev.Account = req.Burner
	ev.IBAN = req.DestIBAN
	ev.Amount = req.Amount
	ev.RequestID = req.ID
	e.publish(ctx, ev)
	e.publishEscrowMovement(ctx, model.EventBurned, "", req)
	return nil
}

func (e *Engine) publishEscrowMovement(ctx context.Context, kind model.EventKind, dest model.AccountID, req model.BurnRequest) {
	mv := model.NewEvent(kind, e.now())
	mv.Account = e.burns.Escrow()
	mv.Counterparty = dest
	mv.IBAN = req.DestIBAN
	mv.Amount = req.Amount
	mv.RequestID = req.ID
	e.publish(ctx, mv)
}

func (e *Engine) publishMovement(ctx context.Context, kind model.EventKind, account, counterparty model.AccountID, tx model.Transaction) {
	ev := model.NewEvent(kind, e.now())
	ev.Account = account
	ev.Counterparty = counterparty
	ev.IBAN = tx.IBAN
	ev.Amount = tx.Amount
	e.publish(ctx, ev)
}

func (e *Engine) publish(ctx context.Context, ev model.Event) {
	if err := e.publisher.Publish(ctx, ev); err != nil {
		e.logger.Warn("publish event failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
	}
}
