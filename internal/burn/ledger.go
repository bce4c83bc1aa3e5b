// Package burn tracks withdrawal requests from escrow until the bank confirms them.
package burn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/currency"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const (
	nextIDKey     = "burn/next_id"
	requestPrefix = "burn/request/"
	pendingPrefix = "burn/pending/"
	retries       = 5
)

var (
	ErrZeroAmount          = errors.New("burn amount is zero")
	ErrInsufficientBalance = errors.New("free balance does not cover burn amount")
	ErrNotFound            = errors.New("burn request not found")
	ErrInvalidTransition   = errors.New("invalid burn request transition")
)

var transitions = map[model.BurnRequestStatus][]model.BurnRequestStatus{
	model.BurnPending: {model.BurnSent, model.BurnFailed, model.BurnConfirmed},
	model.BurnFailed:  {model.BurnSent, model.BurnFailed, model.BurnConfirmed},
	model.BurnSent:    {model.BurnConfirmed},
}

// Ledger persists burn requests. Escrowed funds sit on the escrow account.
type Ledger struct {
	store    Store
	currency Currency
	escrow   model.AccountID
	logger   *zap.Logger
	now      func() time.Time
}

// NewLedger returns a Ledger holding funds on escrow.
func NewLedger(store Store, currency Currency, escrow model.AccountID, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:    store,
		currency: currency,
		escrow:   escrow,
		logger:   logger.Named("burn"),
		now:      time.Now,
	}
}

// Escrow returns the account holding funds of open requests.
func (l *Ledger) Escrow() model.AccountID {
	return l.escrow
}

// Create escrows amount from burner and records a Pending request with the next id.
func (l *Ledger) Create(ctx context.Context, burner model.AccountID, burnerIBAN, destIBAN model.IBAN, amount model.Amount) (model.BurnRequest, error) {
	if amount.IsZero() {
		return model.BurnRequest{}, ErrZeroAmount
	}
	free, err := l.currency.FreeBalance(ctx, burner)
	if err != nil {
		return model.BurnRequest{}, fmt.Errorf("read free balance: %w", err)
	}
	if free < amount {
		return model.BurnRequest{}, fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, free, amount)
	}
	if err = l.currency.Transfer(ctx, burner, l.escrow, amount); err != nil {
		return model.BurnRequest{}, fmt.Errorf("escrow funds: %w", err)
	}

	var req model.BurnRequest
	err = kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		raw, found, err := l.store.Get(ctx, nextIDKey)
		if err != nil {
			return fmt.Errorf("read next id: %w", err)
		}
		id, err := kvstore.Uint64(raw, found)
		if err != nil {
			return err
		}
		now := l.now().UTC()
		req = model.BurnRequest{
			ID:         id,
			Burner:     burner,
			BurnerIBAN: burnerIBAN,
			DestIBAN:   destIBAN,
			Amount:     amount,
			Status:     model.BurnPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		body, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode burn request: %w", err)
		}
		return l.store.Txn(ctx,
			[]kvstore.Cond{kvstore.Expect(nextIDKey, raw, found), kvstore.Absent(requestKey(id))},
			[]kvstore.Op{
				kvstore.Put(nextIDKey, kvstore.EncodeUint64(id+1)),
				kvstore.Put(requestKey(id), body),
				kvstore.Put(pendingKey(id), nil),
			},
		)
	})
	if err != nil {
		if refundErr := l.currency.Transfer(ctx, l.escrow, burner, amount); refundErr != nil {
			l.logger.Error("refund after failed burn request failed",
				zap.String("burner", string(burner)),
				zap.Stringer("amount", amount),
				zap.Error(refundErr),
			)
		}
		return model.BurnRequest{}, fmt.Errorf("record burn request: %w", err)
	}
	return req, nil
}

// Get returns request id, whatever its status.
func (l *Ledger) Get(ctx context.Context, id uint64) (model.BurnRequest, error) {
	req, _, err := l.get(ctx, id)
	return req, err
}

// Pending returns the requests awaiting dispatch in id order.
func (l *Ledger) Pending(ctx context.Context) ([]model.BurnRequest, error) {
	items, err := l.store.List(ctx, pendingPrefix)
	if err != nil {
		return nil, fmt.Errorf("list pending burn requests: %w", err)
	}
	out := make([]model.BurnRequest, 0, len(items))
	for _, kv := range items {
		id, err := strconv.ParseUint(strings.TrimPrefix(kv.Key, pendingPrefix), 10, 64)
		if err != nil {
			l.logger.Error("corrupt pending index key", zap.String("key", kv.Key))
			continue
		}
		req, err := l.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if req.Dispatchable() {
			out = append(out, req)
		}
	}
	return out, nil
}

// MarkSent records a dispatch accepted by the bank API.
func (l *Ledger) MarkSent(ctx context.Context, id uint64) (model.BurnRequest, error) {
	return l.transition(ctx, id, model.BurnSent)
}

// MarkFailed records a failed dispatch; the request stays eligible for retry.
func (l *Ledger) MarkFailed(ctx context.Context, id uint64) (model.BurnRequest, error) {
	return l.transition(ctx, id, model.BurnFailed)
}

// Settle confirms a request and releases its escrow to dest in the same store
// transaction. An empty dest burns the escrowed amount instead.
func (l *Ledger) Settle(ctx context.Context, id uint64, dest model.AccountID) (model.BurnRequest, error) {
	var req model.BurnRequest
	err := kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		current, raw, err := l.get(ctx, id)
		if err != nil {
			return err
		}
		if !allowed(current.Status, model.BurnConfirmed) {
			return fmt.Errorf("%w: request %d %s -> %s", ErrInvalidTransition, id, current.Status, model.BurnConfirmed)
		}
		release, err := l.release(ctx, current.Amount, dest)
		if err != nil {
			return fmt.Errorf("release escrow of request %d: %w", id, err)
		}
		current.Status = model.BurnConfirmed
		current.UpdatedAt = l.now().UTC()
		body, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode burn request: %w", err)
		}
		conds := append([]kvstore.Cond{kvstore.Equals(requestKey(id), raw)}, release.Conds...)
		ops := append([]kvstore.Op{kvstore.Put(requestKey(id), body), kvstore.Delete(pendingKey(id))}, release.Ops...)
		if err = l.store.Txn(ctx, conds, ops); err != nil {
			return err
		}
		req = current
		return nil
	})
	return req, err
}

// Evict deletes an open request and burns its escrowed amount in one transaction.
func (l *Ledger) Evict(ctx context.Context, id uint64) (model.BurnRequest, error) {
	var req model.BurnRequest
	err := kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		current, raw, err := l.get(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == model.BurnConfirmed {
			return fmt.Errorf("%w: request %d already confirmed", ErrInvalidTransition, id)
		}
		burn, err := l.currency.PrepareBurn(ctx, l.escrow, current.Amount)
		if err != nil {
			return fmt.Errorf("burn escrow of request %d: %w", id, err)
		}
		conds := append([]kvstore.Cond{kvstore.Equals(requestKey(id), raw)}, burn.Conds...)
		ops := append([]kvstore.Op{kvstore.Delete(requestKey(id)), kvstore.Delete(pendingKey(id))}, burn.Ops...)
		if err = l.store.Txn(ctx, conds, ops); err != nil {
			return err
		}
		req = current
		return nil
	})
	return req, err
}

func (l *Ledger) release(ctx context.Context, amount model.Amount, dest model.AccountID) (currency.Change, error) {
	if dest == "" {
		return l.currency.PrepareBurn(ctx, l.escrow, amount)
	}
	return l.currency.PrepareTransfer(ctx, l.escrow, dest, amount)
}

func (l *Ledger) transition(ctx context.Context, id uint64, to model.BurnRequestStatus) (model.BurnRequest, error) {
	var req model.BurnRequest
	err := kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		current, raw, err := l.get(ctx, id)
		if err != nil {
			return err
		}
		if !allowed(current.Status, to) {
			return fmt.Errorf("%w: request %d %s -> %s", ErrInvalidTransition, id, current.Status, to)
		}
		current.Status = to
		current.UpdatedAt = l.now().UTC()
		body, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode burn request: %w", err)
		}
		ops := []kvstore.Op{kvstore.Put(requestKey(id), body)}
		if err = l.store.Txn(ctx, []kvstore.Cond{kvstore.Equals(requestKey(id), raw)}, ops); err != nil {
			return err
		}
		req = current
		return nil
	})
	return req, err
}

func (l *Ledger) get(ctx context.Context, id uint64) (model.BurnRequest, []byte, error) {
	raw, found, err := l.store.Get(ctx, requestKey(id))
	if err != nil {
		return model.BurnRequest{}, nil, fmt.Errorf("read burn request %d: %w", id, err)
	}
	if !found {
		return model.BurnRequest{}, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	var req model.BurnRequest
	if err = json.Unmarshal(raw, &req); err != nil {
		return model.BurnRequest{}, nil, fmt.Errorf("decode burn request %d: %w", id, err)
	}
	return req, raw, nil
}

func allowed(from, to model.BurnRequestStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func requestKey(id uint64) string {
	return fmt.Sprintf("%s%020d", requestPrefix, id)
}

func pendingKey(id uint64) string {
	return fmt.Sprintf("%s%020d", pendingPrefix, id)
}
