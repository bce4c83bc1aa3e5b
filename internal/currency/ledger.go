// Package currency keeps ledger balances in the shared key-value store.
package currency

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/pkg/safe"
)

const (
	balancePrefix  = "currency/balance/"
	issuanceKey    = "currency/total_issuance"
	defaultRetries = 5
)

var (
	// ErrInsufficientBalance is returned when a debit exceeds the free balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccount is returned for a transfer to the payer itself.
	ErrSameAccount = errors.New("transfer to the same account")
)

// Ledger implements mint, burn and transfer with conditional store writes.
type Ledger struct {
	store   Store
	retries int
}

// NewLedger returns a Ledger over store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, retries: defaultRetries}
}

// FreeBalance returns the spendable balance of account.
func (l *Ledger) FreeBalance(ctx context.Context, account model.AccountID) (model.Amount, error) {
	v, found, err := l.store.Get(ctx, balanceKey(account))
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	n, err := kvstore.Uint64(v, found)
	if err != nil {
		return 0, err
	}
	return model.Amount(n), nil
}

// TotalIssuance returns the sum of all minted minus burned value.
func (l *Ledger) TotalIssuance(ctx context.Context) (model.Amount, error) {
	v, found, err := l.store.Get(ctx, issuanceKey)
	if err != nil {
		return 0, fmt.Errorf("get issuance: %w", err)
	}
	n, err := kvstore.Uint64(v, found)
	if err != nil {
		return 0, err
	}
	return model.Amount(n), nil
}

// Mint credits amount to account and raises total issuance.
func (l *Ledger) Mint(ctx context.Context, account model.AccountID, amount model.Amount) error {
	return kvstore.Retry(ctx, l.retries, func(ctx context.Context) error {
		bal, err := l.read(ctx, balanceKey(account))
		if err != nil {
			return err
		}
		total, err := l.read(ctx, issuanceKey)
		if err != nil {
			return err
		}
		newBal, err := safe.Add(bal.amount, amount)
		if err != nil {
			return fmt.Errorf("mint: %w", err)
		}
		newTotal, err := safe.Add(total.amount, amount)
		if err != nil {
			return fmt.Errorf("mint: %w", err)
		}
		return l.store.Txn(ctx,
			[]kvstore.Cond{bal.cond(), total.cond()},
			[]kvstore.Op{bal.put(newBal), total.put(newTotal)},
		)
	})
}

// Burn debits amount from account and lowers total issuance.
func (l *Ledger) Burn(ctx context.Context, account model.AccountID, amount model.Amount) error {
	return kvstore.Retry(ctx, l.retries, func(ctx context.Context) error {
		c, err := l.PrepareBurn(ctx, account, amount)
		if err != nil {
			return err
		}
		return l.store.Txn(ctx, c.Conds, c.Ops)
	})
}

// Transfer moves amount between two accounts.
func (l *Ledger) Transfer(ctx context.Context, from, to model.AccountID, amount model.Amount) error {
	return kvstore.Retry(ctx, l.retries, func(ctx context.Context) error {
		c, err := l.PrepareTransfer(ctx, from, to, amount)
		if err != nil {
			return err
		}
		return l.store.Txn(ctx, c.Conds, c.Ops)
	})
}

// Change is a balance update read at one point in time. It only takes effect
// when its ops are committed together with its conds.
type Change struct {
	Conds []kvstore.Cond
	Ops   []kvstore.Op
}

// PrepareBurn reads the balances a burn touches without writing them.
func (l *Ledger) PrepareBurn(ctx context.Context, account model.AccountID, amount model.Amount) (Change, error) {
	bal, err := l.read(ctx, balanceKey(account))
	if err != nil {
		return Change{}, err
	}
	total, err := l.read(ctx, issuanceKey)
	if err != nil {
		return Change{}, err
	}
	newBal, err := safe.Sub(bal.amount, amount)
	if err != nil {
		return Change{}, fmt.Errorf("burn %s from %s: %w", amount, account, ErrInsufficientBalance)
	}
	newTotal, err := safe.Sub(total.amount, amount)
	if err != nil {
		return Change{}, fmt.Errorf("burn: issuance: %w", err)
	}
	return Change{
		Conds: []kvstore.Cond{bal.cond(), total.cond()},
		Ops:   []kvstore.Op{bal.put(newBal), total.put(newTotal)},
	}, nil
}

// PrepareTransfer reads the balances a transfer touches without writing them.
func (l *Ledger) PrepareTransfer(ctx context.Context, from, to model.AccountID, amount model.Amount) (Change, error) {
	if from == to {
		return Change{}, ErrSameAccount
	}
	src, err := l.read(ctx, balanceKey(from))
	if err != nil {
		return Change{}, err
	}
	dst, err := l.read(ctx, balanceKey(to))
	if err != nil {
		return Change{}, err
	}
	newSrc, err := safe.Sub(src.amount, amount)
	if err != nil {
		return Change{}, fmt.Errorf("transfer %s from %s: %w", amount, from, ErrInsufficientBalance)
	}
	newDst, err := safe.Add(dst.amount, amount)
	if err != nil {
		return Change{}, fmt.Errorf("transfer: %w", err)
	}
	return Change{
		Conds: []kvstore.Cond{src.cond(), dst.cond()},
		Ops:   []kvstore.Op{src.put(newSrc), dst.put(newDst)},
	}, nil
}

type entry struct {
	key    string
	raw    []byte
	found  bool
	amount model.Amount
}

func (e entry) cond() kvstore.Cond {
	return kvstore.Expect(e.key, e.raw, e.found)
}

func (e entry) put(a model.Amount) kvstore.Op {
	return kvstore.Put(e.key, kvstore.EncodeUint64(uint64(a)))
}

func (l *Ledger) read(ctx context.Context, key string) (entry, error) {
	v, found, err := l.store.Get(ctx, key)
	if err != nil {
		return entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	n, err := kvstore.Uint64(v, found)
	if err != nil {
		return entry{}, err
	}
	return entry{key: key, raw: v, found: found, amount: model.Amount(n)}, nil
}

func balanceKey(account model.AccountID) string {
	return balancePrefix + string(account)
}
