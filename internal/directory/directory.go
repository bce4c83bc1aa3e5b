// Package directory maps bank IBANs to ledger accounts in both directions.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const (
	ibanPrefix    = "directory/iban/"
	accountPrefix = "directory/account/"
	retries       = 5
)

var (
	// ErrAlreadyMapped is returned when either side of a new entry is taken.
	ErrAlreadyMapped = errors.New("account or iban already mapped")
	// ErrNotMapped is returned when removing an account without an entry.
	ErrNotMapped = errors.New("account not mapped")
)

// Entry is one directory mapping.
type Entry struct {
	Account model.AccountID
	IBAN    model.IBAN
}

// Directory is the bidirectional IBAN to account map.
type Directory struct {
	store      Store
	identities IdentityProvider
	logger     *zap.Logger
}

// New returns a Directory over store that synthesizes unknown parties through identities.
func New(store Store, identities IdentityProvider, logger *zap.Logger) *Directory {
	return &Directory{
		store:      store,
		identities: identities,
		logger:     logger.Named("directory"),
	}
}

// Create maps account to iban. The first writer wins.
func (d *Directory) Create(ctx context.Context, account model.AccountID, iban model.IBAN) error {
	err := d.store.Txn(ctx,
		[]kvstore.Cond{kvstore.Absent(ibanKey(iban)), kvstore.Absent(accountKey(account))},
		[]kvstore.Op{
			kvstore.Put(ibanKey(iban), []byte(account)),
			kvstore.Put(accountKey(account), []byte(iban)),
		},
	)
	if errors.Is(err, kvstore.ErrConflict) {
		return fmt.Errorf("%w: %s <-> %s", ErrAlreadyMapped, account, iban)
	}
	if err != nil {
		return fmt.Errorf("create mapping: %w", err)
	}
	return nil
}

// Remove deletes the entry of account.
func (d *Directory) Remove(ctx context.Context, account model.AccountID) error {
	return kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		iban, found, err := d.LookupIBAN(ctx, account)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrNotMapped, account)
		}
		return d.store.Txn(ctx,
			[]kvstore.Cond{
				kvstore.Equals(accountKey(account), []byte(iban)),
				kvstore.Equals(ibanKey(iban), []byte(account)),
			},
			[]kvstore.Op{kvstore.Delete(accountKey(account)), kvstore.Delete(ibanKey(iban))},
		)
	})
}

// LookupAccount returns the account mapped to iban.
func (d *Directory) LookupAccount(ctx context.Context, iban model.IBAN) (model.AccountID, bool, error) {
	v, found, err := d.store.Get(ctx, ibanKey(iban))
	if err != nil {
		return "", false, fmt.Errorf("lookup account of %s: %w", iban, err)
	}
	if !found {
		return "", false, nil
	}
	return model.AccountID(v), true, nil
}

// LookupIBAN returns the iban mapped to account.
func (d *Directory) LookupIBAN(ctx context.Context, account model.AccountID) (model.IBAN, bool, error) {
	v, found, err := d.store.Get(ctx, accountKey(account))
	if err != nil {
		return "", false, fmt.Errorf("lookup iban of %s: %w", account, err)
	}
	if !found {
		return "", false, nil
	}
	return model.IBAN(v), true, nil
}

// EnsureMapped returns the account of iban, mapping it first when unknown.
// An unknown iban is mapped to account when given, otherwise to a fresh identity.
func (d *Directory) EnsureMapped(ctx context.Context, iban model.IBAN, account *model.AccountID) (model.AccountID, error) {
	existing, found, err := d.LookupAccount(ctx, iban)
	if err != nil {
		return "", err
	}
	if found {
		return existing, nil
	}

	candidate, err := d.candidate(account)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < retries; attempt++ {
		err = d.Create(ctx, candidate, iban)
		if err == nil {
			d.logger.Debug("iban mapped", zap.String("iban", string(iban)), zap.String("account", string(candidate)))
			return candidate, nil
		}
		if !errors.Is(err, ErrAlreadyMapped) {
			return "", err
		}

		// Lost a race on the iban, or the candidate already owns another iban.
		existing, found, err = d.LookupAccount(ctx, iban)
		if err != nil {
			return "", err
		}
		if found {
			return existing, nil
		}
		d.logger.Debug("candidate account already mapped elsewhere, synthesizing",
			zap.String("iban", string(iban)), zap.String("account", string(candidate)))
		if candidate, err = d.candidate(nil); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("ensure mapping of %s: %w", iban, kvstore.ErrConflict)
}

// Entries lists every mapping ordered by iban.
func (d *Directory) Entries(ctx context.Context) ([]Entry, error) {
	items, err := d.store.List(ctx, ibanPrefix)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	out := make([]Entry, 0, len(items))
	for _, kv := range items {
		out = append(out, Entry{
			IBAN:    model.IBAN(strings.TrimPrefix(kv.Key, ibanPrefix)),
			Account: model.AccountID(kv.Value),
		})
	}
	return out, nil
}

func (d *Directory) candidate(account *model.AccountID) (model.AccountID, error) {
	if account != nil && *account != "" {
		return *account, nil
	}
	id, err := d.identities.New()
	if err != nil {
		return "", fmt.Errorf("synthesize identity: %w", err)
	}
	return id, nil
}

func ibanKey(iban model.IBAN) string {
	return ibanPrefix + string(iban)
}

func accountKey(account model.AccountID) string {
	return accountPrefix + string(account)
}
