package reconcile

import (
	"context"
	"time"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Directory interface {
		EnsureMapped(ctx context.Context, iban model.IBAN, account *model.AccountID) (model.AccountID, error)
		Create(ctx context.Context, account model.AccountID, iban model.IBAN) error
		LookupAccount(ctx context.Context, iban model.IBAN) (model.AccountID, bool, error)
	}
	Currency interface {
		Mint(ctx context.Context, account model.AccountID, amount model.Amount) error
		Burn(ctx context.Context, account model.AccountID, amount model.Amount) error
		Transfer(ctx context.Context, from model.AccountID, to model.AccountID, amount model.Amount) error
	}
	BurnLedger interface {
		Get(ctx context.Context, id uint64) (model.BurnRequest, error)
		Settle(ctx context.Context, id uint64, dest model.AccountID) (model.BurnRequest, error)
		Evict(ctx context.Context, id uint64) (model.BurnRequest, error)
		Escrow() model.AccountID
	}
	Publisher interface {
		Publish(ctx context.Context, event model.Event) error
	}
	Metrics interface {
		ObserveTransaction(txType model.TxType, err error, started time.Time)
		ObserveStatement(failed int, err error, started time.Time)
	}
)
