package ramps

import (
	"context"
	"time"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
	"github.com/goodnatureofminers/fiatramps-backend/internal/unpeg"
	"github.com/goodnatureofminers/fiatramps-backend/internal/verify"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Txn(ctx context.Context, conds []kvstore.Cond, ops []kvstore.Op) error
	}
	Directory interface {
		Create(ctx context.Context, account model.AccountID, iban model.IBAN) error
		Remove(ctx context.Context, account model.AccountID) error
		LookupAccount(ctx context.Context, iban model.IBAN) (model.AccountID, bool, error)
		LookupIBAN(ctx context.Context, account model.AccountID) (model.IBAN, bool, error)
	}
	Currency interface {
		FreeBalance(ctx context.Context, account model.AccountID) (model.Amount, error)
		Transfer(ctx context.Context, from model.AccountID, to model.AccountID, amount model.Amount) error
	}
	BurnLedger interface {
		Create(ctx context.Context, burner model.AccountID, burnerIBAN model.IBAN, destIBAN model.IBAN, amount model.Amount) (model.BurnRequest, error)
		Get(ctx context.Context, id uint64) (model.BurnRequest, error)
	}
	Engine interface {
		ProcessStatements(ctx context.Context, statements []model.Statement) []reconcile.StatementResult
	}
	Publisher interface {
		Publish(ctx context.Context, event model.Event) error
	}

	Gate interface {
		ShouldSync(ctx context.Context, now time.Time, minInterval time.Duration) bool
	}
	Selector interface {
		Next(ctx context.Context) model.Activity
	}
	StatementSource interface {
		FetchStatements(ctx context.Context) ([]byte, error)
	}
	Parser interface {
		Parse(data []byte) ([]model.Statement, error)
	}
	StatementProcessor interface {
		ProcessStatements(ctx context.Context, origin model.Origin, statements []model.Statement) ([]reconcile.StatementResult, error)
	}
	Dispatcher interface {
		ProcessBurnRequests(ctx context.Context) (unpeg.Summary, error)
	}
	VerificationQueue interface {
		Enqueue(ctx context.Context, batch model.QueuedBatch) error
		Drain(ctx context.Context, receipts verify.Receipts, verifier verify.Verifier, programID string, handle verify.Handler) (verify.DrainResult, error)
	}
	WorkerMetrics interface {
		ObserveTick(activity model.Activity, err error, started time.Time)
		ObserveGate(allowed bool)
		ObserveDispatch(sent int, failed int)
	}
)
