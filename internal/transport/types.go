package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Service interface {
		CreateAccount(ctx context.Context, origin model.Origin, iban model.IBAN) error
		UnmapAccount(ctx context.Context, origin model.Origin, iban model.IBAN) error
		Transfer(ctx context.Context, origin model.Origin, amount model.Amount, dest model.Destination) (*model.BurnRequest, error)
		ProcessStatements(ctx context.Context, origin model.Origin, statements []model.Statement) ([]reconcile.StatementResult, error)
		SetAPIURL(ctx context.Context, origin model.Origin, url string) error
		APIURL(ctx context.Context) (string, error)
		BurnRequest(ctx context.Context, id uint64) (model.BurnRequest, error)
		LookupAccount(ctx context.Context, iban model.IBAN) (model.AccountID, bool, error)
	}
	Parser interface {
		Parse(data []byte) ([]model.Statement, error)
	}
	Metrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}
)
