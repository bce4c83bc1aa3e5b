package burn

import (
	"context"

	"github.com/goodnatureofminers/fiatramps-backend/internal/currency"
	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		List(ctx context.Context, prefix string) ([]kvstore.KV, error)
		Txn(ctx context.Context, conds []kvstore.Cond, ops []kvstore.Op) error
	}
	Currency interface {
		FreeBalance(ctx context.Context, account model.AccountID) (model.Amount, error)
		Transfer(ctx context.Context, from model.AccountID, to model.AccountID, amount model.Amount) error
		PrepareTransfer(ctx context.Context, from model.AccountID, to model.AccountID, amount model.Amount) (currency.Change, error)
		PrepareBurn(ctx context.Context, account model.AccountID, amount model.Amount) (currency.Change, error)
	}
)
