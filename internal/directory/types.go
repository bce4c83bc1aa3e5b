package directory

import (
	"context"

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
	IdentityProvider interface {
		New() (model.AccountID, error)
	}
)
