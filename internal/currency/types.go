package currency

import (
	"context"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Txn(ctx context.Context, conds []kvstore.Cond, ops []kvstore.Op) error
	}
)
