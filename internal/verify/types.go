package verify

import (
	"context"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		List(ctx context.Context, prefix string) ([]kvstore.KV, error)
		Txn(ctx context.Context, conds []kvstore.Cond, ops []kvstore.Op) error
	}
	// Verifier checks a receipt against the expected program and reveals its payload.
	Verifier interface {
		Verify(ctx context.Context, receipt []byte, programID string) ([]byte, bool, error)
	}
	Receipts interface {
		FetchReceipt(ctx context.Context, url string) ([]byte, error)
	}
)
