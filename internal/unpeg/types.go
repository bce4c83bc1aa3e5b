package unpeg

import (
	"context"

	"github.com/goodnatureofminers/fiatramps-backend/internal/bank"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BurnLedger interface {
		Pending(ctx context.Context) ([]model.BurnRequest, error)
		MarkSent(ctx context.Context, id uint64) (model.BurnRequest, error)
		MarkFailed(ctx context.Context, id uint64) (model.BurnRequest, error)
	}
	Bank interface {
		Unpeg(ctx context.Context, instruction bank.UnpegInstruction) error
	}
)
