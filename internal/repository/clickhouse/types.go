package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
	EventInserter interface {
		InsertEvents(ctx context.Context, events []model.Event) error
	}
)
