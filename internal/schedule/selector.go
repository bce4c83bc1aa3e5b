package schedule

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const lastActivityKey = "schedule/last_activity"

// Selector rotates the worker through FetchStatements, ProcessBurnRequests and idle.
type Selector struct {
	store  Store
	logger *zap.Logger
}

// NewSelector returns a Selector over store.
func NewSelector(store Store, logger *zap.Logger) *Selector {
	return &Selector{store: store, logger: logger.Named("selector")}
}

// Next advances the persisted cursor and returns the duty to run.
// A missing cursor starts the cycle; conflicts and storage errors idle.
func (s *Selector) Next(ctx context.Context) model.Activity {
	raw, found, err := s.store.Get(ctx, lastActivityKey)
	if err != nil {
		s.logger.Warn("read last activity failed", zap.Error(err))
		return model.ActivityNone
	}

	next := model.ActivityFetchStatements
	if found {
		next = model.ParseActivity(string(raw)).Next()
	}

	err = s.store.Txn(ctx,
		[]kvstore.Cond{kvstore.Expect(lastActivityKey, raw, found)},
		[]kvstore.Op{kvstore.Put(lastActivityKey, []byte(next))},
	)
	switch {
	case err == nil:
		return next
	case errors.Is(err, kvstore.ErrConflict):
		s.logger.Debug("activity advanced by another replica")
	default:
		s.logger.Warn("advance activity failed", zap.Error(err))
	}
	return model.ActivityNone
}
