// Package schedule decides whether a worker replica may act and which duty it runs.
package schedule

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
)

const lastSyncKey = "schedule/last_sync_at"

// Gate grants at most one replica permission per interval.
type Gate struct {
	store  Store
	logger *zap.Logger
}

// NewGate returns a Gate over store.
func NewGate(store Store, logger *zap.Logger) *Gate {
	return &Gate{store: store, logger: logger.Named("gate")}
}

// ShouldSync claims the current interval. It returns false when the interval has
// not elapsed, when another replica claimed it first, and on any storage error.
func (g *Gate) ShouldSync(ctx context.Context, now time.Time, minInterval time.Duration) bool {
	raw, found, err := g.store.Get(ctx, lastSyncKey)
	if err != nil {
		g.logger.Warn("read last sync failed", zap.Error(err))
		return false
	}
	if found {
		last, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			g.logger.Error("stored last sync is corrupt", zap.ByteString("value", raw), zap.Error(err))
			return false
		}
		if now.Before(time.Unix(0, last).Add(minInterval)) {
			return false
		}
	}

	err = g.store.Txn(ctx,
		[]kvstore.Cond{kvstore.Expect(lastSyncKey, raw, found)},
		[]kvstore.Op{kvstore.Put(lastSyncKey, []byte(strconv.FormatInt(now.UnixNano(), 10)))},
	)
	switch {
	case err == nil:
		return true
	case errors.Is(err, kvstore.ErrConflict):
		g.logger.Debug("sync claimed by another replica")
	default:
		g.logger.Warn("claim sync failed", zap.Error(err))
	}
	return false
}
