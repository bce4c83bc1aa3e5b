package clickhouse

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/pkg/batcher"
)

// EventWriter publishes events into the event log in batches.
type EventWriter struct {
	batcher *batcher.Batcher[model.Event]
}

func NewEventWriter(repo EventInserter, opts batcher.Options, logger *zap.Logger) *EventWriter {
	return &EventWriter{
		batcher: batcher.New[model.Event](logger.Named("event_writer"), repo.InsertEvents, opts),
	}
}

func (w *EventWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

// Stop flushes buffered events.
func (w *EventWriter) Stop() {
	w.batcher.Stop()
}

func (w *EventWriter) Publish(ctx context.Context, event model.Event) error {
	return w.batcher.Add(ctx, event)
}
