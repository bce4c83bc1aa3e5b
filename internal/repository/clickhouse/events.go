package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

// InsertEvents appends events to ramp_events.
func (r *Repository) InsertEvents(ctx context.Context, events []model.Event) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO ramp_events (
	id,
	kind,
	account,
	counterparty,
	iban,
	amount,
	request_id,
	failed_indices,
	detail,
	occurred_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, ev := range events {
		if err = batch.Append(
			ev.ID,
			string(ev.Kind),
			string(ev.Account),
			string(ev.Counterparty),
			string(ev.IBAN),
			uint64(ev.Amount),
			ev.RequestID,
			indices(ev.FailedIndices),
			ev.Detail,
			ev.OccurredAt,
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

// EventsByKind returns the latest events of a kind, newest first.
func (r *Repository) EventsByKind(ctx context.Context, kind model.EventKind, limit int) (events []model.Event, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("events_by_kind", err, start)
	}()

	if limit <= 0 {
		return nil, nil
	}

	const query = `
SELECT id, kind, account, counterparty, iban, amount, request_id, failed_indices, detail, occurred_at
FROM ramp_events FINAL
WHERE kind = ?
ORDER BY occurred_at DESC, id
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("query events by kind: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			id                             uuid.UUID
			k, account, counterparty, iban string
			amount, requestID              uint64
			failed                         []uint32
			detail                         string
			occurredAt                     time.Time
		)
		if err = rows.Scan(&id, &k, &account, &counterparty, &iban, &amount, &requestID, &failed, &detail, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, model.Event{
			ID:            id,
			Kind:          model.EventKind(k),
			Account:       model.AccountID(account),
			Counterparty:  model.AccountID(counterparty),
			IBAN:          model.IBAN(iban),
			Amount:        model.Amount(amount),
			RequestID:     requestID,
			FailedIndices: fromIndices(failed),
			Detail:        detail,
			OccurredAt:    occurredAt.UTC(),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

func indices(in []int) []uint32 {
	out := make([]uint32, 0, len(in))
	for _, i := range in {
		out = append(out, uint32(i))
	}
	return out
}

func fromIndices(in []uint32) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, 0, len(in))
	for _, i := range in {
		out = append(out, int(i))
	}
	return out
}
