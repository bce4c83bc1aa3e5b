// Package events delivers ramp events to logs, NATS and other sinks.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

// LogPublisher writes every event to the log.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher returns a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, ev model.Event) error {
	fields := []zap.Field{
		zap.String("id", ev.ID.String()),
		zap.Time("occurred_at", ev.OccurredAt),
	}
	if ev.Account != "" {
		fields = append(fields, zap.String("account", string(ev.Account)))
	}
	if ev.Counterparty != "" {
		fields = append(fields, zap.String("counterparty", string(ev.Counterparty)))
	}
	if ev.IBAN != "" {
		fields = append(fields, zap.String("iban", string(ev.IBAN)))
	}
	if !ev.Amount.IsZero() {
		fields = append(fields, zap.Stringer("amount", ev.Amount))
	}
	switch ev.Kind {
	case model.EventBurnRequestRaised, model.EventBurnRequestConfirmed, model.EventBurnRequestEvicted:
		fields = append(fields, zap.Uint64("request_id", ev.RequestID))
	}
	if len(ev.FailedIndices) > 0 {
		fields = append(fields, zap.Ints("failed", ev.FailedIndices))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	p.logger.Info(string(ev.Kind), fields...)
	return nil
}

// NATSPublisher publishes JSON events on <prefix>.<kind>.
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// NewNATSPublisher returns a publisher over an established connection.
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// DialNATS connects to url for event publishing.
func DialNATS(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name(name), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return conn, nil
}

func (p *NATSPublisher) Publish(_ context.Context, ev model.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err = p.conn.Publish(p.Subject(ev.Kind), body); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Kind, err)
	}
	return nil
}

// Subject returns the subject events of kind are published on.
func (p *NATSPublisher) Subject(kind model.EventKind) string {
	return p.prefix + "." + string(kind)
}

// Multi fans an event out to every publisher.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev model.Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
