package ramps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/clock"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/verify"
)

// WorkerConfig drives the background worker.
type WorkerConfig struct {
	Account         model.AccountID
	MinSyncInterval time.Duration
	TickInterval    time.Duration
	// MaxBackoff caps the wait after consecutive failed ticks. Zero keeps the tick interval.
	MaxBackoff time.Duration
}

// Verification routes fetched batches through the receipt verifier before reconciliation.
type Verification struct {
	Queue     VerificationQueue
	Receipts  verify.Receipts
	Verifier  verify.Verifier
	ProgramID string
	// ReceiptURL builds the receipt location of a batch.
	ReceiptURL func(blockReference uint64) string
}

// Worker runs one duty per authorized tick.
type Worker struct {
	gate         Gate
	selector     Selector
	source       StatementSource
	parser       Parser
	processor    StatementProcessor
	dispatcher   Dispatcher
	verification *Verification
	metrics      WorkerMetrics
	cfg          WorkerConfig
	logger       *zap.Logger
	sleep        func(context.Context, time.Duration) error
	now          func() time.Time
}

func NewWorker(
	gate Gate,
	selector Selector,
	source StatementSource,
	parser Parser,
	processor StatementProcessor,
	dispatcher Dispatcher,
	metrics WorkerMetrics,
	cfg WorkerConfig,
	logger *zap.Logger,
) (*Worker, error) {
	if cfg.Account == "" {
		return nil, errors.New("worker account is required")
	}
	if cfg.TickInterval <= 0 {
		return nil, errors.New("tick interval must be positive")
	}
	if metrics == nil {
		return nil, errors.New("worker metrics is required")
	}
	return &Worker{
		gate:       gate,
		selector:   selector,
		source:     source,
		parser:     parser,
		processor:  processor,
		dispatcher: dispatcher,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger.Named("worker").With(zap.String("account", string(cfg.Account))),
		sleep:      clock.SleepWithContext,
		now:        time.Now,
	}, nil
}

// WithVerification enables the receipt verification path.
func (w *Worker) WithVerification(v *Verification) *Worker {
	w.verification = v
	return w
}

// Run ticks until the context is canceled. Tick failures are logged and retried after a backoff.
func (w *Worker) Run(ctx context.Context) error {
	backoff := clock.Backoff{Base: w.cfg.TickInterval, Max: w.cfg.MaxBackoff}
	failures := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.Tick(ctx, w.now()); err != nil {
			failures++
			w.logger.Warn("tick failed", zap.Int("consecutive_failures", failures), zap.Error(err))
		} else {
			failures = 0
		}
		if err := w.sleep(ctx, backoff.Delay(failures)); err != nil {
			return err
		}
	}
}

// Tick asks the scheduling gate for a slot, picks the next activity and runs it.
func (w *Worker) Tick(ctx context.Context, now time.Time) error {
	allowed := w.gate.ShouldSync(ctx, now, w.cfg.MinSyncInterval)
	w.metrics.ObserveGate(allowed)
	if !allowed {
		w.logger.Debug("sync slot not granted")
		return nil
	}

	activity := w.selector.Next(ctx)
	started := time.Now()
	var err error
	switch activity {
	case model.ActivityFetchStatements:
		err = w.fetchStatements(ctx, now)
	case model.ActivityProcessBurnRequests:
		err = w.processBurnRequests(ctx)
	default:
		w.logger.Debug("idle tick")
	}
	w.metrics.ObserveTick(activity, err, started)
	return err
}

func (w *Worker) fetchStatements(ctx context.Context, now time.Time) error {
	body, err := w.source.FetchStatements(ctx)
	if err != nil {
		return fmt.Errorf("fetch statements: %w", err)
	}
	statements, err := w.parser.Parse(body)
	if err != nil {
		return fmt.Errorf("parse statements: %w", err)
	}

	if w.verification != nil {
		return w.verifyAndProcess(ctx, now, statements)
	}

	if len(statements) == 0 {
		w.logger.Debug("no statements to process")
		return nil
	}
	return w.process(ctx, statements)
}

func (w *Worker) verifyAndProcess(ctx context.Context, now time.Time, statements []model.Statement) error {
	v := w.verification
	if len(statements) > 0 {
		ref := uint64(now.Unix())
		batch := model.QueuedBatch{BlockReference: ref, Statements: statements}
		if v.ReceiptURL != nil {
			batch.ReceiptURL = v.ReceiptURL(ref)
		}
		if err := v.Queue.Enqueue(ctx, batch); err != nil {
			// Draining still makes room for the next fetch.
			w.logger.Warn("batch not queued for verification", zap.Error(err))
		}
	}

	res, err := v.Queue.Drain(ctx, v.Receipts, v.Verifier, v.ProgramID, w.process)
	if err != nil {
		return fmt.Errorf("drain verification queue: %w", err)
	}
	w.logger.Info("verification queue drained",
		zap.Int("accepted", res.Accepted),
		zap.Int("rejected", res.Rejected),
		zap.Int("deferred", res.Deferred))
	return nil
}

func (w *Worker) process(ctx context.Context, statements []model.Statement) error {
	results, err := w.processor.ProcessStatements(ctx, model.Signed(w.cfg.Account), statements)
	if err != nil {
		return fmt.Errorf("process statements: %w", err)
	}
	failed := 0
	for _, r := range results {
		failed += len(r.Failed)
		if r.Err != nil {
			failed++
		}
	}
	w.logger.Info("statements processed", zap.Int("statements", len(results)), zap.Int("failures", failed))
	return nil
}

func (w *Worker) processBurnRequests(ctx context.Context) error {
	summary, err := w.dispatcher.ProcessBurnRequests(ctx)
	w.metrics.ObserveDispatch(summary.Sent, summary.Failed)
	if err != nil {
		return fmt.Errorf("process burn requests: %w", err)
	}
	return nil
}
