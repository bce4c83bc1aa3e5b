// Package batcher buffers items and hands them to a flush callback in batches.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add after Stop.
var ErrStopped = errors.New("batcher stopped")

// Options tune a Batcher. RPS <= 0 disables flush pacing.
type Options struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
}

// DefaultOptions flushes every 100 items or every second.
func DefaultOptions() Options {
	return Options{FlushSize: 100, FlushInterval: time.Second, RPS: 10}
}

// FlushFunc persists one batch. The slice is reused after it returns.
type FlushFunc[T any] func(ctx context.Context, items []T) error

// Batcher flushes by size or by interval, whichever comes first.
type Batcher[T any] struct {
	flush   FlushFunc[T]
	items   chan T
	opts    Options
	limiter ratelimit.Limiter
	logger  *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func New[T any](logger *zap.Logger, flush FlushFunc[T], opts Options) *Batcher[T] {
	def := DefaultOptions()
	if opts.FlushSize <= 0 {
		opts.FlushSize = def.FlushSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = def.FlushInterval
	}
	limiter := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		limiter = ratelimit.New(opts.RPS)
	}
	return &Batcher[T]{
		flush:   flush,
		items:   make(chan T, opts.FlushSize*2),
		opts:    opts,
		limiter: limiter,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Start runs the flush loop until ctx is done or Stop is called.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is buffered and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item, blocking while the buffer is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.opts.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.opts.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.limiter.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	drain := func() {
		// The caller's context may already be done; the final flush still gets a bounded window.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				if len(buf) >= b.opts.FlushSize {
					flush(ctx)
				}
			default:
				flush(ctx)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return
		case <-b.stop:
			drain()
			return
		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.opts.FlushSize {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		}
	}
}
