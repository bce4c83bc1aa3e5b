// Package verify holds fetched statement batches until an external verifier accepts their receipt.
package verify

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/kvstore"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const (
	queuePrefix = "verify/queue/"
	seqKey      = "verify/next_seq"
	retries     = 5
)

var (
	ErrQueueFull     = errors.New("verification queue is full")
	ErrBatchTooLarge = errors.New("queued batch exceeds transaction bound")
)

// Handler receives the statements of an accepted batch.
type Handler func(ctx context.Context, statements []model.Statement) error

// DrainResult counts what happened to queued batches during one Drain.
type DrainResult struct {
	Accepted int
	Rejected int
	Deferred int
}

// Queue is a bounded FIFO of batches persisted in the shared store.
type Queue struct {
	store           Store
	maxBatches      int
	maxTransactions int
	logger          *zap.Logger
}

func NewQueue(store Store, maxBatches, maxTransactions int, logger *zap.Logger) *Queue {
	return &Queue{
		store:           store,
		maxBatches:      maxBatches,
		maxTransactions: maxTransactions,
		logger:          logger.Named("verify_queue"),
	}
}

// Enqueue appends a batch. It fails with ErrQueueFull once MaxBatches are waiting.
func (q *Queue) Enqueue(ctx context.Context, batch model.QueuedBatch) error {
	for _, st := range batch.Statements {
		if len(st.Transactions) > q.maxTransactions {
			return fmt.Errorf("%w: %s has %d", ErrBatchTooLarge, st.Account.IBAN, len(st.Transactions))
		}
	}
	value, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	return kvstore.Retry(ctx, retries, func(ctx context.Context) error {
		queued, err := q.store.List(ctx, queuePrefix)
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}
		if len(queued) >= q.maxBatches {
			return ErrQueueFull
		}

		raw, found, err := q.store.Get(ctx, seqKey)
		if err != nil {
			return fmt.Errorf("read queue sequence: %w", err)
		}
		seq, err := kvstore.Uint64(raw, found)
		if err != nil {
			return err
		}
		key := itemKey(seq)

		return q.store.Txn(ctx,
			[]kvstore.Cond{kvstore.Expect(seqKey, raw, found), kvstore.Absent(key)},
			[]kvstore.Op{kvstore.Put(seqKey, kvstore.EncodeUint64(seq+1)), kvstore.Put(key, value)},
		)
	})
}

// Len returns the number of waiting batches.
func (q *Queue) Len(ctx context.Context) (int, error) {
	queued, err := q.store.List(ctx, queuePrefix)
	if err != nil {
		return 0, err
	}
	return len(queued), nil
}

// Commitment is the payload a verifier must reveal for a batch of statements:
// the SHA-256 digest of their JSON encoding.
func Commitment(statements []model.Statement) ([]byte, error) {
	body, err := json.Marshal(statements)
	if err != nil {
		return nil, fmt.Errorf("encode statements: %w", err)
	}
	sum := sha256.Sum256(body)
	return sum[:], nil
}

// Drain verifies every queued batch in order. A batch is accepted only when the
// verifier accepts its receipt and the revealed payload is the Commitment of the
// queued statements. Accepted batches are removed and then handed to handle;
// rejected ones are removed and logged. Fetch or verifier errors leave the batch
// queued for the next call.
func (q *Queue) Drain(ctx context.Context, receipts Receipts, verifier Verifier, programID string, handle Handler) (DrainResult, error) {
	var res DrainResult

	queued, err := q.store.List(ctx, queuePrefix)
	if err != nil {
		return res, fmt.Errorf("list queue: %w", err)
	}

	for _, item := range queued {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var batch model.QueuedBatch
		if err := json.Unmarshal(item.Value, &batch); err != nil {
			q.logger.Error("dropping undecodable queued batch", zap.String("key", item.Key), zap.Error(err))
			if err := q.remove(ctx, item); err != nil {
				return res, err
			}
			res.Rejected++
			continue
		}

		logger := q.logger.With(zap.Uint64("block_reference", batch.BlockReference))

		receipt, err := receipts.FetchReceipt(ctx, batch.ReceiptURL)
		if err != nil {
			logger.Warn("receipt fetch failed, batch stays queued", zap.Error(err))
			res.Deferred++
			continue
		}
		payload, ok, err := verifier.Verify(ctx, receipt, programID)
		if err != nil {
			logger.Warn("verifier failed, batch stays queued", zap.Error(err))
			res.Deferred++
			continue
		}

		if err := q.remove(ctx, item); err != nil {
			if errors.Is(err, kvstore.ErrConflict) {
				logger.Debug("batch taken by another replica")
				continue
			}
			return res, err
		}

		if !ok {
			logger.Warn("receipt rejected, batch dropped")
			res.Rejected++
			continue
		}
		want, err := Commitment(batch.Statements)
		if err != nil {
			return res, err
		}
		if !bytes.Equal(payload, want) {
			logger.Warn("receipt payload does not match queued statements, batch dropped",
				zap.Binary("payload", payload), zap.Binary("want", want))
			res.Rejected++
			continue
		}

		logger.Info("receipt accepted", zap.Int("statements", len(batch.Statements)))
		res.Accepted++
		if err := handle(ctx, batch.Statements); err != nil {
			logger.Error("handle verified batch", zap.Error(err))
		}
	}

	return res, nil
}

func (q *Queue) remove(ctx context.Context, item kvstore.KV) error {
	return q.store.Txn(ctx,
		[]kvstore.Cond{kvstore.Equals(item.Key, item.Value)},
		[]kvstore.Op{kvstore.Delete(item.Key)},
	)
}

func itemKey(seq uint64) string {
	return queuePrefix + fmt.Sprintf("%020d", seq)
}
