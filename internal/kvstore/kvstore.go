// Package kvstore is the persisted key-value state shared by worker replicas.
//
// Every mutation goes through Txn, which applies a set of writes only if all
// of its conditions still hold. Components build compare-and-set on top of it.
package kvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var (
	// ErrConflict is returned by Txn when a condition did not hold.
	ErrConflict = errors.New("kvstore: conflicting concurrent modification")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("kvstore: store closed")
)

// Store is implemented by every backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	List(ctx context.Context, prefix string) ([]KV, error)
	Txn(ctx context.Context, conds []Cond, ops []Op) error
	Close() error
}

// KV is a key with its value.
type KV struct {
	Key   string
	Value []byte
}

// Cond is a precondition of a transaction.
type Cond struct {
	Key    string
	Value  []byte
	Exists bool
}

// Expect holds when key still has the state a previous Get observed.
func Expect(key string, value []byte, found bool) Cond {
	if !found {
		return Absent(key)
	}
	return Equals(key, value)
}

// Equals holds when key exists with value.
func Equals(key string, value []byte) Cond {
	return Cond{Key: key, Value: value, Exists: true}
}

// Absent holds when key does not exist.
func Absent(key string) Cond {
	return Cond{Key: key}
}

func (c Cond) holds(value []byte, found bool) bool {
	if !c.Exists {
		return !found
	}
	return found && bytes.Equal(c.Value, value)
}

// Op is a write of a transaction.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

// Put writes value under key.
func Put(key string, value []byte) Op {
	return Op{Key: key, Value: value}
}

// Delete removes key.
func Delete(key string) Op {
	return Op{Key: key, Delete: true}
}

// Retry runs fn until it returns something other than ErrConflict, at most attempts times.
func Retry(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn(ctx)
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}

// Uint64 decodes a counter value written with EncodeUint64.
func Uint64(value []byte, found bool) (uint64, error) {
	if !found {
		return 0, nil
	}
	v, err := strconv.ParseUint(string(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode counter %q: %w", string(value), err)
	}
	return v, nil
}

// EncodeUint64 renders v as a stored counter.
func EncodeUint64(v uint64) []byte {
	return []byte(strconv.FormatUint(v, 10))
}

func sortKVs(items []KV) {
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
}
