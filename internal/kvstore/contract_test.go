package kvstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		_, found, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("put when absent then conflict", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Txn(ctx, []Cond{Absent("k")}, []Op{Put("k", []byte("1"))}))
		err := s.Txn(ctx, []Cond{Absent("k")}, []Op{Put("k", []byte("2"))})
		require.ErrorIs(t, err, ErrConflict)

		v, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "1", string(v))
	})

	t.Run("compare and swap", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Txn(ctx, nil, []Op{Put("k", []byte("a"))}))
		require.ErrorIs(t, s.Txn(ctx, []Cond{Equals("k", []byte("b"))}, []Op{Put("k", []byte("c"))}), ErrConflict)
		require.NoError(t, s.Txn(ctx, []Cond{Equals("k", []byte("a"))}, []Op{Put("k", []byte("c")), Put("other", []byte("x"))}))

		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "c", string(v))
		v, _, err = s.Get(ctx, "other")
		require.NoError(t, err)
		require.Equal(t, "x", string(v))
	})

	t.Run("failed condition writes nothing", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Txn(ctx, nil, []Op{Put("guard", []byte("1"))}))
		err := s.Txn(ctx,
			[]Cond{Absent("free"), Absent("guard")},
			[]Op{Put("free", []byte("1")), Put("side", []byte("1"))},
		)
		require.ErrorIs(t, err, ErrConflict)

		_, found, err := s.Get(ctx, "side")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("delete and list", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		require.NoError(t, s.Txn(ctx, nil, []Op{
			Put("p/2", []byte("two")),
			Put("p/1", []byte("one")),
			Put("q/1", []byte("other")),
		}))
		require.NoError(t, s.Txn(ctx, []Cond{Equals("p/2", []byte("two"))}, []Op{Delete("p/2"), Put("p/3", []byte("three"))}))

		items, err := s.List(ctx, "p/")
		require.NoError(t, err)
		require.Equal(t, []KV{
			{Key: "p/1", Value: []byte("one")},
			{Key: "p/3", Value: []byte("three")},
		}, items)
	})

	t.Run("racing writers on one key", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		var (
			wg   sync.WaitGroup
			wins atomic.Int32
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Txn(ctx, []Cond{Absent("race")}, []Op{Put("race", []byte("w"))})
				if err == nil {
					wins.Add(1)
					return
				}
				if !errors.Is(err, ErrConflict) {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), wins.Load())
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
