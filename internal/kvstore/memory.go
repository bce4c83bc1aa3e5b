package kvstore

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process Store for single-node deployments and tests.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]KV, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	var out []KV
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, KV{Key: k, Value: clone(v)})
		}
	}
	sortKVs(out)
	return out, nil
}

func (m *Memory) Txn(_ context.Context, conds []Cond, ops []Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, c := range conds {
		v, ok := m.data[c.Key]
		if !c.holds(v, ok) {
			return ErrConflict
		}
	}
	for _, op := range ops {
		if op.Delete {
			delete(m.data, op.Key)
			continue
		}
		m.data[op.Key] = clone(op.Value)
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func clone(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
