package kvstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Etcd is a Store on an etcd cluster. Txn maps directly onto an etcd If/Then transaction.
type Etcd struct {
	client    *clientv3.Client
	namespace string
}

// NewEtcd dials the given endpoints.
func NewEtcd(endpoints []string, dialTimeout time.Duration, namespace string) (*Etcd, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("dial etcd: %w", err)
	}
	return &Etcd{client: client, namespace: namespace}, nil
}

func (e *Etcd) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp, err := e.client.Get(ctx, e.key(key))
	if err != nil {
		return nil, false, fmt.Errorf("etcd get %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, false, nil
	}
	return resp.Kvs[0].Value, true, nil
}

func (e *Etcd) List(ctx context.Context, prefix string) ([]KV, error) {
	resp, err := e.client.Get(ctx, e.key(prefix),
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend),
	)
	if err != nil {
		return nil, fmt.Errorf("etcd list %s: %w", prefix, err)
	}
	out := make([]KV, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		out = append(out, KV{Key: strings.TrimPrefix(string(kv.Key), e.namespace), Value: kv.Value})
	}
	return out, nil
}

func (e *Etcd) Txn(ctx context.Context, conds []Cond, ops []Op) error {
	cmps := make([]clientv3.Cmp, 0, len(conds))
	for _, c := range conds {
		if !c.Exists {
			cmps = append(cmps, clientv3.Compare(clientv3.CreateRevision(e.key(c.Key)), "=", 0))
			continue
		}
		cmps = append(cmps, clientv3.Compare(clientv3.Value(e.key(c.Key)), "=", string(c.Value)))
	}
	thens := make([]clientv3.Op, 0, len(ops))
	for _, op := range ops {
		if op.Delete {
			thens = append(thens, clientv3.OpDelete(e.key(op.Key)))
			continue
		}
		thens = append(thens, clientv3.OpPut(e.key(op.Key), string(op.Value)))
	}

	resp, err := e.client.Txn(ctx).If(cmps...).Then(thens...).Commit()
	if err != nil {
		return fmt.Errorf("etcd txn: %w", err)
	}
	if !resp.Succeeded {
		return ErrConflict
	}
	return nil
}

func (e *Etcd) Close() error {
	return e.client.Close()
}

func (e *Etcd) key(k string) string {
	return e.namespace + k
}
