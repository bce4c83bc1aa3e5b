package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// Redis is a Store on a shared redis instance. Txn uses WATCH on the condition
// keys and applies the writes in MULTI/EXEC.
type Redis struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedis connects to url (redis://...) and checks the connection.
func NewRedis(ctx context.Context, url, namespace string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisWithClient(client, namespace), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client redis.UniversalClient, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) List(ctx context.Context, prefix string) ([]KV, error) {
	var (
		cursor uint64
		keys   []string
	)
	pattern := escapeGlob(r.key(prefix)) + "*"
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", prefix, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget %s: %w", prefix, err)
	}
	out := make([]KV, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		s, ok := values[i].(string)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, KV{Key: strings.TrimPrefix(k, r.namespace), Value: []byte(s)})
	}
	sortKVs(out)
	return out, nil
}

func (r *Redis) Txn(ctx context.Context, conds []Cond, ops []Op) error {
	watched := make([]string, 0, len(conds))
	for _, c := range conds {
		watched = append(watched, r.key(c.Key))
	}

	txf := func(tx *redis.Tx) error {
		for _, c := range conds {
			v, err := tx.Get(ctx, r.key(c.Key)).Bytes()
			found := true
			if errors.Is(err, redis.Nil) {
				found = false
			} else if err != nil {
				return fmt.Errorf("redis get %s: %w", c.Key, err)
			}
			if !c.holds(v, found) {
				return ErrConflict
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, op := range ops {
				if op.Delete {
					pipe.Del(ctx, r.key(op.Key))
					continue
				}
				pipe.Set(ctx, r.key(op.Key), op.Value, 0)
			}
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, watched...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	default:
		return fmt.Errorf("redis txn: %w", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(k string) string {
	return r.namespace + k
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}
