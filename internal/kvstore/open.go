package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendEtcd   = "etcd"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	RedisURL      string
	EtcdEndpoints []string
	DialTimeout   time.Duration
	Namespace     string
}

// Open builds the configured backend. Memory state is lost on exit and is not shared between replicas.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New("redis url is required")
		}
		return NewRedis(ctx, opts.RedisURL, opts.Namespace)
	case BackendEtcd:
		if len(opts.EtcdEndpoints) == 0 {
			return nil, errors.New("etcd endpoints are required")
		}
		timeout := opts.DialTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return NewEtcd(opts.EtcdEndpoints, timeout, opts.Namespace)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
