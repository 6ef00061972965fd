package facade

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
)

// PointerStore persists the handle of the active implementation.
// Load returns sentinel.ErrNotFound while no implementation has been set.
type PointerStore interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, handle string) error
}

// InMemoryPointer keeps the pointer in process memory.
type InMemoryPointer struct {
	mu     sync.RWMutex
	handle string
}

func NewInMemoryPointer() *InMemoryPointer {
	return &InMemoryPointer{}
}

func (p *InMemoryPointer) Load(_ context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.handle == "" {
		return "", sentinel.ErrNotFound
	}
	return p.handle, nil
}

func (p *InMemoryPointer) Store(_ context.Context, handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handle = handle
	return nil
}

// DefaultPointerKey is the Redis key holding the active implementation handle.
const DefaultPointerKey = "condo:facade:implementation"

// RedisPointer shares the pointer between gateway replicas.
type RedisPointer struct {
	client *redis.Client
	key    string
}

type RedisPointerOption func(*RedisPointer)

// WithPointerKey overrides DefaultPointerKey, e.g. to host several communities
// on one Redis.
func WithPointerKey(key string) RedisPointerOption {
	return func(p *RedisPointer) {
		if key != "" {
			p.key = key
		}
	}
}

func NewRedisPointer(client *redis.Client, opts ...RedisPointerOption) *RedisPointer {
	p := &RedisPointer{client: client, key: DefaultPointerKey}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *RedisPointer) Load(ctx context.Context) (string, error) {
	handle, err := p.client.Get(ctx, p.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load implementation pointer: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return handle, nil
}

func (p *RedisPointer) Store(ctx context.Context, handle string) error {
	if err := p.client.Set(ctx, p.key, handle, 0).Err(); err != nil {
		return fmt.Errorf("store implementation pointer: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
