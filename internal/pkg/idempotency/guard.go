package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard admits at most one in-flight (or recently seen) submission per key.
// Clock actions are not idempotent, so a rapid double press or a network
// retry must not reach the ledger twice inside the window.
type Guard interface {
	// Begin claims key for ttl. Returns false when the key is already held.
	Begin(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// End releases key before its ttl expires.
	End(ctx context.Context, key string) error
}

const keyPrefix = "attendance:inflight:"

// RedisGuard backs the guard with SET NX so the window survives process
// restarts and is shared across replicas.
type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) Begin(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
}

func (g *RedisGuard) End(ctx context.Context, key string) error {
	return g.client.Del(ctx, keyPrefix+key).Err()
}

// MemoryGuard is the single-process fallback used when no Redis address is
// configured; for prod swap to Redis.
type MemoryGuard struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{entries: make(map[string]time.Time)}
}

func (g *MemoryGuard) Begin(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for k, exp := range g.entries {
		if now.After(exp) {
			delete(g.entries, k)
		}
	}
	if _, held := g.entries[key]; held {
		return false, nil
	}
	g.entries[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) End(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}
