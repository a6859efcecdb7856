// File: cocoti/services/session/store.go
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// TokenStore abstracts where admin tokens live. Production binds it to
// Redis; tests use the in-memory implementation. Get returns "" for an
// absent key — absence is not an error.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisTokenStore persists tokens in Redis under a common prefix so the
// session DB can be shared with other concerns.
type RedisTokenStore struct {
	Client *redis.Client
	Prefix string
}

// NewRedisTokenStore wraps a Redis client as a TokenStore.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client, Prefix: "adminSession:"}
}

func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.Client.Get(ctx, s.Prefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, key, value string) error {
	// No TTL: expiry is tracked explicitly under the expires-at key and
	// enforced at read time.
	if err := s.Client.Set(ctx, s.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}
	return nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.Prefix + k
	}
	if err := s.Client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}

// MemoryTokenStore is a map-backed TokenStore for tests.
type MemoryTokenStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{data: make(map[string]string)}
}

func (s *MemoryTokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *MemoryTokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}
