package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/savorbowl/storefront-backend/internal/cart"
	"github.com/savorbowl/storefront-backend/pkg/redis"
)

// kvClient is the slice of the Redis client the store needs.
type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisProvider yields session-keyed cart stores backed by one Redis client.
// Each session's rows live in a single JSON blob under a namespaced key.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProvider wires the provider; ttl bounds how long an idle cart
// survives between visits.
func NewRedisProvider(client *redis.Client, ttl time.Duration) (*RedisProvider, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisProvider{client: client, ttl: ttl}, nil
}

// ForSession returns the store bound to the session's cart key.
func (p *RedisProvider) ForSession(sessionID string) cart.Store {
	return &redisStore{
		client: p.client,
		key:    p.client.CartSessionKey(sessionID),
		ttl:    p.ttl,
	}
}

type redisStore struct {
	client kvClient
	key    string
	ttl    time.Duration
}

func (s *redisStore) Load(ctx context.Context) ([]cart.LineItem, error) {
	raw, err := s.client.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart %s: %w", s.key, err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", s.key, err)
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, items []cart.LineItem) error {
	if len(items) == 0 {
		if err := s.client.Del(ctx, s.key); err != nil {
			return fmt.Errorf("clear cart %s: %w", s.key, err)
		}
		return nil
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", s.key, err)
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl); err != nil {
		return fmt.Errorf("save cart %s: %w", s.key, err)
	}
	return nil
}
