package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(sessionID string) string
}

// RedisStore keeps each session's cart as JSON with the session TTL, so a
// cart never outlives its session.
type RedisStore struct {
	kv    kvStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewRedisStore wires the store to a client exposing both the key-value and
// key-naming surfaces (pkg/redis.Client satisfies both).
func NewRedisStore(client interface {
	kvStore
	cartKeyer
}, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisStore{kv: client, keyer: client, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (State, error) {
	raw, err := s.kv.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return State{}, nil
		}
		return nil, fmt.Errorf("read cart: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if state == nil {
		state = State{}
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state State) error {
	key := s.keyer.CartKey(sessionID)
	if len(state) == 0 {
		return s.kv.Del(ctx, key)
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.keyer.CartKey(sessionID))
}
