package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisEnvelope struct {
	State State `json:"state"`
	Data  Data  `json:"data"`
}

// RedisStore keeps conversation state as one JSON blob per admin key.
// Entries expire after TTL so abandoned flows do not pile up.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client into a Store. A zero ttl disables expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "conversation:", ttl: ttl}
}

func (s *RedisStore) key(adminID int64) string {
	return fmt.Sprintf("%s%d", s.prefix, adminID)
}

// Set replaces the admin's state and payload.
func (s *RedisStore) Set(ctx context.Context, adminID int64, state State, data Data) error {
	blob, err := json.Marshal(redisEnvelope{State: state, Data: data})
	if err != nil {
		return fmt.Errorf("conversation: marshal payload: %w", err)
	}
	if err := s.client.Set(ctx, s.key(adminID), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("conversation: set state: %w", err)
	}
	return nil
}

// Get returns the admin's state and payload, or ErrNoState when absent.
func (s *RedisStore) Get(ctx context.Context, adminID int64) (State, Data, error) {
	blob, err := s.client.Get(ctx, s.key(adminID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return StateIdle, Data{}, ErrNoState
		}
		return StateIdle, Data{}, fmt.Errorf("conversation: get state: %w", err)
	}
	var env redisEnvelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return StateIdle, Data{}, fmt.Errorf("conversation: unmarshal payload: %w", err)
	}
	return env.State, env.Data, nil
}

// Clear removes the admin's state.
func (s *RedisStore) Clear(ctx context.Context, adminID int64) error {
	if err := s.client.Del(ctx, s.key(adminID)).Err(); err != nil {
		return fmt.Errorf("conversation: clear state: %w", err)
	}
	return nil
}
