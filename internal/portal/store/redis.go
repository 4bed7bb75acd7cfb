package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	portaldomain "github.com/smallbiznis/portal/internal/portal/domain"
	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:session:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a redis-backed session store so selection state survives
// process restarts and is shared across replicas.
func NewRedis(client *redis.Client, ttl time.Duration) portaldomain.Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, key string) (portaldomain.SessionState, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return portaldomain.SessionState{}, false, nil
		}
		return portaldomain.SessionState{}, false, err
	}

	var state portaldomain.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return portaldomain.SessionState{}, false, err
	}
	return state, true, nil
}

func (s *redisStore) Put(ctx context.Context, key string, state portaldomain.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+key, raw, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
