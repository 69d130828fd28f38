package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HealthifyChat/pkg/redis"

	jsoniter "github.com/json-iterator/go"
)

const keyPrefix = "chat:session:"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisStore keeps contexts as JSON under chat:session:<id> with a TTL.
type RedisStore struct {
	client redis.IRedis
	ttl    time.Duration
}

func NewRedisStore(client redis.IRedis, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultIdleTimeout
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Context, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var c Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &c, nil
}

func (r *RedisStore) Save(ctx context.Context, c *Context) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", c.SessionID, err)
	}
	return r.client.Set(ctx, keyPrefix+c.SessionID, raw, r.ttl)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, keyPrefix+id)
}
