package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hotelnow/internal/adapters/observability"
)

// Sessions stores per-view state (filter selections, expanded-description
// flags) with a TTL. Catalog records never pass through here; list reads
// always go back to the document store.
type Sessions struct{ c *redis.Client }

func New(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (s *Sessions) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := s.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("sessions", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("sessions", "hit")
	return true, json.Unmarshal(v, dst)
}

func (s *Sessions) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("sessions", "set")
	return s.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (s *Sessions) Del(ctx context.Context, key string) error {
	observability.ObserveCache("sessions", "del")
	return s.c.Del(ctx, key).Err()
}
