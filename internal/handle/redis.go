package handle

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keeps handles in a shared redis instance, keyed
// "shopify_cart_id:<slot>". No TTL: the platform decides when an id
// stops being valid.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Slot(name string) Store {
	return &redisSlot{client: r.client, key: Key + ":" + name}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type redisSlot struct {
	client *redis.Client
	key    string
}

func (s *redisSlot) Load(ctx context.Context) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load handle: %w", err)
	}
	return id, true, nil
}

func (s *redisSlot) Save(ctx context.Context, cartID string) error {
	if err := s.client.Set(ctx, s.key, cartID, 0).Err(); err != nil {
		return fmt.Errorf("save handle: %w", err)
	}
	return nil
}

func (s *redisSlot) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear handle: %w", err)
	}
	return nil
}
