package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnthoniusHendriyanto/access-gate/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the slot value under <prefix>:<instance>:user_session.
type RedisSlot struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisSlot scopes the slot to one browser instance. A zero ttl keeps the
// value until it is deleted.
func NewRedisSlot(client redis.Cmdable, prefix, instanceID string, ttl time.Duration) *RedisSlot {
	return &RedisSlot{
		client: client,
		key:    SlotKey(prefix, instanceID),
		ttl:    ttl,
	}
}

func SlotKey(prefix, instanceID string) string {
	return prefix + ":" + instanceID + ":" + constant.SessionSlotKey
}

func (r *RedisSlot) Get(ctx context.Context) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisSlot) Set(ctx context.Context, value string) error {
	return r.client.Set(ctx, r.key, value, r.ttl).Err()
}

func (r *RedisSlot) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// ConnectRedis accepts either a redis:// URL or a bare host:port.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
