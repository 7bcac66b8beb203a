package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "cafe-preorder-bot/internal/domain/user"
)

// UserCache caches registered customers by Telegram id so repeated updates skip the users table.
type UserCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewUserCache(client redis.UniversalClient, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

func (c *UserCache) keyByTelegramID(id int64) string { return fmt.Sprintf("user:tg:%d", id) }

func (c *UserCache) Set(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyByTelegramID(u.TelegramID), b, c.ttl).Err()
}

// GetByTelegramID returns (nil, nil) on a cache miss.
func (c *UserCache) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	v, err := c.client.Get(ctx, c.keyByTelegramID(telegramID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *UserCache) Invalidate(ctx context.Context, telegramID int64) error {
	return c.client.Del(ctx, c.keyByTelegramID(telegramID)).Err()
}
