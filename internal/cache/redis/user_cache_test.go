package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cafe-preorder-bot/internal/domain/user"
)

func TestUserCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()
	cache := NewUserCache(rdb, time.Minute)

	got, err := cache.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	name := "carol"
	require.NoError(t, cache.Set(ctx, &domain.User{ID: 3, TelegramID: 42, Username: &name}))
	assert.Equal(t, time.Minute, mr.TTL("user:tg:42"))

	got, err = cache.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "@carol", got.DisplayName())

	require.NoError(t, cache.Invalidate(ctx, 42))
	got, err = cache.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
