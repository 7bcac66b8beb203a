package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 24 * time.Hour

// RedisStore keeps sessions in Redis under a per-process boot id,
// so a restarted bot starts with empty carts just like MemoryStore.
type RedisStore struct {
	rdb    redis.UniversalClient
	bot    string
	bootID string
	ttl    time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, bot string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, bot: bot, bootID: uuid.NewString(), ttl: ttl}
}

func (r *RedisStore) key(chatID int64) string {
	return fmt.Sprintf("session:%s:%s:%d", r.bot, r.bootID, chatID)
}

func (r *RedisStore) Get(ctx context.Context, chatID int64) (*Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(chatID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.ChatID = chatID
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(s.ChatID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, chatID int64) error {
	if err := r.rdb.Del(ctx, r.key(chatID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
