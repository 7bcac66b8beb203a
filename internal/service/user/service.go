package user

import (
	"context"
	"strings"

	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/common/logger"
	domain "cafe-preorder-bot/internal/domain/user"
)

// Cache is the optional read-through cache in front of the users table.
type Cache interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Set(ctx context.Context, u *domain.User) error
}

// Service orchestrates user access with repository and cache.
type Service struct {
	repo  domain.Repository
	cache Cache
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// WithCache enables the Redis read-through cache.
func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

// GetOrCreate returns the customer for a Telegram account, registering it on first contact.
// The stored username is not refreshed for existing users.
func (s *Service) GetOrCreate(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	if s.cache != nil {
		if u, err := s.cache.GetByTelegramID(ctx, telegramID); err == nil && u != nil {
			return u, nil
		} else if err != nil {
			logger.Warn().Err(err).Int64("telegram_id", telegramID).Msg("User cache read failed")
		}
	}

	u, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if u == nil {
		u = &domain.User{TelegramID: telegramID}
		if name := strings.TrimSpace(username); name != "" {
			u.Username = &name
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, apperrors.NewDatabaseError("create user", err)
		}
		logger.Info().Int64("telegram_id", telegramID).Int64("user_id", u.ID).Msg("Registered new customer")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, u)
	}
	return u, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperrors.NewDatabaseError("count users", err)
	}
	return n, nil
}
