package user

import "context"

// Repository defines persistence operations for User aggregate.
type Repository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	Create(ctx context.Context, u *User) error
	Count(ctx context.Context) (int64, error)
}
