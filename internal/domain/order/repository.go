package order

import (
	"context"
)

// Repository defines persistence operations for orders.
// Loaded orders carry their User and Items with MenuItem resolved (nil for deleted items).
type Repository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	// UpdateStatusIf sets status to next only when the current status equals from.
	// It returns false when no row matched.
	UpdateStatusIf(ctx context.Context, id int64, from, next Status) (bool, error)

	ListByStatus(ctx context.Context, status Status) ([]Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Order, error)
	Stats(ctx context.Context) (Stats, error)
}
