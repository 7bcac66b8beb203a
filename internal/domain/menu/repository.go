package menu

import "context"

// Repository defines persistence operations for menu items.
// Lookups by id return (nil, nil) when the item does not exist.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context) ([]Item, error)
	ListAvailableByCategory(ctx context.Context, category string) ([]Item, error)
	ListWithoutPhoto(ctx context.Context, category string) ([]Item, error)
	AvailableCategories(ctx context.Context) ([]string, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)

	RenameCategory(ctx context.Context, from, to string) (int64, error)
	DeleteCategory(ctx context.Context, category string) (int64, error)
}
