package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cafe-preorder-bot/internal/domain/menu"
)

// MenuRepository stores menu items in Postgres.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{db: db} }

func (r *MenuRepository) Create(ctx context.Context, item *menu.Item) error {
	db := r.db.WithContext(ctx)
	if err := db.Create(item).Error; err != nil {
		return err
	}
	// gorm replaces a false bool with the column default on insert
	if !item.IsAvailable {
		return db.Model(item).UpdateColumn("is_available", false).Error
	}
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (*menu.Item, error) {
	var item menu.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByIDs returns the items that still exist, keyed by id.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*menu.Item, error) {
	return loadMenuItems(r.db.WithContext(ctx), ids)
}

func loadMenuItems(db *gorm.DB, ids []int64) (map[int64]*menu.Item, error) {
	out := make(map[int64]*menu.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []menu.Item
	if err := db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}

// Update writes every column, zero values included.
func (r *MenuRepository) Update(ctx context.Context, item *menu.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete hard-deletes the item. Order lines that reference it are left untouched.
func (r *MenuRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&menu.Item{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	var items []menu.Item
	err := r.db.WithContext(ctx).Order("category, name, id").Find(&items).Error
	return items, err
}

func (r *MenuRepository) ListAvailableByCategory(ctx context.Context, category string) ([]menu.Item, error) {
	var items []menu.Item
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_available = ?", category, true).
		Order("id").
		Find(&items).Error
	return items, err
}

// ListWithoutPhoto lists items lacking a photo; an empty category means all categories.
func (r *MenuRepository) ListWithoutPhoto(ctx context.Context, category string) ([]menu.Item, error) {
	q := r.db.WithContext(ctx).Where("photo_file_id IS NULL OR photo_file_id = ''")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []menu.Item
	err := q.Order("category, name, id").Find(&items).Error
	return items, err
}

// AvailableCategories returns the distinct categories that have at least one available item.
func (r *MenuRepository) AvailableCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&menu.Item{}).
		Where("is_available = ?", true).
		Distinct().
		Order("category").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *MenuRepository) CategoryCounts(ctx context.Context) ([]menu.CategoryCount, error) {
	var counts []menu.CategoryCount
	err := r.db.WithContext(ctx).
		Model(&menu.Item{}).
		Select("category, count(*) AS count").
		Group("category").
		Order("category").
		Scan(&counts).Error
	return counts, err
}

func (r *MenuRepository) RenameCategory(ctx context.Context, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&menu.Item{}).
		Where("category = ?", from).
		Update("category", to)
	return res.RowsAffected, res.Error
}

func (r *MenuRepository) DeleteCategory(ctx context.Context, category string) (int64, error) {
	res := r.db.WithContext(ctx).Where("category = ?", category).Delete(&menu.Item{})
	return res.RowsAffected, res.Error
}
