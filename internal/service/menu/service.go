package menu

import (
	"context"
	"strings"

	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/common/logger"
	domain "cafe-preorder-bot/internal/domain/menu"
)

// Service implements menu browsing for customers and menu administration for admins.
type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// Categories lists categories that have at least one available item.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.AvailableCategories(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list categories", err)
	}
	return cats, nil
}

func (s *Service) AvailableItems(ctx context.Context, category string) ([]domain.Item, error) {
	items, err := s.repo.ListAvailableByCategory(ctx, category)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list menu items", err)
	}
	return items, nil
}

func (s *Service) All(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list menu items", err)
	}
	return items, nil
}

// Item returns a NotFound error for unknown ids.
func (s *Service) Item(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get menu item", err)
	}
	if item == nil {
		return nil, apperrors.NewNotFoundError("menu item", id)
	}
	return item, nil
}

// Lookup resolves many items at once. Missing ids are absent from the result.
func (s *Service) Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Item, error) {
	items, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("lookup menu items", err)
	}
	return items, nil
}

// Create adds a new available item.
func (s *Service) Create(ctx context.Context, draft domain.Item) (*domain.Item, error) {
	item := draft
	item.ID = 0
	item.IsAvailable = true
	item.Category = strings.TrimSpace(item.Category)
	item.Name = strings.TrimSpace(item.Name)

	if !domain.ValidCategory(item.Category) {
		return nil, apperrors.NewValidationError("category", "must be non-empty and short")
	}
	if item.Name == "" {
		return nil, apperrors.NewValidationError("name", "must not be empty")
	}
	if item.Price < 0 {
		return nil, apperrors.NewValidationError("price", "must not be negative")
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, apperrors.NewDatabaseError("create menu item", err)
	}
	logger.Info().Int64("item_id", item.ID).Str("category", item.Category).Msg("Menu item created")
	return &item, nil
}

// UpdateField applies a text value to category, name or price.
func (s *Service) UpdateField(ctx context.Context, id int64, field domain.Field, value string) (*domain.Item, error) {
	item, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	value = strings.TrimSpace(value)

	switch field {
	case domain.FieldCategory:
		if !domain.ValidCategory(value) {
			return nil, apperrors.NewValidationError("category", "must be non-empty and short")
		}
		item.Category = value
	case domain.FieldName:
		if value == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		item.Name = value
	case domain.FieldPrice:
		price, err := domain.ParsePrice(value)
		if err != nil {
			return nil, apperrors.NewValidationError("price", err.Error())
		}
		item.Price = price
	default:
		return nil, apperrors.NewValidationError("field", "not editable as text")
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("update menu item", err)
	}
	return item, nil
}

func (s *Service) SetPhoto(ctx context.Context, id int64, fileID string) (*domain.Item, error) {
	if fileID == "" {
		return nil, apperrors.NewValidationError("photo", "must not be empty")
	}
	item, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	item.PhotoFileID = &fileID
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("set menu item photo", err)
	}
	return item, nil
}

// ToggleAvailability flips the availability flag immediately.
func (s *Service) ToggleAvailability(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsAvailable = !item.IsAvailable
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("toggle menu item", err)
	}
	return item, nil
}

// Delete hard-deletes an item. Past orders keep referencing its id.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("delete menu item", err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError("menu item", id)
	}
	logger.Info().Int64("item_id", id).Msg("Menu item deleted")
	return item, nil
}

func (s *Service) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	counts, err := s.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count categories", err)
	}
	return counts, nil
}

// RenameCategory moves every item of from into to.
func (s *Service) RenameCategory(ctx context.Context, from, to string) (int64, error) {
	to = strings.TrimSpace(to)
	if !domain.ValidCategory(to) {
		return 0, apperrors.NewValidationError("category", "must be non-empty and short")
	}
	n, err := s.repo.RenameCategory(ctx, from, to)
	if err != nil {
		return 0, apperrors.NewDatabaseError("rename category", err)
	}
	if n == 0 {
		return 0, apperrors.NewNotFoundError("category", from)
	}
	return n, nil
}

// DeleteCategory hard-deletes every item in the category.
func (s *Service) DeleteCategory(ctx context.Context, category string) (int64, error) {
	n, err := s.repo.DeleteCategory(ctx, category)
	if err != nil {
		return 0, apperrors.NewDatabaseError("delete category", err)
	}
	if n == 0 {
		return 0, apperrors.NewNotFoundError("category", category)
	}
	logger.Info().Str("category", category).Int64("items", n).Msg("Category deleted")
	return n, nil
}

// WithoutPhoto lists items lacking a photo, optionally limited to one category.
func (s *Service) WithoutPhoto(ctx context.Context, category string) ([]domain.Item, error) {
	items, err := s.repo.ListWithoutPhoto(ctx, category)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list items without photo", err)
	}
	return items, nil
}
