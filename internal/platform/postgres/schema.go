package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/domain/user"
)

// Models lists every table owned by the bots, parents first.
func Models() []interface{} {
	return []interface{}{&user.User{}, &menu.Item{}, &order.Order{}, &order.Item{}}
}

// EnsureSchema creates missing tables, columns and indexes. Existing data is kept.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if _, err := DropMenuItemForeignKeys(ctx, db); err != nil {
		return err
	}
	return nil
}

// DropMenuItemForeignKeys removes foreign keys on order_items.menu_item_id left by older deployments.
// Order lines must outlive a hard-deleted menu item. It returns the number of constraints dropped.
func DropMenuItemForeignKeys(ctx context.Context, db *gorm.DB) (int, error) {
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(&order.Item{}) {
		return 0, nil
	}

	var names []string
	err := db.Raw(`
		SELECT DISTINCT tc.constraint_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND tc.table_schema = current_schema()
			AND tc.table_name = ?
			AND kcu.column_name = ?`, order.Item{}.TableName(), "menu_item_id").
		Scan(&names).Error
	if err != nil {
		return 0, fmt.Errorf("find menu_item_id foreign keys: %w", err)
	}

	for _, name := range names {
		if err := db.Migrator().DropConstraint(&order.Item{}, name); err != nil {
			return 0, fmt.Errorf("drop constraint %s: %w", name, err)
		}
	}
	return len(names), nil
}

// AddPhotoColumn upgrades a menu_items table created before photos were supported.
// It reports whether the column had to be added.
func AddPhotoColumn(ctx context.Context, db *gorm.DB) (bool, error) {
	m := db.WithContext(ctx).Migrator()
	if !m.HasTable(&menu.Item{}) {
		return false, nil
	}
	if m.HasColumn(&menu.Item{}, "PhotoFileID") {
		return false, nil
	}
	if err := m.AddColumn(&menu.Item{}, "PhotoFileID"); err != nil {
		return false, fmt.Errorf("add photo_file_id column: %w", err)
	}
	return true, nil
}
