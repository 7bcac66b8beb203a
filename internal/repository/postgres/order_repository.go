package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cafe-preorder-bot/internal/domain/order"
)

// OrderRepository stores orders and their lines in Postgres.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

// Create inserts the order and its items in one transaction. The User association is never written.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("User").Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	db := r.db.WithContext(ctx)
	var o order.Order
	err := withRelations(db).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	orders := []order.Order{o}
	if err := attachMenuItems(db, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepository) UpdateStatusIf(ctx context.Context, id int64, from, next order.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	return res.RowsAffected > 0, res.Error
}

// ListByStatus orders by pickup time, earliest first.
func (r *OrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]order.Order, error) {
	db := r.db.WithContext(ctx)
	var orders []order.Order
	if err := withRelations(db).Where("status = ?", status).Order("pickup_time, id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, attachMenuItems(db, orders)
}

func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	db := r.db.WithContext(ctx)
	var orders []order.Order
	if err := withRelations(db).Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, attachMenuItems(db, orders)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]order.Order, error) {
	db := r.db.WithContext(ctx)
	var orders []order.Order
	err := withRelations(db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, attachMenuItems(db, orders)
}

// Stats counts orders per status. Revenue uses current menu prices over non-cancelled orders;
// lines whose menu item was deleted contribute nothing.
func (r *OrderRepository) Stats(ctx context.Context) (order.Stats, error) {
	db := r.db.WithContext(ctx)
	var stats order.Stats

	var rows []struct {
		Status order.Status
		Count  int64
	}
	if err := db.Model(&order.Order{}).Select("status, count(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return stats, err
	}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case order.StatusPending:
			stats.Pending = row.Count
		case order.StatusReady:
			stats.Ready = row.Count
		case order.StatusCancelled:
			stats.Cancelled = row.Count
		}
	}

	const revenueQuery = `
SELECT COALESCE(SUM(oi.quantity * mi.price), 0)
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
JOIN menu_items mi ON mi.id = oi.menu_item_id
WHERE o.status <> ?`
	if err := db.Raw(revenueQuery, order.StatusCancelled).Scan(&stats.Revenue).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id")
	})
}

// attachMenuItems resolves every order line's menu item with one query.
func attachMenuItems(db *gorm.DB, orders []order.Order) error {
	var ids []int64
	for i := range orders {
		ids = append(ids, orders[i].MenuItemIDs()...)
	}
	items, err := loadMenuItems(db, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].MenuItem = items[orders[i].Items[j].MenuItemID]
		}
	}
	return nil
}
