package order

import (
	"time"

	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/user"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether an order may move from s to next.
// Transitions are one-directional: pending -> ready and pending -> cancelled.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && (next == StatusReady || next == StatusCancelled)
}

func (s Status) Emoji() string {
	switch s {
	case StatusPending:
		return "⏳"
	case StatusReady:
		return "✅"
	case StatusCancelled:
		return "❌"
	}
	return "❔"
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "⏳ Ожидает"
	case StatusReady:
		return "✅ Готов"
	case StatusCancelled:
		return "❌ Отменён"
	}
	return string(s)
}

type Order struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64      `json:"user_id" gorm:"not null;index"`
	User       *user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	PickupTime time.Time  `json:"pickup_time" gorm:"not null"`
	Status     Status     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Items      []Item     `json:"items" gorm:"foreignKey:OrderID"`
}

// Item is one order line. MenuItemID is kept without a foreign key constraint:
// a hard-deleted menu item leaves the line with a stale id and MenuItem == nil.
type Item struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    int64      `json:"order_id" gorm:"not null;index"`
	MenuItemID int64      `json:"menu_item_id" gorm:"not null;index"`
	Quantity   int        `json:"quantity" gorm:"not null;default:1"`
	MenuItem   *menu.Item `json:"menu_item,omitempty" gorm:"-"`
}

func (Item) TableName() string { return "order_items" }

// LineTotal is quantity × current menu price; zero when the menu item is gone.
func (i Item) LineTotal() float64 {
	if i.MenuItem == nil {
		return 0
	}
	return i.MenuItem.Price * float64(i.Quantity)
}

// Total is computed at read time from current menu prices; it is never snapshotted.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}

// MenuItemIDs returns the distinct menu item ids referenced by the order.
func (o *Order) MenuItemIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.MenuItemID]; ok {
			continue
		}
		seen[it.MenuItemID] = struct{}{}
		ids = append(ids, it.MenuItemID)
	}
	return ids
}

// Stats aggregates order counters for the admin statistics screen.
type Stats struct {
	Total     int64
	Pending   int64
	Ready     int64
	Cancelled int64
	Revenue   float64
}

func (s Stats) AverageCheck() float64 {
	paid := s.Total - s.Cancelled
	if paid <= 0 {
		return 0
	}
	return s.Revenue / float64(paid)
}
