package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/domain/menu"
	domain "cafe-preorder-bot/internal/domain/order"
)

const (
	CustomerHistoryLimit = 5
	RecentOrdersLimit    = 20
)

// Notifier is told about order events after they are persisted.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o *domain.Order)
	NotifyOrderReady(ctx context.Context, o *domain.Order)
	NotifyOrderCancelled(ctx context.Context, o *domain.Order)
}

type MenuLookup interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*menu.Item, error)
}

// Service owns the order lifecycle: placement and the pending -> ready / cancelled transitions.
type Service struct {
	orders   domain.Repository
	menu     MenuLookup
	notifier Notifier
	now      func() time.Time
}

func NewService(orders domain.Repository, menu MenuLookup, notifier Notifier) *Service {
	return &Service{orders: orders, menu: menu, notifier: notifier, now: time.Now}
}

// Place persists a pending order with one line per cart entry and notifies admins.
// An empty cart is rejected without touching the database.
func (s *Service) Place(ctx context.Context, userID int64, cart map[int64]int, pickup time.Time) (*domain.Order, error) {
	if len(cart) == 0 {
		return nil, apperrors.NewValidationError("cart", "is empty")
	}
	if !pickup.After(s.now()) {
		return nil, apperrors.NewValidationError("pickup_time", "must be in the future")
	}

	o := &domain.Order{
		UserID:     userID,
		PickupTime: pickup,
		Status:     domain.StatusPending,
		Items:      make([]domain.Item, 0, len(cart)),
	}
	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		qty := cart[id]
		if qty < 1 {
			return nil, apperrors.NewValidationError("quantity", fmt.Sprintf("item %d has quantity %d", id, qty))
		}
		o.Items = append(o.Items, domain.Item{MenuItemID: id, Quantity: qty})
	}

	items, err := s.menu.GetByIDs(ctx, o.MenuItemIDs())
	if err != nil {
		return nil, apperrors.NewDatabaseError("lookup cart items", err)
	}
	for _, it := range o.Items {
		if _, ok := items[it.MenuItemID]; !ok {
			return nil, apperrors.NewNotFoundError("menu item", it.MenuItemID)
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, apperrors.NewDatabaseError("create order", err)
	}
	logger.Info().Int64("order_id", o.ID).Int64("user_id", userID).Int("lines", len(o.Items)).Msg("Order placed")

	placed, err := s.orders.GetByID(ctx, o.ID)
	if err != nil || placed == nil {
		logger.Warn().Err(err).Int64("order_id", o.ID).Msg("Failed to reload placed order")
		for i := range o.Items {
			o.Items[i].MenuItem = items[o.Items[i].MenuItemID]
		}
		placed = o
	}
	if s.notifier != nil {
		s.notifier.NotifyNewOrder(ctx, placed)
	}
	return placed, nil
}

// MarkReady moves a pending order to ready. changed is false when the order was already ready;
// the customer is notified only when changed is true.
func (s *Service) MarkReady(ctx context.Context, id int64) (*domain.Order, bool, error) {
	return s.transition(ctx, id, domain.StatusReady)
}

// Cancel moves a pending order to cancelled with the same rules as MarkReady.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Order, bool, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, target domain.Status) (*domain.Order, bool, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if o.Status == target {
		return o, false, nil
	}
	if !o.Status.CanTransition(target) {
		return o, false, apperrors.NewConflictError("order", fmt.Sprintf("already %s", o.Status))
	}

	updated, err := s.orders.UpdateStatusIf(ctx, id, domain.StatusPending, target)
	if err != nil {
		return nil, false, apperrors.NewDatabaseError("update order status", err)
	}
	if !updated {
		// another admin got there first
		o, err = s.load(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if o.Status == target {
			return o, false, nil
		}
		return o, false, apperrors.NewConflictError("order", fmt.Sprintf("already %s", o.Status))
	}

	o.Status = target
	logger.Info().Int64("order_id", id).Str("status", string(target)).Msg("Order status changed")
	if s.notifier != nil {
		switch target {
		case domain.StatusReady:
			s.notifier.NotifyOrderReady(ctx, o)
		case domain.StatusCancelled:
			s.notifier.NotifyOrderCancelled(ctx, o)
		}
	}
	return o, true, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get order", err)
	}
	if o == nil {
		return nil, apperrors.NewNotFoundError("order", id)
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.load(ctx, id)
}

// Active returns pending orders, earliest pickup first.
func (s *Service) Active(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list active orders", err)
	}
	return orders, nil
}

func (s *Service) Recent(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListRecent(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recent orders", err)
	}
	return orders, nil
}

func (s *Service) ForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID, CustomerHistoryLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user orders", err)
	}
	return orders, nil
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return domain.Stats{}, apperrors.NewDatabaseError("order stats", err)
	}
	return stats, nil
}
