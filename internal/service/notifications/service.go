package notifications

import (
	"context"
	"fmt"
	"strconv"

	"cafe-preorder-bot/internal/bot/view"
	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/platform/telegram"
)

// Sender delivers a text message from one bot identity.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup telegram.ReplyMarkup) (*telegram.Message, error)
}

// Service relays order events between the two bots: new orders go to every admin through
// the admin bot, status changes go to the customer through the customer bot.
// Delivery is best effort; failures are logged and never returned.
type Service struct {
	admin    Sender
	customer Sender
	adminIDs []int64
}

func NewService(admin, customer Sender, adminIDs []int64) *Service {
	return &Service{admin: admin, customer: customer, adminIDs: adminIDs}
}

// ReadyKeyboard is attached to admin order cards.
func ReadyKeyboard(orderID int64) *telegram.InlineKeyboardMarkup {
	return telegram.InlineKeyboard(telegram.Button("✅ Заказ готов", "ready:"+strconv.FormatInt(orderID, 10)))
}

// NotifyNewOrder sends the order summary to every admin.
func (s *Service) NotifyNewOrder(ctx context.Context, o *order.Order) {
	if s == nil || s.admin == nil || o == nil {
		return
	}
	text := view.NewOrderForAdmin(o)
	kb := ReadyKeyboard(o.ID)
	for _, adminID := range s.adminIDs {
		if _, err := s.admin.SendMessage(ctx, adminID, text, kb); err != nil {
			logger.Error().Err(err).Int64("admin_id", adminID).Int64("order_id", o.ID).Msg("Failed to notify admin about new order")
		}
	}
}

func (s *Service) NotifyOrderReady(ctx context.Context, o *order.Order) {
	s.notifyCustomer(ctx, o, view.OrderReady(o), "ready")
}

func (s *Service) NotifyOrderCancelled(ctx context.Context, o *order.Order) {
	s.notifyCustomer(ctx, o, view.OrderCancelled(o), "cancelled")
}

func (s *Service) notifyCustomer(ctx context.Context, o *order.Order, text, event string) {
	if s == nil || s.customer == nil || o == nil {
		return
	}
	if o.User == nil {
		logger.Warn().Int64("order_id", o.ID).Str("event", event).Msg("Order has no loaded user, customer not notified")
		return
	}
	if _, err := s.customer.SendMessage(ctx, o.User.TelegramID, text, nil); err != nil {
		logger.Error().
			Err(fmt.Errorf("notify %s: %w", event, err)).
			Int64("order_id", o.ID).
			Int64("telegram_id", o.User.TelegramID).
			Msg("Failed to notify customer")
	}
}
