package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/platform/telegram"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string, markup telegram.ReplyMarkup) (*telegram.Message, error) {
	args := m.Called(ctx, chatID, text, markup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*telegram.Message), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewOrder(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) NotifyOrderReady(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}

func (m *MockNotifier) NotifyOrderCancelled(ctx context.Context, o *order.Order) {
	m.Called(ctx, o)
}
