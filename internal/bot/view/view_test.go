package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/domain/user"
)

func TestPriceAndAmount(t *testing.T) {
	assert.Equal(t, "1200₸", Price(1200))
	assert.Equal(t, "99.5₸", Price(99.5))
	assert.Equal(t, "0₸", Price(0))

	assert.Equal(t, "1,234,568₸", Amount(1234567.8))
	assert.Equal(t, "950₸", Amount(950))
	assert.Equal(t, "1,000₸", Amount(1000))
}

func TestNewOrderForAdmin_RendersRemovedItems(t *testing.T) {
	name := "dan"
	o := &order.Order{
		ID:         12,
		User:       &user.User{TelegramID: 5, Username: &name},
		PickupTime: time.Date(2024, 5, 1, 13, 30, 0, 0, time.Local),
		Items: []order.Item{
			{MenuItemID: 1, Quantity: 2, MenuItem: &menu.Item{ID: 1, Name: "Латте", Price: 1000}},
			{MenuItemID: 9, Quantity: 1},
		},
	}

	text := NewOrderForAdmin(o)
	assert.Contains(t, text, "🆕 Новый заказ #12")
	assert.Contains(t, text, "👤 Пользователь: @dan")
	assert.Contains(t, text, "🕐 Время получения: 13:30")
	assert.Contains(t, text, "• Латте x2 = 2000₸")
	assert.Contains(t, text, "• удалённая позиция #9 x1 = 0₸")
	assert.Contains(t, text, "💰 Итого: 2000₸")
}

func TestCart(t *testing.T) {
	assert.Equal(t, "🛒 Ваша корзина пуста", Cart(nil, nil, nil))

	cart := map[int64]int{1: 2, 2: 1, 3: 1}
	lookup := map[int64]*menu.Item{
		1: {ID: 1, Name: "Чай", Price: 500},
		2: {ID: 2, Name: "Круассан", Price: 750},
	}
	text := Cart(cart, []int64{1, 2, 3}, lookup)
	assert.Contains(t, text, "• Чай x2 = 1000₸")
	assert.Contains(t, text, "• Круассан x1 = 750₸")
	assert.Contains(t, text, "💰 Итого: 1750₸")
}

func TestStats(t *testing.T) {
	text := Stats(order.Stats{Total: 4, Pending: 1, Ready: 2, Cancelled: 1, Revenue: 9000}, 3)
	assert.Contains(t, text, "📊 Всего заказов: 4")
	assert.Contains(t, text, "💰 Общая выручка: 9,000₸")
	assert.Contains(t, text, "📊 Средний чек: 3,000₸")

	empty := Stats(order.Stats{}, 0)
	assert.NotContains(t, empty, "Средний чек")
}

func TestCustomerOrders(t *testing.T) {
	assert.Equal(t, "📝 У вас пока нет заказов", CustomerOrders(nil))

	text := CustomerOrders([]order.Order{{ID: 3, Status: order.StatusReady, PickupTime: time.Now(), CreatedAt: time.Now()}})
	assert.Contains(t, text, "✅ Заказ №3")
	assert.Contains(t, text, "💰 Сумма: 0₸")
}
