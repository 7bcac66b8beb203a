// Package view renders orders, carts and menu items as chat text shared by both bots.
package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
)

const (
	TimeLayout     = "15:04"
	DateTimeLayout = "02.01.2006 15:04"
	removedItem    = "удалённая позиция"
)

// Price formats a tenge amount without trailing zeros: 1200 -> "1200₸", 99.5 -> "99.5₸".
func Price(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "₸"
}

// Amount formats a rounded amount with thousands separators: 1234567.8 -> "1,234,568₸".
func Amount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String() + "₸"
	}
	return b.String() + "₸"
}

func Clock(t time.Time) string { return t.Local().Format(TimeLayout) }

func DateTime(t time.Time) string { return t.Local().Format(DateTimeLayout) }

// ItemLabel is the button label of a menu item.
func ItemLabel(it *menu.Item) string {
	return fmt.Sprintf("%s - %s", it.Name, Price(it.Price))
}

func writeLines(b *strings.Builder, items []order.Item) {
	for _, it := range items {
		if it.MenuItem == nil {
			fmt.Fprintf(b, "• %s #%d x%d = %s\n", removedItem, it.MenuItemID, it.Quantity, Price(0))
			continue
		}
		fmt.Fprintf(b, "• %s x%d = %s\n", it.MenuItem.Name, it.Quantity, Price(it.LineTotal()))
	}
}

// Cart renders cart contents. Items missing from lookup are skipped.
func Cart(cart map[int64]int, ids []int64, lookup map[int64]*menu.Item) string {
	if len(cart) == 0 {
		return "🛒 Ваша корзина пуста"
	}
	var b strings.Builder
	b.WriteString("🛒 Ваша корзина:\n\n")
	var total float64
	for _, id := range ids {
		item, ok := lookup[id]
		if !ok {
			continue
		}
		line := item.Price * float64(cart[id])
		total += line
		fmt.Fprintf(&b, "• %s x%d = %s\n", item.Name, cart[id], Price(line))
	}
	fmt.Fprintf(&b, "\n💰 Итого: %s", Price(total))
	return b.String()
}

// NewOrderForAdmin is the notification sent to admins when a customer confirms an order.
func NewOrderForAdmin(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 Новый заказ #%d\n\n", o.ID)
	fmt.Fprintf(&b, "👤 Пользователь: %s\n", o.User.DisplayName())
	fmt.Fprintf(&b, "🕐 Время получения: %s\n\n", Clock(o.PickupTime))
	b.WriteString("📝 Состав заказа:\n")
	writeLines(&b, o.Items)
	fmt.Fprintf(&b, "\n💰 Итого: %s", Price(o.Total()))
	return b.String()
}

// OrderDetails is the full order card shown in the admin active orders list.
func OrderDetails(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆔 Заказ #%d\n", o.ID)
	if o.User != nil {
		fmt.Fprintf(&b, "👤 Пользователь: %s (ID: %d)\n", o.User.DisplayName(), o.User.TelegramID)
	}
	fmt.Fprintf(&b, "📅 Создан: %s\n", DateTime(o.CreatedAt))
	fmt.Fprintf(&b, "🕐 Время получения: %s\n", DateTime(o.PickupTime))
	fmt.Fprintf(&b, "📊 Статус: %s\n\n", o.Status.Label())
	b.WriteString("📝 Состав заказа:\n")
	writeLines(&b, o.Items)
	fmt.Fprintf(&b, "\n💰 Итого: %s", Price(o.Total()))
	return b.String()
}

// RecentOrders is the compact admin list of latest orders.
func RecentOrders(orders []order.Order) string {
	if len(orders) == 0 {
		return "📊 Заказов пока нет"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Последние %d заказов:\n\n", len(orders))
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(&b, "%s Заказ #%d\n", o.Status.Emoji(), o.ID)
		fmt.Fprintf(&b, "👤 %s\n", o.User.DisplayName())
		fmt.Fprintf(&b, "💰 %s | 🕐 %s\n\n", Price(o.Total()), Clock(o.PickupTime))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CustomerOrders lists a customer's own orders.
func CustomerOrders(orders []order.Order) string {
	if len(orders) == 0 {
		return "📝 У вас пока нет заказов"
	}
	var b strings.Builder
	b.WriteString("📝 Ваши последние заказы:\n\n")
	for i := range orders {
		o := &orders[i]
		fmt.Fprintf(&b, "%s Заказ №%d\n", o.Status.Emoji(), o.ID)
		fmt.Fprintf(&b, "🕐 Время получения: %s\n", Clock(o.PickupTime))
		fmt.Fprintf(&b, "📅 Создан: %s\n", DateTime(o.CreatedAt))
		fmt.Fprintf(&b, "💰 Сумма: %s\n\n", Price(o.Total()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func Stats(s order.Stats, users int64) string {
	var b strings.Builder
	b.WriteString("📈 Статистика кафе:\n\n")
	fmt.Fprintf(&b, "📊 Всего заказов: %d\n", s.Total)
	fmt.Fprintf(&b, "⏳ Активных заказов: %d\n", s.Pending)
	fmt.Fprintf(&b, "✅ Готовых заказов: %d\n", s.Ready)
	fmt.Fprintf(&b, "❌ Отменённых заказов: %d\n", s.Cancelled)
	fmt.Fprintf(&b, "👥 Клиентов: %d\n", users)
	fmt.Fprintf(&b, "💰 Общая выручка: %s", Amount(s.Revenue))
	if s.Total-s.Cancelled > 0 {
		fmt.Fprintf(&b, "\n📊 Средний чек: %s", Amount(s.AverageCheck()))
	}
	return b.String()
}

func ItemCard(it *menu.Item) string {
	photo, available := "Нет", "Нет"
	if it.HasPhoto() {
		photo = "Есть"
	}
	if it.IsAvailable {
		available = "Да"
	}
	return fmt.Sprintf("📂 Категория: %s\n🍽 Название: %s\n💰 Цена: %s\n📸 Фото: %s\n🔄 Доступность: %s",
		it.Category, it.Name, Price(it.Price), photo, available)
}

// ItemSummary is shown after an item is created.
func ItemSummary(it *menu.Item) string {
	return fmt.Sprintf("📂 Категория: %s\n🍽 Название: %s\n💰 Цена: %s", it.Category, it.Name, Price(it.Price))
}

func OrderReady(o *order.Order) string {
	return fmt.Sprintf("✅ Ваш заказ №%d готов к выдаче!\n🕐 Время получения: %s", o.ID, Clock(o.PickupTime))
}

func OrderCancelled(o *order.Order) string {
	return fmt.Sprintf("❌ Ваш заказ №%d был отменен администратором.\nЕсли у вас есть вопросы, обратитесь к администрации кафе.", o.ID)
}
