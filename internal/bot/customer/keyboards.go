package customer

import (
	"cafe-preorder-bot/internal/bot"
	"cafe-preorder-bot/internal/bot/view"
	"cafe-preorder-bot/internal/domain/menu"
	tg "cafe-preorder-bot/internal/platform/telegram"
)

const (
	btnMenu     = "🍽 Меню"
	btnCart     = "🛒 Мой заказ"
	btnMyOrders = "👤 Мои заказы"
)

const (
	cbCategory         = "category"
	cbAdd              = "add"
	cbBackToCategories = "back_to_categories"
	cbContinueShopping = "continue_shopping"
	cbShowCart         = "show_cart"
	cbClearCart        = "clear_cart"
	cbCheckout         = "checkout"
	cbConfirmOrder     = "confirm_order"
	cbCancelOrder      = "cancel_order"
)

func mainKeyboard() *tg.ReplyKeyboardMarkup {
	return tg.ReplyKeyboard(
		[]string{btnMenu},
		[]string{btnCart, btnMyOrders},
	)
}

func categoriesKeyboard(categories []string) *tg.InlineKeyboardMarkup {
	buttons := make([]tg.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		buttons = append(buttons, tg.Button(c, cbCategory+":"+c))
	}
	return tg.InlineKeyboard(buttons...)
}

func itemsKeyboard(items []menu.Item) *tg.InlineKeyboardMarkup {
	buttons := make([]tg.InlineKeyboardButton, 0, len(items)+1)
	for i := range items {
		buttons = append(buttons, tg.Button(view.ItemLabel(&items[i]), bot.Data(cbAdd, items[i].ID)))
	}
	buttons = append(buttons, tg.Button("⬅️ Назад к категориям", cbBackToCategories))
	return tg.InlineKeyboard(buttons...)
}

func addedKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("🛒 Перейти в корзину", cbShowCart),
		tg.Button("🍽 Продолжить покупки", cbContinueShopping),
	)
}

func cartKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Оформить заказ", cbCheckout),
		tg.Button("🗑 Очистить корзину", cbClearCart),
		tg.Button("🍽 Продолжить покупки", cbContinueShopping),
	)
}

func confirmKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Подтвердить", cbConfirmOrder),
		tg.Button("❌ Отменить", cbCancelOrder),
	)
}

func toMenuKeyboard(label string) *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.Button(label, cbContinueShopping))
}
