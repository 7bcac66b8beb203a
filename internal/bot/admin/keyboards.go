package admin

import (
	"fmt"

	"cafe-preorder-bot/internal/bot"
	"cafe-preorder-bot/internal/bot/view"
	"cafe-preorder-bot/internal/domain/menu"
	tg "cafe-preorder-bot/internal/platform/telegram"
)

const (
	btnActiveOrders = "📋 Активные заказы"
	btnAllOrders    = "📊 Все заказы"
	btnStats        = "📈 Статистика"
	btnMenu         = "🍽 Управление меню"
)

const (
	cbReady         = "ready"
	cbCancel        = "cancel"
	cbConfirmCancel = "confirm_cancel"
	cbCancelAction  = "cancel_action"

	cbAddItem          = "add_menu_item"
	cbAddPhoto         = "add_photo"
	cbSaveWithoutPhoto = "save_without_photo"

	cbEditMenu   = "edit_menu_item"
	cbEditItem   = "edit_item"
	cbEditField  = "edit_field"
	cbDeleteMenu = "delete_menu_item"
	cbDeleteItem = "delete_item"
	cbConfirmDel = "confirm_delete"
	cbCancelDel  = "cancel_delete"

	cbCategories       = "manage_categories"
	cbRenameCategories = "rename_category"
	cbDeleteCategories = "delete_category"
	cbRenameCategory   = "cat_ren"
	cbDeleteCategory   = "cat_del"
	cbConfirmCatDelete = "cat_del_ok"

	cbPhotos        = "add_photos"
	cbPhotoCategory = "photo_category"
	cbPhotoAll      = "photo_all_items"
	cbPhotoTo       = "add_photo_to"
)

func mainKeyboard() *tg.ReplyKeyboardMarkup {
	return tg.ReplyKeyboard(
		[]string{btnActiveOrders},
		[]string{btnAllOrders, btnStats},
		[]string{btnMenu},
	)
}

func orderActionsKeyboard(orderID int64) *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Готов", bot.Data(cbReady, orderID)),
		tg.Button("❌ Отменить", bot.Data(cbCancel, orderID)),
	)
}

func confirmCancelKeyboard(orderID int64) *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Да, отменить заказ", bot.Data(cbConfirmCancel, orderID)),
		tg.Button("❌ Нет, вернуться", cbCancelAction),
	)
}

func menuManagementKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("➕ Добавить позицию", cbAddItem),
		tg.Button("✏️ Редактировать позицию", cbEditMenu),
		tg.Button("🗑 Удалить позицию", cbDeleteMenu),
		tg.Button("📂 Управление категориями", cbCategories),
		tg.Button("📸 Добавить фотографии", cbPhotos),
	)
}

func photoChoiceKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("📸 Добавить фото", cbAddPhoto),
		tg.Button("✅ Сохранить без фото", cbSaveWithoutPhoto),
	)
}

func availabilityMark(it *menu.Item) string {
	if it.IsAvailable {
		return "✅"
	}
	return "❌"
}

// itemsKeyboard lists items with a status mark, each button carrying action:<id>.
func itemsKeyboard(items []menu.Item, action string) *tg.InlineKeyboardMarkup {
	buttons := make([]tg.InlineKeyboardButton, 0, len(items))
	for i := range items {
		label := fmt.Sprintf("%s %s", availabilityMark(&items[i]), view.ItemLabel(&items[i]))
		buttons = append(buttons, tg.Button(label, bot.Data(action, items[i].ID)))
	}
	return tg.InlineKeyboard(buttons...)
}

func fieldsKeyboard(itemID int64) *tg.InlineKeyboardMarkup {
	field := func(label string, f menu.Field) tg.InlineKeyboardButton {
		return tg.Button(label, fmt.Sprintf("%s:%d:%s", cbEditField, itemID, f))
	}
	return tg.InlineKeyboard(
		field("📂 Категория", menu.FieldCategory),
		field("🍽 Название", menu.FieldName),
		field("💰 Цена", menu.FieldPrice),
		field("📸 Фото", menu.FieldPhoto),
		field("🔄 Доступность", menu.FieldAvailability),
	)
}

func confirmDeleteKeyboard(itemID int64) *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Да, удалить", bot.Data(cbConfirmDel, itemID)),
		tg.Button("❌ Отмена", cbCancelDel),
	)
}

func categoriesKeyboard() *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("➕ Добавить категорию", cbAddItem),
		tg.Button("✏️ Переименовать категорию", cbRenameCategories),
		tg.Button("🗑 Удалить категорию", cbDeleteCategories),
	)
}

func categoryPickKeyboard(counts []menu.CategoryCount, action string) *tg.InlineKeyboardMarkup {
	buttons := make([]tg.InlineKeyboardButton, 0, len(counts))
	for _, c := range counts {
		buttons = append(buttons, tg.Button(fmt.Sprintf("📂 %s (%d)", c.Category, c.Count), action+":"+c.Category))
	}
	return tg.InlineKeyboard(buttons...)
}

func confirmCategoryDeleteKeyboard(category string) *tg.InlineKeyboardMarkup {
	return tg.InlineKeyboard(
		tg.Button("✅ Да, удалить категорию", cbConfirmCatDelete+":"+category),
		tg.Button("❌ Отмена", cbCancelDel),
	)
}

func fieldPrompt(f menu.Field) string {
	switch f {
	case menu.FieldCategory:
		return "📂 Введите новую категорию:"
	case menu.FieldName:
		return "🍽 Введите новое название:"
	case menu.FieldPrice:
		return "💰 Введите новую цену (в тенге):"
	}
	return "📸 Отправьте новую фотографию:"
}

func fieldLabel(f menu.Field) string {
	switch f {
	case menu.FieldCategory:
		return "Категория"
	case menu.FieldName:
		return "Название"
	case menu.FieldPrice:
		return "Цена"
	}
	return string(f)
}
