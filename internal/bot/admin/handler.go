package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cafe-preorder-bot/internal/bot"
	"cafe-preorder-bot/internal/bot/view"
	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
	tg "cafe-preorder-bot/internal/platform/telegram"
	"cafe-preorder-bot/internal/session"
)

const (
	textNoRights = "❌ У вас нет прав для использования этого бота."
	textWelcome  = "👨‍💼 Добро пожаловать в админ-панель кафе!\n\n" +
		"Здесь вы можете:\n" +
		"📋 Управлять заказами\n" +
		"🍽 Редактировать меню\n" +
		"📊 Просматривать статистику"
	textNoActive       = "📋 Нет активных заказов"
	textMenuManagement = "🍽 Управление меню:\n\nВыберите действие:"
	textOrderNotFound  = "Заказ не найден"
	textItemNotFound   = "❌ Позиция не найдена"
	textAskCategory    = "📝 Введите категорию нового блюда:"
	textBadCategory    = "❌ Категория должна быть непустой и не длиннее 48 байт. Попробуйте снова:"
	textAskName        = "📝 Введите название блюда:"
	textBadName        = "❌ Название не может быть пустым. Попробуйте снова:"
	textAskPrice       = "💰 Введите цену блюда (в тенге):"
	textBadPrice       = "❌ Неверный формат цены. Введите число:"
	textAskPhotoChoice = "Хотите добавить фотографию для этого блюда?"
	textAskNewPhoto    = "📸 Отправьте фотографию нового блюда:"
	textExpectPhoto    = "📸 Отправьте фотографию (не файлом):"
	textBadValue       = "❌ Неверный формат данных. Попробуйте снова:"
	textDeleteCanceled = "❌ Удаление отменено"
	textAllHavePhotos  = "✅ У всех позиций уже есть фотографии!"
	textMenuEmpty      = "❌ В меню нет позиций"
	textNoCategories   = "📂 Категорий пока нет"
	textUseButtons     = "Используйте кнопки меню 👇"
	textStale          = "Это действие устарело"
	textError          = "⚠️ Что-то пошло не так. Попробуйте ещё раз."
)

type Admins interface {
	Contains(id int64) bool
}

type Orders interface {
	MarkReady(ctx context.Context, id int64) (*order.Order, bool, error)
	Cancel(ctx context.Context, id int64) (*order.Order, bool, error)
	Active(ctx context.Context) ([]order.Order, error)
	Recent(ctx context.Context) ([]order.Order, error)
	Stats(ctx context.Context) (order.Stats, error)
}

type Menu interface {
	All(ctx context.Context) ([]menu.Item, error)
	Item(ctx context.Context, id int64) (*menu.Item, error)
	Create(ctx context.Context, draft menu.Item) (*menu.Item, error)
	UpdateField(ctx context.Context, id int64, field menu.Field, value string) (*menu.Item, error)
	SetPhoto(ctx context.Context, id int64, fileID string) (*menu.Item, error)
	ToggleAvailability(ctx context.Context, id int64) (*menu.Item, error)
	Delete(ctx context.Context, id int64) (*menu.Item, error)
	CategoryCounts(ctx context.Context) ([]menu.CategoryCount, error)
	RenameCategory(ctx context.Context, from, to string) (int64, error)
	DeleteCategory(ctx context.Context, category string) (int64, error)
	WithoutPhoto(ctx context.Context, category string) ([]menu.Item, error)
}

type Users interface {
	Count(ctx context.Context) (int64, error)
}

// Handler serves allow-listed admins: order handling, statistics and menu management.
// Updates from other accounts get a refusal on /start and are ignored otherwise.
type Handler struct {
	reply    bot.Replier
	sessions session.Store
	admins   Admins
	orders   Orders
	menu     Menu
	users    Users
}

func NewHandler(api bot.API, sessions session.Store, admins Admins, orders Orders, menu Menu, users Users) *Handler {
	return &Handler{
		reply:    bot.NewReplier(api, "admin"),
		sessions: sessions,
		admins:   admins,
		orders:   orders,
		menu:     menu,
		users:    users,
	}
}

func (h *Handler) Handle(ctx context.Context, upd *tg.Update) error {
	sender := upd.Sender()
	chatID := upd.ChatID()
	if sender == nil || chatID == 0 {
		return nil
	}
	if err := h.authorize(sender.ID); apperrors.IsForbidden(err) {
		if upd.Message != nil && upd.Message.Command() == "start" {
			h.reply.Send(ctx, chatID, textNoRights, nil)
		}
		logger.Warn().Err(err).Int64("telegram_id", sender.ID).Msg("Rejected update")
		return nil
	}

	sess, err := h.sessions.Get(ctx, chatID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	switch {
	case upd.CallbackQuery != nil:
		h.handleCallback(ctx, sess, upd.CallbackQuery)
	case upd.Message != nil:
		h.handleMessage(ctx, sess, upd.Message)
	}
	if err := h.sessions.Put(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (h *Handler) authorize(telegramID int64) error {
	if !h.admins.Contains(telegramID) {
		return apperrors.NewForbiddenError("not an admin").WithDetail("telegram_id", telegramID)
	}
	return nil
}

func (h *Handler) handleMessage(ctx context.Context, sess *session.Session, msg *tg.Message) {
	if msg.Command() == "start" {
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, textWelcome, mainKeyboard())
		return
	}

	// main keyboard buttons abandon any unfinished wizard
	switch msg.Text {
	case btnActiveOrders:
		sess.Reset()
		h.showActiveOrders(ctx, sess)
		return
	case btnAllOrders:
		sess.Reset()
		h.showRecentOrders(ctx, sess)
		return
	case btnStats:
		sess.Reset()
		h.showStats(ctx, sess)
		return
	case btnMenu:
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, textMenuManagement, menuManagementKeyboard())
		return
	}

	if photo := msg.LargestPhoto(); photo != nil {
		h.handlePhoto(ctx, sess, photo.FileID)
		return
	}

	text := strings.TrimSpace(msg.Text)
	switch step := sess.Step.(type) {
	case session.AddItemCategory:
		if !menu.ValidCategory(text) {
			h.reply.Send(ctx, sess.ChatID, textBadCategory, nil)
			return
		}
		sess.Step = session.AddItemName{Category: text}
		h.reply.Send(ctx, sess.ChatID, textAskName, nil)
	case session.AddItemName:
		if text == "" {
			h.reply.Send(ctx, sess.ChatID, textBadName, nil)
			return
		}
		sess.Step = session.AddItemPrice{Category: step.Category, Name: text}
		h.reply.Send(ctx, sess.ChatID, textAskPrice, nil)
	case session.AddItemPrice:
		price, err := menu.ParsePrice(text)
		if err != nil {
			h.reply.Send(ctx, sess.ChatID, textBadPrice, nil)
			return
		}
		sess.Step = session.AddItemPhoto{Draft: menu.Item{Category: step.Category, Name: step.Name, Price: price}}
		h.reply.Send(ctx, sess.ChatID, textAskPhotoChoice, photoChoiceKeyboard())
	case session.EditItemValue:
		h.applyEdit(ctx, sess, step, text)
	case session.RenameCategory:
		h.renameCategory(ctx, sess, step.Category, text)
	case session.AddItemPhoto, session.AttachPhoto:
		h.reply.Send(ctx, sess.ChatID, textExpectPhoto, nil)
	default:
		h.reply.Send(ctx, sess.ChatID, textUseButtons, mainKeyboard())
	}
}

func (h *Handler) handlePhoto(ctx context.Context, sess *session.Session, fileID string) {
	switch step := sess.Step.(type) {
	case session.AddItemPhoto:
		draft := step.Draft
		draft.PhotoFileID = &fileID
		item, err := h.menu.Create(ctx, draft)
		if err != nil {
			h.fail(ctx, sess, err)
			return
		}
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, "✅ Новое блюдо с фото добавлено:\n"+view.ItemSummary(item), nil)
	case session.AttachPhoto:
		sess.Reset()
		item, err := h.menu.SetPhoto(ctx, step.ItemID, fileID)
		if apperrors.IsNotFound(err) {
			h.reply.Send(ctx, sess.ChatID, textItemNotFound, nil)
			return
		}
		if err != nil {
			h.fail(ctx, sess, err)
			return
		}
		h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("✅ Фото добавлено для '%s'!", item.Name), nil)
	default:
		h.reply.Send(ctx, sess.ChatID, textUseButtons, mainKeyboard())
	}
}

func (h *Handler) applyEdit(ctx context.Context, sess *session.Session, step session.EditItemValue, value string) {
	item, err := h.menu.UpdateField(ctx, step.ItemID, step.Field, value)
	switch {
	case apperrors.IsValidation(err):
		h.reply.Send(ctx, sess.ChatID, textBadValue, nil)
		return
	case apperrors.IsNotFound(err):
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, textItemNotFound, nil)
		return
	case err != nil:
		sess.Reset()
		h.fail(ctx, sess, err)
		return
	}
	sess.Reset()
	h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("✅ %s обновлено успешно!\n\n%s", fieldLabel(step.Field), view.ItemCard(item)), nil)
}

func (h *Handler) renameCategory(ctx context.Context, sess *session.Session, from, to string) {
	n, err := h.menu.RenameCategory(ctx, from, to)
	switch {
	case apperrors.IsValidation(err):
		h.reply.Send(ctx, sess.ChatID, textBadCategory, nil)
		return
	case apperrors.IsNotFound(err):
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, "❌ Категория не найдена", nil)
		return
	case err != nil:
		sess.Reset()
		h.fail(ctx, sess, err)
		return
	}
	sess.Reset()
	h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("✅ Категория '%s' переименована в '%s' (%d позиций)", from, to, n), nil)
}

func (h *Handler) handleCallback(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery) {
	action, arg := bot.SplitData(cb.Data)
	answer := ""

	switch action {
	case cbReady:
		answer = h.markReady(ctx, sess, cb, arg)
	case cbCancel:
		answer = h.askCancel(ctx, sess, cb, arg)
	case cbConfirmCancel:
		answer = h.confirmCancel(ctx, sess, cb, arg)
	case cbCancelAction:
		h.reply.Delete(ctx, sess.ChatID, cb.Message)

	case cbAddItem:
		sess.Step = session.AddItemCategory{}
		h.reply.Send(ctx, sess.ChatID, textAskCategory, nil)
	case cbAddPhoto:
		if _, ok := sess.Step.(session.AddItemPhoto); !ok {
			answer = textStale
			break
		}
		h.reply.Send(ctx, sess.ChatID, textAskNewPhoto, nil)
	case cbSaveWithoutPhoto:
		answer = h.saveWithoutPhoto(ctx, sess, cb)

	case cbEditMenu:
		h.listItems(ctx, sess, cbEditItem, "✏️ Выберите позицию для редактирования:")
	case cbEditItem:
		answer = h.showItemFields(ctx, sess, cb, arg)
	case cbEditField:
		answer = h.chooseField(ctx, sess, arg)
	case cbDeleteMenu:
		h.listItems(ctx, sess, cbDeleteItem, "🗑 Выберите позицию для удаления:")
	case cbDeleteItem:
		answer = h.askDeleteItem(ctx, sess, cb, arg)
	case cbConfirmDel:
		answer = h.deleteItem(ctx, sess, cb, arg)
	case cbCancelDel:
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textDeleteCanceled, nil)

	case cbCategories:
		h.showCategories(ctx, sess)
	case cbRenameCategories:
		h.pickCategory(ctx, sess, cbRenameCategory, "✏️ Выберите категорию для переименования:")
	case cbDeleteCategories:
		h.pickCategory(ctx, sess, cbDeleteCategory, "🗑 Выберите категорию для удаления:")
	case cbRenameCategory:
		sess.Step = session.RenameCategory{Category: arg}
		h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("✏️ Введите новое название для категории '%s':", arg), nil)
	case cbDeleteCategory:
		text := fmt.Sprintf("⚠️ Удалить категорию '%s' вместе со всеми её позициями?\n\n❗ Это действие нельзя отменить!", arg)
		h.reply.Edit(ctx, sess.ChatID, cb.Message, text, confirmCategoryDeleteKeyboard(arg))
	case cbConfirmCatDelete:
		h.deleteCategory(ctx, sess, cb, arg)

	case cbPhotos:
		h.showPhotoCategories(ctx, sess, cb)
	case cbPhotoCategory:
		h.showItemsWithoutPhoto(ctx, sess, cb, arg)
	case cbPhotoAll:
		h.showItemsWithoutPhoto(ctx, sess, cb, "")
	case cbPhotoTo:
		answer = h.startAttachPhoto(ctx, sess, arg)
	default:
		answer = textStale
	}
	h.reply.Answer(ctx, cb, answer)
}

func (h *Handler) showActiveOrders(ctx context.Context, sess *session.Session) {
	orders, err := h.orders.Active(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(orders) == 0 {
		h.reply.Send(ctx, sess.ChatID, textNoActive, nil)
		return
	}
	h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("📋 Активных заказов: %d", len(orders)), nil)
	for i := range orders {
		h.reply.Send(ctx, sess.ChatID, view.OrderDetails(&orders[i]), orderActionsKeyboard(orders[i].ID))
	}
}

func (h *Handler) showRecentOrders(ctx context.Context, sess *session.Session) {
	orders, err := h.orders.Recent(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	h.reply.Send(ctx, sess.ChatID, view.RecentOrders(orders), nil)
}

func (h *Handler) showStats(ctx context.Context, sess *session.Session) {
	stats, err := h.orders.Stats(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	users, err := h.users.Count(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to count users")
	}
	h.reply.Send(ctx, sess.ChatID, view.Stats(stats, users), nil)
}

// transitionAnswer maps order transition errors to a callback answer.
func transitionAnswer(err error) string {
	switch {
	case apperrors.IsNotFound(err):
		return textOrderNotFound
	case apperrors.IsConflict(err):
		return "⚠️ Статус заказа уже изменён"
	}
	return textError
}

func (h *Handler) markReady(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	_, changed, err := h.orders.MarkReady(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) && !apperrors.IsConflict(err) {
			logger.Error().Err(err).Int64("order_id", id).Msg("Failed to mark order ready")
		}
		return transitionAnswer(err)
	}
	if !changed {
		return "Заказ уже отмечен как готовый"
	}
	h.reply.Edit(ctx, sess.ChatID, cb.Message, messageText(cb.Message)+"\n\n✅ Заказ отмечен как готовый", nil)
	return ""
}

func (h *Handler) askCancel(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	text := fmt.Sprintf("⚠️ Вы уверены, что хотите отменить заказ #%d?\nПользователь получит уведомление об отмене.", id)
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, confirmCancelKeyboard(id))
	return ""
}

func (h *Handler) confirmCancel(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	_, changed, err := h.orders.Cancel(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) && !apperrors.IsConflict(err) {
			logger.Error().Err(err).Int64("order_id", id).Msg("Failed to cancel order")
		}
		return transitionAnswer(err)
	}
	if !changed {
		return "Заказ уже отменён"
	}
	h.reply.Edit(ctx, sess.ChatID, cb.Message, messageText(cb.Message)+"\n\n❌ Заказ отменен", nil)
	return ""
}

func (h *Handler) saveWithoutPhoto(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery) string {
	step, ok := sess.Step.(session.AddItemPhoto)
	if !ok {
		return textStale
	}
	item, err := h.menu.Create(ctx, step.Draft)
	if err != nil {
		h.fail(ctx, sess, err)
		return ""
	}
	sess.Reset()
	h.reply.Edit(ctx, sess.ChatID, cb.Message, "✅ Новое блюдо добавлено:\n"+view.ItemSummary(item), nil)
	return ""
}

func (h *Handler) listItems(ctx context.Context, sess *session.Session, action, title string) {
	items, err := h.menu.All(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(items) == 0 {
		h.reply.Send(ctx, sess.ChatID, textMenuEmpty, nil)
		return
	}
	h.reply.Send(ctx, sess.ChatID, title, itemsKeyboard(items, action))
}

func (h *Handler) showItemFields(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	item, err := h.menu.Item(ctx, id)
	if err != nil {
		return h.itemError(ctx, sess, err)
	}
	text := fmt.Sprintf("✏️ Редактирование: %s\n\n%s\n\nЧто хотите изменить?", item.Name, view.ItemCard(item))
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, fieldsKeyboard(item.ID))
	return ""
}

// chooseField handles "<id>:<field>".
func (h *Handler) chooseField(ctx context.Context, sess *session.Session, arg string) string {
	rawID, rawField, _ := strings.Cut(arg, ":")
	id, ok := bot.ParseID(rawID)
	field := menu.Field(rawField)
	if !ok || !field.Valid() {
		return textStale
	}

	switch field {
	case menu.FieldAvailability:
		item, err := h.menu.ToggleAvailability(ctx, id)
		if err != nil {
			return h.itemError(ctx, sess, err)
		}
		sess.Reset()
		status := "недоступна"
		if item.IsAvailable {
			status = "доступна"
		}
		h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("✅ Позиция '%s' теперь %s", item.Name, status), nil)
	case menu.FieldPhoto:
		sess.Step = session.AttachPhoto{ItemID: id}
		h.reply.Send(ctx, sess.ChatID, fieldPrompt(field), nil)
	default:
		sess.Step = session.EditItemValue{ItemID: id, Field: field}
		h.reply.Send(ctx, sess.ChatID, fieldPrompt(field), nil)
	}
	return ""
}

func (h *Handler) askDeleteItem(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	item, err := h.menu.Item(ctx, id)
	if err != nil {
		return h.itemError(ctx, sess, err)
	}
	text := fmt.Sprintf("⚠️ Вы уверены, что хотите удалить:\n\n🍽 %s\n📂 %s\n💰 %s\n\n❗ Это действие нельзя отменить!",
		item.Name, item.Category, view.Price(item.Price))
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, confirmDeleteKeyboard(id))
	return ""
}

func (h *Handler) deleteItem(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	item, err := h.menu.Delete(ctx, id)
	if apperrors.IsNotFound(err) {
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textItemNotFound, nil)
		return ""
	}
	if err != nil {
		h.fail(ctx, sess, err)
		return ""
	}
	h.reply.Edit(ctx, sess.ChatID, cb.Message, fmt.Sprintf("✅ Позиция '%s' успешно удалена из меню", item.Name), nil)
	return ""
}

func (h *Handler) showCategories(ctx context.Context, sess *session.Session) {
	counts, err := h.menu.CategoryCounts(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(counts) == 0 {
		h.reply.Send(ctx, sess.ChatID, textNoCategories, categoriesKeyboard())
		return
	}
	var b strings.Builder
	b.WriteString("📂 Категории в меню:\n\n")
	for i, c := range counts {
		fmt.Fprintf(&b, "%d. %s (%d позиций)\n", i+1, c.Category, c.Count)
	}
	h.reply.Send(ctx, sess.ChatID, strings.TrimRight(b.String(), "\n"), categoriesKeyboard())
}

func (h *Handler) pickCategory(ctx context.Context, sess *session.Session, action, title string) {
	counts, err := h.menu.CategoryCounts(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(counts) == 0 {
		h.reply.Send(ctx, sess.ChatID, textNoCategories, nil)
		return
	}
	h.reply.Send(ctx, sess.ChatID, title, categoryPickKeyboard(counts, action))
}

func (h *Handler) deleteCategory(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, category string) {
	n, err := h.menu.DeleteCategory(ctx, category)
	if apperrors.IsNotFound(err) {
		h.reply.Edit(ctx, sess.ChatID, cb.Message, "❌ Категория не найдена", nil)
		return
	}
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	h.reply.Edit(ctx, sess.ChatID, cb.Message, fmt.Sprintf("✅ Категория '%s' удалена (%d позиций)", category, n), nil)
}

func (h *Handler) showPhotoCategories(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery) {
	items, err := h.menu.WithoutPhoto(ctx, "")
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(items) == 0 {
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textAllHavePhotos, nil)
		return
	}

	perCategory := map[string]int64{}
	for _, it := range items {
		perCategory[it.Category]++
	}
	counts := make([]menu.CategoryCount, 0, len(perCategory))
	for c, n := range perCategory {
		counts = append(counts, menu.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })

	kb := categoryPickKeyboard(counts, cbPhotoCategory)
	kb.InlineKeyboard = append(kb.InlineKeyboard, []tg.InlineKeyboardButton{tg.Button("📸 Показать все позиции", cbPhotoAll)})
	text := fmt.Sprintf("📸 Позиций без фотографий: %d\n\nВыберите категорию:", len(items))
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, kb)
}

// showItemsWithoutPhoto lists one category, or every category when category is empty.
func (h *Handler) showItemsWithoutPhoto(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery, category string) {
	items, err := h.menu.WithoutPhoto(ctx, category)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	if len(items) == 0 {
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textAllHavePhotos, nil)
		return
	}

	buttons := make([]tg.InlineKeyboardButton, 0, len(items)+1)
	for i := range items {
		label := "📸 " + view.ItemLabel(&items[i])
		if category == "" {
			label = fmt.Sprintf("📸 %s (%s) - %s", items[i].Name, items[i].Category, view.Price(items[i].Price))
		}
		buttons = append(buttons, tg.Button(label, bot.Data(cbPhotoTo, items[i].ID)))
	}
	buttons = append(buttons, tg.Button("⬅️ Назад к категориям", cbPhotos))

	text := fmt.Sprintf("📸 Все позиции без фотографий (%d):\nВыберите позицию для добавления фото:", len(items))
	if category != "" {
		text = fmt.Sprintf("📂 Категория: %s\n📸 Позиций без фото: %d\n\nВыберите позицию для добавления фото:", category, len(items))
	}
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, tg.InlineKeyboard(buttons...))
}

func (h *Handler) startAttachPhoto(ctx context.Context, sess *session.Session, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	item, err := h.menu.Item(ctx, id)
	if err != nil {
		return h.itemError(ctx, sess, err)
	}
	sess.Step = session.AttachPhoto{ItemID: id}
	h.reply.Send(ctx, sess.ChatID, fmt.Sprintf("📸 Отправьте фотографию для '%s':", item.Name), nil)
	return ""
}

func (h *Handler) itemError(ctx context.Context, sess *session.Session, err error) string {
	if apperrors.IsNotFound(err) {
		h.reply.Send(ctx, sess.ChatID, textItemNotFound, nil)
		return ""
	}
	h.fail(ctx, sess, err)
	return ""
}

func (h *Handler) fail(ctx context.Context, sess *session.Session, err error) {
	logger.Error().Err(err).Int64("chat_id", sess.ChatID).Msg("Admin request failed")
	h.reply.Send(ctx, sess.ChatID, textError, nil)
}

func messageText(msg *tg.Message) string {
	if msg == nil {
		return ""
	}
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}
