package customer

import (
	"context"
	"fmt"
	"time"

	"cafe-preorder-bot/internal/bot"
	"cafe-preorder-bot/internal/bot/view"
	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/domain/menu"
	"cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/domain/user"
	tg "cafe-preorder-bot/internal/platform/telegram"
	"cafe-preorder-bot/internal/session"
)

const (
	textWelcome       = "Добро пожаловать в систему предзаказа еды! 🍽\n\nВыберите действие:"
	textChooseCat     = "Выберите категорию:"
	textMenuEmpty     = "🍽 Меню пока пусто. Загляните позже!"
	textCartEmpty     = "🛒 Ваша корзина пуста!"
	textAskTime       = "🕐 Введите время, к которому нужно приготовить заказ\nФормат: ЧЧ:ММ (например, 13:30)"
	textBadTime       = "❌ Неверный формат времени. Пожалуйста, введите время в формате ЧЧ:ММ (например, 13:30)"
	textTimePassed    = "⌛ Указанное время уже прошло. Введите новое время в формате ЧЧ:ММ:"
	textCartCleared   = "🛒 Корзина очищена"
	textOrderCanceled = "❌ Заказ отменен"
	textItemGone      = "😔 Некоторые позиции больше недоступны. Корзина очищена, выберите блюда заново."
	textUnavailable   = "Позиция недоступна"
	textStale         = "Это действие устарело"
	textUseButtons    = "Используйте кнопки меню 👇"
	textError         = "⚠️ Что-то пошло не так. Попробуйте ещё раз."
)

type Users interface {
	GetOrCreate(ctx context.Context, telegramID int64, username string) (*user.User, error)
}

type Menu interface {
	Categories(ctx context.Context) ([]string, error)
	AvailableItems(ctx context.Context, category string) ([]menu.Item, error)
	Item(ctx context.Context, id int64) (*menu.Item, error)
	Lookup(ctx context.Context, ids []int64) (map[int64]*menu.Item, error)
}

type Orders interface {
	Place(ctx context.Context, userID int64, cart map[int64]int, pickup time.Time) (*order.Order, error)
	ForUser(ctx context.Context, userID int64) ([]order.Order, error)
}

// Handler drives the customer conversation: browse, fill the cart, pick a time, confirm.
type Handler struct {
	reply    bot.Replier
	sessions session.Store
	users    Users
	menu     Menu
	orders   Orders
	now      func() time.Time
}

func NewHandler(api bot.API, sessions session.Store, users Users, menu Menu, orders Orders) *Handler {
	return &Handler{
		reply:    bot.NewReplier(api, "customer"),
		sessions: sessions,
		users:    users,
		menu:     menu,
		orders:   orders,
		now:      time.Now,
	}
}

func (h *Handler) Handle(ctx context.Context, upd *tg.Update) error {
	chatID := upd.ChatID()
	if chatID == 0 {
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

func (h *Handler) handleMessage(ctx context.Context, sess *session.Session, msg *tg.Message) {
	if msg.Command() == "start" {
		h.start(ctx, sess, msg)
		return
	}

	// main keyboard buttons abandon time entry and confirmation, the cart is kept
	switch msg.Text {
	case btnMenu:
		h.showCategories(ctx, sess, nil)
		return
	case btnCart:
		sess.Reset()
		h.showCart(ctx, sess, nil)
		return
	case btnMyOrders:
		sess.Reset()
		h.showMyOrders(ctx, sess, msg.From)
		return
	}

	if _, ok := sess.Step.(session.ChoosingTime); ok && msg.Text != "" {
		h.enterPickupTime(ctx, sess, msg.Text)
		return
	}
	h.reply.Send(ctx, sess.ChatID, textUseButtons, mainKeyboard())
}

func (h *Handler) start(ctx context.Context, sess *session.Session, msg *tg.Message) {
	if msg.From != nil {
		if _, err := h.users.GetOrCreate(ctx, msg.From.ID, msg.From.Username); err != nil {
			logger.Error().Err(err).Int64("telegram_id", msg.From.ID).Msg("Failed to register customer")
		}
	}
	sess.Reset()
	h.reply.Send(ctx, sess.ChatID, textWelcome, mainKeyboard())
}

func (h *Handler) handleCallback(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery) {
	action, arg := bot.SplitData(cb.Data)
	answer := ""

	switch action {
	case cbCategory:
		h.showCategory(ctx, sess, cb.Message, arg)
	case cbBackToCategories, cbContinueShopping:
		h.showCategories(ctx, sess, cb.Message)
	case cbAdd:
		answer = h.addToCart(ctx, sess, cb.Message, arg)
	case cbShowCart:
		h.showCart(ctx, sess, cb.Message)
	case cbClearCart:
		sess.Cart.Clear()
		sess.Reset()
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textCartCleared, toMenuKeyboard("🍽 Перейти к меню"))
	case cbCheckout:
		h.checkout(ctx, sess, cb.Message)
	case cbConfirmOrder:
		answer = h.confirm(ctx, sess, cb)
	case cbCancelOrder:
		answer = h.cancel(ctx, sess, cb.Message)
	default:
		answer = textStale
	}
	h.reply.Answer(ctx, cb, answer)
}

// showCategories edits msg when given, otherwise sends a new message.
func (h *Handler) showCategories(ctx context.Context, sess *session.Session, msg *tg.Message) {
	cats, err := h.menu.Categories(ctx)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	sess.Step = session.ChoosingCategory{}
	if len(cats) == 0 {
		h.editOrSend(ctx, sess, msg, textMenuEmpty, nil)
		return
	}
	h.editOrSend(ctx, sess, msg, textChooseCat, categoriesKeyboard(cats))
}

func (h *Handler) showCategory(ctx context.Context, sess *session.Session, msg *tg.Message, category string) {
	items, err := h.menu.AvailableItems(ctx, category)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	sess.Step = session.ChoosingItem{Category: category}

	text := fmt.Sprintf("Категория: %s\nВыберите блюдо:", category)
	if len(items) == 0 {
		text = fmt.Sprintf("Категория: %s\nСейчас здесь нет доступных блюд.", category)
	}
	kb := itemsKeyboard(items)
	for i := range items {
		if items[i].HasPhoto() {
			h.reply.Replace(ctx, sess.ChatID, msg, *items[i].PhotoFileID, text, kb)
			return
		}
	}
	h.reply.Edit(ctx, sess.ChatID, msg, text, kb)
}

func (h *Handler) addToCart(ctx context.Context, sess *session.Session, msg *tg.Message, arg string) string {
	id, ok := bot.ParseID(arg)
	if !ok {
		return textStale
	}
	item, err := h.menu.Item(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Error().Err(err).Int64("item_id", id).Msg("Failed to load menu item")
		}
		return textUnavailable
	}
	if !item.IsAvailable {
		return textUnavailable
	}

	sess.Cart.Add(item.ID)
	text := fmt.Sprintf("✅ %s добавлен в корзину!\n\nЧто делаем дальше?", item.Name)
	if item.HasPhoto() {
		h.reply.Replace(ctx, sess.ChatID, msg, *item.PhotoFileID, text, addedKeyboard())
	} else {
		h.reply.Edit(ctx, sess.ChatID, msg, text, addedKeyboard())
	}
	return ""
}

func (h *Handler) cartText(ctx context.Context, cart session.Cart) (string, error) {
	if cart.IsEmpty() {
		return view.Cart(nil, nil, nil), nil
	}
	ids := cart.IDs()
	items, err := h.menu.Lookup(ctx, ids)
	if err != nil {
		return "", err
	}
	return view.Cart(cart, ids, items), nil
}

func (h *Handler) showCart(ctx context.Context, sess *session.Session, msg *tg.Message) {
	text, err := h.cartText(ctx, sess.Cart)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	h.editOrSend(ctx, sess, msg, text, cartKeyboard())
}

func (h *Handler) checkout(ctx context.Context, sess *session.Session, msg *tg.Message) {
	if sess.Cart.IsEmpty() {
		h.reply.Edit(ctx, sess.ChatID, msg, textCartEmpty, nil)
		return
	}
	sess.Step = session.ChoosingTime{}
	h.reply.Edit(ctx, sess.ChatID, msg, textAskTime, nil)
}

func (h *Handler) enterPickupTime(ctx context.Context, sess *session.Session, input string) {
	if sess.Cart.IsEmpty() {
		sess.Reset()
		h.reply.Send(ctx, sess.ChatID, textCartEmpty, mainKeyboard())
		return
	}
	pickup, err := order.ParsePickupTime(input, h.now())
	if err != nil {
		h.reply.Send(ctx, sess.ChatID, textBadTime, nil)
		return
	}
	cartText, err := h.cartText(ctx, sess.Cart)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	sess.Step = session.Confirming{PickupAt: pickup}
	text := fmt.Sprintf("%s\n\n🕐 Время получения: %s\n\n❓ Подтвердить заказ?", cartText, view.Clock(pickup))
	h.reply.Send(ctx, sess.ChatID, text, confirmKeyboard())
}

func (h *Handler) confirm(ctx context.Context, sess *session.Session, cb *tg.CallbackQuery) string {
	step, ok := sess.Step.(session.Confirming)
	if !ok || sess.Cart.IsEmpty() {
		return textStale
	}

	u, err := h.users.GetOrCreate(ctx, cb.From.ID, cb.From.Username)
	if err != nil {
		h.fail(ctx, sess, err)
		return ""
	}

	placed, err := h.orders.Place(ctx, u.ID, sess.Cart, step.PickupAt)
	switch {
	case apperrors.IsValidation(err):
		sess.Step = session.ChoosingTime{}
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textTimePassed, nil)
		return ""
	case apperrors.IsNotFound(err):
		sess.Cart.Clear()
		sess.Reset()
		h.reply.Edit(ctx, sess.ChatID, cb.Message, textItemGone, toMenuKeyboard("🍽 Вернуться к меню"))
		return ""
	case err != nil:
		h.fail(ctx, sess, err)
		return ""
	}

	sess.Cart.Clear()
	sess.Reset()
	text := fmt.Sprintf("✅ Заказ №%d успешно оформлен!\n\n🕐 Время получения: %s\n📍 Заказ будет готов в указанное время.",
		placed.ID, view.Clock(placed.PickupTime))
	h.reply.Edit(ctx, sess.ChatID, cb.Message, text, nil)
	return ""
}

func (h *Handler) cancel(ctx context.Context, sess *session.Session, msg *tg.Message) string {
	if _, ok := sess.Step.(session.Confirming); !ok {
		return textStale
	}
	sess.Cart.Clear()
	sess.Reset()
	h.reply.Edit(ctx, sess.ChatID, msg, textOrderCanceled, toMenuKeyboard("🍽 Вернуться к меню"))
	return ""
}

func (h *Handler) showMyOrders(ctx context.Context, sess *session.Session, from *tg.User) {
	if from == nil {
		return
	}
	u, err := h.users.GetOrCreate(ctx, from.ID, from.Username)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	orders, err := h.orders.ForUser(ctx, u.ID)
	if err != nil {
		h.fail(ctx, sess, err)
		return
	}
	h.reply.Send(ctx, sess.ChatID, view.CustomerOrders(orders), nil)
}

func (h *Handler) editOrSend(ctx context.Context, sess *session.Session, msg *tg.Message, text string, kb *tg.InlineKeyboardMarkup) {
	if msg != nil {
		h.reply.Edit(ctx, sess.ChatID, msg, text, kb)
		return
	}
	var markup tg.ReplyMarkup
	if kb != nil {
		markup = kb
	}
	h.reply.Send(ctx, sess.ChatID, text, markup)
}

func (h *Handler) fail(ctx context.Context, sess *session.Session, err error) {
	logger.Error().Err(err).Int64("chat_id", sess.ChatID).Msg("Customer request failed")
	h.reply.Send(ctx, sess.ChatID, textError, nil)
}
