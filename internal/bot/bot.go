// Package bot holds the pieces shared by the customer and admin chat handlers.
package bot

import (
	"context"
	"strconv"
	"strings"

	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/platform/telegram"
)

// API is the subset of the Bot API the handlers use.
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup telegram.ReplyMarkup) (*telegram.Message, error)
	SendPhoto(ctx context.Context, chatID int64, photo, caption string, markup telegram.ReplyMarkup) (*telegram.Message, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Replier sends handler output. Transport errors are logged and swallowed:
// a failed reply never fails the update.
type Replier struct {
	api  API
	name string
}

func NewReplier(api API, name string) Replier {
	return Replier{api: api, name: name}
}

func (r Replier) Send(ctx context.Context, chatID int64, text string, markup telegram.ReplyMarkup) {
	if _, err := r.api.SendMessage(ctx, chatID, text, markup); err != nil {
		logger.Error().Err(err).Str("bot", r.name).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// SendPhoto falls back to a text message when the photo cannot be delivered.
func (r Replier) SendPhoto(ctx context.Context, chatID int64, photo, caption string, markup telegram.ReplyMarkup) {
	if _, err := r.api.SendPhoto(ctx, chatID, photo, caption, markup); err != nil {
		logger.Error().Err(err).Str("bot", r.name).Int64("chat_id", chatID).Msg("Failed to send photo")
		r.Send(ctx, chatID, caption, markup)
	}
}

// Edit replaces the text of msg in place, or sends a new message when it cannot be edited
// (photo messages, messages too old to edit).
func (r Replier) Edit(ctx context.Context, chatID int64, msg *telegram.Message, text string, markup *telegram.InlineKeyboardMarkup) {
	if msg != nil && len(msg.Photo) == 0 {
		err := r.api.EditMessageText(ctx, chatID, msg.MessageID, text, markup)
		if err == nil || telegram.IsMessageNotModified(err) {
			return
		}
		logger.Warn().Err(err).Str("bot", r.name).Int64("chat_id", chatID).Msg("Failed to edit message, sending new one")
	}
	r.Send(ctx, chatID, text, markup)
}

// Replace deletes msg and sends a photo in its place.
func (r Replier) Replace(ctx context.Context, chatID int64, msg *telegram.Message, photo, caption string, markup *telegram.InlineKeyboardMarkup) {
	r.Delete(ctx, chatID, msg)
	r.SendPhoto(ctx, chatID, photo, caption, markup)
}

func (r Replier) Delete(ctx context.Context, chatID int64, msg *telegram.Message) {
	if msg == nil {
		return
	}
	if err := r.api.DeleteMessage(ctx, chatID, msg.MessageID); err != nil {
		logger.Warn().Err(err).Str("bot", r.name).Int64("chat_id", chatID).Msg("Failed to delete message")
	}
}

func (r Replier) Answer(ctx context.Context, cb *telegram.CallbackQuery, text string) {
	if err := r.api.AnswerCallbackQuery(ctx, cb.ID, text); err != nil {
		logger.Warn().Err(err).Str("bot", r.name).Msg("Failed to answer callback query")
	}
}

// SplitData splits callback data "action:arg" into its parts.
func SplitData(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// ParseID parses a positive numeric callback argument.
func ParseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	return id, err == nil && id > 0
}

// Data builds callback data from an action and an id.
func Data(action string, id int64) string {
	return action + ":" + strconv.FormatInt(id, 10)
}
