package mocks

import (
	"context"
	"sync"

	"cafe-preorder-bot/internal/platform/telegram"
)

// SentMessage is one message recorded by FakeBotAPI.
type SentMessage struct {
	ChatID int64
	Text   string
	Photo  string
	Markup telegram.ReplyMarkup
}

type EditedMessage struct {
	ChatID    int64
	MessageID int
	Text      string
	Markup    *telegram.InlineKeyboardMarkup
}

// FakeBotAPI records outbound Bot API calls in memory.
type FakeBotAPI struct {
	mu       sync.Mutex
	nextID   int
	Sent     []SentMessage
	Edited   []EditedMessage
	Deleted  []int
	Answers  []string
	SendErr  error
	PhotoErr error
	EditErr  error
	outbox   []string
}

func NewFakeBotAPI() *FakeBotAPI { return &FakeBotAPI{nextID: 100} }

func (f *FakeBotAPI) SendMessage(_ context.Context, chatID int64, text string, markup telegram.ReplyMarkup) (*telegram.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	f.nextID++
	f.Sent = append(f.Sent, SentMessage{ChatID: chatID, Text: text, Markup: markup})
	f.outbox = append(f.outbox, text)
	return &telegram.Message{MessageID: f.nextID, Chat: telegram.Chat{ID: chatID}, Text: text}, nil
}

func (f *FakeBotAPI) SendPhoto(_ context.Context, chatID int64, photo, caption string, markup telegram.ReplyMarkup) (*telegram.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PhotoErr != nil {
		return nil, f.PhotoErr
	}
	f.nextID++
	f.Sent = append(f.Sent, SentMessage{ChatID: chatID, Text: caption, Photo: photo, Markup: markup})
	f.outbox = append(f.outbox, caption)
	return &telegram.Message{MessageID: f.nextID, Chat: telegram.Chat{ID: chatID}, Caption: caption}, nil
}

func (f *FakeBotAPI) EditMessageText(_ context.Context, chatID int64, messageID int, text string, markup *telegram.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edited = append(f.Edited, EditedMessage{ChatID: chatID, MessageID: messageID, Text: text, Markup: markup})
	if f.EditErr == nil {
		f.outbox = append(f.outbox, text)
	}
	return f.EditErr
}

func (f *FakeBotAPI) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, messageID)
	return nil
}

func (f *FakeBotAPI) AnswerCallbackQuery(_ context.Context, _ string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Answers = append(f.Answers, text)
	return nil
}

// Texts returns texts and captions sent to chatID, in order.
func (f *FakeBotAPI) Texts(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.Sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

// Last returns the newest text that reached the chat, sent or edited.
func (f *FakeBotAPI) Last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.outbox) == 0 {
		return ""
	}
	return f.outbox[len(f.outbox)-1]
}

// SentMarkup returns the markup of the newest sent message.
func (f *FakeBotAPI) SentMarkup() telegram.ReplyMarkup {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		return nil
	}
	return f.Sent[len(f.Sent)-1].Markup
}
