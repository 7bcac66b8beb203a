package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIURL  = "https://api.telegram.org"
	requestTimeout = 10 * time.Second
)

// Client is a minimal Telegram Bot API client for one bot identity.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		// per-call deadlines come from contexts; long polling needs more than requestTimeout
		httpClient: &http.Client{},
		baseURL:    DefaultAPIURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-ok reply from the Bot API.
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// IsMessageNotModified reports the harmless error returned when an edit changes nothing.
func IsMessageNotModified(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && strings.Contains(apiErr.Description, "message is not modified")
}

type tgResponse[T any] struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      T      `json:"result"`
}

// GetUpdates long-polls for new message and callback updates starting at offset.
func (c *Client) GetUpdates(ctx context.Context, offset int, timeout time.Duration) ([]Update, error) {
	params := url.Values{
		"offset":          {strconv.Itoa(offset)},
		"timeout":         {strconv.Itoa(int(timeout.Seconds()))},
		"allowed_updates": {`["message","callback_query"]`},
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+requestTimeout)
	defer cancel()

	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup ReplyMarkup) (*Message, error) {
	params := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"text":    {text},
	}
	if err := setMarkup(params, markup); err != nil {
		return nil, err
	}
	var msg Message
	if err := c.callWithTimeout(ctx, "sendMessage", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendPhoto sends a photo by Telegram file id.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo, caption string, markup ReplyMarkup) (*Message, error) {
	params := url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"photo":   {photo},
	}
	if caption != "" {
		params.Set("caption", caption)
	}
	if err := setMarkup(params, markup); err != nil {
		return nil, err
	}
	var msg Message
	if err := c.callWithTimeout(ctx, "sendPhoto", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error {
	params := url.Values{
		"chat_id":    {strconv.FormatInt(chatID, 10)},
		"message_id": {strconv.Itoa(messageID)},
		"text":       {text},
	}
	if err := setMarkup(params, markup); err != nil {
		return err
	}
	// result is the edited Message or true for inline messages
	var result json.RawMessage
	return c.callWithTimeout(ctx, "editMessageText", params, &result)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	params := url.Values{
		"chat_id":    {strconv.FormatInt(chatID, 10)},
		"message_id": {strconv.Itoa(messageID)},
	}
	var ok bool
	return c.callWithTimeout(ctx, "deleteMessage", params, &ok)
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	params := url.Values{"callback_query_id": {callbackID}}
	if text != "" {
		params.Set("text", text)
	}
	var ok bool
	return c.callWithTimeout(ctx, "answerCallbackQuery", params, &ok)
}

// GetMe returns the bot's own account.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var me User
	if err := c.callWithTimeout(ctx, "getMe", url.Values{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func setMarkup(params url.Values, markup ReplyMarkup) error {
	switch m := markup.(type) {
	case nil:
		return nil
	case *InlineKeyboardMarkup:
		if m == nil {
			return nil
		}
	case *ReplyKeyboardMarkup:
		if m == nil {
			return nil
		}
	}
	raw, err := json.Marshal(markup)
	if err != nil {
		return fmt.Errorf("marshal reply_markup: %w", err)
	}
	params.Set("reply_markup", string(raw))
	return nil
}

func (c *Client) callWithTimeout(ctx context.Context, method string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return c.call(ctx, method, params, out)
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to send request: %w", method, err)
	}
	defer resp.Body.Close()

	var result tgResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%s: failed to parse response (status %d): %w", method, resp.StatusCode, err)
	}
	if !result.Ok {
		return &APIError{Method: method, Code: result.ErrorCode, Description: result.Description}
	}
	if out == nil || len(result.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Result, out); err != nil {
		return fmt.Errorf("%s: failed to decode result: %w", method, err)
	}
	return nil
}
