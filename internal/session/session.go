package session

import (
	"context"
	"encoding/json"
)

// Session is the per-chat conversation state of one bot.
type Session struct {
	ChatID int64
	Step   Step
	Cart   Cart
}

func New(chatID int64) *Session {
	return &Session{ChatID: chatID, Step: Idle{}, Cart: Cart{}}
}

// Reset returns the session to Idle, keeping the cart.
func (s *Session) Reset() {
	s.Step = Idle{}
}

// Store keeps sessions keyed by chat id. Get never returns a nil session for a nil error.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Clear(ctx context.Context, chatID int64) error
}

type sessionJSON struct {
	ChatID int64        `json:"chat_id"`
	Step   stepEnvelope `json:"step"`
	Cart   Cart         `json:"cart,omitempty"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	env, err := encodeStep(s.Step)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sessionJSON{ChatID: s.ChatID, Step: env, Cart: s.Cart})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	step, err := decodeStep(raw.Step)
	if err != nil {
		return err
	}
	s.ChatID = raw.ChatID
	s.Step = step
	s.Cart = raw.Cart
	if s.Cart == nil {
		s.Cart = Cart{}
	}
	return nil
}

func (s *Session) clone() *Session {
	c := &Session{ChatID: s.ChatID, Step: s.Step, Cart: make(Cart, len(s.Cart))}
	for id, qty := range s.Cart {
		c.Cart[id] = qty
	}
	return c
}
