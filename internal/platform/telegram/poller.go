package telegram

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"cafe-preorder-bot/internal/common/logger"
)

// Handler processes a single update.
type Handler interface {
	Handle(ctx context.Context, upd *Update) error
}

type HandlerFunc func(ctx context.Context, upd *Update) error

func (f HandlerFunc) Handle(ctx context.Context, upd *Update) error { return f(ctx, upd) }

type updatesSource interface {
	GetUpdates(ctx context.Context, offset int, timeout time.Duration) ([]Update, error)
}

// Poller long-polls getUpdates and feeds updates to a handler one at a time,
// so events of one conversation are never processed concurrently.
type Poller struct {
	source  updatesSource
	handler Handler
	name    string
	timeout time.Duration
	backoff time.Duration
}

func NewPoller(name string, source updatesSource, handler Handler, timeout time.Duration) *Poller {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Poller{
		source:  source,
		handler: handler,
		name:    name,
		timeout: timeout,
		backoff: 3 * time.Second,
	}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	logger.Info().Str("bot", p.name).Dur("timeout", p.timeout).Msg("Starting update polling")
	offset := 0
	for {
		if ctx.Err() != nil {
			logger.Info().Str("bot", p.name).Msg("Update polling stopped")
			return nil
		}

		updates, err := p.source.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Error().Err(err).Str("bot", p.name).Msg("Failed to fetch updates")
			select {
			case <-ctx.Done():
			case <-time.After(p.backoff):
			}
			continue
		}

		for i := range updates {
			p.dispatch(ctx, &updates[i])
			if updates[i].UpdateID >= offset {
				offset = updates[i].UpdateID + 1
			}
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, upd *Update) {
	traceID := uuid.NewString()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("bot", p.name).
				Str("trace_id", traceID).
				Int("update_id", upd.UpdateID).
				Str("panic", fmt.Sprint(r)).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic in update handler")
		}
	}()

	err := p.handler.Handle(ctx, upd)
	ev := logger.Debug()
	if err != nil {
		ev = logger.Error().Err(err)
	}
	ev.Str("bot", p.name).
		Str("trace_id", traceID).
		Int("update_id", upd.UpdateID).
		Int64("chat_id", upd.ChatID()).
		Dur("latency", time.Since(start)).
		Msg("Update handled")
}
