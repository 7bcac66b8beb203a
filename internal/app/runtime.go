// Package app wires the shared infrastructure of the customer and admin bot processes.
package app

import (
	"context"
	"fmt"
	"time"

	rcache "cafe-preorder-bot/internal/cache/redis"
	"cafe-preorder-bot/internal/common/config"
	"cafe-preorder-bot/internal/common/logger"
	apphttp "cafe-preorder-bot/internal/http"
	"cafe-preorder-bot/internal/platform/postgres"
	rplatform "cafe-preorder-bot/internal/platform/redis"
	"cafe-preorder-bot/internal/platform/telegram"
	pgrepo "cafe-preorder-bot/internal/repository/postgres"
	menusvc "cafe-preorder-bot/internal/service/menu"
	"cafe-preorder-bot/internal/service/notifications"
	ordersvc "cafe-preorder-bot/internal/service/order"
	usersvc "cafe-preorder-bot/internal/service/user"
	"cafe-preorder-bot/internal/session"
)

const userCacheTTL = 10 * time.Minute

// Runtime holds connections and services shared by both bots.
type Runtime struct {
	Config   *config.Config
	Postgres *postgres.Client
	Redis    *rplatform.Client // nil when REDIS_ADDR is empty

	CustomerAPI *telegram.Client
	AdminAPI    *telegram.Client

	Users  *usersvc.Service
	Menu   *menusvc.Service
	Orders *ordersvc.Service
}

// Open connects to Postgres and the optional Redis, makes sure the schema exists and builds the services.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	pg, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pg.Gorm()); err != nil {
		pg.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}

	rdb, err := rplatform.OpenFromConfig(ctx, cfg)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}

	rt := &Runtime{
		Config:      cfg,
		Postgres:    pg,
		Redis:       rdb,
		CustomerAPI: telegram.NewClient(cfg.Telegram.BotToken, telegram.WithBaseURL(cfg.Telegram.APIBaseURL)),
		AdminAPI:    telegram.NewClient(cfg.Telegram.AdminBotToken, telegram.WithBaseURL(cfg.Telegram.APIBaseURL)),
	}

	users := pgrepo.NewUserRepository(pg.Gorm())
	menuRepo := pgrepo.NewMenuRepository(pg.Gorm())
	orders := pgrepo.NewOrderRepository(pg.Gorm())

	rt.Users = usersvc.NewService(users)
	if rdb != nil {
		rt.Users.WithCache(rcache.NewUserCache(rdb, userCacheTTL))
	}
	rt.Menu = menusvc.NewService(menuRepo)

	notifier := notifications.NewService(rt.AdminAPI, rt.CustomerAPI, cfg.Telegram.AdminIDs)
	rt.Orders = ordersvc.NewService(orders, menuRepo, notifier)

	if len(cfg.Telegram.AdminIDs) == 0 {
		logger.Warn().Msg("ALLOWED_ADMIN_IDS is empty, new orders will not be announced")
	}
	return rt, nil
}

// Sessions returns the conversation store configured by SESSION_BACKEND.
func (rt *Runtime) Sessions(bot string) session.Store {
	if rt.Config.Session.Backend == config.SessionBackendRedis && rt.Redis != nil {
		return session.NewRedisStore(rt.Redis, bot, rt.Config.Session.TTL)
	}
	return session.NewMemoryStore()
}

// Checks lists the readiness probes for the ops server.
func (rt *Runtime) Checks() []apphttp.Check {
	checks := []apphttp.Check{{Name: "postgres", Ping: rt.Postgres.HealthCheck}}
	if rt.Redis != nil {
		checks = append(checks, apphttp.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rt.Redis.Ping(ctx).Err()
		}})
	}
	return checks
}

// Serve polls api with handler and runs the ops server until ctx is cancelled or either fails.
func (rt *Runtime) Serve(ctx context.Context, bot string, api *telegram.Client, handler telegram.Handler, opsAddr string) error {
	me, err := api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("getMe: %w", err)
	}
	logger.Info().Str("bot", bot).Str("username", me.Username).Int64("id", me.ID).Msg("Bot authorized")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ops := apphttp.NewOpsServer(bot, opsAddr, rt.Config.Debug, rt.Checks()...)
	opsErr := make(chan error, 1)
	go func() {
		err := ops.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Str("bot", bot).Msg("Ops server failed")
			cancel()
		}
		opsErr <- err
	}()

	pollErr := telegram.NewPoller(bot, api, handler, rt.Config.Telegram.PollTimeout).Run(ctx)
	cancel()
	if err := <-opsErr; err != nil {
		return fmt.Errorf("ops server: %w", err)
	}
	return pollErr
}

func (rt *Runtime) Close() {
	if rt.Redis != nil {
		if err := rt.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close redis")
		}
	}
	if err := rt.Postgres.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close postgres")
	}
}
