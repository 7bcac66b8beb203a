package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"cafe-preorder-bot/internal/app"
	"cafe-preorder-bot/internal/bot/admin"
	"cafe-preorder-bot/internal/common/config"
	"cafe-preorder-bot/internal/common/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init("admin-bot", cfg.LogLevel, cfg.Debug)

	rt, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer rt.Close()

	handler := admin.NewHandler(rt.AdminAPI, rt.Sessions("admin"), cfg.Telegram.AdminIDs, rt.Orders, rt.Menu, rt.Users)

	logger.Info().Int("admins", len(cfg.Telegram.AdminIDs)).Msg("Starting admin bot")
	if err := rt.Serve(ctx, "admin", rt.AdminAPI, handler, cfg.Ops.AdminAddr); err != nil {
		logger.Error().Err(err).Msg("Admin bot stopped with error")
		return
	}
	logger.Info().Msg("Admin bot stopped")
}
