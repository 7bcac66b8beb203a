package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"cafe-preorder-bot/internal/app"
	"cafe-preorder-bot/internal/bot/customer"
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
	logger.Init("customer-bot", cfg.LogLevel, cfg.Debug)

	rt, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer rt.Close()

	handler := customer.NewHandler(rt.CustomerAPI, rt.Sessions("customer"), rt.Users, rt.Menu, rt.Orders)

	logger.Info().Str("session_backend", cfg.Session.Backend).Msg("Starting customer bot")
	if err := rt.Serve(ctx, "customer", rt.CustomerAPI, handler, cfg.Ops.CustomerAddr); err != nil {
		logger.Error().Err(err).Msg("Customer bot stopped with error")
		return
	}
	logger.Info().Msg("Customer bot stopped")
}
