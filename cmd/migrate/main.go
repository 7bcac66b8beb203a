// Command migrate brings an existing database up to the current schema without starting the bots.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"cafe-preorder-bot/internal/common/config"
	"cafe-preorder-bot/internal/common/logger"
	"cafe-preorder-bot/internal/platform/postgres"
)

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init("migrate", cfg.LogLevel, cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	added, err := postgres.AddPhotoColumn(ctx, pg.Gorm())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to add photo column")
	}
	if added {
		logger.Info().Msg("Column photo_file_id added to menu_items")
	} else {
		logger.Info().Msg("Column photo_file_id already present")
	}

	dropped, err := postgres.DropMenuItemForeignKeys(ctx, pg.Gorm())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to drop order_items.menu_item_id foreign keys")
	}
	logger.Info().Int("dropped", dropped).Msg("Checked order_items.menu_item_id foreign keys")

	if err := postgres.EnsureSchema(ctx, pg.Gorm()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate schema")
	}
	logger.Info().Msg("Schema is up to date")
}
