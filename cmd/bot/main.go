package main

import (
	"context"
	"log"
	"os"

	"github.com/greentic-ai-org/component-templates/internal/adapters/discord"
	"github.com/greentic-ai-org/component-templates/internal/config"
	"github.com/greentic-ai-org/component-templates/internal/infrastructure/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	configRepo := database.NewChannelConfigRepository(pool)
	stateRepo := database.NewSessionStateRepository(pool)

	bot, err := discord.NewBot(cfg, configRepo, stateRepo)
	if err != nil {
		log.Fatalf("discord error: %v", err)
	}
	if err := bot.Start(); err != nil {
		log.Printf("bot stopped: %v", err)
		os.Exit(1)
	}
}
