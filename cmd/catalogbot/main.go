package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/app"
	"github.com/bradykim7/shopfront/internal/bot"
	"github.com/bradykim7/shopfront/pkg/config"
	"github.com/bradykim7/shopfront/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New("catalogbot", logger.Options{Dir: cfg.LogDir, Development: cfg.IsDevelopment})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := cfg.ValidateBot(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	// Create context that will be canceled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shop, err := app.OpenCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer func() {
		if err := shop.Close(); err != nil {
			log.Error("Error closing catalog", zap.Error(err))
		}
	}()
	go shop.RefreshEvery(ctx, cfg.CatalogRefreshMinutes)

	discordBot, err := bot.New(cfg, shop.Store, shop.Collections, log)
	if err != nil {
		log.Fatal("Failed to initialize bot", zap.Error(err))
	}

	if err := discordBot.Start(ctx); err != nil {
		log.Fatal("Bot error", zap.Error(err))
	}

	log.Info("Discord bot shut down successfully")
}
