package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/app"
	"github.com/bradykim7/shopfront/internal/render"
	"github.com/bradykim7/shopfront/internal/web"
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
	log, err := logger.New("shopfront", logger.Options{Dir: cfg.LogDir, Development: cfg.IsDevelopment})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

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

	renderer, err := render.New()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	server := web.NewServer(shop.Store, shop.Collections, renderer, cfg.PageSize, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("Received shutdown signal, gracefully shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Storefront listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.Int("products", len(shop.Store.Snapshot().Products)))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("listen", zap.Error(err))
	}

	log.Info("Storefront shut down successfully")
}
