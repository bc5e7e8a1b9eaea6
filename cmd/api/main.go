package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RodCacioli/Authos-v2/infrastructure/config"
	"github.com/RodCacioli/Authos-v2/infrastructure/di"
	"github.com/RodCacioli/Authos-v2/interfaces/http/rest"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Ignore missing .env, env vars may come from the shell
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		panic(err)
	}
	logger := container.Logger
	defer func() { _ = logger.Sync() }()

	router := rest.NewRouter(
		rest.Services{
			Profiles:   container.Profiles,
			Memories:   container.Memories,
			Products:   container.Products,
			Drafts:     container.Drafts,
			Chat:       container.Chat,
			Generation: container.Generation,
		},
		container.Local,
		container.Verifier,
		container.Metrics,
		logger,
		cfg.EnableCORS,
		cfg.EnableMetrics,
	)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := container.Publisher.Start(cfg.PublishSchedule); err != nil {
		logger.Error("failed to start draft publisher", zap.Error(err))
	}

	go func() {
		logger.Info("server starting",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	container.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
