package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"log/slog"

	"aiVisibilityGO/internal/api"
	"aiVisibilityGO/internal/citation"
	"aiVisibilityGO/internal/config"
	"aiVisibilityGO/internal/engine"
	"aiVisibilityGO/internal/fetch"
	"aiVisibilityGO/internal/repository"
)

func main() {
	logger := setupLogger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.New()
	if err != nil {
		logger.Error("Failed to create config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	mongoRepo, err := repository.NewMongoRepository(ctx, cfg.MongoDB)
	if err != nil {
		logger.Error("Failed to create MongoDB repository", "error", err)
		os.Exit(1)
	}
	defer mongoRepo.Close(ctx)

	ledger := citation.NewSpendLedger()
	checker := citation.NewChecker(logger, ledger, cfg.Citation.QueryInterval,
		citation.NewChatGPTSource(cfg.Citation.OpenAIKey, cfg.Citation.OpenAIModel),
		citation.NewPerplexitySource(cfg.Citation.PerplexityKey, cfg.Citation.PerplexityModel),
		citation.NewBraveSource(cfg.Citation.BraveKey, cfg.Citation.RequestTimeout),
	)

	eng := engine.New(logger, checker)
	fetcher := fetch.New(logger, cfg.Fetcher.RequestTimeout, cfg.Fetcher.UserAgent)

	server := api.NewServer(cfg, mongoRepo, eng, fetcher, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server failed to start", "error", err)
			cancel()
		}
	}()

	logger.Info("Server started", "port", cfg.Server.Port)

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutting down server...", "total_spend_usd", ledger.Total())

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited properly")
}

func setupLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
