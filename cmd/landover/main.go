package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget/memory"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/classifier"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/config"
	apphttp "github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/http"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/resolver"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/storage"
)

func main() {
	// .env is optional, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: cfg.SlogLevel(), Component: log.ComponentApp})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var (
		reader budget.BudgetReader
		pinger apphttp.Pinger
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite backend",
				log.FieldError, err, "db_path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		reader, pinger = repo, repo
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	default:
		reader = memory.NewSeededStore()
		logger.Info("Initialized memory backend with seed dataset")
	}

	completeness := cfg.Completeness()

	var cls classifier.Classifier = classifier.Rules{}
	if cfg.GeminiAPIKey != "" {
		gem, err := classifier.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("Gemini classifier unavailable, using rules",
				log.FieldError, err)
		} else {
			cls = gem
			logger.Info("Initialized Gemini classifier", "model", cfg.GeminiModel)
		}
	}

	res := resolver.New(reader, completeness, logger)
	srv := apphttp.NewServer(":"+cfg.Port, reader, res, cls, completeness, pinger, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting budget assistant server",
		"port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
