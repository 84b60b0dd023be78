package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/amqp"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/config"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/storage"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: cfg.SlogLevel(), Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting ingest worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the ingest worker")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			log.FieldError, err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	ingestWorker := worker.NewIngestWorker(repo, cfg.IngestBatchSize)

	logger.Info("Consuming fact batches",
		"queue", cfg.AMQPQueue, "batch_size", cfg.IngestBatchSize)
	err = amqpClient.ConsumeFactBatches(ctx, func(msg *amqp.FactBatchMessage) error {
		return ingestWorker.HandleFactBatch(ctx, msg)
	})
	if err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Ingest worker stopped gracefully")
}
