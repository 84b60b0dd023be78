// sheets-import reads the adopted budget workbook from Google Sheets and
// publishes one fact batch per fiscal year to the ingest queue. Run it after
// a new budget is adopted or an amendment lands in the workbook.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/amqp"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/config"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/ingest/google"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: cfg.SlogLevel(), Component: log.ComponentIngest})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the import")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the import")
		os.Exit(1)
	}

	ctx := context.Background()

	sheetsClient, err := google.NewClient(ctx, cfg.GoogleSpreadsheetID, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	byYear, err := sheetsClient.FetchAll(ctx, core.AllFiscalYears)
	if err != nil {
		logger.Error("Failed to fetch budget workbook", log.FieldError, err)
		os.Exit(1)
	}

	for _, year := range core.AllFiscalYears {
		facts := byYear[year]
		if len(facts) == 0 {
			logger.Warn("No facts on sheet, skipping", log.FieldFiscalYear, string(year))
			continue
		}

		msg := amqp.NewFactBatchMessage(year, facts, "sheets-import")
		if err := amqpClient.PublishFactBatch(ctx, msg); err != nil {
			logger.Error("Failed to publish fact batch",
				log.FieldError, err, log.FieldFiscalYear, string(year))
			os.Exit(1)
		}
		logger.Info("Published fact batch",
			log.FieldFiscalYear, string(year), "facts", len(facts))
	}

	logger.Info("Budget workbook import complete")
}
