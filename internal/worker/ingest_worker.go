// Package worker applies ingested budget fact batches to storage.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/amqp"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
)

// IngestWorker consumes fact batches from the queue and replaces the year's
// facts in storage. Replacement is per fiscal year, so re-importing a sheet
// is idempotent.
type IngestWorker struct {
	writer    budget.FactWriter
	batchSize int
}

func NewIngestWorker(writer budget.FactWriter, batchSize int) *IngestWorker {
	return &IngestWorker{
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleFactBatch processes a single fact batch message from AMQP.
func (w *IngestWorker) HandleFactBatch(ctx context.Context, msg *amqp.FactBatchMessage) error {
	slog.InfoContext(ctx, "Processing fact batch",
		"fiscal_year", string(msg.FiscalYear),
		"facts", len(msg.Facts),
		"source", msg.Source)

	if len(msg.Facts) > w.batchSize {
		return fmt.Errorf("batch of %d facts exceeds limit %d", len(msg.Facts), w.batchSize)
	}

	if err := w.writer.ReplaceYear(ctx, msg.FiscalYear, msg.Facts); err != nil {
		return fmt.Errorf("replace facts for %s: %w", msg.FiscalYear, err)
	}

	slog.InfoContext(ctx, "Fact batch applied",
		"fiscal_year", string(msg.FiscalYear),
		"facts", len(msg.Facts))
	return nil
}
