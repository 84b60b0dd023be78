package amqp

import (
	"encoding/json"
	"time"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

// FactBatchMessage carries one fiscal year's worth of budget facts through
// the ingest queue. The worker replaces the year's facts atomically, so a
// batch must contain the complete set for that year.
type FactBatchMessage struct {
	FiscalYear core.FiscalYear   `json:"fiscal_year"`
	Facts      []core.BudgetFact `json:"facts"`
	Source     string            `json:"source"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewFactBatchMessage creates a batch message for one fiscal year.
func NewFactBatchMessage(year core.FiscalYear, facts []core.BudgetFact, source string) *FactBatchMessage {
	return &FactBatchMessage{
		FiscalYear: year,
		Facts:      facts,
		Source:     source,
		Timestamp:  time.Now(),
	}
}

// Validate checks that every fact belongs to the batch year and is well
// formed before the batch is published or applied.
func (m *FactBatchMessage) Validate() error {
	if _, err := core.ParseFiscalYear(string(m.FiscalYear)); err != nil {
		return err
	}
	for _, f := range m.Facts {
		if err := f.Validate(); err != nil {
			return err
		}
		if f.FiscalYear != m.FiscalYear {
			return core.ErrUnknownFiscalYear
		}
	}
	return nil
}

// ToJSON converts the message to JSON bytes.
func (m *FactBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FactBatchMessageFromJSON creates a message from JSON bytes.
func FactBatchMessageFromJSON(data []byte) (*FactBatchMessage, error) {
	var msg FactBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
