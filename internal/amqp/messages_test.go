package amqp

import (
	"testing"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

func TestFactBatchMessageRoundTrip(t *testing.T) {
	msg := NewFactBatchMessage(core.FY25, []core.BudgetFact{
		{FiscalYear: core.FY25, Category: "TAXES", LineItem: "Real Property", Amount: 1481200},
	}, "sheets-import")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := FactBatchMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}
	if decoded.FiscalYear != core.FY25 {
		t.Errorf("fiscal year = %s, want FY25", decoded.FiscalYear)
	}
	if len(decoded.Facts) != 1 || decoded.Facts[0].Amount != 1481200 {
		t.Errorf("facts = %+v", decoded.Facts)
	}
	if decoded.Source != "sheets-import" {
		t.Errorf("source = %q", decoded.Source)
	}
}

func TestFactBatchMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     *FactBatchMessage
		wantErr bool
	}{
		{
			name: "valid batch",
			msg: NewFactBatchMessage(core.FY24, []core.BudgetFact{
				{FiscalYear: core.FY24, Category: "GRANTS", LineItem: "Police Grants", Amount: 1271246},
			}, "test"),
			wantErr: false,
		},
		{
			name:    "unknown year",
			msg:     NewFactBatchMessage("FY99", nil, "test"),
			wantErr: true,
		},
		{
			name: "fact outside batch year",
			msg: NewFactBatchMessage(core.FY24, []core.BudgetFact{
				{FiscalYear: core.FY25, Category: "TAXES", LineItem: "Real Property", Amount: 1},
			}, "test"),
			wantErr: true,
		},
		{
			name: "fact missing category",
			msg: NewFactBatchMessage(core.FY24, []core.BudgetFact{
				{FiscalYear: core.FY24, Category: "", LineItem: "Salaries", Amount: 1},
			}, "test"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactBatchMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := FactBatchMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
