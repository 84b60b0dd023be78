package google

import (
	"testing"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

func TestParseFacts(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Line Item", "Amount"},
		{"Administration", "Payroll Taxes", "$20,389"},
		{"Taxes", "Real Property", "1,400,000"},
		{"", "", ""},
		{"Grants", "Police Grants", "1271246.00"},
	}

	facts, err := parseFacts(values, core.FY24)
	if err != nil {
		t.Fatalf("parseFacts failed: %v", err)
	}
	if len(facts) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(facts))
	}

	if facts[0].Category != "ADMINISTRATION" || facts[0].LineItem != "Payroll Taxes" || facts[0].Amount != 20389 {
		t.Errorf("first fact = %+v", facts[0])
	}
	if facts[1].Amount != 1400000 {
		t.Errorf("second fact amount = %d, want 1400000", facts[1].Amount)
	}
	if facts[2].Amount != 1271246 {
		t.Errorf("third fact amount = %d, want 1271246", facts[2].Amount)
	}
	for _, f := range facts {
		if f.FiscalYear != core.FY24 {
			t.Errorf("fact year = %s, want FY24", f.FiscalYear)
		}
	}
}

func TestParseFactsRejectsBadHeader(t *testing.T) {
	values := [][]interface{}{
		{"Dept", "Item", "Dollars"},
		{"Taxes", "Real Property", "100"},
	}
	if _, err := parseFacts(values, core.FY24); err == nil {
		t.Fatal("expected error for unexpected header row")
	}
}

func TestParseFactsRejectsBadAmount(t *testing.T) {
	values := [][]interface{}{
		{"Category", "Line Item", "Amount"},
		{"Taxes", "Real Property", "a lot"},
	}
	if _, err := parseFacts(values, core.FY24); err == nil {
		t.Fatal("expected error for unparseable amount")
	}
}

func TestParseDollars(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"$6,894,068", 6894068, true},
		{"20389", 20389, true},
		{" 1,100,000 ", 1100000, true},
		{"1271246.00", 1271246, true},
		{"", 0, false},
		{"$", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseDollars(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseDollars(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
