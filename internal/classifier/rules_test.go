package classifier

import (
	"context"
	"testing"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

func TestRulesClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     core.Intent
	}{
		{
			name:     "year total with explicit year",
			question: "What is the total budget for FY25?",
			want:     core.Intent{Action: core.ActionYearTotal, Year: core.FY25},
		},
		{
			name:     "year total defaults to latest complete year",
			question: "What's the total budget?",
			want:     core.Intent{Action: core.ActionYearTotal, Year: core.FY25},
		},
		{
			name:     "year total with spaced year",
			question: "total budget for fy 26",
			want:     core.Intent{Action: core.ActionYearTotal, Year: core.FY26},
		},
		{
			name:     "yoy difference with two years",
			question: "How much did the budget change from FY24 to FY25?",
			want:     core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY24, YearTo: core.FY25},
		},
		{
			name:     "yoy difference with one year defaults previous",
			question: "What's the difference in FY26?",
			want:     core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY25, YearTo: core.FY26},
		},
		{
			name:     "yoy difference with no years",
			question: "What was the budget difference?",
			want:     core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY24, YearTo: core.FY25},
		},
		{
			name:     "yoy all",
			question: "What was the budget difference every year?",
			want:     core.Intent{Action: core.ActionYoYAll},
		},
		{
			name:     "category rank",
			question: "Which category got the highest funding in FY25?",
			want:     core.Intent{Action: core.ActionCategoryRank, Year: core.FY25, TopN: core.DefaultTopN},
		},
		{
			name:     "category share",
			question: "What percentage of FY25 came from Taxes?",
			want:     core.Intent{Action: core.ActionCategoryShare, Year: core.FY25, Category: "TAXES"},
		},
		{
			name:     "category share police alias",
			question: "What share of FY25 went to police?",
			want:     core.Intent{Action: core.ActionCategoryShare, Year: core.FY25, Category: "POLICE DEPARTMENT"},
		},
		{
			name:     "line item total",
			question: "How much did Administration spend on Payroll Taxes in FY24?",
			want: core.Intent{
				Action:   core.ActionLineItemTotal,
				Year:     core.FY24,
				Category: "ADMINISTRATION",
				LineItem: "Payroll Taxes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rules{}.Classify(context.Background(), tt.question)
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.question, got, tt.want)
			}
		})
	}
}

func TestRulesClassifyHelp(t *testing.T) {
	got, err := Rules{}.Classify(context.Background(), "Tell me a joke")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got.Action != core.ActionHelp {
		t.Errorf("action = %s, want help", got.Action)
	}
	if got.Question == "" {
		t.Error("help intent should carry a follow-up question")
	}
}

func TestRulesClassifiedIntentsValidate(t *testing.T) {
	questions := []string{
		"What is the total budget for FY25?",
		"How much did the budget change from FY24 to FY25?",
		"What was the budget difference every year?",
		"Which category got the most funding in FY26?",
		"What percentage of FY25 came from grants?",
		"How much did Administration spend on Payroll Taxes in FY24?",
		"gibberish",
	}
	for _, q := range questions {
		intent, err := Rules{}.Classify(context.Background(), q)
		if err != nil {
			t.Fatalf("Classify(%q) failed: %v", q, err)
		}
		if err := intent.Validate(); err != nil {
			t.Errorf("Classify(%q) produced invalid intent %+v: %v", q, intent, err)
		}
	}
}
