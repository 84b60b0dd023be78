package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

// Rules is a deterministic pattern-matching classifier. It covers the common
// phrasings of each action and returns a help intent for everything else. It
// is the fallback when no Gemini API key is configured or a model call fails.
type Rules struct{}

var _ Classifier = Rules{}

var yearRe = regexp.MustCompile(`(?:fy\s*|fiscal\s+year\s+)(\d{2,4})`)

// categoryAliases maps question keywords to canonical category names, longest
// match first so "police department" wins over "police".
var categoryAliases = []struct {
	keyword  string
	category string
}{
	{"police department", "POLICE DEPARTMENT"},
	{"police", "POLICE DEPARTMENT"},
	{"public works", "PUBLIC WORKS"},
	{"trash removal", "TRASH REMOVAL"},
	{"trash", "TRASH REMOVAL"},
	{"administration", "ADMINISTRATION"},
	{"admin", "ADMINISTRATION"},
	{"taxes", "TAXES"},
	{"grants", "GRANTS"},
}

func (Rules) Classify(ctx context.Context, question string) (core.Intent, error) {
	q := strings.ToLower(question)

	years := extractYears(q)
	category := extractCategory(q)

	switch {
	case strings.Contains(q, "line item") || containsLineItemPhrase(q):
		if category != "" {
			if item := extractLineItem(q); item != "" {
				return core.Intent{
					Action:   core.ActionLineItemTotal,
					Year:     firstYearOr(years, core.FY24),
					Category: category,
					LineItem: item,
				}, nil
			}
		}
		return helpIntent("Which category and line item are you asking about?"), nil

	case strings.Contains(q, "every year") || strings.Contains(q, "each year") ||
		strings.Contains(q, "all years") || strings.Contains(q, "year over year") ||
		strings.Contains(q, "year-over-year"):
		return core.Intent{Action: core.ActionYoYAll}, nil

	case strings.Contains(q, "difference") || strings.Contains(q, "change from") ||
		strings.Contains(q, "changed from") || strings.Contains(q, "compared to"):
		return yoyIntent(years), nil

	case strings.Contains(q, "percent") || strings.Contains(q, "share") ||
		strings.Contains(q, "make up") || strings.Contains(q, "%"):
		if category == "" {
			return helpIntent("Which category's share are you asking about?"), nil
		}
		return core.Intent{
			Action:   core.ActionCategoryShare,
			Year:     firstYearOr(years, core.FY25),
			Category: category,
		}, nil

	case strings.Contains(q, "most funding") || strings.Contains(q, "highest") ||
		strings.Contains(q, "top ") || strings.Contains(q, "rank") ||
		strings.Contains(q, "biggest"):
		return core.Intent{
			Action: core.ActionCategoryRank,
			Year:   firstYearOr(years, core.FY25),
			TopN:   core.DefaultTopN,
		}, nil

	case strings.Contains(q, "total"):
		return core.Intent{
			Action: core.ActionYearTotal,
			Year:   firstYearOr(years, core.FY25),
		}, nil
	}

	return helpIntent("I couldn't understand your question. Could you rephrase it?"), nil
}

func yoyIntent(years []core.FiscalYear) core.Intent {
	switch len(years) {
	case 0:
		return core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY24, YearTo: core.FY25}
	case 1:
		// One year named: compare against the previous one.
		switch years[0] {
		case core.FY26:
			return core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY25, YearTo: core.FY26}
		default:
			return core.Intent{Action: core.ActionYoYDifference, YearFrom: core.FY24, YearTo: core.FY25}
		}
	default:
		return core.Intent{Action: core.ActionYoYDifference, YearFrom: years[0], YearTo: years[1]}
	}
}

func extractYears(q string) []core.FiscalYear {
	var out []core.FiscalYear
	for _, m := range yearRe.FindAllStringSubmatch(q, -1) {
		if fy, err := core.ParseFiscalYear(m[1]); err == nil {
			out = append(out, fy)
		}
	}
	return out
}

func extractCategory(q string) string {
	for _, alias := range categoryAliases {
		if strings.Contains(q, alias.keyword) {
			return alias.category
		}
	}
	return ""
}

// knownLineItems are the line-item names the rules recognize verbatim.
var knownLineItems = []string{
	"Payroll Taxes",
	"Salaries",
	"Real Property",
	"Road Repairs",
	"Police Grants",
	"Contract",
}

func extractLineItem(q string) string {
	for _, item := range knownLineItems {
		if strings.Contains(q, strings.ToLower(item)) {
			return item
		}
	}
	return ""
}

func containsLineItemPhrase(q string) bool {
	if !strings.Contains(q, "spend on") && !strings.Contains(q, "spent on") &&
		!strings.Contains(q, "allocated to") {
		return false
	}
	return extractLineItem(q) != ""
}

func firstYearOr(years []core.FiscalYear, fallback core.FiscalYear) core.FiscalYear {
	if len(years) > 0 {
		return years[0]
	}
	return fallback
}

func helpIntent(question string) core.Intent {
	return core.Intent{Action: core.ActionHelp, Question: question}
}
