package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FiscalYear identifies one municipal accounting year ("FY24", "FY25", "FY26").
type FiscalYear string

const (
	FY24 FiscalYear = "FY24"
	FY25 FiscalYear = "FY25"
	FY26 FiscalYear = "FY26"
)

// AllFiscalYears lists every fiscal year present in the dataset, oldest first.
var AllFiscalYears = []FiscalYear{FY24, FY25, FY26}

var (
	ErrUnknownFiscalYear = errors.New("unknown fiscal year")
	ErrEmptyCategory     = errors.New("empty category")
	ErrEmptyLineItem     = errors.New("empty line item")
	ErrInvalidLimit      = errors.New("invalid limit")
)

// ParseFiscalYear normalizes user-supplied year spellings ("fy 25", "FY2025",
// "2025", "25") into the closed FiscalYear enumeration. Values outside the
// enumeration return ErrUnknownFiscalYear so callers fail fast instead of
// silently defaulting.
func ParseFiscalYear(s string) (FiscalYear, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, " ", "")
	v = strings.TrimPrefix(v, "FY")
	if v == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownFiscalYear, s)
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFiscalYear, s)
	}
	// Two-digit years are 2000-based; four-digit years collapse to them.
	if n >= 2000 {
		n -= 2000
	}

	fy := FiscalYear("FY" + strconv.Itoa(n))
	for _, known := range AllFiscalYears {
		if fy == known {
			return fy, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFiscalYear, s)
}

// String implements fmt.Stringer.
func (y FiscalYear) String() string { return string(y) }

// Completeness is the data-completeness lookup keyed by fiscal year. Years in
// the set have known-incomplete data, and every answer touching them carries
// a disclosure. Loaded from configuration, not hardcoded.
type Completeness map[FiscalYear]bool

// NewCompleteness builds the lookup from the configured list of partial
// years. Entries outside the enumeration are ignored.
func NewCompleteness(partialYears []string) Completeness {
	c := make(Completeness, len(partialYears))
	for _, s := range partialYears {
		if fy, err := ParseFiscalYear(s); err == nil {
			c[fy] = true
		}
	}
	return c
}

// IsPartial reports whether the year's underlying data is known incomplete.
// This is the single predicate behind every partial-data disclosure.
func (c Completeness) IsPartial(year FiscalYear) bool { return c[year] }

type (
	// BudgetFact is one budget entry: (fiscal year, category, line item, amount).
	BudgetFact struct {
		FiscalYear FiscalYear
		Category   string
		LineItem   string
		Amount     int64 // whole dollars
	}

	// YearTotal is one row of v_year_totals.
	YearTotal struct {
		FiscalYear FiscalYear
		Total      int64
	}

	// YoYRecord is one row of v_year_yoy. Change is nil for the earliest
	// year in the series (the base year).
	YoYRecord struct {
		FiscalYear FiscalYear
		Total      int64
		Change     *int64
	}

	// CategoryTotal is one row of v_category_totals, ordered by total
	// descending within a year.
	CategoryTotal struct {
		FiscalYear FiscalYear
		Category   string
		Total      int64
	}

	// CategoryShare is one row of v_category_shares.
	CategoryShare struct {
		FiscalYear FiscalYear
		Category   string
		Total      int64
		PctOfYear  float64
	}

	// CategoryYoY is one row of v_category_yoy for a (year, category) pair.
	// PrevTotal, ChangeAmount and ChangePct are nil when the category has no
	// prior-year row.
	CategoryYoY struct {
		FiscalYear   FiscalYear
		Category     string
		Total        int64
		PrevTotal    *int64
		ChangeAmount *int64
		ChangePct    *float64
	}
)

// Validate checks a fact before it is written through the ingest path.
func (f BudgetFact) Validate() error {
	if _, err := ParseFiscalYear(string(f.FiscalYear)); err != nil {
		return err
	}
	if strings.TrimSpace(f.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(f.LineItem) == "" {
		return ErrEmptyLineItem
	}
	if f.Amount < 0 {
		return fmt.Errorf("negative amount %d for %s/%s", f.Amount, f.Category, f.LineItem)
	}
	return nil
}
