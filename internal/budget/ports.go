// Package budget defines the ports between the query/ingest layers and the
// precomputed view layer. Implementations live in internal/storage (sqlite)
// and internal/budget/memory.
package budget

import (
	"context"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

type (
	// BudgetReader exposes the precomputed aggregate views as typed,
	// read-only queries. Implementations never mutate and never cache;
	// every call reflects the store at that moment. Upstream failures
	// propagate as-is, with no retries.
	BudgetReader interface {
		// YearTotals returns one row per fiscal year from v_year_totals,
		// ordered by year ascending.
		YearTotals(ctx context.Context) ([]core.YearTotal, error)

		// YearOverYear returns the v_year_yoy series ordered by year
		// ascending; the earliest year has a nil change.
		YearOverYear(ctx context.Context) ([]core.YoYRecord, error)

		// CategoryRanking returns up to limit categories for the year from
		// v_category_totals, ordered by total descending.
		CategoryRanking(ctx context.Context, year core.FiscalYear, limit int) ([]core.CategoryTotal, error)

		// CategoryShares returns every category's share of the year total
		// from v_category_shares, ordered by total descending.
		CategoryShares(ctx context.Context, year core.FiscalYear) ([]core.CategoryShare, error)

		// CategoryShare returns the share row for a single category,
		// matched case-insensitively. found is false when the category has
		// no data for that year; that is not an error.
		CategoryShare(ctx context.Context, year core.FiscalYear, category string) (share core.CategoryShare, found bool, err error)

		// LineItemTotal returns the total for (year, category, line item)
		// from v_line_items, matched case-insensitively. found is false
		// when no such row exists; the total is then zero.
		LineItemTotal(ctx context.Context, year core.FiscalYear, category, lineItem string) (total int64, found bool, err error)

		// CategoryYoY returns the v_category_yoy row for (year, category),
		// or found=false when the category has no data for that year.
		CategoryYoY(ctx context.Context, year core.FiscalYear, category string) (rec core.CategoryYoY, found bool, err error)
	}

	// FactWriter is the ingest-side port: it loads budget facts into the
	// store backing the views.
	FactWriter interface {
		// InsertFacts appends validated facts.
		InsertFacts(ctx context.Context, facts []core.BudgetFact) error

		// ReplaceYear atomically replaces all facts for one fiscal year.
		ReplaceYear(ctx context.Context, year core.FiscalYear, facts []core.BudgetFact) error
	}
)
