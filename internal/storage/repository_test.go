package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget/memory"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.InsertFacts(context.Background(), memory.SeedFacts()); err != nil {
		t.Fatalf("failed to seed facts: %v", err)
	}
	return repo
}

func TestYearTotalsView(t *testing.T) {
	repo := newTestRepository(t)

	totals, err := repo.YearTotals(context.Background())
	if err != nil {
		t.Fatalf("YearTotals failed: %v", err)
	}

	want := map[core.FiscalYear]int64{
		core.FY24: 5391635,
		core.FY25: 6894068,
		core.FY26: 2721944,
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d totals, got %d", len(want), len(totals))
	}
	for _, tot := range totals {
		if tot.Total != want[tot.FiscalYear] {
			t.Errorf("%s total = %d, want %d", tot.FiscalYear, tot.Total, want[tot.FiscalYear])
		}
	}
}

func TestYearOverYearView(t *testing.T) {
	repo := newTestRepository(t)

	records, err := repo.YearOverYear(context.Background())
	if err != nil {
		t.Fatalf("YearOverYear failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Change != nil {
		t.Errorf("base year change should be nil, got %d", *records[0].Change)
	}
	if records[1].Change == nil || *records[1].Change != 1502433 {
		t.Errorf("FY25 change = %v, want 1502433", records[1].Change)
	}
	if records[2].Change == nil || *records[2].Change != -4172124 {
		t.Errorf("FY26 change = %v, want -4172124", records[2].Change)
	}
}

func TestCategoryRankingView(t *testing.T) {
	repo := newTestRepository(t)

	top, err := repo.CategoryRanking(context.Background(), core.FY25, 2)
	if err != nil {
		t.Fatalf("CategoryRanking failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(top))
	}
	if top[0].Category != "TAXES" || top[0].Total != 1481200 {
		t.Errorf("top = %s/%d, want TAXES/1481200", top[0].Category, top[0].Total)
	}
	if top[1].Category != "POLICE DEPARTMENT" || top[1].Total != 1249212 {
		t.Errorf("second = %s/%d, want POLICE DEPARTMENT/1249212", top[1].Category, top[1].Total)
	}
}

func TestCategorySharesView(t *testing.T) {
	repo := newTestRepository(t)

	shares, err := repo.CategoryShares(context.Background(), core.FY25)
	if err != nil {
		t.Fatalf("CategoryShares failed: %v", err)
	}
	if len(shares) == 0 {
		t.Fatal("expected shares, got none")
	}

	var sum float64
	for _, s := range shares {
		sum += s.PctOfYear
	}
	if sum < 99.0 || sum > 101.0 {
		t.Errorf("shares sum to %.1f, want ~100", sum)
	}

	// Descending by total, same order a ranking query produces.
	for i := 1; i < len(shares); i++ {
		if shares[i].Total > shares[i-1].Total {
			t.Errorf("shares out of order at %d: %d > %d", i, shares[i].Total, shares[i-1].Total)
		}
	}
}

func TestCategorySharesZeroTotalYear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// A year whose only facts are zero-amount placeholders still answers
	// with 0% shares rather than failing on the division.
	err := repo.ReplaceYear(ctx, core.FY26, []core.BudgetFact{
		{FiscalYear: core.FY26, Category: "TAXES", LineItem: "Real Property", Amount: 0},
	})
	if err != nil {
		t.Fatalf("ReplaceYear failed: %v", err)
	}

	shares, err := repo.CategoryShares(ctx, core.FY26)
	if err != nil {
		t.Fatalf("CategoryShares failed: %v", err)
	}
	if len(shares) != 1 {
		t.Fatalf("expected 1 share, got %d", len(shares))
	}
	if shares[0].Total != 0 || shares[0].PctOfYear != 0 {
		t.Errorf("zero-total year share = %d/%.1f%%, want 0/0.0%%", shares[0].Total, shares[0].PctOfYear)
	}

	share, found, err := repo.CategoryShare(ctx, core.FY26, "taxes")
	if err != nil {
		t.Fatalf("CategoryShare failed: %v", err)
	}
	if !found || share.PctOfYear != 0 {
		t.Errorf("zero-total year lookup = (%v, %.1f%%), want (true, 0.0%%)", found, share.PctOfYear)
	}
}

func TestCategoryShareLookup(t *testing.T) {
	repo := newTestRepository(t)

	share, found, err := repo.CategoryShare(context.Background(), core.FY25, "taxes")
	if err != nil {
		t.Fatalf("CategoryShare failed: %v", err)
	}
	if !found {
		t.Fatal("expected case-insensitive match on TAXES")
	}
	if share.Total != 1481200 || share.PctOfYear != 21.5 {
		t.Errorf("TAXES = %d/%.1f%%, want 1481200/21.5%%", share.Total, share.PctOfYear)
	}

	_, found, err = repo.CategoryShare(context.Background(), core.FY25, "PARKS")
	if err != nil {
		t.Fatalf("CategoryShare failed: %v", err)
	}
	if found {
		t.Error("expected PARKS to be absent")
	}
}

func TestLineItemTotalView(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	total, found, err := repo.LineItemTotal(ctx, core.FY24, "ADMINISTRATION", "Payroll Taxes")
	if err != nil {
		t.Fatalf("LineItemTotal failed: %v", err)
	}
	if !found || total != 20389 {
		t.Errorf("got (%d, %v), want (20389, true)", total, found)
	}

	total, found, err = repo.LineItemTotal(ctx, core.FY24, "ADMINISTRATION", "Helicopters")
	if err != nil {
		t.Fatalf("LineItemTotal failed: %v", err)
	}
	if found || total != 0 {
		t.Errorf("absent line item: got (%d, %v), want (0, false)", total, found)
	}
}

func TestCategoryYoYView(t *testing.T) {
	repo := newTestRepository(t)

	rec, found, err := repo.CategoryYoY(context.Background(), core.FY25, "POLICE DEPARTMENT")
	if err != nil {
		t.Fatalf("CategoryYoY failed: %v", err)
	}
	if !found {
		t.Fatal("expected POLICE DEPARTMENT FY25 row")
	}
	if rec.Total != 1249212 {
		t.Errorf("total = %d, want 1249212", rec.Total)
	}
	if rec.PrevTotal == nil || *rec.PrevTotal != 1100000 {
		t.Errorf("prev total = %v, want 1100000", rec.PrevTotal)
	}
	if rec.ChangeAmount == nil || *rec.ChangeAmount != 149212 {
		t.Errorf("change = %v, want 149212", rec.ChangeAmount)
	}
	if rec.ChangePct == nil || *rec.ChangePct != 13.6 {
		t.Errorf("change pct = %v, want 13.6", rec.ChangePct)
	}
}

func TestReplaceYearTransaction(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.ReplaceYear(ctx, core.FY26, []core.BudgetFact{
		{FiscalYear: core.FY26, Category: "TAXES", LineItem: "Real Property", Amount: 3000000},
	})
	if err != nil {
		t.Fatalf("ReplaceYear failed: %v", err)
	}

	totals, err := repo.YearTotals(ctx)
	if err != nil {
		t.Fatalf("YearTotals failed: %v", err)
	}
	for _, tot := range totals {
		if tot.FiscalYear == core.FY26 && tot.Total != 3000000 {
			t.Errorf("FY26 total after replace = %d, want 3000000", tot.Total)
		}
		if tot.FiscalYear == core.FY24 && tot.Total != 5391635 {
			t.Errorf("FY24 total changed by FY26 replace: %d", tot.Total)
		}
	}
}

func TestReplaceYearRejectsMixedBatch(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.ReplaceYear(context.Background(), core.FY26, []core.BudgetFact{
		{FiscalYear: core.FY25, Category: "TAXES", LineItem: "Real Property", Amount: 1},
	})
	if err == nil {
		t.Fatal("expected error for fact outside the batch year")
	}
}
