// Package memory provides an in-memory budget backend. It mirrors the
// aggregate definitions of the SQLite views so the demo backend and the
// database-backed one answer identically for the same facts.
package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

type Store struct {
	mu    sync.RWMutex
	facts []core.BudgetFact
}

var (
	_ budget.BudgetReader = (*Store)(nil)
	_ budget.FactWriter   = (*Store)(nil)
)

func NewStore(facts ...core.BudgetFact) *Store {
	s := &Store{}
	s.facts = append(s.facts, facts...)
	return s
}

// YearTotals implements budget.BudgetReader.
func (s *Store) YearTotals(ctx context.Context) ([]core.YearTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := s.totalsByYear()
	years := sortedYears(totals)

	out := make([]core.YearTotal, 0, len(years))
	for _, y := range years {
		out = append(out, core.YearTotal{FiscalYear: y, Total: totals[y]})
	}
	return out, nil
}

// YearOverYear implements budget.BudgetReader.
func (s *Store) YearOverYear(ctx context.Context) ([]core.YoYRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := s.totalsByYear()
	years := sortedYears(totals)

	out := make([]core.YoYRecord, 0, len(years))
	for i, y := range years {
		rec := core.YoYRecord{FiscalYear: y, Total: totals[y]}
		if i > 0 {
			change := totals[y] - totals[years[i-1]]
			rec.Change = &change
		}
		out = append(out, rec)
	}
	return out, nil
}

// CategoryRanking implements budget.BudgetReader.
func (s *Store) CategoryRanking(ctx context.Context, year core.FiscalYear, limit int) ([]core.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.categoryTotals(year)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CategoryShares implements budget.BudgetReader.
func (s *Store) CategoryShares(ctx context.Context, year core.FiscalYear) ([]core.CategoryShare, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoryShares(year), nil
}

// CategoryShare implements budget.BudgetReader.
func (s *Store) CategoryShare(ctx context.Context, year core.FiscalYear, category string) (core.CategoryShare, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, share := range s.categoryShares(year) {
		if strings.EqualFold(share.Category, category) {
			return share, true, nil
		}
	}
	return core.CategoryShare{}, false, nil
}

// LineItemTotal implements budget.BudgetReader.
func (s *Store) LineItemTotal(ctx context.Context, year core.FiscalYear, category, lineItem string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	found := false
	for _, f := range s.facts {
		if f.FiscalYear == year && strings.EqualFold(f.Category, category) && strings.EqualFold(f.LineItem, lineItem) {
			total += f.Amount
			found = true
		}
	}
	return total, found, nil
}

// CategoryYoY implements budget.BudgetReader.
func (s *Store) CategoryYoY(ctx context.Context, year core.FiscalYear, category string) (core.CategoryYoY, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byYear := make(map[core.FiscalYear]int64)
	for _, f := range s.facts {
		if strings.EqualFold(f.Category, category) {
			byYear[f.FiscalYear] += f.Amount
		}
	}
	total, ok := byYear[year]
	if !ok {
		return core.CategoryYoY{}, false, nil
	}

	rec := core.CategoryYoY{
		FiscalYear: year,
		Category:   canonicalCategory(s.facts, category),
		Total:      total,
	}

	years := make([]core.FiscalYear, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	for i, y := range years {
		if y == year && i > 0 {
			prev := byYear[years[i-1]]
			change := total - prev
			rec.PrevTotal = &prev
			rec.ChangeAmount = &change
			if prev != 0 {
				pct := math.Round(float64(change)/float64(prev)*1000) / 10
				rec.ChangePct = &pct
			}
		}
	}
	return rec, true, nil
}

// InsertFacts implements budget.FactWriter.
func (s *Store) InsertFacts(ctx context.Context, facts []core.BudgetFact) error {
	for _, f := range facts {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts = append(s.facts, facts...)
	return nil
}

// ReplaceYear implements budget.FactWriter.
func (s *Store) ReplaceYear(ctx context.Context, year core.FiscalYear, facts []core.BudgetFact) error {
	for _, f := range facts {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.facts[:0]
	for _, f := range s.facts {
		if f.FiscalYear != year {
			kept = append(kept, f)
		}
	}
	s.facts = append(kept, facts...)
	return nil
}

func (s *Store) totalsByYear() map[core.FiscalYear]int64 {
	totals := make(map[core.FiscalYear]int64)
	for _, f := range s.facts {
		totals[f.FiscalYear] += f.Amount
	}
	return totals
}

func (s *Store) categoryTotals(year core.FiscalYear) []core.CategoryTotal {
	byCategory := make(map[string]int64)
	for _, f := range s.facts {
		if f.FiscalYear == year {
			byCategory[f.Category] += f.Amount
		}
	}

	out := make([]core.CategoryTotal, 0, len(byCategory))
	for c, t := range byCategory {
		out = append(out, core.CategoryTotal{FiscalYear: year, Category: c, Total: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (s *Store) categoryShares(year core.FiscalYear) []core.CategoryShare {
	totals := s.categoryTotals(year)
	var yearTotal int64
	for _, t := range totals {
		yearTotal += t.Total
	}

	out := make([]core.CategoryShare, 0, len(totals))
	for _, t := range totals {
		share := core.CategoryShare{FiscalYear: year, Category: t.Category, Total: t.Total}
		if yearTotal > 0 {
			share.PctOfYear = math.Round(float64(t.Total)/float64(yearTotal)*1000) / 10
		}
		out = append(out, share)
	}
	return out
}

func sortedYears(totals map[core.FiscalYear]int64) []core.FiscalYear {
	years := make([]core.FiscalYear, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

func canonicalCategory(facts []core.BudgetFact, category string) string {
	for _, f := range facts {
		if strings.EqualFold(f.Category, category) {
			return f.Category
		}
	}
	return category
}
