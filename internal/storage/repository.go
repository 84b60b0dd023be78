// Package storage implements the view layer on SQLite. The schema and the
// aggregate views (v_year_totals, v_year_yoy, v_category_totals,
// v_category_shares, v_line_items, v_category_yoy) are created by embedded
// migrations; the repository is a thin typed adapter over them.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// Ensure interface conformance
var (
	_ budget.BudgetReader = (*SQLiteRepository)(nil)
	_ budget.FactWriter   = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database connection, used by the readiness endpoint.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// YearTotals implements budget.BudgetReader.
func (r *SQLiteRepository) YearTotals(ctx context.Context) ([]core.YearTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fiscal_year, total FROM v_year_totals ORDER BY fiscal_year`)
	if err != nil {
		return nil, fmt.Errorf("query year totals: %w", err)
	}
	defer rows.Close()

	var out []core.YearTotal
	for rows.Next() {
		var t core.YearTotal
		if err := rows.Scan(&t.FiscalYear, &t.Total); err != nil {
			return nil, fmt.Errorf("scan year total: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year totals: %w", err)
	}
	return out, nil
}

// YearOverYear implements budget.BudgetReader.
func (r *SQLiteRepository) YearOverYear(ctx context.Context) ([]core.YoYRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fiscal_year, total, yoy_change FROM v_year_yoy ORDER BY fiscal_year`)
	if err != nil {
		return nil, fmt.Errorf("query year over year: %w", err)
	}
	defer rows.Close()

	var out []core.YoYRecord
	for rows.Next() {
		var rec core.YoYRecord
		var change sql.NullInt64
		if err := rows.Scan(&rec.FiscalYear, &rec.Total, &change); err != nil {
			return nil, fmt.Errorf("scan yoy record: %w", err)
		}
		if change.Valid {
			v := change.Int64
			rec.Change = &v
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate yoy records: %w", err)
	}
	return out, nil
}

// CategoryRanking implements budget.BudgetReader.
func (r *SQLiteRepository) CategoryRanking(ctx context.Context, year core.FiscalYear, limit int) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, total FROM v_category_totals
		 WHERE fiscal_year = ? ORDER BY total DESC, category LIMIT ?`, string(year), limit)
	if err != nil {
		return nil, fmt.Errorf("query category ranking for %s: %w", year, err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		c := core.CategoryTotal{FiscalYear: year}
		if err := rows.Scan(&c.Category, &c.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category ranking: %w", err)
	}
	return out, nil
}

// CategoryShares implements budget.BudgetReader.
func (r *SQLiteRepository) CategoryShares(ctx context.Context, year core.FiscalYear) ([]core.CategoryShare, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, total, pct_of_year FROM v_category_shares
		 WHERE fiscal_year = ? ORDER BY total DESC, category`, string(year))
	if err != nil {
		return nil, fmt.Errorf("query category shares for %s: %w", year, err)
	}
	defer rows.Close()

	var out []core.CategoryShare
	for rows.Next() {
		s := core.CategoryShare{FiscalYear: year}
		var pct sql.NullFloat64
		if err := rows.Scan(&s.Category, &s.Total, &pct); err != nil {
			return nil, fmt.Errorf("scan category share: %w", err)
		}
		s.PctOfYear = pct.Float64
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category shares: %w", err)
	}
	return out, nil
}

// CategoryShare implements budget.BudgetReader.
func (r *SQLiteRepository) CategoryShare(ctx context.Context, year core.FiscalYear, category string) (core.CategoryShare, bool, error) {
	s := core.CategoryShare{FiscalYear: year}
	var pct sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT category, total, pct_of_year FROM v_category_shares
		 WHERE fiscal_year = ? AND UPPER(category) = UPPER(?)`,
		string(year), category).Scan(&s.Category, &s.Total, &pct)
	if err == sql.ErrNoRows {
		return core.CategoryShare{}, false, nil
	}
	if err != nil {
		return core.CategoryShare{}, false, fmt.Errorf("query category share %s/%s: %w", year, category, err)
	}
	s.PctOfYear = pct.Float64
	return s, true, nil
}

// LineItemTotal implements budget.BudgetReader.
func (r *SQLiteRepository) LineItemTotal(ctx context.Context, year core.FiscalYear, category, lineItem string) (int64, bool, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT total FROM v_line_items
		 WHERE fiscal_year = ? AND UPPER(category) = UPPER(?) AND UPPER(line_item) = UPPER(?)`,
		string(year), category, lineItem).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query line item total %s/%s/%s: %w", year, category, lineItem, err)
	}
	return total, true, nil
}

// CategoryYoY implements budget.BudgetReader.
func (r *SQLiteRepository) CategoryYoY(ctx context.Context, year core.FiscalYear, category string) (core.CategoryYoY, bool, error) {
	var rec core.CategoryYoY
	var prev, change sql.NullInt64
	var pct sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT fiscal_year, category, total, prev_total, change_amount, change_percentage
		 FROM v_category_yoy
		 WHERE fiscal_year = ? AND UPPER(category) = UPPER(?)`,
		string(year), category).Scan(&rec.FiscalYear, &rec.Category, &rec.Total, &prev, &change, &pct)
	if err == sql.ErrNoRows {
		return core.CategoryYoY{}, false, nil
	}
	if err != nil {
		return core.CategoryYoY{}, false, fmt.Errorf("query category yoy %s/%s: %w", year, category, err)
	}
	if prev.Valid {
		v := prev.Int64
		rec.PrevTotal = &v
	}
	if change.Valid {
		v := change.Int64
		rec.ChangeAmount = &v
	}
	if pct.Valid {
		v := pct.Float64
		rec.ChangePct = &v
	}
	return rec, true, nil
}

// InsertFacts implements budget.FactWriter.
func (r *SQLiteRepository) InsertFacts(ctx context.Context, facts []core.BudgetFact) error {
	return r.insertFacts(ctx, facts, "")
}

// ReplaceYear implements budget.FactWriter.
func (r *SQLiteRepository) ReplaceYear(ctx context.Context, year core.FiscalYear, facts []core.BudgetFact) error {
	return r.insertFacts(ctx, facts, year)
}

func (r *SQLiteRepository) insertFacts(ctx context.Context, facts []core.BudgetFact, replaceYear core.FiscalYear) error {
	for _, f := range facts {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("validate fact: %w", err)
		}
		if replaceYear != "" && f.FiscalYear != replaceYear {
			return fmt.Errorf("fact for %s in %s batch", f.FiscalYear, replaceYear)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if replaceYear != "" {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM budget_facts WHERE fiscal_year = ?`, string(replaceYear)); err != nil {
			return fmt.Errorf("clear facts for %s: %w", replaceYear, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO budget_facts (fiscal_year, category, line_item, amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range facts {
		if _, err := stmt.ExecContext(ctx, string(f.FiscalYear), f.Category, f.LineItem, f.Amount); err != nil {
			return fmt.Errorf("insert fact %s/%s/%s: %w", f.FiscalYear, f.Category, f.LineItem, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit facts: %w", err)
	}

	slog.InfoContext(ctx, "Budget facts stored",
		"count", len(facts),
		"replace_year", string(replaceYear))
	return nil
}
