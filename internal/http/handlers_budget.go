package http

import (
	"net/http"
	"strings"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
)

// yearTotalRow is the wire shape for one v_year_totals row.
type yearTotalRow struct {
	FiscalYear core.FiscalYear `json:"fiscal_year"`
	Total      int64           `json:"total"`
	Partial    bool            `json:"partial,omitempty"`
}

// handleYearTotals serves GET /api/budget/year-totals.
func (s *Server) handleYearTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	totals, err := s.reader.YearTotals(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Year totals query failed", log.FieldError, err)
		InternalServerError(err.Error()).Write(w)
		return
	}

	rows := make([]yearTotalRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, yearTotalRow{
			FiscalYear: t.FiscalYear,
			Total:      t.Total,
			Partial:    s.completeness.IsPartial(t.FiscalYear),
		})
	}
	NewJSONResponse().Data(rows).Write(w)
}

type yoyRow struct {
	FiscalYear core.FiscalYear `json:"fiscal_year"`
	Total      int64           `json:"total"`
	YoYChange  *int64          `json:"yoy_change"`
	Partial    bool            `json:"partial,omitempty"`
}

// handleYoY serves GET /api/budget/yoy.
func (s *Server) handleYoY(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	records, err := s.reader.YearOverYear(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Year over year query failed", log.FieldError, err)
		InternalServerError(err.Error()).Write(w)
		return
	}

	rows := make([]yoyRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, yoyRow{
			FiscalYear: rec.FiscalYear,
			Total:      rec.Total,
			YoYChange:  rec.Change,
			Partial:    s.completeness.IsPartial(rec.FiscalYear),
		})
	}
	NewJSONResponse().Data(rows).Write(w)
}

type categoryTotalRow struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// handleCategoryRanking serves GET /api/budget/category?year=FY25&limit=10.
func (s *Server) handleCategoryRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	year, err := parseYearParam(r, "year", core.FY25)
	if err != nil {
		BadRequestError("invalid fiscal year", err.Error()).Write(w)
		return
	}
	limit, err := parseLimitParam(r, "limit", core.DefaultTopN)
	if err != nil {
		BadRequestError("invalid limit", err.Error()).Write(w)
		return
	}

	ranked, err := s.reader.CategoryRanking(r.Context(), year, limit)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category ranking query failed",
			log.FieldError, err, log.FieldFiscalYear, string(year))
		InternalServerError(err.Error()).Write(w)
		return
	}

	rows := make([]categoryTotalRow, 0, len(ranked))
	for _, c := range ranked {
		rows = append(rows, categoryTotalRow{Category: c.Category, Total: c.Total})
	}

	resp := NewJSONResponse().Data(map[string]any{
		"fiscal_year": year,
		"categories":  rows,
	})
	if s.completeness.IsPartial(year) {
		resp.Message("Note: " + string(year) + " data is partial.")
	}
	resp.Write(w)
}

type categoryShareRow struct {
	Category  string  `json:"category"`
	Total     int64   `json:"total"`
	PctOfYear float64 `json:"pct_of_year"`
}

// handleCategoryShares serves GET /api/budget/shares?year=FY25.
func (s *Server) handleCategoryShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	year, err := parseYearParam(r, "year", core.FY25)
	if err != nil {
		BadRequestError("invalid fiscal year", err.Error()).Write(w)
		return
	}

	shares, err := s.reader.CategoryShares(r.Context(), year)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category shares query failed",
			log.FieldError, err, log.FieldFiscalYear, string(year))
		InternalServerError(err.Error()).Write(w)
		return
	}

	rows := make([]categoryShareRow, 0, len(shares))
	for _, sh := range shares {
		rows = append(rows, categoryShareRow{
			Category:  sh.Category,
			Total:     sh.Total,
			PctOfYear: sh.PctOfYear,
		})
	}

	resp := NewJSONResponse().Data(map[string]any{
		"fiscal_year": year,
		"shares":      rows,
	})
	if s.completeness.IsPartial(year) {
		resp.Message("Note: " + string(year) + " data is partial.")
	}
	resp.Write(w)
}

// handleLineItem serves GET /api/budget/line-item with query defaults
// matching the showcase question (FY24 ADMINISTRATION Payroll Taxes).
func (s *Server) handleLineItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	year, err := parseYearParam(r, "year", core.FY24)
	if err != nil {
		BadRequestError("invalid fiscal year", err.Error()).Write(w)
		return
	}
	category := sanitizeInput(r.URL.Query().Get("category"))
	if category == "" {
		category = "ADMINISTRATION"
	}
	lineItem := sanitizeInput(r.URL.Query().Get("lineItem"))
	if lineItem == "" {
		lineItem = "Payroll Taxes"
	}

	total, found, err := s.reader.LineItemTotal(r.Context(), year, category, lineItem)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Line item query failed",
			log.FieldError, err,
			log.FieldFiscalYear, string(year),
			log.FieldCategory, category,
			log.FieldLineItem, lineItem)
		InternalServerError(err.Error()).Write(w)
		return
	}

	resp := NewJSONResponse().Data(map[string]any{
		"fiscal_year": year,
		"category":    strings.ToUpper(category),
		"line_item":   lineItem,
		"total":       total,
		"found":       found,
	})
	if s.completeness.IsPartial(year) {
		resp.Message("Note: " + string(year) + " data is partial.")
	}
	resp.Write(w)
}

// handleCategoryYoY serves GET /api/budget/category-yoy. The category
// parameter is required; year defaults to the later comparison year FY25.
// year2 is accepted as an alias for year, kept for clients written against
// the earlier parameter pair.
func (s *Server) handleCategoryYoY(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	category := sanitizeInput(r.URL.Query().Get("category"))
	if category == "" {
		BadRequestError("missing category", "category query parameter is required").Write(w)
		return
	}
	yearName := "year"
	if r.URL.Query().Get(yearName) == "" && r.URL.Query().Get("year2") != "" {
		yearName = "year2"
	}
	year, err := parseYearParam(r, yearName, core.FY25)
	if err != nil {
		BadRequestError("invalid fiscal year", err.Error()).Write(w)
		return
	}

	rec, found, err := s.reader.CategoryYoY(r.Context(), year, category)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category yoy query failed",
			log.FieldError, err,
			log.FieldFiscalYear, string(year),
			log.FieldCategory, category)
		InternalServerError(err.Error()).Write(w)
		return
	}
	if !found {
		NewJSONResponse().
			Data(map[string]any{"fiscal_year": year, "category": strings.ToUpper(category)}).
			Message("No data found for " + strings.ToUpper(category) + " in " + string(year) + ".").
			Write(w)
		return
	}

	resp := NewJSONResponse().Data(map[string]any{
		"fiscal_year":       rec.FiscalYear,
		"category":          rec.Category,
		"total":             rec.Total,
		"prev_total":        rec.PrevTotal,
		"change_amount":     rec.ChangeAmount,
		"change_percentage": rec.ChangePct,
	})
	if s.completeness.IsPartial(year) {
		resp.Message("Note: " + string(year) + " data is partial.")
	}
	resp.Write(w)
}
