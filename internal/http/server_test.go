package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget/memory"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/classifier"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/resolver"
)

func newTestServer() *Server {
	store := memory.NewSeededStore()
	completeness := core.NewCompleteness([]string{"FY26"})
	logger := log.New(log.DefaultConfig())
	res := resolver.New(store, completeness, logger)
	return NewServer(":0", store, res, classifier.Rules{}, completeness, nil, logger)
}

func doRequest(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "203.0.113.10:1234"
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a JSON envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, env
}

func TestHandleYearTotals(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/year-totals", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got error %q", env.Error)
	}

	rows, ok := env.Data.([]any)
	if !ok {
		t.Fatalf("data is %T, want array", env.Data)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 year rows, got %d", len(rows))
	}

	last := rows[2].(map[string]any)
	if last["fiscal_year"] != "FY26" {
		t.Errorf("last row year = %v, want FY26", last["fiscal_year"])
	}
	if last["partial"] != true {
		t.Error("FY26 row should be flagged partial")
	}
}

func TestHandleYoY(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/yoy", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rows := env.Data.([]any)
	first := rows[0].(map[string]any)
	if first["yoy_change"] != nil {
		t.Errorf("base year yoy_change = %v, want null", first["yoy_change"])
	}
	second := rows[1].(map[string]any)
	if second["yoy_change"].(float64) != 1502433 {
		t.Errorf("FY25 yoy_change = %v, want 1502433", second["yoy_change"])
	}
}

func TestHandleCategoryRankingDefaults(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/category", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := env.Data.(map[string]any)
	if data["fiscal_year"] != "FY25" {
		t.Errorf("default year = %v, want FY25", data["fiscal_year"])
	}
	cats := data["categories"].([]any)
	top := cats[0].(map[string]any)
	if top["category"] != "TAXES" || top["total"].(float64) != 1481200 {
		t.Errorf("top category = %v", top)
	}
}

func TestHandleCategoryRankingRejectsUnknownYear(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/category?year=FY30", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Success {
		t.Error("expected error envelope")
	}
	if env.Error != "invalid fiscal year" {
		t.Errorf("error = %q, want invalid fiscal year", env.Error)
	}
}

func TestHandleCategorySharesPartialMessage(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/shares?year=fy26", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Message != "Note: FY26 data is partial." {
		t.Errorf("message = %q, want partial note", env.Message)
	}
}

func TestHandleLineItemDefaults(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/line-item", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := env.Data.(map[string]any)
	if data["fiscal_year"] != "FY24" {
		t.Errorf("default year = %v, want FY24", data["fiscal_year"])
	}
	if data["category"] != "ADMINISTRATION" || data["line_item"] != "Payroll Taxes" {
		t.Errorf("default filters = %v/%v", data["category"], data["line_item"])
	}
	if data["total"].(float64) != 20389 {
		t.Errorf("total = %v, want 20389", data["total"])
	}
}

func TestHandleCategoryYoYRequiresCategory(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/category-yoy", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error != "missing category" {
		t.Errorf("error = %q, want missing category", env.Error)
	}
}

func TestHandleCategoryYoY(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/category-yoy?category=police+department&year=FY25", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := env.Data.(map[string]any)
	if data["total"].(float64) != 1249212 {
		t.Errorf("total = %v, want 1249212", data["total"])
	}
	if data["change_amount"].(float64) != 149212 {
		t.Errorf("change_amount = %v, want 149212", data["change_amount"])
	}
}

func TestHandleCategoryYoYYear2Alias(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodGet, "/api/budget/category-yoy?category=police+department&year2=FY25", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := env.Data.(map[string]any)
	if data["total"].(float64) != 1249212 {
		t.Errorf("total = %v, want 1249212", data["total"])
	}
	if data["change_amount"].(float64) != 149212 {
		t.Errorf("change_amount = %v, want 149212", data["change_amount"])
	}
}

func TestHandleAsk(t *testing.T) {
	s := newTestServer()

	rec, env := doRequest(t, s, http.MethodPost, "/ask",
		`{"question":"What is the total budget for FY25?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := env.Data.(map[string]any)
	want := "Total FY25 budget: $6,894,068. Source: v_year_totals(FY25)."
	if data["answer"] != want {
		t.Errorf("answer = %q, want %q", data["answer"], want)
	}
	if data["question_type"] != "year_total" {
		t.Errorf("question_type = %v, want year_total", data["question_type"])
	}
}

func TestHandleAskRejectsEmptyQuestion(t *testing.T) {
	s := newTestServer()

	rec, _ := doRequest(t, s, http.MethodPost, "/ask", `{"question":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAskMethodNotAllowed(t *testing.T) {
	s := newTestServer()

	rec, _ := doRequest(t, s, http.MethodGet, "/ask", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
