package google

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
)

// parseFacts converts a values matrix (as returned by the Sheets API) into
// budget facts. The first row must carry Category, Line Item and Amount
// headers; blank rows and rows with an empty category are skipped.
func parseFacts(values [][]interface{}, year core.FiscalYear) ([]core.BudgetFact, error) {
	if len(values) == 0 {
		return nil, nil
	}

	headers := toStrings(values[0])
	colCategory := indexOf(headers, "Category")
	colLineItem := indexOf(headers, "Line Item")
	colAmount := indexOf(headers, "Amount")
	if colCategory == -1 || colLineItem == -1 || colAmount == -1 {
		return nil, fmt.Errorf("unexpected header row: %v", headers)
	}

	var facts []core.BudgetFact
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		category := strings.TrimSpace(safeGet(row, colCategory))
		lineItem := strings.TrimSpace(safeGet(row, colLineItem))
		if category == "" && lineItem == "" {
			continue
		}

		amount, ok := parseDollars(safeGet(row, colAmount))
		if !ok {
			return nil, fmt.Errorf("row %d: bad amount %q for %s/%s",
				i+1, safeGet(row, colAmount), category, lineItem)
		}

		fact := core.BudgetFact{
			FiscalYear: year,
			Category:   strings.ToUpper(category),
			LineItem:   lineItem,
			Amount:     amount,
		}
		if err := fact.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// parseDollars parses a whole-dollar cell value, tolerating "$", thousands
// separators and surrounding whitespace. Cents are truncated.
func parseDollars(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	if dot := strings.IndexByte(s, '.'); dot != -1 {
		s = s[:dot]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
