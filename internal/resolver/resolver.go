// Package resolver maps classified intents to view-layer queries and formats
// the final answer string. Every answer cites the view it came from, and any
// answer touching a partial fiscal year carries a disclosure note. Dollar
// figures only ever come from the view layer.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/budget"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"
	"github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/log"
)

// Answer is the resolved response for one question.
type Answer struct {
	Text         string           `json:"answer"`
	Evidence     []map[string]any `json:"evidence,omitempty"`
	Total        *int64           `json:"total,omitempty"`
	Filters      map[string]any   `json:"filters,omitempty"`
	QuestionType string           `json:"question_type"`
}

type Resolver struct {
	reader       budget.BudgetReader
	completeness core.Completeness
	logger       *log.Logger
}

func New(reader budget.BudgetReader, completeness core.Completeness, logger *log.Logger) *Resolver {
	return &Resolver{
		reader:       reader,
		completeness: completeness,
		logger:       logger.WithComponent(log.ComponentResolver),
	}
}

// Resolve runs the queries an intent needs and builds the answer. The intent
// must already be validated; unknown actions return ErrUnknownAction.
func (r *Resolver) Resolve(ctx context.Context, intent core.Intent) (Answer, error) {
	var (
		answer Answer
		err    error
	)
	switch intent.Action {
	case core.ActionYearTotal:
		answer, err = r.yearTotal(ctx, intent)
	case core.ActionYoYDifference:
		answer, err = r.yoyDifference(ctx, intent)
	case core.ActionYoYAll:
		answer, err = r.yoyAll(ctx)
	case core.ActionCategoryRank:
		answer, err = r.categoryRank(ctx, intent)
	case core.ActionCategoryShare:
		answer, err = r.categoryShare(ctx, intent)
	case core.ActionLineItemTotal:
		answer, err = r.lineItemTotal(ctx, intent)
	case core.ActionHelp:
		answer = Answer{Text: intent.Question, QuestionType: string(core.ActionHelp)}
	default:
		return Answer{}, fmt.Errorf("%w: %q", core.ErrUnknownAction, intent.Action)
	}
	if err != nil {
		return Answer{}, err
	}

	r.logger.InfoContext(ctx, "Intent resolved",
		log.FieldAction, string(intent.Action),
		log.FieldQuestionType, answer.QuestionType)
	return answer, nil
}

func (r *Resolver) yearTotal(ctx context.Context, intent core.Intent) (Answer, error) {
	totals, err := r.reader.YearTotals(ctx)
	if err != nil {
		return Answer{}, err
	}

	for _, t := range totals {
		if t.FiscalYear != intent.Year {
			continue
		}
		total := t.Total
		return Answer{
			Text: fmt.Sprintf("Total %s budget: %s. Source: v_year_totals(%s).%s",
				intent.Year, core.FormatUSD(total), intent.Year, r.partialNote(intent.Year)),
			Evidence:     []map[string]any{{"fiscal_year": intent.Year, "total": total}},
			Total:        &total,
			Filters:      map[string]any{"fiscal_year": intent.Year},
			QuestionType: string(core.ActionYearTotal),
		}, nil
	}

	return Answer{
		Text:         fmt.Sprintf("No budget data found for %s.", intent.Year),
		Filters:      map[string]any{"fiscal_year": intent.Year},
		QuestionType: string(core.ActionYearTotal),
	}, nil
}

func (r *Resolver) yoyDifference(ctx context.Context, intent core.Intent) (Answer, error) {
	totals, err := r.reader.YearTotals(ctx)
	if err != nil {
		return Answer{}, err
	}

	var fromTotal, toTotal *int64
	for _, t := range totals {
		t := t
		if t.FiscalYear == intent.YearFrom {
			fromTotal = &t.Total
		}
		if t.FiscalYear == intent.YearTo {
			toTotal = &t.Total
		}
	}

	filters := map[string]any{"year_from": intent.YearFrom, "year_to": intent.YearTo}
	if fromTotal == nil || toTotal == nil {
		return Answer{
			Text: fmt.Sprintf("No budget data found for %s and %s. Source: v_year_totals.",
				intent.YearFrom, intent.YearTo),
			Filters:      filters,
			QuestionType: string(core.ActionYoYDifference),
		}, nil
	}

	delta := *toTotal - *fromTotal
	return Answer{
		Text: fmt.Sprintf("Change from %s to %s: %s (%s → %s). Source: v_year_yoy.%s",
			intent.YearFrom, intent.YearTo,
			core.FormatUSD(delta), core.FormatUSD(*fromTotal), core.FormatUSD(*toTotal),
			r.partialNote(intent.YearFrom, intent.YearTo)),
		Evidence: []map[string]any{
			{"fiscal_year": intent.YearFrom, "total": *fromTotal},
			{"fiscal_year": intent.YearTo, "total": *toTotal},
		},
		Total:        toTotal,
		Filters:      filters,
		QuestionType: string(core.ActionYoYDifference),
	}, nil
}

func (r *Resolver) yoyAll(ctx context.Context) (Answer, error) {
	records, err := r.reader.YearOverYear(ctx)
	if err != nil {
		return Answer{}, err
	}

	lines := make([]string, 0, len(records))
	evidence := make([]map[string]any, 0, len(records))
	years := make([]core.FiscalYear, 0, len(records))
	for _, rec := range records {
		years = append(years, rec.FiscalYear)
		if rec.Change == nil {
			lines = append(lines, fmt.Sprintf("%s: base %s", rec.FiscalYear, core.FormatUSD(rec.Total)))
		} else {
			sign := "+"
			change := *rec.Change
			if change < 0 {
				sign = "−"
				change = -change
			}
			lines = append(lines, fmt.Sprintf("%s: %s%s (total %s)",
				rec.FiscalYear, sign, core.FormatUSD(change), core.FormatUSD(rec.Total)))
		}
		evidence = append(evidence, map[string]any{
			"fiscal_year": rec.FiscalYear,
			"total":       rec.Total,
			"yoy_change":  rec.Change,
		})
	}

	return Answer{
		Text: "Year-over-year changes:\n- " + strings.Join(lines, "\n- ") +
			"\nSource: v_year_yoy." + r.partialNote(years...),
		Evidence:     evidence,
		Filters:      map[string]any{"action": string(core.ActionYoYAll)},
		QuestionType: string(core.ActionYoYAll),
	}, nil
}

func (r *Resolver) categoryRank(ctx context.Context, intent core.Intent) (Answer, error) {
	ranked, err := r.reader.CategoryRanking(ctx, intent.Year, intent.TopN)
	if err != nil {
		return Answer{}, err
	}

	filters := map[string]any{"year": intent.Year, "top_n": intent.TopN}
	if len(ranked) == 0 {
		return Answer{
			Text:         fmt.Sprintf("No categories found for %s.", intent.Year),
			Filters:      filters,
			QuestionType: string(core.ActionCategoryRank),
		}, nil
	}

	lines := make([]string, 0, len(ranked))
	evidence := make([]map[string]any, 0, len(ranked))
	for i, c := range ranked {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, c.Category, core.FormatUSD(c.Total)))
		evidence = append(evidence, map[string]any{
			"category":    c.Category,
			"total":       c.Total,
			"fiscal_year": intent.Year,
		})
	}

	return Answer{
		Text: fmt.Sprintf("Top %d categories in %s:\n%s\nSource: v_category_totals(%s).%s",
			intent.TopN, intent.Year, strings.Join(lines, "\n"), intent.Year,
			r.partialNote(intent.Year)),
		Evidence:     evidence,
		Filters:      filters,
		QuestionType: string(core.ActionCategoryRank),
	}, nil
}

func (r *Resolver) categoryShare(ctx context.Context, intent core.Intent) (Answer, error) {
	category := strings.ToUpper(intent.Category)
	share, found, err := r.reader.CategoryShare(ctx, intent.Year, category)
	if err != nil {
		return Answer{}, err
	}

	filters := map[string]any{"year": intent.Year, "category": category}
	if !found {
		return Answer{
			Text:         fmt.Sprintf("No data found for %s in %s.", category, intent.Year),
			Filters:      filters,
			QuestionType: string(core.ActionCategoryShare),
		}, nil
	}

	total := share.Total
	return Answer{
		Text: fmt.Sprintf("%s in %s: %s (%s%% of total). Source: v_category_shares(%s).%s",
			category, intent.Year, core.FormatUSD(total), core.FormatPct(share.PctOfYear),
			intent.Year, r.partialNote(intent.Year)),
		Evidence: []map[string]any{{
			"category":    category,
			"total":       total,
			"percentage":  share.PctOfYear,
			"fiscal_year": intent.Year,
		}},
		Total:        &total,
		Filters:      filters,
		QuestionType: string(core.ActionCategoryShare),
	}, nil
}

func (r *Resolver) lineItemTotal(ctx context.Context, intent core.Intent) (Answer, error) {
	category := strings.ToUpper(intent.Category)
	total, _, err := r.reader.LineItemTotal(ctx, intent.Year, category, intent.LineItem)
	if err != nil {
		return Answer{}, err
	}

	// An absent line item reads as zero dollars, not an error.
	return Answer{
		Text: fmt.Sprintf("%s %s → %s: %s. Source: v_line_items.%s",
			intent.Year, category, intent.LineItem, core.FormatUSD(total),
			r.partialNote(intent.Year)),
		Evidence: []map[string]any{{
			"category":    category,
			"line_item":   intent.LineItem,
			"total":       total,
			"fiscal_year": intent.Year,
		}},
		Total:        &total,
		Filters:      map[string]any{"year": intent.Year, "category": category, "line_item": intent.LineItem},
		QuestionType: string(core.ActionLineItemTotal),
	}, nil
}

// partialNote returns the disclosure suffix when any of the years has
// incomplete data, empty otherwise.
func (r *Resolver) partialNote(years ...core.FiscalYear) string {
	for _, y := range years {
		if r.completeness.IsPartial(y) {
			return fmt.Sprintf(" Note: %s data is partial.", y)
		}
	}
	return ""
}
