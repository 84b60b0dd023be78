package core

import (
	"errors"
	"fmt"
)

// Action is the closed set of structured intents the classifier may emit.
type Action string

const (
	ActionYearTotal     Action = "year_total"
	ActionYoYDifference Action = "yoy_difference"
	ActionYoYAll        Action = "yoy_all"
	ActionCategoryRank  Action = "category_rank"
	ActionCategoryShare Action = "category_share"
	ActionLineItemTotal Action = "line_item_total"
	ActionHelp          Action = "help"
)

// DefaultTopN is the ranking size when a question does not ask for one.
const DefaultTopN = 10

var ErrUnknownAction = errors.New("unknown action")

// Intent is a classified question: an action plus only the parameters that
// action needs. Unused fields are zero.
type Intent struct {
	Action   Action     `json:"action"`
	Year     FiscalYear `json:"year,omitempty"`
	YearFrom FiscalYear `json:"year_from,omitempty"`
	YearTo   FiscalYear `json:"year_to,omitempty"`
	Category string     `json:"category,omitempty"`
	LineItem string     `json:"line_item,omitempty"`
	TopN     int        `json:"top_n,omitempty"`
	// Question carries the follow-up text for help intents.
	Question string `json:"question,omitempty"`
}

// Validate checks that the intent carries the parameters its action needs.
func (i Intent) Validate() error {
	switch i.Action {
	case ActionYearTotal:
		return validYear(i.Year)
	case ActionYoYDifference:
		if err := validYear(i.YearFrom); err != nil {
			return err
		}
		return validYear(i.YearTo)
	case ActionYoYAll, ActionHelp:
		return nil
	case ActionCategoryRank:
		if err := validYear(i.Year); err != nil {
			return err
		}
		if i.TopN < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidLimit, i.TopN)
		}
		return nil
	case ActionCategoryShare:
		if err := validYear(i.Year); err != nil {
			return err
		}
		if i.Category == "" {
			return ErrEmptyCategory
		}
		return nil
	case ActionLineItemTotal:
		if err := validYear(i.Year); err != nil {
			return err
		}
		if i.Category == "" {
			return ErrEmptyCategory
		}
		if i.LineItem == "" {
			return ErrEmptyLineItem
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, i.Action)
	}
}

func validYear(y FiscalYear) error {
	_, err := ParseFiscalYear(string(y))
	return err
}
