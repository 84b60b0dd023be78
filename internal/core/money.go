// Package core holds the domain types shared by every layer: fiscal years,
// budget facts, view row projections, intents and dollar formatting.
package core

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatUSD renders a whole-dollar amount with thousands separators, e.g.
// 6894068 -> "$6,894,068". Negative amounts keep the sign inside the symbol
// ("$-4,172,124") so deltas read the way the answer strings expect.
func FormatUSD(amount int64) string {
	if amount < 0 {
		return "$-" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

// FormatUSDPtr renders a possibly-absent amount; nil renders as "$0".
func FormatUSDPtr(amount *int64) string {
	if amount == nil {
		return "$0"
	}
	return FormatUSD(*amount)
}

// FormatPct renders a percentage with one decimal, e.g. 21.5 -> "21.5".
func FormatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}
