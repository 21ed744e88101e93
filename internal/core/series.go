package core

import (
	"regexp"
	"sort"
	"strings"
)

// monthPattern matches zero-padded "YYYY-MM" month labels. Lexical order on
// such labels is chronological order, which SortSeries relies on.
var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// SortSeries returns a copy of the series sorted ascending by month label.
func SortSeries(series []ExpensePoint) []ExpensePoint {
	out := make([]ExpensePoint, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// NormalizeSeries canonicalizes a raw expense series: month labels are
// trimmed and validated against the YYYY-MM pattern (anything else is dropped
// silently), duplicate months collapse with the last entry winning, negative
// or NaN-free handling is the caller's concern since amounts arrive as plain
// numbers. The result is sorted ascending by month. The function is total:
// no input produces an error.
func NormalizeSeries(series []ExpensePoint) []ExpensePoint {
	byMonth := make(map[string]float64, len(series))
	for _, p := range series {
		m := strings.TrimSpace(p.Month)
		if !monthPattern.MatchString(m) {
			continue
		}
		byMonth[m] = p.Amount
	}

	out := make([]ExpensePoint, 0, len(byMonth))
	for m, amt := range byMonth {
		out = append(out, ExpensePoint{Month: m, Amount: amt})
	}
	return SortSeries(out)
}
