package core

import (
	"fmt"
	"time"
)

// ForecastPoint is one month on the combined history+projection axis.
// Exactly one of Actual or Forecast is set: historical months carry the
// recorded amount, projected months carry the fitted estimate.
type ForecastPoint struct {
	Month    string
	Actual   *float64
	Forecast *float64
}

// BuildForecastSeries fits an ordinary least-squares line over the series
// (x = chronological index, y = amount) and projects monthsAhead future
// months. With fewer than two points no trend is determined and only actual
// points are returned. Projections are floored at zero and rounded to two
// decimals. The input need not be normalized; it is sorted first.
func BuildForecastSeries(series []ExpensePoint, monthsAhead int) []ForecastPoint {
	s := SortSeries(series)

	out := make([]ForecastPoint, 0, len(s)+monthsAhead)
	for _, p := range s {
		actual := p.Amount
		out = append(out, ForecastPoint{Month: p.Month, Actual: &actual})
	}

	n := len(s)
	if n < 2 || monthsAhead <= 0 {
		return out
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range s {
		x := float64(i)
		sumX += x
		sumY += p.Amount
		sumXY += x * p.Amount
		sumXX += x * x
	}

	// The denominator cannot be zero for distinct indices, but a flat line
	// beats a division blowup if that ever changes.
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	var b float64
	if denom != 0 {
		b = (fn*sumXY - sumX*sumY) / denom
	}
	a := (sumY - b*sumX) / fn

	year, month, ok := splitMonth(s[n-1].Month)
	if !ok {
		return out
	}

	for i := 1; i <= monthsAhead; i++ {
		x := float64(n - 1 + i)
		yHat := a + b*x
		if yHat < 0 {
			yHat = 0
		}
		forecast := Round2(yHat)
		out = append(out, ForecastPoint{
			Month:    advanceMonth(year, month, i),
			Forecast: &forecast,
		})
	}
	return out
}

// splitMonth parses a "YYYY-MM" label into its parts.
func splitMonth(label string) (year, month int, ok bool) {
	if _, err := fmt.Sscanf(label, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// advanceMonth moves a calendar month forward, rolling over years.
func advanceMonth(year, month, by int) string {
	t := time.Date(year, time.Month(month+by), 1, 0, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
