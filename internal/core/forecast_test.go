package core

import "testing"

func TestBuildForecastSeriesLinearTrend(t *testing.T) {
	series := []ExpensePoint{
		{Month: "2026-01", Amount: 100},
		{Month: "2026-02", Amount: 110},
		{Month: "2026-03", Amount: 120},
	}

	got := BuildForecastSeries(series, 2)
	if len(got) != 5 {
		t.Fatalf("got %d points, want 5", len(got))
	}

	for i, p := range got[:3] {
		if p.Actual == nil || p.Forecast != nil {
			t.Errorf("historical point %d should carry only an actual value: %+v", i, p)
		}
	}

	// Slope 10, intercept 100: x=3 -> 130, x=4 -> 140.
	checks := []struct {
		month string
		want  float64
	}{
		{"2026-04", 130.00},
		{"2026-05", 140.00},
	}
	for i, c := range checks {
		p := got[3+i]
		if p.Month != c.month {
			t.Errorf("forecast %d: month %q, want %q", i, p.Month, c.month)
		}
		if p.Forecast == nil {
			t.Fatalf("forecast %d: missing forecast value", i)
		}
		if *p.Forecast != c.want {
			t.Errorf("forecast %d: got %.2f, want %.2f", i, *p.Forecast, c.want)
		}
		if p.Actual != nil {
			t.Errorf("forecast %d should not carry an actual value", i)
		}
	}
}

func TestBuildForecastSeriesUnderDetermined(t *testing.T) {
	t.Run("single point yields no forecast regardless of horizon", func(t *testing.T) {
		got := BuildForecastSeries([]ExpensePoint{{Month: "2026-05", Amount: 42}}, 6)
		if len(got) != 1 {
			t.Fatalf("got %d points, want 1", len(got))
		}
		if got[0].Forecast != nil {
			t.Error("single-point series should not be extrapolated")
		}
	})

	t.Run("empty series yields nothing", func(t *testing.T) {
		if got := BuildForecastSeries(nil, 3); len(got) != 0 {
			t.Fatalf("got %d points, want 0", len(got))
		}
	})
}

func TestBuildForecastSeriesYearRollover(t *testing.T) {
	series := []ExpensePoint{
		{Month: "2026-11", Amount: 50},
		{Month: "2026-12", Amount: 60},
	}
	got := BuildForecastSeries(series, 2)
	if len(got) != 4 {
		t.Fatalf("got %d points, want 4", len(got))
	}
	if got[2].Month != "2027-01" || got[3].Month != "2027-02" {
		t.Errorf("months did not roll over the year: %q, %q", got[2].Month, got[3].Month)
	}
}

func TestBuildForecastSeriesFloorsNegativeProjections(t *testing.T) {
	series := []ExpensePoint{
		{Month: "2026-01", Amount: 100},
		{Month: "2026-02", Amount: 10},
	}
	got := BuildForecastSeries(series, 3)
	for _, p := range got {
		if p.Forecast != nil && *p.Forecast < 0 {
			t.Errorf("projection for %s went negative: %.2f", p.Month, *p.Forecast)
		}
	}
}

func TestBuildForecastSeriesIdempotentOnActuals(t *testing.T) {
	series := []ExpensePoint{
		{Month: "2026-01", Amount: 10},
		{Month: "2026-02", Amount: 30},
		{Month: "2026-03", Amount: 20},
	}
	first := BuildForecastSeries(series, 2)

	var actuals []ExpensePoint
	for _, p := range first {
		if p.Actual != nil {
			actuals = append(actuals, ExpensePoint{Month: p.Month, Amount: *p.Actual})
		}
	}

	second := BuildForecastSeries(actuals, 2)
	for i, p := range second {
		if p.Actual == nil {
			continue
		}
		if *first[i].Actual != *p.Actual || first[i].Month != p.Month {
			t.Errorf("actual %d changed on re-run: %+v vs %+v", i, first[i], p)
		}
	}
}
