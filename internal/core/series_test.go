package core

import "testing"

func TestNormalizeSeries(t *testing.T) {
	tests := []struct {
		name  string
		input []ExpensePoint
		want  []ExpensePoint
	}{
		{
			name: "sorts ascending by month",
			input: []ExpensePoint{
				{Month: "2026-03", Amount: 30},
				{Month: "2026-01", Amount: 10},
				{Month: "2026-02", Amount: 20},
			},
			want: []ExpensePoint{
				{Month: "2026-01", Amount: 10},
				{Month: "2026-02", Amount: 20},
				{Month: "2026-03", Amount: 30},
			},
		},
		{
			name: "last entry wins on duplicate month",
			input: []ExpensePoint{
				{Month: "2026-02", Amount: 5},
				{Month: "2026-02", Amount: 9},
			},
			want: []ExpensePoint{{Month: "2026-02", Amount: 9}},
		},
		{
			name:  "malformed months dropped silently",
			input: []ExpensePoint{{Month: "bad", Amount: 1}, {Month: "2026-1", Amount: 2}, {Month: "202601", Amount: 3}},
			want:  []ExpensePoint{},
		},
		{
			name:  "whitespace trimmed before validation",
			input: []ExpensePoint{{Month: "  2026-04 ", Amount: 7}},
			want:  []ExpensePoint{{Month: "2026-04", Amount: 7}},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []ExpensePoint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSeries(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d points, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeSeriesIsIdempotent(t *testing.T) {
	input := []ExpensePoint{
		{Month: "2026-03", Amount: 12.5},
		{Month: "2026-01", Amount: 3},
		{Month: "2026-03", Amount: 14},
	}
	once := NormalizeSeries(input)
	twice := NormalizeSeries(once)
	if len(once) != len(twice) {
		t.Fatalf("idempotence broken: %d vs %d points", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d changed on re-normalize: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestSortSeriesDoesNotMutateInput(t *testing.T) {
	input := []ExpensePoint{
		{Month: "2026-02", Amount: 2},
		{Month: "2026-01", Amount: 1},
	}
	_ = SortSeries(input)
	if input[0].Month != "2026-02" {
		t.Errorf("SortSeries mutated its input: %+v", input)
	}
}
