package drip

import (
	"testing"
	"time"
)

// datesEvery builds n dates starting at 'start', each 'gap' days apart.
func datesEvery(start Date, gap, n int) []Date {
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = start.Add(i * gap)
	}
	return dates
}

func TestInferCadence(t *testing.T) {
	start := NewDate(2024, time.January, 15)

	tests := []struct {
		name      string
		dates     []Date
		period    Period
		irregular bool
	}{
		{"monthly", datesEvery(start, 30, 12), Monthly, false},
		{"monthly low bound", datesEvery(start, 25, 4), Monthly, false},
		{"monthly high bound", datesEvery(start, 35, 4), Monthly, false},
		{"quarterly", datesEvery(start, 91, 5), Quarterly, false},
		{"quarterly low bound", datesEvery(start, 80, 4), Quarterly, false},
		{"quarterly high bound", datesEvery(start, 100, 4), Quarterly, false},
		{"semiannual", datesEvery(start, 183, 4), Semiannual, false},
		{"annual", datesEvery(start, 365, 3), Annual, false},
		{"between bands", datesEvery(start, 60, 4), Monthly, true},
		{"wider than annual", datesEvery(start, 400, 3), Monthly, true},
		{"just past quarterly", datesEvery(start, 101, 4), Monthly, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCadence(tt.dates)
			if got.Period != tt.period {
				t.Errorf("Period = %v, want %v", got.Period, tt.period)
			}
			if got.Irregular != tt.irregular {
				t.Errorf("Irregular = %v, want %v", got.Irregular, tt.irregular)
			}
			if !got.Measured {
				t.Errorf("Measured = false, want true with %d dates", len(tt.dates))
			}
		})
	}
}

func TestInferCadenceUnevenGaps(t *testing.T) {
	// Real payment dates drift by a few days; the average still lands
	// in the quarterly band.
	dates := []Date{
		NewDate(2024, time.February, 9),
		NewDate(2024, time.May, 10),
		NewDate(2024, time.August, 12),
		NewDate(2024, time.November, 8),
	}
	got := InferCadence(dates)
	if got.Period != Quarterly || got.Irregular {
		t.Errorf("InferCadence = %+v, want quarterly regular", got)
	}
}

func TestInferCadenceFractionalBoundary(t *testing.T) {
	// Gaps of 100 and 101 days average 100.5, just past the quarterly
	// ceiling, and fall through to the monthly fallback.
	start := NewDate(2024, time.January, 15)
	dates := []Date{start, start.Add(100), start.Add(201)}

	got := InferCadence(dates)
	if got.Period != Monthly || !got.Irregular {
		t.Errorf("InferCadence = %+v, want irregular monthly fallback", got)
	}
	if got.AvgIntervalDays != 100.5 {
		t.Errorf("AvgIntervalDays = %v, want 100.5", got.AvgIntervalDays)
	}
}

func TestInferCadenceTooFewDates(t *testing.T) {
	for _, dates := range [][]Date{nil, {NewDate(2025, time.March, 1)}} {
		got := InferCadence(dates)
		if got.Period != Monthly {
			t.Errorf("Period = %v, want Monthly", got.Period)
		}
		if got.Measured {
			t.Errorf("Measured = true with %d dates, want false", len(dates))
		}
		if got.AvgIntervalDays != 30 {
			t.Errorf("AvgIntervalDays = %v, want 30 sentinel", got.AvgIntervalDays)
		}
	}
}

func TestCadenceLabel(t *testing.T) {
	regular := Cadence{Period: Quarterly, Measured: true}
	if regular.Label() != "분기" {
		t.Errorf("Label = %q, want 분기", regular.Label())
	}
	fallback := Cadence{Period: Monthly, Measured: true, Irregular: true}
	if fallback.Label() != "매월 (불규칙)" {
		t.Errorf("Label = %q, want 매월 (불규칙)", fallback.Label())
	}
}
