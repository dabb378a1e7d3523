package drip

import (
	"testing"
	"time"
)

func TestHistoryAppendKeepsOrder(t *testing.T) {
	h := &PriceHistory{}
	h.Append(NewDate(2025, time.March, 3), M(30, "USD"))
	h.Append(NewDate(2025, time.January, 2), M(10, "USD"))
	h.Append(NewDate(2025, time.February, 3), M(20, "USD"))

	var got []Date
	for day := range h.Values() {
		got = append(got, day)
	}
	want := []Date{
		NewDate(2025, time.January, 2),
		NewDate(2025, time.February, 3),
		NewDate(2025, time.March, 3),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: %v, want %v", i, got[i], want[i])
		}
	}

	// Appending an existing date overwrites.
	h.Append(NewDate(2025, time.February, 3), M(21, "USD"))
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3 after overwrite", h.Len())
	}
	if close, _ := h.Get(NewDate(2025, time.February, 3)); !close.Equal(M(21, "USD")) {
		t.Errorf("overwritten close = %v, want 21", close)
	}
}

func TestHistoryLatest(t *testing.T) {
	h := &PriceHistory{}
	if day, close := h.Latest(); !day.IsZero() || !close.IsZero() {
		t.Errorf("empty Latest = %v %v, want zeros", day, close)
	}

	h.Append(NewDate(2025, time.June, 2), M(55, "USD"))
	h.Append(NewDate(2025, time.June, 30), M(57, "USD"))
	day, close := h.Latest()
	if day != NewDate(2025, time.June, 30) || !close.Equal(M(57, "USD")) {
		t.Errorf("Latest = %v %v", day, close)
	}
}

func TestHistoryNearest(t *testing.T) {
	// Friday and Monday around a weekend, plus an exact hit.
	h := &PriceHistory{}
	friday := NewDate(2025, time.March, 14)
	monday := NewDate(2025, time.March, 17)
	h.Append(friday, M(10, "USD"))
	h.Append(monday, M(20, "USD"))

	tests := []struct {
		name   string
		target Date
		window int
		want   Money
		ok     bool
	}{
		{"exact hit", friday, 5, M(10, "USD"), true},
		{"saturday takes friday", friday.Add(1), 5, M(10, "USD"), true},
		{"sunday takes monday", friday.Add(2), 5, M(20, "USD"), true},
		{"after monday falls back", monday.Add(2), 5, M(20, "USD"), true},
		{"outside window", monday.Add(20), 5, Money{}, false},
		{"zero window misses", friday.Add(1), 0, Money{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.Nearest(tt.target, tt.window)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Nearest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHistoryNearestPrefersForward(t *testing.T) {
	// Both neighbors are one day away; the forward close wins.
	h := &PriceHistory{}
	h.Append(NewDate(2025, time.May, 12), M(1, "USD"))
	h.Append(NewDate(2025, time.May, 14), M(2, "USD"))

	got, ok := h.Nearest(NewDate(2025, time.May, 13), 5)
	if !ok || !got.Equal(M(2, "USD")) {
		t.Errorf("Nearest = %v %v, want the forward close 2", got, ok)
	}
}
