package drip

import (
	"errors"
	"testing"
	"time"
)

// fakeProvider serves canned market data in tests.
type fakeProvider struct {
	events []DividendEvent
	prices *PriceHistory
	err    error
}

func (f *fakeProvider) Dividends(ticker string, r Range) ([]DividendEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeProvider) PriceHistory(ticker string, r Range) (*PriceHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.prices == nil {
		return &PriceHistory{}, nil
	}
	return f.prices, nil
}

// quarterlyProvider pays $1 per share every quarter of 2025 at a flat
// $50 close.
func quarterlyProvider() *fakeProvider {
	p := &fakeProvider{prices: &PriceHistory{}}
	for _, day := range []Date{
		NewDate(2025, time.February, 14),
		NewDate(2025, time.May, 14),
		NewDate(2025, time.August, 14),
		NewDate(2025, time.November, 14),
	} {
		p.events = append(p.events, DividendEvent{Date: day, Amount: M(1, "USD")})
		p.prices.Append(day, M(50, "USD"))
	}
	return p
}

func TestRunHistoricalOnly(t *testing.T) {
	sim := Simulation{
		Ticker:        "tst",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2026, time.March, 1), // whole range is in the past
	}
	result, err := sim.Run(quarterlyProvider())
	if err != nil {
		t.Fatal(err)
	}

	if result.Ticker != "TST" {
		t.Errorf("Ticker = %q, want normalized TST", result.Ticker)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row.Category != Actual {
			t.Errorf("row %v category = %v, want Actual", row.Date, row.Category)
		}
	}

	// 100 shares, $1/share quarterly at $50: +2, +2, +2, +2 shares.
	if !result.FinalShares.Equal(Q(108)) {
		t.Errorf("FinalShares = %v, want 108", result.FinalShares)
	}
	if !result.SharesGained.Equal(Q(8)) {
		t.Errorf("SharesGained = %v, want 8", result.SharesGained)
	}
	if result.Cadence.Period != Quarterly || !result.Cadence.Measured {
		t.Errorf("Cadence = %+v, want measured quarterly", result.Cadence)
	}
	if got := result.IncreaseRate(); !got.Equal(Percent(8)) {
		t.Errorf("IncreaseRate = %v, want 8%%", got)
	}
}

func TestRunForecastContinuation(t *testing.T) {
	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2026, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2025, time.December, 31),
	}
	result, err := sim.Run(quarterlyProvider())
	if err != nil {
		t.Fatal(err)
	}

	// 4 historical quarters plus 4 forecast quarters in 2026.
	if len(result.Rows) != 8 {
		t.Fatalf("got %d rows, want 8", len(result.Rows))
	}
	for i, row := range result.Rows {
		want := Actual
		if i >= 4 {
			want = Forecast
		}
		if row.Category != want {
			t.Errorf("row %d (%v) category = %v, want %v", i, row.Date, row.Category, want)
		}
	}

	// The forecast replays the last payment at the latest close.
	if !result.DividendPerPayment.Equal(M(1, "USD")) {
		t.Errorf("DividendPerPayment = %v, want 1", result.DividendPerPayment)
	}
	if !result.FixedPrice.Equal(M(50, "USD")) {
		t.Errorf("FixedPrice = %v, want 50", result.FixedPrice)
	}

	// Rows are strictly chronological across the phase boundary.
	for i := 1; i < len(result.Rows); i++ {
		if !result.Rows[i].Date.After(result.Rows[i-1].Date) {
			t.Errorf("rows out of order at %d: %v then %v", i, result.Rows[i-1].Date, result.Rows[i].Date)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2026, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2025, time.December, 31),
	}
	a, err := sim.Run(quarterlyProvider())
	if err != nil {
		t.Fatal(err)
	}
	b, err := sim.Run(quarterlyProvider())
	if err != nil {
		t.Fatal(err)
	}
	if !a.FinalShares.Equal(b.FinalShares) || !a.RemainingCash.Equal(b.RemainingCash) || len(a.Rows) != len(b.Rows) {
		t.Errorf("two identical runs differ: %+v vs %+v", a, b)
	}
}

func TestRunSkipsEventsWithoutPrice(t *testing.T) {
	p := quarterlyProvider()
	// Insert a payment with no close anywhere near it.
	p.events = append(p.events, DividendEvent{Date: NewDate(2025, time.June, 30), Amount: M(1, "USD")})

	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2026, time.March, 1),
	}
	result, err := sim.Run(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 4 {
		t.Errorf("got %d rows, want 4 with the gapped event skipped", len(result.Rows))
	}
}

func TestRunFiltersOutOfRangeEvents(t *testing.T) {
	p := quarterlyProvider()
	p.events = append(p.events, DividendEvent{Date: NewDate(2024, time.November, 14), Amount: M(1, "USD")})

	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2026, time.March, 1),
	}
	result, err := sim.Run(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 4 {
		t.Errorf("got %d rows, want 4 with the 2024 event filtered", len(result.Rows))
	}
}

func TestRunLeavesProviderDataIntact(t *testing.T) {
	p := quarterlyProvider()
	// Out-of-range and out-of-order entries, as a caching provider
	// might hand out.
	p.events = append(p.events, DividendEvent{Date: NewDate(2024, time.November, 14), Amount: M(1, "USD")})
	p.events[0], p.events[1] = p.events[1], p.events[0]

	before := make([]DividendEvent, len(p.events))
	copy(before, p.events)

	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2026, time.March, 1),
	}
	if _, err := sim.Run(p); err != nil {
		t.Fatal(err)
	}

	if len(p.events) != len(before) {
		t.Fatalf("provider slice length changed: %d, want %d", len(p.events), len(before))
	}
	for i := range before {
		if p.events[i] != before[i] {
			t.Errorf("provider event %d changed: %+v, want %+v", i, p.events[i], before[i])
		}
	}
}

func TestRunValidation(t *testing.T) {
	valid := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
	}

	tests := []struct {
		name   string
		mutate func(*Simulation)
		field  string
	}{
		{"empty ticker", func(s *Simulation) { s.Ticker = " " }, "ticker"},
		{"bad ticker", func(s *Simulation) { s.Ticker = "no ticker!" }, "ticker"},
		{"inverted range", func(s *Simulation) { s.Range.From, s.Range.To = s.Range.To, s.Range.From }, "range"},
		{"zero shares", func(s *Simulation) { s.InitialShares = 0 }, "shares"},
		{"huge shares", func(s *Simulation) { s.InitialShares = 2_000_000 }, "shares"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := valid
			tt.mutate(&sim)
			_, err := sim.Run(quarterlyProvider())
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want a ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestRunDataErrors(t *testing.T) {
	sim := Simulation{
		Ticker:        "TST",
		Range:         Range{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.December, 31)},
		InitialShares: 100,
		Today:         NewDate(2026, time.March, 1),
	}

	t.Run("provider failure passes through", func(t *testing.T) {
		boom := &DataError{Kind: NetworkFailure, Ticker: "TST", Err: errors.New("timeout")}
		_, err := sim.Run(&fakeProvider{err: boom})
		var derr *DataError
		if !errors.As(err, &derr) || derr.Kind != NetworkFailure {
			t.Fatalf("err = %v, want NetworkFailure", err)
		}
	})

	t.Run("no dividends", func(t *testing.T) {
		p := quarterlyProvider()
		p.events = nil
		_, err := sim.Run(p)
		var derr *DataError
		if !errors.As(err, &derr) || derr.Kind != NoDividendData {
			t.Fatalf("err = %v, want NoDividendData", err)
		}
		if derr.Hint() == "" {
			t.Error("expected a user hint")
		}
	})

	t.Run("no prices", func(t *testing.T) {
		p := quarterlyProvider()
		p.prices = nil
		_, err := sim.Run(p)
		var derr *DataError
		if !errors.As(err, &derr) || derr.Kind != NoPriceData {
			t.Fatalf("err = %v, want NoPriceData", err)
		}
	})
}
