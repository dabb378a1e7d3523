package drip

import "strings"

// MaxPriceOffsetDays is the widest window searched around a dividend
// date for a usable close price.
const MaxPriceOffsetDays = 5

// Simulation describes one dividend reinvestment run.
type Simulation struct {
	Ticker        string
	Range         Range
	InitialShares int64
	// Today pins the boundary between the actual and forecast phases.
	// The zero value means the wall-clock date; tests and reproducible
	// runs set it explicitly.
	Today Date
}

// Result is the outcome of a run, read-only to consumers.
type Result struct {
	Ticker        string   `json:"ticker"`
	InitialShares Quantity `json:"initialShares"`
	FinalShares   Quantity `json:"finalShares"`
	SharesGained  Quantity `json:"sharesGained"`
	RemainingCash Money    `json:"remainingCash"`
	Cadence       Cadence  `json:"cadence"`
	// Forecast basis: the last historical payment replayed at the most
	// recent known close.
	DividendPerPayment Money       `json:"dividendPerPayment"`
	FixedPrice         Money       `json:"fixedPrice"`
	Rows               []LedgerRow `json:"rows"`
}

// IncreaseRate returns the share gain relative to the initial position.
func (r *Result) IncreaseRate() Percent {
	return r.SharesGained.Percent(r.InitialShares)
}

// Run drives one simulation: historical reinvestment over the recorded
// dividends, then cadence-stepped forecasting up to the horizon.
//
// The walk is single-threaded and strictly ordered by event date.
// A dividend date with no close within the lookup window contributes
// no row and does not advance state.
func (s Simulation) Run(provider MarketDataProvider) (*Result, error) {
	ticker := strings.ToUpper(strings.TrimSpace(s.Ticker))
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}
	if err := ValidateRange(s.Range); err != nil {
		return nil, err
	}
	if err := ValidateShares(s.InitialShares); err != nil {
		return nil, err
	}

	today := s.Today
	if today.IsZero() {
		today = Today()
	}

	histEnd := s.Range.To
	if histEnd.After(today) {
		histEnd = today
	}
	histRange := Range{From: s.Range.From, To: histEnd}

	events, err := provider.Dividends(ticker, histRange)
	if err != nil {
		return nil, err
	}
	events = SortEvents(filterEvents(events, histRange))
	if len(events) == 0 {
		return nil, &DataError{Kind: NoDividendData, Ticker: ticker}
	}

	prices, err := provider.PriceHistory(ticker, histRange)
	if err != nil {
		return nil, err
	}
	if prices.Len() == 0 {
		return nil, &DataError{Kind: NoPriceData, Ticker: ticker}
	}

	cadence := InferCadence(eventDates(events))

	state := State{Shares: Q(s.InitialShares)}
	var rows []LedgerRow
	for _, ev := range events {
		price, ok := prices.Nearest(ev.Date, MaxPriceOffsetDays)
		if !ok {
			continue // no nearby close, the event is skipped entirely
		}
		var row LedgerRow
		state, row = state.Apply(ev, price, Actual)
		rows = append(rows, row)
	}

	last := events[len(events)-1]
	_, fixedPrice := prices.Latest()

	if s.Range.To.After(today) {
		var forecast []LedgerRow
		state, forecast = ForecastFrom(cadence, last.Date, today, s.Range.To, last.Amount, fixedPrice, state)
		rows = append(rows, forecast...)
	}

	return &Result{
		Ticker:             ticker,
		InitialShares:      Q(s.InitialShares),
		FinalShares:        state.Shares,
		SharesGained:       state.Shares.Sub(Q(s.InitialShares)),
		RemainingCash:      state.Cash.Round2(),
		Cadence:            cadence,
		DividendPerPayment: last.Amount,
		FixedPrice:         fixedPrice,
		Rows:               rows,
	}, nil
}

// filterEvents keeps the events whose date falls inside the range.
// The input slice is left untouched so providers may hand out cached
// data.
func filterEvents(events []DividendEvent, r Range) []DividendEvent {
	kept := make([]DividendEvent, 0, len(events))
	for _, ev := range events {
		if r.Contains(ev.Date) {
			kept = append(kept, ev)
		}
	}
	return kept
}
