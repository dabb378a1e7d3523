package drip

// MarketDataProvider supplies the historical series a simulation needs.
// Implementations report missing data through the *DataError taxonomy
// so callers can surface category-specific hints.
type MarketDataProvider interface {
	// Dividends returns the per-share dividend payments of ticker
	// inside the range, in chronological order.
	Dividends(ticker string, r Range) ([]DividendEvent, error)

	// PriceHistory returns the daily closes of ticker inside the
	// range. The series is sparse: non-trading days are absent.
	PriceHistory(ticker string, r Range) (*PriceHistory, error)
}
