package drip

import "slices"

// DividendEvent is a single dividend payment: the ex-dividend date and
// the amount paid per share. Immutable once created.
type DividendEvent struct {
	Date   Date  `json:"date"`
	Amount Money `json:"amount"`
}

// SortEvents sorts events chronologically in place and returns the slice.
// Reinvestment is order-dependent, compounding requires strict ordering.
func SortEvents(events []DividendEvent) []DividendEvent {
	slices.SortStableFunc(events, func(a, b DividendEvent) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
	return events
}

// eventDates extracts the payment dates of a sorted event sequence.
func eventDates(events []DividendEvent) []Date {
	dates := make([]Date, 0, len(events))
	for _, ev := range events {
		dates = append(dates, ev.Date)
	}
	return dates
}
