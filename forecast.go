package drip

// ForecastFrom extends a reinvestment walk past the last observation.
//
// Starting from the last known payment date (or today when no history
// exists), it steps forward by whole cadence increments until the date
// is strictly after today; that date is the first synthetic payment.
// From there it emits one event per step, each paying the fixed
// dividend and bought at the fixed price, until the stepped date would
// pass the horizon.
//
// Forecast dates are never weekend-adjusted: the cadence step is
// applied verbatim.
func ForecastFrom(c Cadence, lastPayment, today, horizon Date, dividend, price Money, st State) (State, []LedgerRow) {
	step := c.StepMonths()

	next := lastPayment
	if next.IsZero() {
		next = today
	}
	for !next.After(today) {
		next = next.AddMonth(step)
	}

	var rows []LedgerRow
	for !next.After(horizon) {
		ev := DividendEvent{Date: next, Amount: dividend}
		var row LedgerRow
		st, row = st.Apply(ev, price, Forecast)
		rows = append(rows, row)
		next = next.AddMonth(step)
	}
	return st, rows
}
