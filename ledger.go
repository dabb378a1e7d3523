package drip

// Category tells whether a ledger row comes from recorded history or
// from the forecast phase.
type Category string

const (
	Actual   Category = "actual"
	Forecast Category = "forecast"
)

// Label returns the Korean display name used in tables and exports.
func (c Category) Label() string {
	switch c {
	case Actual:
		return "실제"
	case Forecast:
		return "예측"
	default:
		return string(c)
	}
}

// LedgerRow is one emitted record per dividend event. Produced exactly
// once per event, never mutated after emission.
type LedgerRow struct {
	Date             Date     `json:"date"`
	DividendPerShare Money    `json:"dividendPerShare"`
	SharesBefore     Quantity `json:"sharesBefore"`
	DividendCash     Money    `json:"dividendCash"`
	CashCarry        Money    `json:"cashCarry"`
	Price            Money    `json:"price"`
	SharesPurchased  Quantity `json:"sharesPurchased"`
	TotalShares      Quantity `json:"totalShares"`
	Category         Category `json:"category"`
}

// State is the running position of a reinvestment walk: total shares
// held and the cash remainder carried between payments. It is owned
// exclusively by the orchestrator for the duration of one run.
type State struct {
	Shares Quantity
	Cash   Money
}

// Apply reinvests a single dividend event at the given price and
// returns the advanced state plus the emitted ledger row.
//
// The dividend cash is added to the carry, then as many whole shares
// as the carry affords are bought; the rest carries forward. Callers
// are responsible for sequencing: events must be applied in strict
// chronological order.
func (s State) Apply(ev DividendEvent, price Money, cat Category) (State, LedgerRow) {
	cashEvent := ev.Amount.Mul(s.Shares)
	carry := s.Cash.Add(cashEvent)

	purchased := Q(carry.DivPrice(price).IntPart())
	if purchased.IsPositive() {
		carry = carry.Sub(price.Mul(purchased))
		s.Shares = s.Shares.Add(purchased)
	}
	s.Cash = carry

	row := LedgerRow{
		Date:             ev.Date,
		DividendPerShare: ev.Amount,
		SharesBefore:     s.Shares.Sub(purchased),
		DividendCash:     cashEvent,
		CashCarry:        carry,
		Price:            price,
		SharesPurchased:  purchased,
		TotalShares:      s.Shares,
		Category:         cat,
	}
	return s, row
}
