package drip

// Cadence is the inferred payment schedule of a security, derived once
// per simulation from its historical dividend dates.
type Cadence struct {
	Period Period `json:"period"`
	// AvgIntervalDays is the mean day-gap between consecutive payments.
	// It is only meaningful when Measured is true; otherwise it holds
	// the 30-day sentinel.
	AvgIntervalDays float64 `json:"avgIntervalDays"`
	// Measured reports whether the average was computed from at least
	// two historical payments.
	Measured bool `json:"measured"`
	// Irregular reports that no clean cadence band matched and the
	// monthly step is a deliberate default, not a detected cadence.
	Irregular bool `json:"irregular,omitempty"`
}

// StepMonths returns the number of months of one cadence step.
func (c Cadence) StepMonths() int { return c.Period.Months() }

// Label returns the Korean display name of the cadence, marking the
// fallback case as approximate.
func (c Cadence) Label() string {
	if c.Irregular {
		return c.Period.Label() + " (불규칙)"
	}
	return c.Period.Label()
}

// cadence bands, inclusive day-gap ranges over noisy real-world
// payment dates. Companies do not pay on perfectly fixed day-counts.
var cadenceBands = []struct {
	lo, hi float64
	period Period
}{
	{25, 35, Monthly},
	{80, 100, Quarterly},
	{170, 200, Semiannual},
	{350, 380, Annual},
}

// InferCadence classifies the payment schedule from sorted historical
// payment dates.
//
// With fewer than two dates there is nothing to measure: it defaults
// to monthly with a 30-day sentinel. Otherwise the average gap between
// consecutive payments is matched against the bands in order; any
// value outside every band falls back to a monthly step flagged as
// irregular.
func InferCadence(dates []Date) Cadence {
	if len(dates) < 2 {
		return Cadence{Period: Monthly, AvgIntervalDays: 30}
	}

	total := 0
	for i := 1; i < len(dates); i++ {
		total += dates[i].DaysSince(dates[i-1])
	}
	avg := float64(total) / float64(len(dates)-1)

	for _, band := range cadenceBands {
		if avg >= band.lo && avg <= band.hi {
			return Cadence{Period: band.period, AvgIntervalDays: avg, Measured: true}
		}
	}
	return Cadence{Period: Monthly, AvgIntervalDays: avg, Measured: true, Irregular: true}
}
