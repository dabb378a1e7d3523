package drip

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Period is a dividend payment cadence unit.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Semiannual
	Annual
)

// Months returns the number of months of one cadence step.
func (p Period) Months() int {
	switch p {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	case Semiannual:
		return 6
	case Annual:
		return 12
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Semiannual:
		return "semiannual"
	case Annual:
		return "annual"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Label returns the Korean display name of the cadence, as shown in
// the summary and in exports.
func (p Period) Label() string {
	switch p {
	case Monthly:
		return "매월"
	case Quarterly:
		return "분기"
	case Semiannual:
		return "반기"
	case Annual:
		return "연간"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// MarshalJSON serializes the period by name, not by ordinal.
func (p Period) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

func (p *Period) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParsePeriod(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePeriod parses a cadence unit name.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "semiannual", "halfyearly", "half":
		return Semiannual, nil
	case "annual", "yearly", "year":
		return Annual, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}
