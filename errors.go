package drip

import "fmt"

// ValidationError reports a bad input, surfaced before any computation
// starts. It is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DataErrorKind categorizes why market data could not be obtained.
type DataErrorKind int

const (
	NetworkFailure DataErrorKind = iota
	UnknownTicker
	NoDividendData
	NoPriceData
)

func (k DataErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case UnknownTicker:
		return "unknown ticker"
	case NoDividendData:
		return "no dividend data"
	case NoPriceData:
		return "no price data"
	default:
		return "data unavailable"
	}
}

// DataError reports that market data is unavailable for a ticker. It
// carries a category-specific remediation hint and is not retried
// automatically.
type DataError struct {
	Kind   DataErrorKind
	Ticker string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Ticker, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Ticker, e.Kind)
}

func (e *DataError) Unwrap() error { return e.Err }

// Hint returns a remediation hint for display to the user.
func (e *DataError) Hint() string {
	switch e.Kind {
	case NetworkFailure:
		return "네트워크 연결을 확인한 후 다시 시도해 주세요."
	case UnknownTicker:
		return "티커를 다시 확인해 주세요. 예: SCHD, AAPL, 005930.KS"
	case NoDividendData:
		return "배당을 지급하지 않는 종목이거나 기간 내 배당 기록이 없습니다."
	case NoPriceData:
		return "해당 기간의 주가 기록이 없습니다. 기간을 조정해 보세요."
	default:
		return ""
	}
}
