package drip

import "regexp"

// tickers are Yahoo-style symbols: letters and digits, optionally
// followed by an exchange suffix like .KS or .KQ.
var tickerRE = regexp.MustCompile(`^[A-Z0-9]{1,10}(\.[A-Z]{1,4})?$`)

// maxInitialShares bounds the initial position to a sane input range.
const maxInitialShares = 1_000_000

// ValidateTicker checks the syntax of a ticker symbol. The caller is
// expected to have upper-cased and trimmed it.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return &ValidationError{Field: "ticker", Reason: "비어 있습니다"}
	}
	if !tickerRE.MatchString(ticker) {
		return &ValidationError{Field: "ticker", Reason: "형식이 올바르지 않습니다: " + ticker}
	}
	return nil
}

// ValidateRange checks that the simulation range ends after it starts.
func ValidateRange(r Range) error {
	if r.From.IsZero() || r.To.IsZero() {
		return &ValidationError{Field: "range", Reason: "시작일자와 종료일자가 필요합니다"}
	}
	if !r.To.After(r.From) {
		return &ValidationError{Field: "range", Reason: "종료일자는 시작일자 이후여야 합니다"}
	}
	return nil
}

// ValidateShares checks the initial share count.
func ValidateShares(n int64) error {
	if n < 1 {
		return &ValidationError{Field: "shares", Reason: "초기 보유 수량은 1 이상이어야 합니다"}
	}
	if n > maxInitialShares {
		return &ValidationError{Field: "shares", Reason: "초기 보유 수량이 너무 큽니다"}
	}
	return nil
}
