package drip

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is the display currency of a ticker: a symbol for headers
// and an ISO code for arithmetic-free formatting.
type Currency struct {
	Symbol string
	Code   string
}

// ResolveCurrency maps a ticker to its display currency. Korean
// exchange suffixes (.KS for KOSPI, .KQ for KOSDAQ) resolve to won,
// everything else to US dollar. The resolution is a static rule, used
// only for formatting, never in any computation.
func ResolveCurrency(ticker string) Currency {
	code := money.USD
	upper := strings.ToUpper(ticker)
	if strings.HasSuffix(upper, ".KS") || strings.HasSuffix(upper, ".KQ") {
		code = money.KRW
	}
	return Currency{Symbol: money.GetCurrency(code).Grapheme, Code: code}
}
