package yahoo

import (
	"fmt"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/dripsim/drip"
)

// LatestQuote returns the most recent regular-market price of a
// ticker. The meta block of the chart payload is loosely typed and
// occasionally reshuffled, so it is probed with jsonpath instead of a
// struct decode.
func (c *Client) LatestQuote(ticker string) (drip.Money, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL, url.PathEscape(ticker))

	var jobj any
	if err := jwget(c.httpClient(), addr, &jobj); err != nil {
		return drip.Money{}, fetchError(ticker, err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return drip.Money{}, &drip.DataError{Kind: drip.UnknownTicker, Ticker: ticker, Err: err}
	}
	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		currency = drip.ResolveCurrency(ticker).Code
	}
	return drip.M(price, currency), nil
}

// jsonFloat resolves a jsonpath expression to a float.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

// jsonString resolves a jsonpath expression to a string.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return val, nil
}
