// Package yahoo fetches dividend and daily close series from the
// Yahoo Finance chart API.
//
// One chart call per (ticker, range) returns both series; responses
// are cached on disk for a few minutes so that re-running a simulation
// does not trigger redundant round-trips. The cache only affects
// latency, never results.
package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dripsim/drip"
)

// DefaultBaseURL is the public chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// DefaultTTL bounds the staleness of cached responses.
const DefaultTTL = 10 * time.Minute

// Client is a Yahoo Finance market data provider.
type Client struct {
	baseURL string
	ttl     time.Duration
}

// New returns a Client against the public API with the default cache TTL.
func New() *Client { return &Client{baseURL: DefaultBaseURL, ttl: DefaultTTL} }

// NewWith returns a Client against a specific endpoint, used by tests
// and proxies. A zero ttl disables response caching.
func NewWith(baseURL string, ttl time.Duration) *Client {
	return &Client{baseURL: baseURL, ttl: ttl}
}

var _ drip.MarketDataProvider = (*Client)(nil)

// chart API payload. Absent series decode to nil.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency string `json:"currency"`
		Symbol   string `json:"symbol"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		// keyed by the unix timestamp of the ex-dividend date
		Dividends map[string]dividend `json:"dividends"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			// entries are null on halted days, hence pointers
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type dividend struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// Dividends implements drip.MarketDataProvider.
func (c *Client) Dividends(ticker string, r drip.Range) ([]drip.DividendEvent, error) {
	result, err := c.chart(ticker, r)
	if err != nil {
		return nil, err
	}
	events := make([]drip.DividendEvent, 0, len(result.Events.Dividends))
	for _, d := range result.Events.Dividends {
		on := drip.DateOf(time.Unix(d.Date, 0))
		events = append(events, drip.DividendEvent{
			Date:   on,
			Amount: drip.M(d.Amount, result.Meta.Currency),
		})
	}
	return drip.SortEvents(events), nil
}

// PriceHistory implements drip.MarketDataProvider.
func (c *Client) PriceHistory(ticker string, r drip.Range) (*drip.PriceHistory, error) {
	result, err := c.chart(ticker, r)
	if err != nil {
		return nil, err
	}
	prices := new(drip.PriceHistory)
	if len(result.Indicators.Quote) == 0 {
		return prices, nil
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		on := drip.DateOf(time.Unix(ts, 0))
		prices.Append(on, drip.M(*closes[i], result.Meta.Currency))
	}
	return prices, nil
}

// chart performs (or replays from cache) the single API call backing
// both series.
func (c *Client) chart(ticker string, r drip.Range) (*chartResult, error) {
	// the API's period2 bound is exclusive, hence the extra day
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(r.From.Unix(), 10))
	q.Set("period2", strconv.FormatInt(r.To.Add(1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div")
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())

	var payload chartResponse
	if err := jwget(c.httpClient(), addr, &payload); err != nil {
		return nil, fetchError(ticker, err)
	}
	if apiErr := payload.Chart.Error; apiErr != nil {
		return nil, &drip.DataError{
			Kind:   drip.UnknownTicker,
			Ticker: ticker,
			Err:    fmt.Errorf("%s: %s", apiErr.Code, apiErr.Description),
		}
	}
	if len(payload.Chart.Result) == 0 {
		return nil, &drip.DataError{Kind: drip.UnknownTicker, Ticker: ticker}
	}
	return &payload.Chart.Result[0], nil
}

// fetchError classifies a failed API call. Yahoo answers unknown
// symbols with a 404 whose body still carries the chart.error block,
// so the status path must be probed before concluding the network is
// at fault.
func fetchError(ticker string, err error) error {
	var serr *statusError
	if errors.As(err, &serr) {
		var payload chartResponse
		if jsonErr := json.Unmarshal(serr.body, &payload); jsonErr == nil && payload.Chart.Error != nil {
			apiErr := payload.Chart.Error
			return &drip.DataError{
				Kind:   drip.UnknownTicker,
				Ticker: ticker,
				Err:    fmt.Errorf("%s: %s", apiErr.Code, apiErr.Description),
			}
		}
		if serr.status == http.StatusNotFound {
			return &drip.DataError{Kind: drip.UnknownTicker, Ticker: ticker, Err: serr}
		}
	}
	return &drip.DataError{Kind: drip.NetworkFailure, Ticker: ticker, Err: err}
}
