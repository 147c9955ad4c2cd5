package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client fetches market quotes from the chart API of the quote provider.
// It wraps an HTTP client and translates provider responses into model.Quote
// values.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, used by tests to point the
// client at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// NewClient creates a provider client with default HTTP settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchLatest retrieves the most recent daily quote for a symbol. The
// provider is asked for the last five trading days and the newest data point
// wins, so weekends and market holidays still resolve to a price. An empty
// token sends no Authorization header.
func (c *Client) FetchLatest(ctx context.Context, token, symbol string) (model.Quote, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.baseURL, symbol)
	resp, err := c.query(ctx, url, token)
	if err != nil {
		return model.Quote{}, err
	}
	return c.latestQuote(symbol, resp)
}

func (c *Client) latestQuote(symbol string, resp chartResponse) (model.Quote, error) {
	if len(resp.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	ticks, currency, err := parseChart(resp)
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to parse chart for %s: %w", symbol, err)
	}

	last := ticks[len(ticks)-1]
	return model.Quote{
		Symbol:     symbol,
		Price:      last.Close,
		Currency:   model.Currency(currency),
		Open:       last.Open,
		High:       last.High,
		Low:        last.Low,
		LastUpdate: last.Date,
	}, nil
}

// parseChart extracts the per-day ticks from a chart response. The provider
// returns parallel arrays, so their lengths must agree.
func parseChart(resp chartResponse) ([]tick, string, error) {
	result := resp.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return nil, "", fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return nil, "", fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return nil, "", fmt.Errorf("mismatched data lengths")
	}

	quote := result.Indicators.Quote[0]
	ticks := make([]tick, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		ticks[i] = tick{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  at(quote.Open, i),
			Close: quote.Close[i],
			High:  at(quote.High, i),
			Low:   at(quote.Low, i),
		}
	}

	return ticks, result.Meta.Currency, nil
}

func at(arr []float64, i int) float64 {
	if i < len(arr) {
		return arr[i]
	}
	return 0
}

func (c *Client) query(ctx context.Context, url, token string) (chartResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return chartResponse{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return chartResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return chartResponse{}, err
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return chartResponse{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("provider error: %s", *response.Chart.Error)
	}

	return response, nil
}
