package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"GapScanner/internal/model"
)

// Interval is the spacing between two consecutive indicator data points.
type Interval string

const (
	IntervalOneMinute     Interval = "1min"
	IntervalFiveMinutes   Interval = "5min"
	IntervalFifteenMin    Interval = "15min"
	IntervalThirtyMinutes Interval = "30min"
	IntervalSixtyMinutes  Interval = "60min"
	IntervalDaily         Interval = "daily"
	IntervalWeekly        Interval = "weekly"
	IntervalMonthly       Interval = "monthly"
)

// SeriesType is the price used to build an indicator series.
type SeriesType string

const (
	SeriesOpen  SeriesType = "open"
	SeriesClose SeriesType = "close"
	SeriesHigh  SeriesType = "high"
	SeriesLow   SeriesType = "low"
)

// smaKey is the top-level key under which the provider nests the series.
const smaKey = "Technical Analysis: SMA"

// AlphaVantage fetches technical-indicator series from the AlphaVantage
// query API. It is stateless; every call is one GET request.
type AlphaVantage struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantage creates a client authenticated by the given API key.
func NewAlphaVantage(baseURL, apiKey string, client *http.Client) *AlphaVantage {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AlphaVantage{BaseURL: baseURL, APIKey: apiKey, Client: client}
}

func (a *AlphaVantage) Name() string { return "alphavantage" }

// SMA fetches the simple-moving-average series for a ticker in the
// provider's default date range. The provider reports errors as a JSON
// body without the series key, so a missing key surfaces as a
// ResponseShapeError rather than an empty result.
func (a *AlphaVantage) SMA(ctx context.Context, ticker string, interval Interval, timePeriod int, seriesType SeriesType) (model.SMASeries, error) {
	q := url.Values{}
	q.Set("function", "SMA")
	q.Set("symbol", ticker)
	q.Set("interval", string(interval))
	q.Set("time_period", strconv.Itoa(timePeriod))
	q.Set("series_type", string(seriesType))
	q.Set("apikey", a.APIKey)
	endpoint := fmt.Sprintf("%s/query?%s", strings.TrimSuffix(a.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch SMA: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch SMA: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch SMA: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode SMA response: %w", err)
	}
	raw, ok := payload[smaKey]
	if !ok {
		return nil, &ResponseShapeError{Key: smaKey}
	}

	var points map[string]struct {
		SMA string `json:"SMA"`
	}
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("decode SMA series: %w", err)
	}

	out := make(model.SMASeries, len(points))
	for date, p := range points {
		out[date] = p.SMA
	}
	return out, nil
}
