package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"GapScanner/internal/model"
)

// MockBrokerage returns controllable fixed data for development and
// testing.
type MockBrokerage struct {
	SymbolIDs  map[string]int
	CandleData []model.Candle
	QuoteData  *model.Quote
}

func (m *MockBrokerage) Name() string { return "mock" }

func (m *MockBrokerage) SymbolID(_ context.Context, ticker string) (int, error) {
	if m.SymbolIDs == nil {
		return 1, nil
	}
	id, ok := m.SymbolIDs[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: ticker %q", ErrNoExactMatch, ticker)
	}
	return id, nil
}

func (m *MockBrokerage) Candles(_ context.Context, _ int, _, _ string, _ Granularity) ([]model.Candle, error) {
	if m.CandleData != nil {
		return m.CandleData, nil
	}
	return GenerateMockCandles(100, 260), nil
}

func (m *MockBrokerage) Quote(_ context.Context, symbolID int) (*model.Quote, error) {
	if m.QuoteData != nil {
		return m.QuoteData, nil
	}
	return &model.Quote{SymbolID: symbolID, LastTradePrice: 100, Volume: 1000000}, nil
}

// MockIndicators serves a fixed moving-average series.
type MockIndicators struct {
	Series model.SMASeries
}

func (m *MockIndicators) Name() string { return "mock" }

func (m *MockIndicators) SMA(_ context.Context, _ string, _ Interval, timePeriod int, _ SeriesType) (model.SMASeries, error) {
	if m.Series != nil {
		return m.Series, nil
	}
	out := make(model.SMASeries, 30)
	for i := 0; i < 30; i++ {
		date := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		out[date] = strconv.FormatFloat(100+float64(timePeriod)+float64(i)*0.1, 'f', 4, 64)
	}
	return out, nil
}

// GenerateMockCandles builds count daily candles ending today, drifting
// around basePrice.
func GenerateMockCandles(basePrice float64, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		end := time.Now().AddDate(0, 0, -(count - 1 - i))
		candles[i] = model.Candle{
			Start:  end.Add(-24 * time.Hour),
			End:    end,
			Open:   p * 0.999,
			Close:  p,
			Low:    p * 0.995,
			High:   p * 1.005,
			Volume: 1000000,
			VWAP:   p * 1.001,
		}
	}
	return candles
}
