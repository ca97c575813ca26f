package model

import "time"

// Candle represents one OHLCV bar as returned by the brokerage candle
// endpoint. Start and End bound the period; date and time columns are
// derived from End when candles are tabulated.
//
// Invariant: Low <= Open, Close <= High.
type Candle struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Open   float64   `json:"open"`
	Close  float64   `json:"close"`
	Low    float64   `json:"low"`
	High   float64   `json:"high"`
	Volume int64     `json:"volume"`
	VWAP   float64   `json:"VWAP"`
}
