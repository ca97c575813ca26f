package recorder

import "GapScanner/internal/model"

// ScreenRecord is one ticker's screen result flattened for persistence.
type ScreenRecord struct {
	Ticker       string
	GapDate      string
	SymbolID     int
	LastPrice    float64
	PivotLow     float64
	PivotLowAgo  int
	PivotHigh    float64
	PivotHighAgo int
	AvgVolume    float64
}

// FromSnapshot flattens the scalar parts of a snapshot into a record.
func FromSnapshot(snap *model.Snapshot) *ScreenRecord {
	rec := &ScreenRecord{
		Ticker:       snap.Ticker,
		GapDate:      snap.GapDate,
		SymbolID:     snap.SymbolID,
		PivotLow:     snap.PivotLow.Value,
		PivotLowAgo:  snap.PivotLow.PeriodsAgo,
		PivotHigh:    snap.PivotHigh.Value,
		PivotHighAgo: snap.PivotHigh.PeriodsAgo,
		AvgVolume:    snap.AvgVolume,
	}
	if snap.Quote != nil {
		rec.LastPrice = snap.Quote.LastTradePrice
	}
	return rec
}

// Recorder persists screen results for later analysis.
type Recorder interface {
	RecordScreen(rec *ScreenRecord) error
	Close() error
}
