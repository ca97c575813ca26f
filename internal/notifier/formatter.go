package notifier

import (
	"fmt"
	"strings"

	"GapScanner/internal/model"
)

// FormatScreenReport formats one ticker's screen snapshot into a Telegram
// message.
func FormatScreenReport(snap *model.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", snap.Ticker, snap.GapDate))

	if snap.Quote != nil {
		b.WriteString(fmt.Sprintf("Last: %.2f (bid %.2f / ask %.2f)\n",
			snap.Quote.LastTradePrice, snap.Quote.BidPrice, snap.Quote.AskPrice))
		b.WriteString(fmt.Sprintf("Day range: %.2f - %.2f | Volume: %d\n\n",
			snap.Quote.LowPrice, snap.Quote.HighPrice, snap.Quote.Volume))
	}

	b.WriteString(fmt.Sprintf("Support: %.2f (%d periods ago)\n",
		snap.PivotLow.Value, snap.PivotLow.PeriodsAgo))
	b.WriteString(fmt.Sprintf("Resistance: %.2f (%d periods ago)\n",
		snap.PivotHigh.Value, snap.PivotHigh.PeriodsAgo))
	b.WriteString(fmt.Sprintf("Avg volume: %.0f\n", snap.AvgVolume))

	for _, sf := range snap.SMA {
		names := sf.Names()
		if sf.Nrow() == 0 || len(names) == 0 {
			continue
		}
		smaCol := names[len(names)-1]
		// First row is the most recent completed period.
		latest := sf.Col(smaCol).Elem(0).Float()
		b.WriteString(fmt.Sprintf("%s: %.2f\n", smaCol, latest))
	}

	return b.String()
}

// FormatScreenError formats a failed ticker screen.
func FormatScreenError(ticker string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b> screen failed: %v", ticker, err)
}
