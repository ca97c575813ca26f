// Package calendar answers the two questions the screen needs from a
// trading calendar: is a given day a US trading day, and which date range
// should a year-long candle fetch cover.
package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var business = newBusinessCalendar()

func newBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return c
}

// IsTradingDay reports whether t falls on a US business day, i.e. a
// weekday that is not a federal holiday.
func IsTradingDay(t time.Time) bool {
	return business.IsWorkday(t)
}

// TradingDateRange returns the dates bracketing a one-year candle fetch
// anchored at now: one year ago, today, and tomorrow, all formatted as
// yyyy-mm-dd. Tomorrow is used as the exclusive upper bound so today's
// candle is included.
func TradingDateRange(now time.Time) (yearAgo, today, tomorrow string) {
	const layout = "2006-01-02"
	return now.AddDate(-1, 0, 0).Format(layout),
		now.Format(layout),
		now.AddDate(0, 0, 1).Format(layout)
}
