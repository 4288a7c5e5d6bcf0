package marketdata

import (
	"time"

	"wheelBacktester/internal/domain"
)

// WeekEnding returns the Friday label of the trading week containing t.
// Saturday and Sunday roll forward into the following week's Friday.
func WeekEnding(t time.Time) time.Time {
	daysAhead := (int(time.Friday) - int(t.Weekday()) + 7) % 7
	d := t.AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// ResampleWeekly aggregates daily bars into weekly bars: first open,
// max high, min low, last close, summed volume. The input must be in
// ascending date order; the output preserves that order. An empty input
// yields an empty output, which the caller treats as a no-data condition.
func ResampleWeekly(daily []*domain.DailyBar) []*domain.Bar {
	weekly := make([]*domain.Bar, 0, len(daily)/5+1)
	var cur *domain.Bar

	for _, d := range daily {
		we := WeekEnding(d.Date)
		if cur == nil || !cur.WeekEnding.Equal(we) {
			cur = &domain.Bar{
				WeekEnding: we,
				Open:       d.Open,
				High:       d.High,
				Low:        d.Low,
				Close:      d.Close,
				Volume:     d.Volume,
			}
			weekly = append(weekly, cur)
			continue
		}
		if d.High > cur.High {
			cur.High = d.High
		}
		if d.Low < cur.Low {
			cur.Low = d.Low
		}
		cur.Close = d.Close
		cur.Volume += d.Volume
	}

	return weekly
}
