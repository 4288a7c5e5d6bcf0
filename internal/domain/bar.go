package domain

import "time"

// Bar represents one weekly OHLCV aggregate of an instrument's price history.
type Bar struct {
	WeekEnding time.Time // Week-ending date (Friday label for the trading week)
	Open       float64   // First open of the week
	High       float64   // Highest price of the week
	Low        float64   // Lowest price of the week
	Close      float64   // Last close of the week
	Volume     float64   // Summed volume over the week
}

// DailyBar represents a single raw daily OHLCV bar as delivered by the
// market-data provider, before weekly resampling.
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
