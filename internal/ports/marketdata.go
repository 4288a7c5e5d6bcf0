package ports

import (
	"context"
	"time"

	"wheelBacktester/internal/domain"
)

// MarketDataClient defines the interface for retrieving historical price data.
// This abstraction decouples the simulation from any specific data vendor.
type MarketDataClient interface {
	// GetDailyBars retrieves daily OHLCV bars for a symbol between start and
	// end, in ascending date order. An empty result is not an error at this
	// layer; the caller decides whether an empty series is fatal.
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]*domain.DailyBar, error)

	// Ping checks connectivity to the data provider.
	Ping(ctx context.Context) error
}
