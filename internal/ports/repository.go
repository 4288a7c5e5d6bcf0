package ports

import (
	"context"

	"wheelBacktester/internal/domain"
)

// RunRepository defines the interface for persisting completed backtests.
type RunRepository interface {
	// SaveRun stores a run together with its full trade ledger and returns
	// the assigned run ID. The trades are stamped with the run ID.
	SaveRun(ctx context.Context, run *domain.Run, trades []*domain.Trade) (int64, error)
	// FindRunsBySymbol retrieves the most recent runs for a symbol, up to a limit.
	FindRunsBySymbol(ctx context.Context, symbol string, limit int) ([]*domain.Run, error)
	// FindTradesByRun retrieves the full ledger of a run in week order.
	FindTradesByRun(ctx context.Context, runID int64) ([]*domain.Trade, error)
}
