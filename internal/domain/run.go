package domain

import "time"

// Run records one completed backtest: the parameters it was started with
// and the headline results. The full ledger is stored separately as the
// run's trades.
type Run struct {
	ID             int64
	Symbol         string
	StartDate      time.Time
	EndDate        time.Time
	InitialCapital float64
	PutOTMPct      float64
	CallOTMPct     float64
	PremiumPct     float64

	FinalCash           float64
	StockValue          float64
	TotalValue          float64
	TotalReturnPct      float64
	AnnualizedReturnPct float64
	TotalPremiums       float64
	TotalStockGains     float64
	BuyHoldValue        float64
	Outperformance      float64
	TotalWeeks          int

	CreatedAt time.Time
}
