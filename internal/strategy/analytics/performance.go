package analytics

import (
	"fmt"
	"math"
	"time"

	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/ports"
	"wheelBacktester/internal/strategy/wheel"
)

// Metrics holds comprehensive performance metrics for a completed wheel run.
type Metrics struct {
	// Final values
	InitialCapital      float64
	FinalCash           float64
	StockValue          float64
	TotalValue          float64
	TotalProfit         float64
	TotalReturnPct      float64
	AnnualizedReturnPct float64

	// Component returns
	TotalPremiums   float64
	TotalStockGains float64
	UnrealizedGain  float64

	// Buy and hold comparison
	BuyHoldValue     float64
	BuyHoldProfit    float64
	BuyHoldReturnPct float64
	Outperformance   float64

	// Trade statistics
	TotalWeeks       int
	PutTrades        int
	CallTrades       int
	TimesAssigned    int
	TimesCalledAway  int
	AvgWeeklyPremium float64

	// Stock metrics
	StartingPrice   float64
	EndingPrice     float64
	StockReturnPct  float64
	OwnsStockAtEnd  bool

	// Time
	DaysHeld  int
	YearsHeld float64
}

// Analyze computes performance metrics from a completed run, the weekly
// price series it consumed, and the run's date range. It is a pure,
// read-only reduction; nothing in the result is mutated.
func Analyze(res *wheel.Result, bars []*domain.Bar, start, end time.Time) (*Metrics, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("analyze run: %w", ports.ErrNoData)
	}

	firstClose := bars[0].Close
	lastClose := bars[len(bars)-1].Close
	pos := res.Position

	m := &Metrics{
		InitialCapital:  res.InitialCapital,
		FinalCash:       pos.Cash,
		TotalPremiums:   res.TotalPremiums,
		TotalStockGains: res.TotalStockGains,
		StartingPrice:   firstClose,
		EndingPrice:     lastClose,
		OwnsStockAtEnd:  pos.OwnsStock,
	}

	if pos.OwnsStock {
		m.StockValue = pos.StockValue(lastClose)
		m.UnrealizedGain = (lastClose - pos.StockPurchasePrice) * float64(pos.SharesOwned)
	}

	m.TotalValue = m.FinalCash + m.StockValue
	m.TotalProfit = m.TotalValue - m.InitialCapital
	m.TotalReturnPct = m.TotalProfit / m.InitialCapital * 100

	// Annualize over fractional years; a degenerate same-day range yields 0
	// rather than a division fault.
	m.DaysHeld = int(end.Sub(start).Hours() / 24)
	m.YearsHeld = float64(m.DaysHeld) / 365.25
	if m.YearsHeld > 0 {
		m.AnnualizedReturnPct = (math.Pow(m.TotalValue/m.InitialCapital, 1/m.YearsHeld) - 1) * 100
	}

	// Buy-and-hold benchmark: deploy all capital at the first weekly close.
	initialShares := m.InitialCapital / firstClose
	m.BuyHoldValue = initialShares * lastClose
	m.BuyHoldProfit = m.BuyHoldValue - m.InitialCapital
	m.BuyHoldReturnPct = m.BuyHoldProfit / m.InitialCapital * 100
	m.Outperformance = m.TotalProfit - m.BuyHoldProfit

	m.StockReturnPct = (lastClose/firstClose - 1) * 100

	for _, t := range res.Trades {
		switch t.Type {
		case domain.SellPut:
			m.PutTrades++
		case domain.SellCall:
			m.CallTrades++
		}
		switch t.Status {
		case domain.StatusAssigned:
			m.TimesAssigned++
		case domain.StatusCalledAway:
			m.TimesCalledAway++
		}
	}
	m.TotalWeeks = len(res.Trades)
	if m.TotalWeeks > 0 {
		m.AvgWeeklyPremium = m.TotalPremiums / float64(m.TotalWeeks)
	}

	return m, nil
}
