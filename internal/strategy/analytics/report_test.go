package analytics

import (
	"strings"
	"testing"
	"time"
)

func TestReportSections(t *testing.T) {
	m := &Metrics{
		InitialCapital:   50000,
		FinalCash:        51234.5,
		TotalValue:       51234.5,
		TotalProfit:      1234.5,
		TotalReturnPct:   2.469,
		TotalPremiums:    1100.25,
		BuyHoldValue:     48000,
		BuyHoldProfit:    -2000,
		Outperformance:   3234.5,
		TotalWeeks:       52,
		PutTrades:        40,
		CallTrades:       12,
		TimesAssigned:    5,
		TimesCalledAway:  4,
		AvgWeeklyPremium: 21.16,
		StartingPrice:    100,
		EndingPrice:      96,
		StockReturnPct:   -4,
		OwnsStockAtEnd:   true,
		DaysHeld:         365,
		YearsHeld:        1.0,
	}

	out := m.Report("BTCUSDT", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"WHEEL STRATEGY BACKTEST: BTCUSDT (2022-01-01 to 2023-01-01)",
		"PERFORMANCE SUMMARY",
		"PROFIT BREAKDOWN",
		"BUY & HOLD COMPARISON",
		"TRADE STATISTICS",
		"STOCK PERFORMANCE",
		"TIME",
		"Total Profit:",
		"Currently Own Stock:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q", want)
		}
	}

	if !strings.Contains(out, "Yes") {
		t.Errorf("Expected open position marker, got:\n%s", out)
	}
}
