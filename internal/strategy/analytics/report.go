package analytics

import (
	"fmt"
	"strings"
	"time"
)

const reportRule = "----------------------------------------------------------------------"

// Report renders the metrics as a console summary.
func (m *Metrics) Report(symbol string, start, end time.Time) string {
	var sb strings.Builder

	line := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteByte('\n')
	}

	line("WHEEL STRATEGY BACKTEST: %s (%s to %s)", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	line(reportRule)

	line("PERFORMANCE SUMMARY")
	line("  Initial Capital:      $%15.2f", m.InitialCapital)
	line("  Final Cash:           $%15.2f", m.FinalCash)
	line("  Stock Holdings:       $%15.2f", m.StockValue)
	line("  Total Account Value:  $%15.2f", m.TotalValue)
	line("  Total Profit:         $%15.2f", m.TotalProfit)
	line("  Total Return:          %15.2f%%", m.TotalReturnPct)
	line("  Annualized Return:     %15.2f%%", m.AnnualizedReturnPct)

	line("PROFIT BREAKDOWN")
	line("  Total Premiums:       $%15.2f", m.TotalPremiums)
	line("  Realized Stock Gains: $%15.2f", m.TotalStockGains)
	line("  Unrealized Gains:     $%15.2f", m.UnrealizedGain)

	line("BUY & HOLD COMPARISON")
	line("  Buy & Hold Value:     $%15.2f", m.BuyHoldValue)
	line("  Buy & Hold Profit:    $%15.2f", m.BuyHoldProfit)
	line("  Buy & Hold Return:     %15.2f%%", m.BuyHoldReturnPct)
	line("  Outperformance:       $%15.2f", m.Outperformance)

	line("TRADE STATISTICS")
	line("  Total Weeks Traded:    %15d", m.TotalWeeks)
	line("  Put Contracts Sold:    %15d", m.PutTrades)
	line("  Call Contracts Sold:   %15d", m.CallTrades)
	line("  Times Assigned:        %15d", m.TimesAssigned)
	line("  Times Called Away:     %15d", m.TimesCalledAway)
	line("  Avg Weekly Premium:   $%15.2f", m.AvgWeeklyPremium)

	line("STOCK PERFORMANCE")
	line("  Starting Price:       $%15.2f", m.StartingPrice)
	line("  Ending Price:         $%15.2f", m.EndingPrice)
	line("  Stock Return:          %15.2f%%", m.StockReturnPct)
	if m.OwnsStockAtEnd {
		line("  Currently Own Stock:   %15s", "Yes")
	} else {
		line("  Currently Own Stock:   %15s", "No")
	}

	line("TIME")
	line("  Days in Trade:         %15d", m.DaysHeld)
	line("  Years:                 %15.2f", m.YearsHeld)
	line(reportRule)

	return sb.String()
}
