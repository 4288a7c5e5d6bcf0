package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"wheelBacktester/config"
	"wheelBacktester/internal/adapters/logger"
	"wheelBacktester/internal/marketdata"
	"wheelBacktester/internal/strategy/analytics"
	"wheelBacktester/internal/strategy/wheel"
	"wheelBacktester/internal/utils"
)

// Offline backtest runner: replays a previously downloaded daily-bars CSV
// (see cmd/fetch_bars) through the wheel engine without touching the
// network or the database.
func main() {
	barsFile := flag.String("bars", "", "path to a daily bars CSV produced by fetch_bars")
	flag.Parse()

	if *barsFile == "" {
		log.Fatal("FATAL: -bars is required")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Load daily bars from CSV and resample to weekly
	daily, err := utils.ReadDailyBarsFromCSV(*barsFile)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error loading daily bars")
		log.Fatalf("Error loading daily bars: %v", err)
	}
	bars := marketdata.ResampleWeekly(daily)
	if len(bars) == 0 {
		log.Fatalf("FATAL: no weekly bars after resampling %s", *barsFile)
	}
	appLogger.Info(context.Background(), "Loaded bars", map[string]interface{}{
		"daily": len(daily), "weekly": len(bars),
	})

	// 4. Run the wheel simulation
	engine, err := wheel.New(wheel.Config{
		Symbol:         cfg.Symbol,
		InitialCapital: cfg.InitialCapital,
		PutOTMPct:      cfg.PutOTMPct,
		CallOTMPct:     cfg.CallOTMPct,
		PremiumPct:     cfg.PremiumPct,
	}, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "Failed to create engine")
		log.Fatalf("Failed to create engine: %v", err)
	}

	result, err := engine.Run(context.Background(), bars)
	if err != nil {
		appLogger.Error(context.Background(), err, "Backtest error")
		log.Fatalf("Backtest error: %v", err)
	}

	metrics, err := analytics.Analyze(result, bars, cfg.StartDate, cfg.EndDate)
	if err != nil {
		appLogger.Error(context.Background(), err, "Metrics error")
		log.Fatalf("Metrics error: %v", err)
	}

	fmt.Print(metrics.Report(cfg.Symbol, cfg.StartDate, cfg.EndDate))

	if cfg.ExportCSV {
		filename := fmt.Sprintf("wheel_backtest_%s_%s_%s.csv",
			cfg.Symbol, cfg.StartDate.Format("20060102"), cfg.EndDate.Format("20060102"))
		if err := utils.WriteTradesToCSV(result.Trades, cfg.CSVDir, filename); err != nil {
			appLogger.Error(context.Background(), err, "Error writing trades CSV")
			log.Fatalf("Error writing trades CSV: %v", err)
		}
		appLogger.Info(context.Background(), "Trades saved to", map[string]interface{}{"filename": filename})
	}
}
