package main

import (
	"context"
	"fmt"
	"log"

	"wheelBacktester/config"
	"wheelBacktester/internal/adapters/binanceclient"
	"wheelBacktester/internal/adapters/logger"
	"wheelBacktester/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Market Data Client (Binance Adapter)
	marketData, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	fmt.Printf("Fetching daily bars for %s from %s to %s...\n",
		cfg.Symbol, cfg.StartDate.Format("2006-01-02"), cfg.EndDate.Format("2006-01-02"))
	bars, err := marketData.GetDailyBars(context.Background(), cfg.Symbol, cfg.StartDate, cfg.EndDate)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching daily bars")
		log.Fatalf("Error fetching daily bars: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched daily bars", map[string]interface{}{"count": len(bars)})

	filename := fmt.Sprintf("data/%s_1d_%s_to_%s.csv",
		cfg.Symbol, cfg.StartDate.Format("20060102"), cfg.EndDate.Format("20060102"))
	if err := utils.WriteDailyBarsToCSV(bars, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved to", map[string]interface{}{"filename": filename})
}
