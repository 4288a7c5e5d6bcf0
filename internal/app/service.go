package app

import (
	"context"
	"fmt"
	"time"

	"wheelBacktester/config"
	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/marketdata"
	"wheelBacktester/internal/ports"
	"wheelBacktester/internal/strategy/analytics"
	"wheelBacktester/internal/strategy/wheel"
	"wheelBacktester/internal/utils"
)

// BacktestService orchestrates one complete backtest: data retrieval,
// weekly resampling, the wheel simulation, metrics, persistence and CSV
// export.
type BacktestService struct {
	cfg        *config.Config
	logger     ports.Logger
	marketData ports.MarketDataClient
	repo       ports.RunRepository
}

// RunOutcome bundles everything a presentation consumer needs.
type RunOutcome struct {
	RunID   int64
	Metrics *analytics.Metrics
	Trades  []*domain.Trade
	Bars    []*domain.Bar
}

// NewBacktestService creates a new application service instance.
func NewBacktestService(
	cfg *config.Config,
	logger ports.Logger,
	marketData ports.MarketDataClient,
	repo ports.RunRepository,
) (*BacktestService, error) {
	if cfg == nil || logger == nil || marketData == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for BacktestService")
	}
	return &BacktestService{
		cfg:        cfg,
		logger:     logger,
		marketData: marketData,
		repo:       repo,
	}, nil
}

// Run executes the backtest end to end and returns the outcome.
func (s *BacktestService) Run(ctx context.Context) (*RunOutcome, error) {
	cfg := s.cfg
	s.logger.Info(ctx, "Starting wheel backtest", map[string]interface{}{
		"symbol": cfg.Symbol,
		"start":  cfg.StartDate.Format("2006-01-02"),
		"end":    cfg.EndDate.Format("2006-01-02"),
	})

	daily, err := s.marketData.GetDailyBars(ctx, cfg.Symbol, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to download historical data: %w", err)
	}

	bars := marketdata.ResampleWeekly(daily)
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data found for %s between %s and %s: %w",
			cfg.Symbol, cfg.StartDate.Format("2006-01-02"), cfg.EndDate.Format("2006-01-02"), ports.ErrNoData)
	}

	s.logger.Info(ctx, "Historical data resampled to weekly bars", map[string]interface{}{
		"weeks":         len(bars),
		"startingClose": bars[0].Close,
		"endingClose":   bars[len(bars)-1].Close,
	})

	engine, err := wheel.New(wheel.Config{
		Symbol:         cfg.Symbol,
		InitialCapital: cfg.InitialCapital,
		PutOTMPct:      cfg.PutOTMPct,
		CallOTMPct:     cfg.CallOTMPct,
		PremiumPct:     cfg.PremiumPct,
	}, s.logger)
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(ctx, bars)
	if err != nil {
		return nil, err
	}

	metrics, err := analytics.Analyze(result, bars, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return nil, err
	}

	runID, err := s.repo.SaveRun(ctx, buildRun(cfg, metrics), result.Trades)
	if err != nil {
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	if cfg.ExportCSV {
		filename := fmt.Sprintf("wheel_backtest_%s_%s_%s.csv",
			cfg.Symbol, cfg.StartDate.Format("20060102"), cfg.EndDate.Format("20060102"))
		if err := utils.WriteTradesToCSV(result.Trades, cfg.CSVDir, filename); err != nil {
			return nil, fmt.Errorf("failed to export trades CSV: %w", err)
		}
		s.logger.Info(ctx, "Trade history exported", map[string]interface{}{"filename": filename})
	}

	s.logger.Info(ctx, "Backtest complete", map[string]interface{}{
		"runID":          runID,
		"totalReturnPct": metrics.TotalReturnPct,
		"outperformance": metrics.Outperformance,
	})

	return &RunOutcome{
		RunID:   runID,
		Metrics: metrics,
		Trades:  result.Trades,
		Bars:    bars,
	}, nil
}

// buildRun maps configuration and metrics onto the persistence record.
func buildRun(cfg *config.Config, m *analytics.Metrics) *domain.Run {
	return &domain.Run{
		Symbol:              cfg.Symbol,
		StartDate:           cfg.StartDate,
		EndDate:             cfg.EndDate,
		InitialCapital:      cfg.InitialCapital,
		PutOTMPct:           cfg.PutOTMPct,
		CallOTMPct:          cfg.CallOTMPct,
		PremiumPct:          cfg.PremiumPct,
		FinalCash:           m.FinalCash,
		StockValue:          m.StockValue,
		TotalValue:          m.TotalValue,
		TotalReturnPct:      m.TotalReturnPct,
		AnnualizedReturnPct: m.AnnualizedReturnPct,
		TotalPremiums:       m.TotalPremiums,
		TotalStockGains:     m.TotalStockGains,
		BuyHoldValue:        m.BuyHoldValue,
		Outperformance:      m.Outperformance,
		TotalWeeks:          m.TotalWeeks,
		CreatedAt:           time.Now().UTC(),
	}
}
