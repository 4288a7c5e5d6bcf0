package wheel

import (
	"context"
	"fmt"

	"wheelBacktester/internal/domain"
	"wheelBacktester/internal/ports"
)

// Config holds the fixed parameters of one simulation run.
type Config struct {
	Symbol         string
	InitialCapital float64
	PutOTMPct      float64 // Fraction below the open at which puts are struck
	CallOTMPct     float64 // Fraction above the open at which calls are struck
	PremiumPct     float64 // Weekly premium rate as a fraction of the strike
}

// Result is the completed output of one run: the trade ledger in week
// order, the final position snapshot, and the running accumulators. The
// engine keeps no state between runs, so independent runs need no
// isolation discipline.
type Result struct {
	Trades          []*domain.Trade
	Position        *domain.PositionState
	TotalPremiums   float64
	TotalStockGains float64
	InitialCapital  float64
}

// Engine drives the week-by-week wheel simulation. It alternates between
// selling cash-secured puts (no stock held) and covered calls (stock held),
// resolving each option within the bar that created it.
type Engine struct {
	cfg    Config
	logger ports.Logger
}

// New validates the configuration and returns an engine.
func New(cfg Config, logger ports.Logger) (*Engine, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for wheel engine")
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("%w: InitialCapital must be positive", ports.ErrConfigurationError)
	}
	if cfg.PutOTMPct <= 0 || cfg.PutOTMPct >= 1 {
		return nil, fmt.Errorf("%w: PutOTMPct must be between 0 and 1 (exclusive)", ports.ErrConfigurationError)
	}
	if cfg.CallOTMPct <= 0 || cfg.CallOTMPct >= 1 {
		return nil, fmt.Errorf("%w: CallOTMPct must be between 0 and 1 (exclusive)", ports.ErrConfigurationError)
	}
	if cfg.PremiumPct <= 0 || cfg.PremiumPct >= 1 {
		return nil, fmt.Errorf("%w: PremiumPct must be between 0 and 1 (exclusive)", ports.ErrConfigurationError)
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Run folds the weekly bars into a (ledger, final position) pair. Exactly
// one trade record is produced per bar; the strike uses the bar's open
// while the assignment test uses the same bar's low/high/close, so there
// is no lookahead across bars.
func (e *Engine) Run(ctx context.Context, bars []*domain.Bar) (*Result, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("wheel run for %s: %w", e.cfg.Symbol, ports.ErrNoData)
	}

	pos := domain.NewPositionState(e.cfg.InitialCapital)
	result := &Result{
		Trades:         make([]*domain.Trade, 0, len(bars)),
		Position:       pos,
		InitialCapital: e.cfg.InitialCapital,
	}

	for i, bar := range bars {
		week := i + 1

		var trade *domain.Trade
		var err error
		if !pos.OwnsStock {
			trade, err = e.sellPut(week, bar, pos, result)
			if err != nil {
				return nil, err
			}
			if e.checkPutAssignment(ctx, trade, bar, pos) {
				e.logger.Debug(ctx, "put assigned", map[string]interface{}{
					"week": week, "strike": trade.Strike, "premium": trade.Premium, "close": bar.Close,
				})
			} else {
				e.logger.Debug(ctx, "put resolved without assignment", map[string]interface{}{
					"week": week, "strike": trade.Strike, "premium": trade.Premium, "close": bar.Close,
				})
			}
		} else {
			trade, err = e.sellCall(week, bar, pos, result)
			if err != nil {
				return nil, err
			}
			if e.checkCallAssignment(ctx, trade, bar, pos, result) {
				e.logger.Debug(ctx, "called away", map[string]interface{}{
					"week": week, "strike": trade.Strike, "premium": trade.Premium, "gain": trade.StockGain,
				})
			} else {
				unrealized := (bar.Close - pos.StockPurchasePrice) * float64(pos.SharesOwned)
				e.logger.Debug(ctx, "call expired", map[string]interface{}{
					"week": week, "strike": trade.Strike, "premium": trade.Premium, "unrealized": unrealized,
				})
			}
		}

		result.Trades = append(result.Trades, trade)
	}

	return result, nil
}

// sellPut opens a cash-secured put struck PutOTMPct below the week's open
// and collects the premium.
func (e *Engine) sellPut(week int, bar *domain.Bar, pos *domain.PositionState, res *Result) (*domain.Trade, error) {
	strike := roundCents(bar.Open * (1 - e.cfg.PutOTMPct))

	premium, err := EstimatePremium(strike, bar.Open, e.cfg.PremiumPct)
	if err != nil {
		return nil, fmt.Errorf("week %d: %w", week, err)
	}

	pos.Cash += premium
	res.TotalPremiums += premium

	return &domain.Trade{
		Week:       week,
		Date:       bar.WeekEnding,
		Type:       domain.SellPut,
		StockPrice: bar.Open,
		Strike:     strike,
		Premium:    premium,
		Cash:       pos.Cash,
		Status:     domain.StatusPending,
	}, nil
}

// checkPutAssignment resolves a pending put against the bar that created
// it. Assignment triggers whenever the low touches the strike (boundary
// inclusive) and cash covers the lot. A strike breach that cash cannot
// cover skips the position change and expires the put worthless; the
// ledger never carries a non-terminal status.
func (e *Engine) checkPutAssignment(ctx context.Context, trade *domain.Trade, bar *domain.Bar, pos *domain.PositionState) bool {
	if bar.Low <= trade.Strike {
		cost := trade.Strike * LotSize
		if pos.Cash >= cost {
			pos.OwnsStock = true
			pos.SharesOwned = LotSize
			pos.StockPurchasePrice = trade.Strike
			pos.Cash -= cost

			trade.Status = domain.StatusAssigned
			trade.AssignmentPrice = bar.Close
			trade.SharesAcquired = LotSize
			trade.CapitalDeployed = cost
			return true
		}

		e.logger.Warn(ctx, "put breached strike but cash cannot cover the lot; treating as expired", map[string]interface{}{
			"week": trade.Week, "strike": trade.Strike, "cash": pos.Cash, "cost": cost,
		})
	}

	trade.Status = domain.StatusExpiredWorthless
	return false
}

// sellCall opens a covered call struck CallOTMPct above the week's open
// against the held lot and collects the premium.
func (e *Engine) sellCall(week int, bar *domain.Bar, pos *domain.PositionState, res *Result) (*domain.Trade, error) {
	strike := roundCents(bar.Open * (1 + e.cfg.CallOTMPct))

	premium, err := EstimatePremium(strike, bar.Open, e.cfg.PremiumPct)
	if err != nil {
		return nil, fmt.Errorf("week %d: %w", week, err)
	}

	pos.Cash += premium
	res.TotalPremiums += premium

	return &domain.Trade{
		Week:       week,
		Date:       bar.WeekEnding,
		Type:       domain.SellCall,
		StockPrice: bar.Open,
		Strike:     strike,
		Premium:    premium,
		Cash:       pos.Cash,
		Status:     domain.StatusPending,
		CostBasis:  pos.StockPurchasePrice,
	}, nil
}

// checkCallAssignment resolves a pending call. A high touching the strike
// (boundary inclusive) calls the lot away at the strike and resets the
// position back to the put-selling phase.
func (e *Engine) checkCallAssignment(ctx context.Context, trade *domain.Trade, bar *domain.Bar, pos *domain.PositionState, res *Result) bool {
	if bar.High >= trade.Strike {
		proceeds := trade.Strike * float64(pos.SharesOwned)
		stockGain := (trade.Strike - pos.StockPurchasePrice) * float64(pos.SharesOwned)

		pos.Cash += proceeds
		res.TotalStockGains += stockGain

		pos.OwnsStock = false
		pos.SharesOwned = 0
		pos.StockPurchasePrice = 0

		trade.Status = domain.StatusCalledAway
		trade.SalePrice = trade.Strike
		trade.StockGain = stockGain
		trade.TotalProceeds = proceeds
		return true
	}

	trade.Status = domain.StatusExpiredWorthless
	return false
}
