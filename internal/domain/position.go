package domain

// PositionState is the running cash and stock ledger of a wheel simulation.
// It is created once per run and mutated only by the trade engine's
// assignment checks. Invariant: OwnsStock == (SharesOwned > 0).
type PositionState struct {
	Cash               float64 // Available cash, premium credits included
	OwnsStock          bool    // Whether a stock lot is currently held
	SharesOwned        int     // 0 or the fixed lot size (100)
	StockPurchasePrice float64 // Cost basis per share; 0 when no stock is held
}

// NewPositionState returns the starting state for a run.
func NewPositionState(initialCapital float64) *PositionState {
	return &PositionState{Cash: initialCapital}
}

// StockValue returns the mark value of the held lot at the given price.
func (p *PositionState) StockValue(price float64) float64 {
	if !p.OwnsStock {
		return 0
	}
	return price * float64(p.SharesOwned)
}
