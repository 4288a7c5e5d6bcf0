package domain

import "time"

// Trade is one weekly option trade in the simulation ledger.
// Fields past Status are phase-dependent: the put terminal fields are set
// only on assignment, the call fields only while holding stock or on a
// call-away. Unused fields stay at their zero value.
type Trade struct {
	ID         int64       // Assigned by the repository on save (0 otherwise)
	RunID      int64       // Owning run, assigned on save
	Week       int         // 1-based week number within the run
	Date       time.Time   // Week-ending date of the bar that produced the trade
	Type       TradeType   // SELL_PUT or SELL_CALL
	StockPrice float64     // Reference price used to strike the option (week's open)
	Strike     float64     // Computed strike, rounded to cents
	Premium    float64     // Estimated premium collected for one contract
	Cash       float64     // Cash snapshot after premium collection
	Status     TradeStatus // Terminal status stamped by the assignment check

	// Put assignment terminals
	AssignmentPrice float64 // Week's close at assignment
	SharesAcquired  int     // Lot size when assigned
	CapitalDeployed float64 // Strike * lot size debited on assignment

	// Covered-call fields
	CostBasis     float64 // Purchase price of the held lot, set at creation
	SalePrice     float64 // Strike at which the lot was called away
	StockGain     float64 // (strike - cost basis) * shares on call-away
	TotalProceeds float64 // Strike * shares credited on call-away
}
