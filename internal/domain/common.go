package domain

// TradeType identifies which leg of the wheel a trade record belongs to.
type TradeType string

const (
	SellPut  TradeType = "SELL_PUT"
	SellCall TradeType = "SELL_CALL"
)

// TradeStatus is the lifecycle status of a weekly option trade. A trade is
// created as StatusPending and reaches a terminal status within the same
// week; the ledger never carries a pending trade across weeks.
type TradeStatus string

const (
	StatusPending          TradeStatus = "pending"
	StatusAssigned         TradeStatus = "ASSIGNED"
	StatusCalledAway       TradeStatus = "CALLED_AWAY"
	StatusExpiredWorthless TradeStatus = "EXPIRED_WORTHLESS"
)

// IsTerminal reports whether the status is one of the end states.
func (s TradeStatus) IsTerminal() bool {
	return s == StatusAssigned || s == StatusCalledAway || s == StatusExpiredWorthless
}
