package wheel

import (
	"fmt"
	"math"

	"wheelBacktester/internal/ports"
)

// LotSize is the number of shares covered by one option contract.
const LotSize = 100

const (
	// premiumFloor keeps deep out-of-the-money contracts at 30% of the
	// at-the-money estimate; extrinsic value never decays to zero.
	premiumFloor = 0.3
	// otmDecay is the linear decay rate of premium per unit of OTM distance.
	otmDecay = 5.0
)

// EstimatePremium estimates the weekly premium for one contract.
// Simplified model: base premium is premiumRate of the strike, reduced
// linearly with distance from the money and floored at premiumFloor.
// Deterministic and stateless; identical inputs yield identical output.
func EstimatePremium(strike, referencePrice, premiumRate float64) (float64, error) {
	if referencePrice == 0 {
		return 0, fmt.Errorf("estimate premium at strike %.2f: %w", strike, ports.ErrZeroReferencePrice)
	}

	base := strike * premiumRate
	otmDistance := math.Abs(strike-referencePrice) / referencePrice
	adjustment := math.Max(premiumFloor, 1-otmDistance*otmDecay)

	return base * adjustment * LotSize, nil
}

// roundCents rounds a price to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
