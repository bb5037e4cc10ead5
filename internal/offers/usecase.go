package offers

import (
	"freight/internal/carrier"
	"freight/internal/eligibility"
	"freight/internal/eligibility/strategy"
	"freight/internal/shipment"
)

// Scorer decides carrier eligibility. *eligibility.Service implements it.
type Scorer interface {
	CalculateEligibilityScore(c carrier.Carrier, s shipment.Shipment, costRange *carrier.CostRange) eligibility.Result
	Thresholds() strategy.Thresholds
}
