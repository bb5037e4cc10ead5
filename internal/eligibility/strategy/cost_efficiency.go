package strategy

import (
	"fmt"

	"freight/internal/carrier"
	"freight/internal/utils"
)

const competitiveLabel = "competitive"

// CostEfficiency scores cost per kg linearly against a cost range: the cheapest carrier
// of the range scores 100 and the most expensive 0. Costs outside the range score
// above 100 or below 0; the result is not clamped.
type CostEfficiency struct {
	tiers    []LabelTier
	fallback carrier.CostRange
}

// NewCostEfficiency creates the strategy. fallback is used when the scoring context
// carries no batch cost range.
func NewCostEfficiency(tiers []LabelTier, fallback carrier.CostRange) *CostEfficiency {
	return &CostEfficiency{tiers: tiers, fallback: fallback}
}

func (s *CostEfficiency) Name() string { return CostEfficiencyName }

// Calculate returns round(100 × (max − cost) / (max − min)).
// A degenerate range where every carrier costs the same scores 100.
func (s *CostEfficiency) Calculate(sc *ScoringContext) float64 {
	r := s.fallback
	if sc.CostRange != nil {
		r = *sc.CostRange
	}

	if r.Max == r.Min {
		return 100
	}

	normalized := (r.Max - sc.Carrier.CostPerKg) / (r.Max - r.Min)
	return utils.Round(normalized * 100)
}

// Reasons always states the pricing tier.
func (s *CostEfficiency) Reasons(sc *ScoringContext) []string {
	return []string{s.pricing(sc.Carrier.CostPerKg)}
}

// PositiveReasons states the pricing tier only when it is competitive.
func (s *CostEfficiency) PositiveReasons(sc *ScoringContext) []string {
	if s.Label(sc.Carrier.CostPerKg) != competitiveLabel {
		return nil
	}

	return []string{s.pricing(sc.Carrier.CostPerKg)}
}

// Label returns the pricing tier label of costPerKg.
func (s *CostEfficiency) Label(costPerKg float64) string {
	for _, tier := range s.tiers {
		if costPerKg <= tier.Max {
			return tier.Label
		}
	}

	return "premium"
}

func (s *CostEfficiency) pricing(costPerKg float64) string {
	return fmt.Sprintf("%s pricing: %s SEK/kg", s.Label(costPerKg), utils.FormatNumber(costPerKg))
}
