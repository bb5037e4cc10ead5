package strategy

import (
	"fmt"
	"math"

	"freight/internal/carrier"
	"freight/internal/utils"
)

// WeightEfficiency rewards shipments that use a sensible share of the carrier's hard
// weight cap. Carriers without a cap score 100.
type WeightEfficiency struct {
	optimal Band
	score   float64
}

// NewWeightEfficiency creates the strategy. Utilization ratios within optimal score score.
func NewWeightEfficiency(optimal Band, score float64) *WeightEfficiency {
	return &WeightEfficiency{optimal: optimal, score: score}
}

func (s *WeightEfficiency) Name() string { return WeightEfficiencyName }

// Calculate scores the utilization ratio u = totalWeight / maxWeight:
// below the band 50 + 250u, above it max(0, 100 − 500(u − band.Max)).
func (s *WeightEfficiency) Calculate(sc *ScoringContext) float64 {
	maxWeight, ok := carrier.MaxWeight(sc.Carrier)
	if !ok {
		return 100
	}

	utilization := sc.Metrics.TotalWeight / maxWeight
	switch {
	case s.optimal.Contains(utilization):
		return s.score
	case utilization < s.optimal.Min:
		return 50 + utilization*250
	default:
		return math.Max(0, 100-(utilization-s.optimal.Max)*500)
	}
}

func (s *WeightEfficiency) PositiveReasons(sc *ScoringContext) []string {
	maxWeight, ok := carrier.MaxWeight(sc.Carrier)
	if !ok {
		return nil
	}

	utilization := sc.Metrics.TotalWeight / maxWeight
	return []string{fmt.Sprintf("%s weight utilization: %s%%", grade(s.optimal, utilization), utils.FormatFixed(utilization*100, 1))}
}

// grade names where v falls relative to band.
func grade(band Band, v float64) string {
	switch {
	case band.Contains(v):
		return "optimal"
	case v < band.Min:
		return "low"
	default:
		return "high"
	}
}
