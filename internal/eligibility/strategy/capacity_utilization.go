package strategy

import (
	"fmt"
	"math"

	"freight/internal/carrier"
	"freight/internal/utils"
)

// CapacityUtilization scores the bottleneck of weight and volume utilization, in percent
// of the carrier's hard caps. Carriers with neither cap score 100.
type CapacityUtilization struct {
	optimal Band
	score   float64
}

// NewCapacityUtilization creates the strategy. Utilization percentages within optimal score score.
func NewCapacityUtilization(optimal Band, score float64) *CapacityUtilization {
	return &CapacityUtilization{optimal: optimal, score: score}
}

func (s *CapacityUtilization) Name() string { return CapacityUtilizationName }

// Calculate scores u below the band as 2.5u and above it as max(0, 100 − 2(u − band.Max)).
func (s *CapacityUtilization) Calculate(sc *ScoringContext) float64 {
	utilization, constrained := capacityUtilization(sc)
	if !constrained {
		return 100
	}

	switch {
	case s.optimal.Contains(utilization):
		return s.score
	case utilization < s.optimal.Min:
		return utilization * 2.5
	default:
		return math.Max(0, 100-(utilization-s.optimal.Max)*2)
	}
}

func (s *CapacityUtilization) PositiveReasons(sc *ScoringContext) []string {
	utilization, _ := capacityUtilization(sc)
	return []string{fmt.Sprintf("%s capacity utilization: %s%%", grade(s.optimal, utilization), utils.FormatFixed(utilization, 1))}
}

// capacityUtilization returns max(weight %, volume %) and whether any cap exists.
// A missing cap contributes 0%.
func capacityUtilization(sc *ScoringContext) (float64, bool) {
	maxWeight, hasWeight := carrier.MaxWeight(sc.Carrier)
	maxVolume, hasVolume := carrier.MaxVolume(sc.Carrier)

	var weightUtil, volumeUtil float64
	if hasWeight {
		weightUtil = sc.Metrics.TotalWeight / maxWeight * 100
	}
	if hasVolume {
		volumeUtil = sc.Metrics.TotalVolume / maxVolume * 100
	}

	return math.Max(weightUtil, volumeUtil), hasWeight || hasVolume
}
