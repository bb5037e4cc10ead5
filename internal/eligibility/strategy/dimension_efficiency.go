package strategy

import (
	"fmt"
	"math"

	"freight/internal/carrier"
	"freight/internal/utils"
)

// DimensionEfficiency compares the shipment's largest package dimensions to the carrier's
// hard dimension caps. The score decays exponentially around a ratio of 1:
// 100 × e^(−2(r − 1)), floored at 0. Ratios below 1 score above 100.
type DimensionEfficiency struct{}

// NewDimensionEfficiency creates the strategy.
func NewDimensionEfficiency() *DimensionEfficiency {
	return &DimensionEfficiency{}
}

func (s *DimensionEfficiency) Name() string { return DimensionEfficiencyName }

func (s *DimensionEfficiency) Calculate(sc *ScoringContext) float64 {
	ratio, ok := dimensionRatio(sc)
	if !ok {
		return 100
	}

	return math.Max(0, 100*math.Exp(-2*(ratio-1)))
}

func (s *DimensionEfficiency) PositiveReasons(sc *ScoringContext) []string {
	ratio, ok := dimensionRatio(sc)
	if !ok {
		return nil
	}

	switch {
	case ratio <= 1.0:
		return []string{fmt.Sprintf("efficient dimensions: %s%% of limits", utils.FormatFixed(ratio*100, 1))}
	case ratio <= 1.2:
		return []string{fmt.Sprintf("acceptable dimensions: %s%% of limits", utils.FormatFixed(ratio*100, 1))}
	}

	return nil
}

// dimensionRatio is the largest per-axis ratio of shipment dimension to carrier cap.
func dimensionRatio(sc *ScoringContext) (float64, bool) {
	limits, ok := carrier.MaxDimensions(sc.Carrier)
	if !ok {
		return 0, false
	}

	d := sc.Metrics.MaxDimensions
	return max(axisRatio(d.Length, limits.Length), axisRatio(d.Width, limits.Width), axisRatio(d.Height, limits.Height)), true
}

// axisRatio divides size by limit. An unset (zero) limit is exceeded by any positive size.
func axisRatio(size, limit float64) float64 {
	if limit == 0 {
		if size > 0 {
			return math.Inf(1)
		}
		return 0
	}

	return size / limit
}
