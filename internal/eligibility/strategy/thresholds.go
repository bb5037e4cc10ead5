package strategy

import (
	"errors"
	"fmt"
	"math"

	"freight/internal/carrier"
)

// Tier maps every value up to and including Max to Score.
type Tier struct {
	Max   float64
	Score float64
}

// LabelTier names every cost up to and including Max.
type LabelTier struct {
	Max   float64
	Label string
}

// Band is an inclusive [Min, Max] interval.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// ServiceQualityWeights blend delivery speed and environmental impact into the
// service quality score of an offer.
type ServiceQualityWeights struct {
	Delivery      float64
	Environmental float64
}

// Thresholds is the table the built-in strategies are parameterised with.
type Thresholds struct {
	// DeliverySpeed scores delivery time in days; tiers ascend by Max.
	DeliverySpeed []Tier
	// EnvironmentalImpact scores the carrier's impact figure; tiers ascend by Max.
	EnvironmentalImpact []Tier
	// CostTiers label cost per kg for reasons.
	CostTiers []LabelTier
	// CostFallback normalises cost when no batch cost range is known.
	CostFallback carrier.CostRange
	// WeightOptimal is the weight utilization ratio band that scores WeightScore.
	WeightOptimal Band
	WeightScore   float64
	// CapacityOptimal is the capacity utilization percentage band that scores CapacityScore.
	CapacityOptimal Band
	CapacityScore   float64
	ServiceQuality  ServiceQualityWeights
}

// DefaultThresholds returns the standard scoring table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DeliverySpeed: []Tier{
			{Max: 1, Score: 100},
			{Max: 2, Score: 80},
			{Max: 3, Score: 60},
			{Max: 4, Score: 40},
			{Max: math.Inf(1), Score: 20},
		},
		EnvironmentalImpact: []Tier{
			{Max: 2, Score: 100},
			{Max: 4, Score: 80},
			{Max: 6, Score: 60},
			{Max: 8, Score: 40},
			{Max: math.Inf(1), Score: 20},
		},
		CostTiers: []LabelTier{
			{Max: 15, Label: "competitive"},
			{Max: 25, Label: "moderate"},
			{Max: math.Inf(1), Label: "premium"},
		},
		CostFallback:    carrier.CostRange{Min: 10, Max: 33},
		WeightOptimal:   Band{Min: 0.2, Max: 0.8},
		WeightScore:     100,
		CapacityOptimal: Band{Min: 40, Max: 70},
		CapacityScore:   100,
		ServiceQuality:  ServiceQualityWeights{Delivery: 0.7, Environmental: 0.3},
	}
}

// Validate checks that tier lists are non-empty and strictly ascending and that
// ranges are not inverted.
func (t Thresholds) Validate() error {
	if err := validateTiers("thresholds.delivery_speed", t.DeliverySpeed); err != nil {
		return err
	}

	if err := validateTiers("thresholds.environmental_impact", t.EnvironmentalImpact); err != nil {
		return err
	}

	if len(t.CostTiers) == 0 {
		return errors.New("thresholds.cost_tiers: must be specified")
	}
	for i := 1; i < len(t.CostTiers); i++ {
		if t.CostTiers[i].Max <= t.CostTiers[i-1].Max {
			return fmt.Errorf("thresholds.cost_tiers: tier %d is not above tier %d", i, i-1)
		}
	}

	if t.CostFallback.Min >= t.CostFallback.Max {
		return fmt.Errorf("thresholds.cost_fallback: min %v must be below max %v", t.CostFallback.Min, t.CostFallback.Max)
	}

	if t.WeightOptimal.Min > t.WeightOptimal.Max {
		return errors.New("thresholds.weight_optimal: min must not exceed max")
	}

	if t.CapacityOptimal.Min > t.CapacityOptimal.Max {
		return errors.New("thresholds.capacity_optimal: min must not exceed max")
	}

	return nil
}

func validateTiers(field string, tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%s: must be specified", field)
	}

	for i := 1; i < len(tiers); i++ {
		if tiers[i].Max <= tiers[i-1].Max {
			return fmt.Errorf("%s: tier %d is not above tier %d", field, i, i-1)
		}
	}

	return nil
}

// tierScore returns the score of the first tier v fits in, or the last tier's score.
func tierScore(tiers []Tier, v float64) float64 {
	for _, tier := range tiers {
		if v <= tier.Max {
			return tier.Score
		}
	}

	return tiers[len(tiers)-1].Score
}
