// Package strategy contains the scoring strategies an eligibility score is composed of.
//
// A strategy turns a ScoringContext into a number, nominally 0-100. Strategies may also
// explain themselves by implementing Explainer (unfavourable or neutral facts) and
// PositiveExplainer (favourable facts). All built-in strategies are stateless after
// construction and safe for concurrent use.
package strategy

import (
	"freight/internal/carrier"
	"freight/internal/shipment"
)

// Names of the built-in strategies.
const (
	DeliverySpeedName       = "delivery-speed"
	EnvironmentalImpactName = "environmental-impact"
	CostEfficiencyName      = "cost-efficiency"
	WeightEfficiencyName    = "weight-efficiency"
	DimensionEfficiencyName = "dimension-efficiency"
	CapacityUtilizationName = "capacity-utilization"
)

// ScoringContext is everything a strategy may look at for one carrier and one shipment.
// CostRange is shared by all carriers of a batch; nil means no batch range is known.
type ScoringContext struct {
	Carrier   carrier.Carrier
	Shipment  shipment.Shipment
	Metrics   shipment.Metrics
	CostRange *carrier.CostRange
}

// NewScoringContext analyzes s and bundles it with c.
func NewScoringContext(c carrier.Carrier, s shipment.Shipment, costRange *carrier.CostRange) *ScoringContext {
	return &ScoringContext{
		Carrier:   c,
		Shipment:  s,
		Metrics:   shipment.Analyze(s),
		CostRange: costRange,
	}
}

// Strategy scores one aspect of a carrier for a shipment.
type Strategy interface {
	Name() string
	Calculate(sc *ScoringContext) float64
}

// Explainer is implemented by strategies that report warnings or neutral facts.
type Explainer interface {
	Reasons(sc *ScoringContext) []string
}

// PositiveExplainer is implemented by strategies that report favourable facts.
type PositiveExplainer interface {
	PositiveReasons(sc *ScoringContext) []string
}

// Primary returns the built-in primary strategies in registration order.
func Primary(t Thresholds) []Strategy {
	return []Strategy{
		NewDeliverySpeed(t.DeliverySpeed),
		NewEnvironmentalImpact(t.EnvironmentalImpact),
		NewCostEfficiency(t.CostTiers, t.CostFallback),
	}
}

// Secondary returns the built-in secondary strategies in registration order.
func Secondary(t Thresholds) []Strategy {
	return []Strategy{
		NewWeightEfficiency(t.WeightOptimal, t.WeightScore),
		NewDimensionEfficiency(),
		NewCapacityUtilization(t.CapacityOptimal, t.CapacityScore),
	}
}
