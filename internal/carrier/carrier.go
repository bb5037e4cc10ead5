// Package carrier describes carriers, their eligibility rules and the catalog they are read from.
package carrier

import (
	"slices"

	"freight/internal/shipment"
)

// Range is an optional [Min, Max] bound. A nil side is unbounded.
type Range struct {
	Min *float64 `json:"min,omitempty" yaml:"min"`
	Max *float64 `json:"max,omitempty" yaml:"max"`
}

// DimensionLimits caps package dimensions per axis, in centimetres.
type DimensionLimits struct {
	MaxLength *float64 `json:"maxLength,omitempty" yaml:"max_length"`
	MaxWidth  *float64 `json:"maxWidth,omitempty" yaml:"max_width"`
	MaxHeight *float64 `json:"maxHeight,omitempty" yaml:"max_height"`
}

// EligibilityRule is a carrier-declared condition on a shipment. Every predicate is optional.
//
// A rule whose name contains "maximum" and which has no address predicate is a hard
// constraint; everything else is a business rule. When holds an optional CEL expression
// evaluated by the rule engine.
type EligibilityRule struct {
	Name               string            `json:"name,omitempty" yaml:"name"`
	Weight             *Range            `json:"weight,omitempty" yaml:"weight"`
	Volume             *Range            `json:"volume,omitempty" yaml:"volume"`
	Dimensions         *DimensionLimits  `json:"dimensions,omitempty" yaml:"dimensions"`
	OriginAddress      *shipment.Address `json:"originAddress,omitempty" yaml:"origin_address"`
	DestinationAddress *shipment.Address `json:"destinationAddress,omitempty" yaml:"destination_address"`
	When               string            `json:"when,omitempty" yaml:"when"`
}

// Carrier is a static carrier record. DeliveryTime is in days, CostPerKg in SEK per kilogram,
// and a lower EnvironmentalImpact is better.
type Carrier struct {
	ID                  string            `json:"id" yaml:"id"`
	Name                string            `json:"name" yaml:"name"`
	DeliveryTime        float64           `json:"deliveryTime" yaml:"delivery_time"`
	EnvironmentalImpact float64           `json:"environmentalImpact" yaml:"environmental_impact"`
	CostPerKg           float64           `json:"costPerKg" yaml:"cost_per_kg"`
	EligibilityRules    []EligibilityRule `json:"eligibilityRules" yaml:"eligibility_rules"`
	SupportedCountries  []string          `json:"supportedCountries" yaml:"supported_countries"`
}

// Supports reports whether country is in the carrier's coverage list.
func (c Carrier) Supports(country string) bool {
	return slices.Contains(c.SupportedCountries, country)
}

// CostRange is the min and max CostPerKg over a set of carriers.
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CostRangeOf computes the cost range of carriers in one pass.
// It returns false for an empty list.
func CostRangeOf(carriers []Carrier) (CostRange, bool) {
	if len(carriers) == 0 {
		return CostRange{}, false
	}

	r := CostRange{Min: carriers[0].CostPerKg, Max: carriers[0].CostPerKg}
	for _, c := range carriers[1:] {
		r.Min = min(r.Min, c.CostPerKg)
		r.Max = max(r.Max, c.CostPerKg)
	}

	return r, true
}
