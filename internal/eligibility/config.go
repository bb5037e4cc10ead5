package eligibility

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"freight/internal/eligibility/strategy"
	"freight/internal/utils"
)

// ExplainabilityLevel controls which strategy reasons end up in a result.
type ExplainabilityLevel string

const (
	// Minimal reports no strategy reasons.
	Minimal ExplainabilityLevel = "minimal"
	// PositiveOnly reports favourable strategy facts.
	PositiveOnly ExplainabilityLevel = "positive-only"
	// Full reports the warnings and neutral facts of every strategy. Favourable facts are not included.
	Full ExplainabilityLevel = "full"
)

const weightTolerance = 0.01

// ConfigurationError is returned when a scoring configuration violates its invariants.
type ConfigurationError struct {
	message string
}

func (e *ConfigurationError) Error() string {
	return e.message
}

// NewConfigurationError creates a ConfigurationError with the given message.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{message: message}
}

// OverallWeights blends the primary and secondary signals into the overall score.
type OverallWeights struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
}

// Configuration is an immutable scoring configuration. Services never modify a
// Configuration in place; updates produce a new value.
type Configuration struct {
	PrimaryWeights       map[string]float64  `json:"primaryWeights"`
	SecondaryWeights     map[string]float64  `json:"secondaryWeights"`
	OverallWeights       OverallWeights      `json:"overallWeights"`
	EligibilityThreshold float64             `json:"eligibilityThreshold"`
	ExplainabilityLevel  ExplainabilityLevel `json:"explainabilityLevel"`
}

// Overrides is a partial configuration. Nil fields keep the value they are merged over;
// a weight map replaces the whole group.
type Overrides struct {
	PrimaryWeights       map[string]float64   `json:"primaryWeights,omitempty"`
	SecondaryWeights     map[string]float64   `json:"secondaryWeights,omitempty"`
	OverallWeights       *OverallWeights      `json:"overallWeights,omitempty"`
	EligibilityThreshold *float64             `json:"eligibilityThreshold,omitempty"`
	ExplainabilityLevel  *ExplainabilityLevel `json:"explainabilityLevel,omitempty"`
}

// DefaultConfiguration returns the standard scoring configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		PrimaryWeights: map[string]float64{
			strategy.DeliverySpeedName:       0.35,
			strategy.EnvironmentalImpactName: 0.293,
			strategy.CostEfficiencyName:      0.357,
		},
		SecondaryWeights: map[string]float64{
			strategy.WeightEfficiencyName:    0.4,
			strategy.DimensionEfficiencyName: 0.3,
			strategy.CapacityUtilizationName: 0.3,
		},
		OverallWeights:       OverallWeights{Primary: 0.7, Secondary: 0.3},
		EligibilityThreshold: 65,
		ExplainabilityLevel:  PositiveOnly,
	}
}

// Merge returns a copy of c with every field set in o replacing the one in c.
// Neither c nor o is modified.
func (c Configuration) Merge(o Overrides) Configuration {
	merged := c.Clone()

	if o.PrimaryWeights != nil {
		merged.PrimaryWeights = maps.Clone(o.PrimaryWeights)
	}
	if o.SecondaryWeights != nil {
		merged.SecondaryWeights = maps.Clone(o.SecondaryWeights)
	}
	if o.OverallWeights != nil {
		merged.OverallWeights = *o.OverallWeights
	}
	if o.EligibilityThreshold != nil {
		merged.EligibilityThreshold = *o.EligibilityThreshold
	}
	if o.ExplainabilityLevel != nil {
		merged.ExplainabilityLevel = *o.ExplainabilityLevel
	}

	return merged
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	c.PrimaryWeights = maps.Clone(c.PrimaryWeights)
	c.SecondaryWeights = maps.Clone(c.SecondaryWeights)
	return c
}

// Validate checks that every weight group sums to 1.0 within 0.01, that the threshold
// lies in [0, 100] and that the explainability level is known.
func (c Configuration) Validate() error {
	if sum := weightSum(c.PrimaryWeights); !balanced(sum) {
		return NewConfigurationError("Primary weights must sum to 1.0, got " + utils.FormatFixed(sum, 3))
	}

	if sum := weightSum(c.SecondaryWeights); !balanced(sum) {
		return NewConfigurationError("Secondary weights must sum to 1.0, got " + utils.FormatFixed(sum, 3))
	}

	if sum := c.OverallWeights.Primary + c.OverallWeights.Secondary; !balanced(sum) {
		return NewConfigurationError("Overall weights must sum to 1.0, got " + utils.FormatFixed(sum, 3))
	}

	// NaN fails both comparisons, so it is checked explicitly.
	if c.EligibilityThreshold < 0 || c.EligibilityThreshold > 100 || math.IsNaN(c.EligibilityThreshold) {
		return NewConfigurationError("Eligibility threshold must be between 0 and 100, got " + utils.FormatNumber(c.EligibilityThreshold))
	}

	switch c.ExplainabilityLevel {
	case Minimal, PositiveOnly, Full:
	default:
		return NewConfigurationError(fmt.Sprintf("Explainability level must be one of minimal, positive-only, full, got %q", c.ExplainabilityLevel))
	}

	return nil
}

// balanced reports whether sum is 1.0 within tolerance. NaN is never balanced.
func balanced(sum float64) bool {
	return math.Abs(sum-1) <= weightTolerance
}

// weightSum adds weights in name order so the sum does not depend on map iteration.
func weightSum(weights map[string]float64) float64 {
	var sum float64
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		sum += weights[name]
	}

	return sum
}
