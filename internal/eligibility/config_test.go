package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestConfiguration_Validate_Default(t *testing.T) {
	assert.NoError(t, DefaultConfiguration().Validate(), "default configuration should be valid")
}

func TestConfiguration_Validate_Violations(t *testing.T) {
	cases := []struct {
		name      string
		overrides Overrides
		message   string
	}{
		{
			name:      "primary",
			overrides: Overrides{PrimaryWeights: map[string]float64{"delivery-speed": 0.5}},
			message:   "Primary weights must sum to 1.0, got 0.500",
		},
		{
			name:      "secondary",
			overrides: Overrides{SecondaryWeights: map[string]float64{"weight-efficiency": 0.6, "dimension-efficiency": 0.6}},
			message:   "Secondary weights must sum to 1.0, got 1.200",
		},
		{
			name:      "overall",
			overrides: Overrides{OverallWeights: &OverallWeights{Primary: 0.7, Secondary: 0.4}},
			message:   "Overall weights must sum to 1.0, got 1.100",
		},
		{
			name:      "threshold above range",
			overrides: Overrides{EligibilityThreshold: ptr(101.0)},
			message:   "Eligibility threshold must be between 0 and 100, got 101",
		},
		{
			name:      "threshold below range",
			overrides: Overrides{EligibilityThreshold: ptr(-0.5)},
			message:   "Eligibility threshold must be between 0 and 100, got -0.5",
		},
		{
			name:      "explainability level",
			overrides: Overrides{ExplainabilityLevel: ptr(ExplainabilityLevel("verbose"))},
			message:   `Explainability level must be one of minimal, positive-only, full, got "verbose"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultConfiguration().Merge(tc.overrides).Validate()
			var configErr *ConfigurationError
			require.ErrorAs(t, err, &configErr, "should return a configuration error")
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestConfiguration_Validate_Tolerance(t *testing.T) {
	config := DefaultConfiguration().Merge(Overrides{
		PrimaryWeights: map[string]float64{"delivery-speed": 0.5, "cost-efficiency": 0.505},
	})
	assert.NoError(t, config.Validate(), "sum within 0.01 of 1.0 should be accepted")

	config = DefaultConfiguration().Merge(Overrides{
		PrimaryWeights: map[string]float64{"delivery-speed": 0.5, "cost-efficiency": 0.52},
	})
	assert.EqualError(t, config.Validate(), "Primary weights must sum to 1.0, got 1.020")
}

func TestConfiguration_Validate_ThresholdBounds(t *testing.T) {
	for _, threshold := range []float64{0, 100} {
		config := DefaultConfiguration().Merge(Overrides{EligibilityThreshold: ptr(threshold)})
		assert.NoError(t, config.Validate(), "threshold %v should be accepted", threshold)
	}
}

func TestConfiguration_Merge_KeepsUnsetFields(t *testing.T) {
	base := DefaultConfiguration()
	merged := base.Merge(Overrides{
		EligibilityThreshold: ptr(40.0),
		ExplainabilityLevel:  ptr(Full),
	})

	assert.Equal(t, 40.0, merged.EligibilityThreshold)
	assert.Equal(t, Full, merged.ExplainabilityLevel)
	assert.Equal(t, base.PrimaryWeights, merged.PrimaryWeights, "primary weights should be kept")
	assert.Equal(t, base.OverallWeights, merged.OverallWeights, "overall weights should be kept")
	assert.Equal(t, 65.0, base.EligibilityThreshold, "base should not be modified")
}

func TestConfiguration_Merge_ReplacesWeightGroup(t *testing.T) {
	merged := DefaultConfiguration().Merge(Overrides{
		PrimaryWeights: map[string]float64{"delivery-speed": 1},
	})

	assert.Equal(t, map[string]float64{"delivery-speed": 1}, merged.PrimaryWeights)
}

func TestConfiguration_Clone_Independent(t *testing.T) {
	base := DefaultConfiguration()
	clone := base.Clone()
	clone.PrimaryWeights["delivery-speed"] = 1

	assert.Equal(t, 0.35, base.PrimaryWeights["delivery-speed"], "clone should not share weight maps")
}
