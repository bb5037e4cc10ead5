package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_SinglePackage(t *testing.T) {
	s := Shipment{
		OriginAddress:      Address{Country: "SE"},
		DestinationAddress: Address{Country: "NO"},
		Packages: []Package{
			{ID: "pkg-1", Quantity: 1, Weight: 5, Dimensions: Dimensions{Length: 5, Width: 5, Height: 5}},
		},
	}

	m := Analyze(s)

	assert.Equal(t, 5.0, m.TotalWeight)
	assert.Equal(t, 125.0, m.TotalVolume)
	assert.Equal(t, Dimensions{Length: 5, Width: 5, Height: 5}, m.MaxDimensions)
}

func TestAnalyze_MultiplePackages(t *testing.T) {
	s := Shipment{
		Packages: []Package{
			{ID: "a", Quantity: 1, Weight: 10, Dimensions: Dimensions{Length: 30, Width: 10, Height: 5}},
			{ID: "b", Quantity: 1, Weight: 2.5, Dimensions: Dimensions{Length: 10, Width: 40, Height: 2}},
		},
	}

	m := Analyze(s)

	assert.Equal(t, 12.5, m.TotalWeight)
	assert.Equal(t, 1500.0+800.0, m.TotalVolume)
	assert.Equal(t, Dimensions{Length: 30, Width: 40, Height: 5}, m.MaxDimensions, "should take per-axis maximum")
}

func TestAnalyze_QuantityIgnored(t *testing.T) {
	s := Shipment{
		Packages: []Package{
			{ID: "a", Quantity: 10, Weight: 3, Dimensions: Dimensions{Length: 2, Width: 2, Height: 2}},
		},
	}

	m := Analyze(s)

	assert.Equal(t, 3.0, m.TotalWeight, "quantity should not be multiplied into weight")
	assert.Equal(t, 8.0, m.TotalVolume, "quantity should not be multiplied into volume")
	assert.Equal(t, 3.0, s.TotalWeight())
}

func TestAnalyze_NoPackages(t *testing.T) {
	m := Analyze(Shipment{})

	assert.Equal(t, Metrics{}, m, "empty shipment should yield zero metrics")
	assert.Zero(t, Shipment{}.TotalWeight())
}
