package shipment

// Metrics are the aggregates a shipment is scored on.
type Metrics struct {
	TotalWeight   float64    `json:"totalWeight"`
	TotalVolume   float64    `json:"totalVolume"`
	MaxDimensions Dimensions `json:"maxDimensions"`
}

// Analyze sums package weights and volumes and takes the per-axis maximum of
// package dimensions. A shipment without packages yields zero metrics.
func Analyze(s Shipment) Metrics {
	var m Metrics
	for _, pkg := range s.Packages {
		m.TotalWeight += pkg.Weight
		m.TotalVolume += pkg.Dimensions.Volume()

		m.MaxDimensions.Length = max(m.MaxDimensions.Length, pkg.Dimensions.Length)
		m.MaxDimensions.Width = max(m.MaxDimensions.Width, pkg.Dimensions.Width)
		m.MaxDimensions.Height = max(m.MaxDimensions.Height, pkg.Dimensions.Height)
	}

	return m
}

// TotalWeight is the sum of package weights, ignoring quantity.
func (s Shipment) TotalWeight() float64 {
	var total float64
	for _, pkg := range s.Packages {
		total += pkg.Weight
	}

	return total
}
