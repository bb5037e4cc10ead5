package eligibility

// StrategyScores are the rounded scores of the six built-in strategies.
type StrategyScores struct {
	DeliverySpeed       float64 `json:"delivery-speed"`
	EnvironmentalImpact float64 `json:"environmental-impact"`
	CostEfficiency      float64 `json:"cost-efficiency"`
	WeightEfficiency    float64 `json:"weight-efficiency"`
	DimensionEfficiency float64 `json:"dimension-efficiency"`
	CapacityUtilization float64 `json:"capacity-utilization"`
}

// Result is the eligibility verdict for one carrier and one shipment.
type Result struct {
	IsEligible      bool           `json:"isEligible"`
	Score           float64        `json:"score"`
	PrimarySignal   float64        `json:"primarySignal"`
	SecondarySignal float64        `json:"secondarySignal"`
	Reasons         []string       `json:"reasons"`
	StrategyScores  StrategyScores `json:"strategyScores"`
}

func rejected(reason string) Result {
	return Result{
		IsEligible: false,
		Reasons:    []string{reason},
	}
}
