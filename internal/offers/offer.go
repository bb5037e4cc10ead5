package offers

import (
	"time"

	"freight/internal/shipment"
)

// Request asks for offers for one shipment.
type Request struct {
	Shipment shipment.Shipment `json:"shipment"`
}

// Offer is a priced, eligible carrier for a shipment.
type Offer struct {
	CarrierID           string   `json:"carrierId"`
	CarrierName         string   `json:"carrierName"`
	Cost                float64  `json:"cost"`
	DeliveryTime        float64  `json:"deliveryTime"`
	EligibilityScore    float64  `json:"eligibilityScore"`
	CostEfficiencyScore float64  `json:"costEfficiencyScore"`
	ServiceQualityScore float64  `json:"serviceQualityScore"`
	Reasons             []string `json:"reasons"`
	IsEligible          bool     `json:"isEligible"`
}

// Response lists offers cheapest first.
type Response struct {
	Offers      []Offer   `json:"offers"`
	GeneratedAt time.Time `json:"generatedAt"`
}
