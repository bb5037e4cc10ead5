package strategy

import (
	"fmt"

	"freight/internal/utils"
)

// DeliverySpeed scores carriers by delivery time: faster is better.
type DeliverySpeed struct {
	tiers []Tier
}

// NewDeliverySpeed creates the strategy over ascending delivery-time tiers.
func NewDeliverySpeed(tiers []Tier) *DeliverySpeed {
	return &DeliverySpeed{tiers: tiers}
}

func (s *DeliverySpeed) Name() string { return DeliverySpeedName }

// Calculate looks the delivery time up in the tier table.
func (s *DeliverySpeed) Calculate(sc *ScoringContext) float64 {
	return tierScore(s.tiers, sc.Carrier.DeliveryTime)
}

// Reasons warns about delivery slower than three days.
func (s *DeliverySpeed) Reasons(sc *ScoringContext) []string {
	days := sc.Carrier.DeliveryTime
	if days > 3 {
		return []string{fmt.Sprintf("Delivery time %s days is slower than optimal", utils.FormatNumber(days))}
	}

	return nil
}

// PositiveReasons grades delivery within three days.
func (s *DeliverySpeed) PositiveReasons(sc *ScoringContext) []string {
	days := sc.Carrier.DeliveryTime
	switch {
	case days <= 1:
		return []string{fmt.Sprintf("high delivery speed: %s day", utils.FormatNumber(days))}
	case days <= 2:
		return []string{fmt.Sprintf("good delivery speed: %s days", utils.FormatNumber(days))}
	case days <= 3:
		return []string{fmt.Sprintf("acceptable delivery speed: %s days", utils.FormatNumber(days))}
	}

	return nil
}
