package strategy

import (
	"fmt"

	"freight/internal/utils"
)

// EnvironmentalImpact scores carriers by their impact figure: lower is better.
type EnvironmentalImpact struct {
	tiers []Tier
}

// NewEnvironmentalImpact creates the strategy over ascending impact tiers.
func NewEnvironmentalImpact(tiers []Tier) *EnvironmentalImpact {
	return &EnvironmentalImpact{tiers: tiers}
}

func (s *EnvironmentalImpact) Name() string { return EnvironmentalImpactName }

func (s *EnvironmentalImpact) Calculate(sc *ScoringContext) float64 {
	return tierScore(s.tiers, sc.Carrier.EnvironmentalImpact)
}

// Reasons warns about an impact above 6.
func (s *EnvironmentalImpact) Reasons(sc *ScoringContext) []string {
	impact := sc.Carrier.EnvironmentalImpact
	if impact > 6 {
		return []string{fmt.Sprintf("Environmental impact %s is higher than optimal", utils.FormatNumber(impact))}
	}

	return nil
}

// PositiveReasons grades an impact of 6 or less.
func (s *EnvironmentalImpact) PositiveReasons(sc *ScoringContext) []string {
	impact := sc.Carrier.EnvironmentalImpact
	switch {
	case impact <= 2:
		return []string{"low environmental impact: " + utils.FormatNumber(impact)}
	case impact <= 4:
		return []string{"good environmental impact: " + utils.FormatNumber(impact)}
	case impact <= 6:
		return []string{"acceptable environmental impact: " + utils.FormatNumber(impact)}
	}

	return nil
}
