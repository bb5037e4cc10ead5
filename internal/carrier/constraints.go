package carrier

import (
	"strings"

	"freight/internal/shipment"
)

// hardCandidate reports whether a rule is named as a maximum and carries no address predicate.
// A rule without a name never qualifies.
func hardCandidate(rule EligibilityRule) bool {
	return strings.Contains(strings.ToLower(rule.Name), "maximum") &&
		rule.OriginAddress == nil &&
		rule.DestinationAddress == nil
}

func hasMax(r *Range) bool {
	return r != nil && r.Max != nil && *r.Max != 0
}

func hasMin(r *Range) bool {
	return r != nil && r.Min != nil && *r.Min != 0
}

// MaxWeight returns the weight cap of the first hard-constraint rule that sets one.
// A zero cap counts as no cap.
func MaxWeight(c Carrier) (float64, bool) {
	for _, rule := range c.EligibilityRules {
		if hasMax(rule.Weight) && hardCandidate(rule) {
			return *rule.Weight.Max, true
		}
	}

	return 0, false
}

// MaxVolume returns the volume cap of the first hard-constraint rule that sets one.
func MaxVolume(c Carrier) (float64, bool) {
	for _, rule := range c.EligibilityRules {
		if hasMax(rule.Volume) && hardCandidate(rule) {
			return *rule.Volume.Max, true
		}
	}

	return 0, false
}

// MaxDimensions returns the per-axis caps of the first hard-constraint rule with dimension
// limits. Axes the rule leaves unset are reported as 0.
func MaxDimensions(c Carrier) (shipment.Dimensions, bool) {
	for _, rule := range c.EligibilityRules {
		if rule.Dimensions != nil && hardCandidate(rule) {
			return shipment.Dimensions{
				Length: valueOrZero(rule.Dimensions.MaxLength),
				Width:  valueOrZero(rule.Dimensions.MaxWidth),
				Height: valueOrZero(rule.Dimensions.MaxHeight),
			}, true
		}
	}

	return shipment.Dimensions{}, false
}

// BusinessRules returns the rules that are not plain maximum limits: rules with an address
// predicate or a minimum weight, and caps whose rule is not named as a maximum.
func BusinessRules(c Carrier) []EligibilityRule {
	rules := make([]EligibilityRule, 0, len(c.EligibilityRules))
	for _, rule := range c.EligibilityRules {
		maximum := strings.Contains(strings.ToLower(rule.Name), "maximum")
		if rule.OriginAddress != nil ||
			rule.DestinationAddress != nil ||
			hasMin(rule.Weight) ||
			(hasMax(rule.Weight) && !maximum) ||
			(hasMax(rule.Volume) && !maximum) ||
			(rule.Dimensions != nil && !maximum) {
			rules = append(rules, rule)
		}
	}

	return rules
}

// HardConstraintRules returns the rules the extractor may take a cap from.
func HardConstraintRules(c Carrier) []EligibilityRule {
	rules := make([]EligibilityRule, 0, len(c.EligibilityRules))
	for _, rule := range c.EligibilityRules {
		if !hardCandidate(rule) {
			continue
		}
		if hasMax(rule.Weight) || hasMax(rule.Volume) || rule.Dimensions != nil {
			rules = append(rules, rule)
		}
	}

	return rules
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}
