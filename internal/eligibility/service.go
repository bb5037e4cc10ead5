// Package eligibility decides whether a carrier may take a shipment and how well it fits.
//
// A Service first applies the carrier's hard constraints (country coverage and absolute
// weight/volume caps). A carrier that passes is scored by the registered strategies, its
// declared rules are evaluated, and the weighted overall score is compared with the
// configured threshold.
package eligibility

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"freight/internal/carrier"
	"freight/internal/eligibility/rule"
	"freight/internal/eligibility/strategy"
	"freight/internal/shipment"
	"freight/internal/utils"
)

// Service computes eligibility results. Configuration is replaced wholesale on update, so
// scoring calls always see one consistent configuration. Service is safe for concurrent use.
type Service struct {
	manager    *Manager
	engine     *rule.Engine
	thresholds strategy.Thresholds
	logger     *slog.Logger

	config atomic.Pointer[Configuration]
	// updates serialises configuration writers.
	updates sync.Mutex
}

// NewService creates a service with the default thresholds and the default configuration
// merged with overrides.
func NewService(overrides Overrides) (*Service, error) {
	return NewServiceWithThresholds(strategy.DefaultThresholds(), overrides)
}

// NewServiceWithThresholds creates a service whose built-in strategies use t.
func NewServiceWithThresholds(t strategy.Thresholds, overrides Overrides) (*Service, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	config := DefaultConfiguration().Merge(overrides)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	engine, err := rule.NewEngine()
	if err != nil {
		return nil, err
	}

	s := &Service{
		manager:    NewManager(t),
		engine:     engine,
		thresholds: t,
		logger:     slog.Default().With("component", "eligibility"),
	}
	s.config.Store(&config)

	return s, nil
}

// CalculateEligibilityScore scores c for sh. costRange normalises cost efficiency across a
// batch of carriers; nil falls back to the thresholds' range.
func (s *Service) CalculateEligibilityScore(c carrier.Carrier, sh shipment.Shipment, costRange *carrier.CostRange) Result {
	config := s.config.Load()
	sc := strategy.NewScoringContext(c, sh, costRange)

	if violation, found := hardConstraintViolation(sc); found {
		return rejected(violation)
	}

	primarySignal := s.manager.CalculatePrimaryScore(sc, config.PrimaryWeights)
	secondarySignal := s.manager.CalculateSecondaryScore(sc, config.SecondaryWeights)
	primaryScores := s.manager.CalculatePrimaryScores(sc)
	secondaryScores := s.manager.CalculateSecondaryScores(sc)

	overall := primarySignal*config.OverallWeights.Primary + secondarySignal*config.OverallWeights.Secondary

	ruleResults := s.engine.EvaluateAll(c, sc)
	violated := slices.ContainsFunc(ruleResults, func(r rule.Result) bool { return !r.Passed })

	eligible := overall >= config.EligibilityThreshold && !violated

	reasons := s.manager.CollectReasons(sc, config.ExplainabilityLevel)
	for _, r := range ruleResults {
		reasons = append(reasons, r.Reasons...)
	}
	if eligible {
		reasons = append(reasons, "ranked by score: "+utils.FormatFixed(overall/100, 2))
	}
	reasons = slices.DeleteFunc(reasons, func(r string) bool { return r == "" })

	return Result{
		IsEligible:      eligible,
		Score:           utils.Round(overall),
		PrimarySignal:   utils.Round(primarySignal),
		SecondarySignal: utils.Round(secondarySignal),
		Reasons:         reasons,
		StrategyScores: StrategyScores{
			DeliverySpeed:       utils.Round(primaryScores[strategy.DeliverySpeedName]),
			EnvironmentalImpact: utils.Round(primaryScores[strategy.EnvironmentalImpactName]),
			CostEfficiency:      utils.Round(primaryScores[strategy.CostEfficiencyName]),
			WeightEfficiency:    utils.Round(secondaryScores[strategy.WeightEfficiencyName]),
			DimensionEfficiency: utils.Round(secondaryScores[strategy.DimensionEfficiencyName]),
			CapacityUtilization: utils.Round(secondaryScores[strategy.CapacityUtilizationName]),
		},
	}
}

// UpdateConfiguration merges overrides over the current configuration. The merged value
// is validated before it replaces the current one; on error nothing changes.
func (s *Service) UpdateConfiguration(overrides Overrides) error {
	s.updates.Lock()
	defer s.updates.Unlock()

	config := s.config.Load().Merge(overrides)
	if err := config.Validate(); err != nil {
		return err
	}
	s.config.Store(&config)

	s.logger.Info("scoring configuration updated",
		"threshold", config.EligibilityThreshold,
		"explainability", config.ExplainabilityLevel)

	return nil
}

// Configuration returns a copy of the configuration in effect.
func (s *Service) Configuration() Configuration {
	return s.config.Load().Clone()
}

// Thresholds returns the table the built-in strategies were created with.
func (s *Service) Thresholds() strategy.Thresholds {
	return s.thresholds
}

// RegisterPrimaryStrategy adds or replaces a primary strategy. It only contributes to the
// primary signal when the configuration gives its name a weight.
func (s *Service) RegisterPrimaryStrategy(st strategy.Strategy) {
	s.manager.RegisterPrimaryStrategy(st)
}

// RegisterSecondaryStrategy adds or replaces a secondary strategy.
func (s *Service) RegisterSecondaryStrategy(st strategy.Strategy) {
	s.manager.RegisterSecondaryStrategy(st)
}

// Prepare compiles the rule conditions of carriers ahead of scoring.
func (s *Service) Prepare(carriers []carrier.Carrier) error {
	if err := s.engine.Prepare(carriers); err != nil {
		return fmt.Errorf("error preparing eligibility rules: %w", err)
	}

	return nil
}

// hardConstraintViolation reports the first hard constraint sc breaks, checked in the order
// destination, origin, weight, volume.
func hardConstraintViolation(sc *strategy.ScoringContext) (string, bool) {
	c := sc.Carrier
	destination := sc.Shipment.DestinationAddress.Country
	if !c.Supports(destination) {
		return fmt.Sprintf("Destination country %s not supported", destination), true
	}

	origin := sc.Shipment.OriginAddress.Country
	if !c.Supports(origin) {
		return fmt.Sprintf("Origin country %s not supported", origin), true
	}

	if limit, ok := carrier.MaxWeight(c); ok && sc.Metrics.TotalWeight > limit {
		return fmt.Sprintf("Total weight %skg exceeds limit %skg",
			utils.FormatNumber(sc.Metrics.TotalWeight), utils.FormatNumber(limit)), true
	}

	if limit, ok := carrier.MaxVolume(c); ok && sc.Metrics.TotalVolume > limit {
		return fmt.Sprintf("Total volume %s exceeds limit %s",
			utils.FormatNumber(sc.Metrics.TotalVolume), utils.FormatNumber(limit)), true
	}

	return "", false
}
