// Package offers turns eligibility results for the whole carrier catalog into ranked,
// priced offers.
package offers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"freight/internal/carrier"
	"freight/internal/eligibility"
	"freight/internal/shipment"
	"freight/internal/utils"
)

// Service computes offers against the carriers of a Provider.
type Service struct {
	provider carrier.Provider
	scorer   Scorer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates an offers service.
func NewService(provider carrier.Provider, scorer Scorer) *Service {
	return &Service{
		provider: provider,
		scorer:   scorer,
		logger:   slog.Default().With("component", "offers"),
		now:      time.Now,
	}
}

// GetOffers scores every carrier for req.Shipment and returns the eligible ones, sorted by
// cost ascending and, for equal cost, by eligibility score descending.
//
// The cost range used to normalise cost efficiency is computed once over all carriers.
func (s *Service) GetOffers(ctx context.Context, req Request) (Response, error) {
	carriers, err := s.provider.Carriers(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("error loading carriers: %w", err)
	}

	offers := make([]Offer, 0, len(carriers))
	costRange, ok := carrier.CostRangeOf(carriers)
	if ok {
		totalWeight := req.Shipment.TotalWeight()
		for _, c := range carriers {
			result := s.scorer.CalculateEligibilityScore(c, req.Shipment, &costRange)
			s.logger.Debug("carrier eligibility",
				"carrier", c.Name,
				"isEligible", result.IsEligible,
				"score", result.Score,
				"reasons", result.Reasons,
				"strategyScores", result.StrategyScores)

			if !result.IsEligible {
				continue
			}
			offers = append(offers, s.offer(c, totalWeight, result))
		}
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Cost != offers[j].Cost {
			return offers[i].Cost < offers[j].Cost
		}
		return offers[i].EligibilityScore > offers[j].EligibilityScore
	})

	return Response{Offers: offers, GeneratedAt: s.now().UTC()}, nil
}

// Evaluate returns the eligibility result of one carrier, normalised against the cost range
// of the whole catalog.
func (s *Service) Evaluate(ctx context.Context, carrierID string, sh shipment.Shipment) (eligibility.Result, error) {
	c, err := s.provider.Carrier(ctx, carrierID)
	if err != nil {
		return eligibility.Result{}, err
	}

	carriers, err := s.provider.Carriers(ctx)
	if err != nil {
		return eligibility.Result{}, fmt.Errorf("error loading carriers: %w", err)
	}

	costRange, _ := carrier.CostRangeOf(carriers)
	return s.scorer.CalculateEligibilityScore(c, sh, &costRange), nil
}

func (s *Service) offer(c carrier.Carrier, totalWeight float64, result eligibility.Result) Offer {
	return Offer{
		CarrierID:           c.ID,
		CarrierName:         c.Name,
		Cost:                totalWeight * c.CostPerKg,
		DeliveryTime:        c.DeliveryTime,
		EligibilityScore:    result.Score,
		CostEfficiencyScore: result.StrategyScores.CostEfficiency,
		ServiceQualityScore: s.serviceQuality(result.StrategyScores),
		Reasons:             result.Reasons,
		IsEligible:          result.IsEligible,
	}
}

// serviceQuality blends delivery speed and environmental impact with the fixed weights of
// the thresholds table, independent of the configured primary weights.
func (s *Service) serviceQuality(scores eligibility.StrategyScores) float64 {
	w := s.scorer.Thresholds().ServiceQuality
	return utils.Round(scores.DeliverySpeed*w.Delivery + scores.EnvironmentalImpact*w.Environmental)
}
