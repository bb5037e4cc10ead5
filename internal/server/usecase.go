package server

import (
	"context"

	"freight/internal/eligibility"
	"freight/internal/offers"
	"freight/internal/shipment"
)

// OfferService prices and ranks carriers for a shipment.
type OfferService interface {
	GetOffers(ctx context.Context, req offers.Request) (offers.Response, error)
	Evaluate(ctx context.Context, carrierID string, s shipment.Shipment) (eligibility.Result, error)
}

// ScoringConfigurator reads and replaces the scoring configuration.
type ScoringConfigurator interface {
	Configuration() eligibility.Configuration
	UpdateConfiguration(overrides eligibility.Overrides) error
}
