package offers

import (
	"context"
	"errors"
	"testing"
	"time"

	"freight/internal/carrier"
	"freight/internal/eligibility"
	"freight/internal/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 {
	return &v
}

func testCarriers() []carrier.Carrier {
	return []carrier.Carrier{
		{
			ID: "dhl", Name: "DHL", DeliveryTime: 3, EnvironmentalImpact: 5, CostPerKg: 14,
			EligibilityRules: []carrier.EligibilityRule{
				{Name: "Maximum weight rule", Weight: &carrier.Range{Max: f(200)}},
				{Name: "Swedish origin", OriginAddress: &shipment.Address{Country: "SE"}},
			},
			SupportedCountries: []string{"SE", "NO", "DK", "FI", "DE", "AT", "CH", "PL"},
		},
		{
			ID: "dsv", Name: "DSV", DeliveryTime: 5, EnvironmentalImpact: 1, CostPerKg: 16,
			EligibilityRules: []carrier.EligibilityRule{
				{Name: "Domestic delivery", DestinationAddress: &shipment.Address{Country: "SE"}},
				{Name: "maximum weight", Weight: &carrier.Range{Max: f(100)}},
			},
			SupportedCountries: []string{"SE", "NO"},
		},
		{
			ID: "bring", Name: "Bring", DeliveryTime: 2, EnvironmentalImpact: 5, CostPerKg: 18,
			EligibilityRules: []carrier.EligibilityRule{
				{Name: "Weight range", Weight: &carrier.Range{Min: f(20), Max: f(300)}},
			},
			SupportedCountries: []string{"SE", "NO", "DK", "FI"},
		},
		{
			ID: "fedex", Name: "FedEx", DeliveryTime: 1, EnvironmentalImpact: 10, CostPerKg: 30,
			EligibilityRules: []carrier.EligibilityRule{
				{Name: "maximum weight", Weight: &carrier.Range{Max: f(250)}},
				{Name: "maximum volume", Volume: &carrier.Range{Max: f(2000000)}},
			},
			SupportedCountries: []string{"US", "SE", "NO", "DE"},
		},
	}
}

func testShipment() shipment.Shipment {
	return shipment.Shipment{
		OriginAddress:      shipment.Address{Country: "SE"},
		DestinationAddress: shipment.Address{Country: "NO"},
		Packages: []shipment.Package{{
			ID: "pkg-1", Quantity: 1, Weight: 5,
			Dimensions: shipment.Dimensions{Length: 5, Width: 5, Height: 5},
		}},
	}
}

var generatedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, carriers []carrier.Carrier, overrides eligibility.Overrides) *Service {
	t.Helper()
	catalog, err := carrier.NewCatalog(carriers)
	require.NoError(t, err, "should build catalog")
	scorer, err := eligibility.NewService(overrides)
	require.NoError(t, err, "should build eligibility service")

	s := NewService(catalog, scorer)
	s.now = func() time.Time { return generatedAt }
	return s
}

func threshold(v float64) eligibility.Overrides {
	return eligibility.Overrides{EligibilityThreshold: &v}
}

type failingProvider struct{}

func (failingProvider) Carriers(context.Context) ([]carrier.Carrier, error) {
	return nil, errors.New("catalog unavailable")
}

func (failingProvider) Carrier(context.Context, string) (carrier.Carrier, error) {
	return carrier.Carrier{}, errors.New("catalog unavailable")
}

func TestService_GetOffers_DefaultConfiguration(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})

	response, err := s.GetOffers(context.Background(), Request{Shipment: testShipment()})

	require.NoError(t, err)
	assert.Equal(t, generatedAt, response.GeneratedAt)
	require.Len(t, response.Offers, 1, "only DHL should be eligible")
	assert.Equal(t, Offer{
		CarrierID:           "dhl",
		CarrierName:         "DHL",
		Cost:                70,
		DeliveryTime:        3,
		EligibilityScore:    68,
		CostEfficiencyScore: 100,
		ServiceQualityScore: 60,
		Reasons: []string{
			"acceptable delivery speed: 3 days",
			"acceptable environmental impact: 5",
			"competitive pricing: 14 SEK/kg",
			"low weight utilization: 2.5%",
			"low capacity utilization: 2.5%",
			"ranked by score: 0.68",
		},
		IsEligible: true,
	}, response.Offers[0])
}

func TestService_GetOffers_SortedByCost(t *testing.T) {
	s := newTestService(t, testCarriers(), threshold(0))

	response, err := s.GetOffers(context.Background(), Request{Shipment: testShipment()})

	require.NoError(t, err)
	require.Len(t, response.Offers, 2, "carriers failing business rules should stay excluded")
	assert.Equal(t, "dhl", response.Offers[0].CarrierID)
	assert.Equal(t, "fedex", response.Offers[1].CarrierID)
	assert.Equal(t, 150.0, response.Offers[1].Cost)
	assert.Equal(t, 45.0, response.Offers[1].EligibilityScore)
	assert.Equal(t, 0.0, response.Offers[1].CostEfficiencyScore)
	assert.Equal(t, 76.0, response.Offers[1].ServiceQualityScore)
}

func TestService_GetOffers_EqualCostByScore(t *testing.T) {
	carriers := testCarriers()
	express := carriers[0]
	express.ID, express.Name, express.DeliveryTime = "dhl-express", "DHL Express", 1
	carriers = append(carriers, express)
	s := newTestService(t, carriers, threshold(0))

	response, err := s.GetOffers(context.Background(), Request{Shipment: testShipment()})

	require.NoError(t, err)
	require.Len(t, response.Offers, 3)
	assert.Equal(t, "dhl-express", response.Offers[0].CarrierID, "faster carrier should win the tie")
	assert.Equal(t, "dhl", response.Offers[1].CarrierID)
	for i := 1; i < len(response.Offers); i++ {
		prev, cur := response.Offers[i-1], response.Offers[i]
		assert.LessOrEqual(t, prev.Cost, cur.Cost, "offers should be sorted by cost")
		if prev.Cost == cur.Cost {
			assert.GreaterOrEqual(t, prev.EligibilityScore, cur.EligibilityScore, "ties should be sorted by score")
		}
	}
}

func TestService_GetOffers_CostIgnoresQuantity(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})
	sh := testShipment()
	sh.Packages = []shipment.Package{
		{ID: "a", Quantity: 3, Weight: 2.5, Dimensions: shipment.Dimensions{Length: 5, Width: 5, Height: 5}},
		{ID: "b", Quantity: 2, Weight: 4, Dimensions: shipment.Dimensions{Length: 5, Width: 5, Height: 5}},
	}

	response, err := s.GetOffers(context.Background(), Request{Shipment: sh})

	require.NoError(t, err)
	require.NotEmpty(t, response.Offers)
	assert.Equal(t, 6.5*14, response.Offers[0].Cost, "cost should be the sum of package weights times cost per kg")
}

func TestService_GetOffers_EmptyPackages(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})
	sh := testShipment()
	sh.Packages = []shipment.Package{}

	response, err := s.GetOffers(context.Background(), Request{Shipment: sh})

	require.NoError(t, err)
	require.Len(t, response.Offers, 1)
	assert.Equal(t, 0.0, response.Offers[0].Cost)
}

func TestService_GetOffers_UnsupportedDestination(t *testing.T) {
	s := newTestService(t, testCarriers(), threshold(0))
	sh := testShipment()
	sh.DestinationAddress.Country = "JP"

	response, err := s.GetOffers(context.Background(), Request{Shipment: sh})

	require.NoError(t, err)
	assert.NotNil(t, response.Offers)
	assert.Empty(t, response.Offers, "no carrier covers JP")
}

func TestService_GetOffers_EmptyCatalog(t *testing.T) {
	s := newTestService(t, nil, eligibility.Overrides{})

	response, err := s.GetOffers(context.Background(), Request{Shipment: testShipment()})

	require.NoError(t, err)
	assert.NotNil(t, response.Offers)
	assert.Empty(t, response.Offers)
}

func TestService_GetOffers_ProviderError(t *testing.T) {
	scorer, err := eligibility.NewService(eligibility.Overrides{})
	require.NoError(t, err)
	s := NewService(failingProvider{}, scorer)

	_, err = s.GetOffers(context.Background(), Request{Shipment: testShipment()})

	assert.EqualError(t, err, "error loading carriers: catalog unavailable")
}

func TestService_GetOffers_CancelledContext(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetOffers(ctx, Request{Shipment: testShipment()})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Evaluate(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})

	result, err := s.Evaluate(context.Background(), "dsv", testShipment())

	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Contains(t, result.Reasons, "Rule violation: Domestic delivery")
	assert.Contains(t, result.Reasons, "Destination country NO doesn't match required SE")
	assert.Equal(t, 88.0, result.StrategyScores.CostEfficiency, "cost should be normalised against the whole catalog")
}

func TestService_Evaluate_UnknownCarrier(t *testing.T) {
	s := newTestService(t, testCarriers(), eligibility.Overrides{})

	_, err := s.Evaluate(context.Background(), "ups", testShipment())

	var notFound *carrier.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
