package carrier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"freight/internal/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
carriers:
  - id: dhl-001
    name: DHL
    delivery_time: 3
    environmental_impact: 5
    cost_per_kg: 14
    supported_countries: [SE, NO, DK, FI, DE, AT, CH, PL]
    eligibility_rules:
      - name: Maximum weight rule
        weight:
          max: 200
      - name: Swedish origin
        origin_address:
          country: SE
  - id: bring-001
    name: Bring
    delivery_time: 2
    environmental_impact: 5
    cost_per_kg: 18
    supported_countries: [SE, NO]
    eligibility_rules:
      - name: Weight range
        weight:
          min: 20
          max: 300
        when: packageCount <= 3
`

func TestParse_Catalog(t *testing.T) {
	catalog, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	dhl, err := catalog.Carrier(context.Background(), "dhl-001")
	require.NoError(t, err)
	assert.Equal(t, "DHL", dhl.Name)
	assert.Equal(t, 14.0, dhl.CostPerKg)
	assert.Len(t, dhl.SupportedCountries, 8)
	require.Len(t, dhl.EligibilityRules, 2)
	assert.Equal(t, 200.0, *dhl.EligibilityRules[0].Weight.Max)
	assert.Nil(t, dhl.EligibilityRules[0].Weight.Min)
	assert.Equal(t, &shipment.Address{Country: "SE"}, dhl.EligibilityRules[1].OriginAddress)

	bring, err := catalog.Carrier(context.Background(), "bring-001")
	require.NoError(t, err)
	assert.Equal(t, "packageCount <= 3", bring.EligibilityRules[0].When)
}

func TestParse_EmptyContent(t *testing.T) {
	catalog, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Zero(t, catalog.Len(), "should handle empty content as empty catalog")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("carriers:\n  - id: x\n    name: X\n    speed: 3\n"))
	assert.Error(t, err, "should reject unknown keys")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("carriers: [[[["))
	assert.Error(t, err)
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := NewCatalog([]Carrier{{Name: "No id"}})
	assert.EqualError(t, err, "carriers[0].id: must be specified")

	_, err = NewCatalog([]Carrier{{ID: "a"}})
	assert.EqualError(t, err, "carriers[0].name: must be specified")

	_, err = NewCatalog([]Carrier{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}})
	assert.EqualError(t, err, "carriers[1].id: duplicate id 'a'")
}

func TestCatalog_CarrierNotFound(t *testing.T) {
	catalog, err := NewCatalog([]Carrier{{ID: "a", Name: "A"}})
	require.NoError(t, err)

	_, err = catalog.Carrier(context.Background(), "missing")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.EqualError(t, err, "carrier not found: missing")
}

func TestCatalog_CarriersIsACopy(t *testing.T) {
	catalog, err := NewCatalog([]Carrier{{ID: "a", Name: "A"}})
	require.NoError(t, err)

	carriers, err := catalog.Carriers(context.Background())
	require.NoError(t, err)
	carriers[0].Name = "changed"

	again, _ := catalog.Carriers(context.Background())
	assert.Equal(t, "A", again[0].Name)
}

func TestCatalog_CancelledContext(t *testing.T) {
	catalog, err := NewCatalog(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = catalog.Carriers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carriers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	catalog, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFile_SampleCatalog(t *testing.T) {
	catalog, err := LoadFromFile(filepath.Join("..", "..", "configs", "carriers.yaml"))
	require.NoError(t, err, "sample catalog should load")

	assert.Equal(t, 4, catalog.Len())
	fedex, err := catalog.Carrier(context.Background(), "fedex-001")
	require.NoError(t, err)
	limits, ok := MaxDimensions(fedex)
	require.True(t, ok, "FedEx should declare dimension caps")
	assert.Equal(t, shipment.Dimensions{Length: 150, Width: 100, Height: 100}, limits)
}
