package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/freightprint/internal/emission"
)

func TestEstimateDefaults(t *testing.T) {
	e := NewCostEstimator(DefaultRates())

	got := e.Estimate(emission.ModeShip, 20, 1000, 800)
	assert.InDelta(t, 20*1000*0.02, got.TransportCost, 1e-9)
	assert.InDelta(t, 800*DefaultOffsetRatePerKg, got.CarbonOffsetCost, 1e-9)
	assert.InDelta(t, got.TransportCost+got.CarbonOffsetCost, got.TotalCost, 1e-9)
	assert.Equal(t, "USD", got.Currency)
}

func TestEstimateUnknownModeUsesBaseRate(t *testing.T) {
	e := NewCostEstimator(DefaultRates())

	got := e.Estimate(emission.Mode("zeppelin"), 2, 100, 50)
	assert.InDelta(t, 2*100*DefaultBaseRatePerTonneKm, got.TransportCost, 1e-9)
}

func TestEstimateCustomRates(t *testing.T) {
	e := NewCostEstimator(Rates{
		ModeRates:       map[emission.Mode]float64{emission.ModeTrain: 0.01},
		OffsetRatePerKg: 0.5,
		Currency:        "EUR",
	})

	got := e.Estimate(emission.ModeTrain, 10, 10, 100)
	assert.InDelta(t, 1.0, got.TransportCost, 1e-9)
	assert.InDelta(t, 50.0, got.CarbonOffsetCost, 1e-9)
	assert.Equal(t, "EUR", got.Currency)
}

func TestEstimateZeroRatePolicy(t *testing.T) {
	// Zero rates validate and price their component at zero; they are
	// not replaced by the defaults.
	r := Rates{BaseRate: 0.10}
	require.NoError(t, r.Validate())

	got := NewCostEstimator(r).Estimate(emission.ModeShip, 10, 100, 1000)
	assert.Zero(t, got.CarbonOffsetCost)
	assert.InDelta(t, 100.0, got.TransportCost, 1e-9)
	assert.InDelta(t, 100.0, got.TotalCost, 1e-9)

	free := NewCostEstimator(Rates{})
	require.NoError(t, Rates{}.Validate())
	assert.Zero(t, free.Estimate(emission.ModeTruck, 10, 100, 1000).TotalCost)
}

func TestEstimateNonNegative(t *testing.T) {
	e := NewCostEstimator(DefaultRates())
	got := e.Estimate(emission.ModePlane, 0, 0, 0)
	assert.GreaterOrEqual(t, got.TransportCost, 0.0)
	assert.GreaterOrEqual(t, got.CarbonOffsetCost, 0.0)
	assert.Zero(t, got.TotalCost)
}

func TestRatesValidate(t *testing.T) {
	require.NoError(t, DefaultRates().Validate())

	assert.Error(t, Rates{OffsetRatePerKg: -1}.Validate())
	assert.Error(t, Rates{BaseRate: -0.1}.Validate())
	assert.Error(t, Rates{
		ModeRates: map[emission.Mode]float64{emission.ModeShip: -2},
	}.Validate())
}
