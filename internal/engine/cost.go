package engine

import (
	"fmt"

	"github.com/rshade/freightprint/internal/emission"
)

// Default cost policy. The exact coefficients are a tunable business
// policy, not a law of the calculation: they ship as defaults and are
// overridable through configuration.
const (
	// DefaultOffsetRatePerKg is the carbon offset price per kg CO2.
	DefaultOffsetRatePerKg = 0.025

	// DefaultBaseRatePerTonneKm is the transport rate used for modes
	// without an explicit entry in the rate table.
	DefaultBaseRatePerTonneKm = 0.10
)

// Rates is the injectable pricing policy for the cost estimator:
// a per-mode transport rate table (currency per tonne-km), the carbon
// offset rate (currency per kg CO2), and the currency code.
type Rates struct {
	ModeRates       map[emission.Mode]float64 `yaml:"mode_rates"`
	OffsetRatePerKg float64                   `yaml:"offset_rate_per_kg"`
	BaseRate        float64                   `yaml:"base_rate"`
	Currency        string                    `yaml:"currency"`
}

// DefaultRates returns the default pricing policy.
func DefaultRates() Rates {
	return Rates{
		ModeRates: map[emission.Mode]float64{
			emission.ModeShip:       0.02,
			emission.ModeTrain:      0.05,
			emission.ModeIntermodal: 0.07,
			emission.ModeTruck:      0.12,
			emission.ModePlane:      0.60,
		},
		OffsetRatePerKg: DefaultOffsetRatePerKg,
		BaseRate:        DefaultBaseRatePerTonneKm,
		Currency:        DefaultCurrency,
	}
}

// Validate rejects rate tables that would produce negative costs.
func (r Rates) Validate() error {
	if r.OffsetRatePerKg < 0 {
		return fmt.Errorf("offset rate must be non-negative, got %v", r.OffsetRatePerKg)
	}
	if r.BaseRate < 0 {
		return fmt.Errorf("base rate must be non-negative, got %v", r.BaseRate)
	}
	for mode, rate := range r.ModeRates {
		if rate < 0 {
			return fmt.Errorf("rate for mode %q must be non-negative, got %v", mode, rate)
		}
	}
	return nil
}

// CostEstimate is the monetary portion of a footprint record.
type CostEstimate struct {
	TransportCost    float64 `json:"transportCost"`
	CarbonOffsetCost float64 `json:"carbonOffsetCost"`
	TotalCost        float64 `json:"totalCost"`
	Currency         string  `json:"currency"`
}

// CostEstimator derives transport and carbon offset costs from shipment
// attributes and the computed footprint. Like the calculator it is pure
// and safe for concurrent use.
type CostEstimator struct {
	rates Rates
}

// NewCostEstimator returns an estimator for the given pricing policy.
// Rates are applied as given: a zero rate prices that component at zero.
// Callers wanting the published defaults start from DefaultRates. An
// empty currency falls back to DefaultCurrency.
func NewCostEstimator(rates Rates) *CostEstimator {
	if rates.Currency == "" {
		rates.Currency = DefaultCurrency
	}
	return &CostEstimator{rates: rates}
}

// Estimate computes the cost breakdown for a shipment:
// transport cost = weight x distance x mode rate, offset cost =
// footprint x offset rate, total = sum. Both components are
// non-negative for validated rate tables.
func (e *CostEstimator) Estimate(
	mode emission.Mode,
	weightTonnes, distanceKm, carbonKg float64,
) CostEstimate {
	rate, ok := e.rates.ModeRates[mode]
	if !ok {
		rate = e.rates.BaseRate
	}

	transport := weightTonnes * distanceKm * rate
	offset := carbonKg * e.rates.OffsetRatePerKg

	return CostEstimate{
		TransportCost:    transport,
		CarbonOffsetCost: offset,
		TotalCost:        transport + offset,
		Currency:         e.rates.Currency,
	}
}
