package engine

import (
	"math"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/geo"
)

// Calculator turns validated shipment requests into footprint records.
//
// Aside from stamping an id and a creation timestamp, Calculate is a pure
// function of its input: no shared mutable state, safe for concurrent use.
// Intermediate values are kept at full float64 precision; rounding happens
// only at the presentation boundary.
type Calculator struct {
	resolver  *emission.Resolver
	estimator *CostEstimator
	fallback  float64
	now       func() time.Time
	logger    zerolog.Logger
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithResolver replaces the default emission factor resolver.
func WithResolver(r *emission.Resolver) CalculatorOption {
	return func(c *Calculator) { c.resolver = r }
}

// WithCostEstimator replaces the default cost estimator.
func WithCostEstimator(e *CostEstimator) CalculatorOption {
	return func(c *Calculator) { c.estimator = e }
}

// WithFallbackDistanceKm overrides the distance substituted when a
// request is missing coordinates. Zero is a valid fallback; negative
// values are ignored.
func WithFallbackDistanceKm(km float64) CalculatorOption {
	return func(c *Calculator) {
		if km >= 0 {
			c.fallback = km
		}
	}
}

// WithClock injects the timestamp source, for deterministic tests.
func WithClock(now func() time.Time) CalculatorOption {
	return func(c *Calculator) { c.now = now }
}

// WithLogger attaches a logger for degraded-precision diagnostics.
func WithLogger(logger zerolog.Logger) CalculatorOption {
	return func(c *Calculator) { c.logger = logger }
}

// NewCalculator returns a Calculator with default policy values.
func NewCalculator(opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		resolver:  emission.NewResolver(),
		estimator: NewCostEstimator(DefaultRates()),
		fallback:  DefaultDistanceKm,
		now:       time.Now,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate produces the footprint record for a validated request,
// stamped with userID. It is total: every branch degrades to a default
// rather than failing.
func (c *Calculator) Calculate(userID string, req ShipmentRequest) FootprintRecord {
	weight := req.TotalWeightTonnes()
	distance := c.distanceKm(req)
	factor := c.resolver.Resolve(req.Mode, req.FuelBlend, req.Cooled)

	if !emission.IsKnownMode(req.Mode) {
		c.logger.Warn().
			Str("transport_mode", string(req.Mode)).
			Float64("default_factor", factor).
			Msg("unknown transport mode, using default emission factor")
	}

	carbonKg := weight * distance * factor
	trees := TreesToOffset(carbonKg)
	cost := c.estimator.Estimate(req.Mode, weight, distance, carbonKg)

	return FootprintRecord{
		ID:               ulid.Make().String(),
		UserID:           userID,
		Origin:           req.Origin.Label,
		Destination:      req.Destination.Label,
		OriginCoords:     req.Origin.Coord,
		DestCoords:       req.Destination.Coord,
		Mode:             req.Mode,
		FuelBlend:        req.FuelBlend,
		Cooled:           req.Cooled,
		TotalWeightT:     weight,
		DistanceKm:       distance,
		EmissionFactor:   factor,
		CarbonKg:         carbonKg,
		TreesNeeded:      trees,
		TransportCost:    cost.TransportCost,
		CarbonOffsetCost: cost.CarbonOffsetCost,
		TotalCost:        cost.TotalCost,
		Currency:         cost.Currency,
		CalculatedAt:     c.now().UTC(),
	}
}

// distanceKm returns the great-circle distance when both endpoints are
// resolved, otherwise the configured fallback.
func (c *Calculator) distanceKm(req ShipmentRequest) float64 {
	if req.HasCoordinates() {
		return geo.DistanceKm(*req.Origin.Coord, *req.Destination.Coord)
	}

	c.logger.Warn().
		Str("origin", req.Origin.Label).
		Str("destination", req.Destination.Label).
		Float64("fallback_km", c.fallback).
		Msg("missing coordinates, using fallback distance")

	return c.fallback
}

// TreesToOffset returns the whole number of trees needed to absorb
// carbonKg within a year, always rounding up. It is zero only for a
// footprint of exactly zero.
func TreesToOffset(carbonKg float64) int {
	return int(math.Ceil(carbonKg / TreeAbsorptionKgPerYear))
}
