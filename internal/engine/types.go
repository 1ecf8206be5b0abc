// Package engine implements the carbon footprint calculation pipeline:
// shipment validation, footprint and offset computation, cost estimation,
// and history aggregation.
//
// The calculation path is pure and total: any request that passes
// Validate produces a complete FootprintRecord. Missing coordinates and
// unknown transport modes degrade to configured defaults instead of
// failing, because the system always owes the user a number.
package engine

import (
	"time"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/geo"
)

// Default policy values. Exposed as named constants so the fallback
// policy can be audited and tuned independently of the algorithm.
const (
	// DefaultDistanceKm is substituted when either endpoint lacks
	// coordinates. The calculator still produces a full record; the
	// degraded precision is logged, not surfaced as an error.
	DefaultDistanceKm = 500.0

	// TreeAbsorptionKgPerYear is the CO2 one tree absorbs per year,
	// used to derive the whole-number offset tree count.
	TreeAbsorptionKgPerYear = 21.0

	// DefaultCurrency is used when no currency is configured.
	DefaultCurrency = "USD"
)

// Place is one endpoint of a shipment route: a display label plus the
// resolved coordinate, if geocoding produced one.
type Place struct {
	Label string          `json:"label"`
	Coord *geo.Coordinate `json:"coord,omitempty"`
}

// ShipmentRequest is a validated calculation input. TotalWeightTonnes is
// always derived from Quantity and UnitWeightTonnes, never stored.
type ShipmentRequest struct {
	Quantity         float64         `json:"quantity"`
	UnitWeightTonnes float64         `json:"unitWeightTonnes"`
	Mode             emission.Mode   `json:"transportMode"`
	FuelBlend        []emission.Fuel `json:"fuelBlend,omitempty"`
	Cooled           bool            `json:"cooled"`
	Origin           Place           `json:"origin"`
	Destination      Place           `json:"destination"`
}

// TotalWeightTonnes returns the derived shipment weight.
func (r ShipmentRequest) TotalWeightTonnes() float64 {
	return r.Quantity * r.UnitWeightTonnes
}

// HasCoordinates reports whether both endpoints carry a resolved
// coordinate, i.e. whether a real great-circle distance can be computed.
func (r ShipmentRequest) HasCoordinates() bool {
	return r.Origin.Coord != nil && r.Destination.Coord != nil
}

// FootprintRecord is the engine's output, created exactly once per
// calculation and immutable afterwards except for deletion by id.
// The resolved emission factor is embedded for traceability.
type FootprintRecord struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	Origin           string          `json:"origin"`
	Destination      string          `json:"destination"`
	OriginCoords     *geo.Coordinate `json:"originCoords,omitempty"`
	DestCoords       *geo.Coordinate `json:"destinationCoords,omitempty"`
	Mode             emission.Mode   `json:"transportMode"`
	FuelBlend        []emission.Fuel `json:"fuelBlend,omitempty"`
	Cooled           bool            `json:"cooled"`
	TotalWeightT     float64         `json:"totalWeightTonnes"`
	DistanceKm       float64         `json:"distanceKm"`
	EmissionFactor   float64         `json:"emissionFactor"`
	CarbonKg         float64         `json:"carbonFootprintKg"`
	TreesNeeded      int             `json:"treesNeeded"`
	TransportCost    float64         `json:"transportCost"`
	CarbonOffsetCost float64         `json:"carbonOffsetCost"`
	TotalCost        float64         `json:"totalCost"`
	Currency         string          `json:"currency"`
	CalculatedAt     time.Time       `json:"calculatedAt"`
}

// UserStats is the on-demand aggregate over a user's footprint records.
// It is recomputed fresh on every request and never persisted or cached;
// identical record sets always yield identical stats.
type UserStats struct {
	CalculationCount int     `json:"calculationCount"`
	TotalCarbonKg    float64 `json:"totalCarbonFootprintKg"`
	TotalDistanceKm  float64 `json:"totalDistanceKm"`
	TreesNeeded      int     `json:"treesNeeded"`
}
