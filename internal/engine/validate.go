package engine

import (
	"fmt"
	"strings"

	"github.com/rshade/freightprint/internal/emission"
)

// Default input ceilings. The unit weight ceiling mirrors the upstream
// form validation ("tonnes per unit seems too high" above 1000).
const (
	DefaultUnitWeightCeilingT = 1000.0
	DefaultQuantityCeiling    = 1_000_000.0
	minLabelLength            = 2
)

// ValidationPolicy controls request validation.
type ValidationPolicy struct {
	// UnitWeightCeilingT is the maximum tonnes per unit. Zero means
	// DefaultUnitWeightCeilingT.
	UnitWeightCeilingT float64

	// QuantityCeiling is the maximum quantity. Zero means
	// DefaultQuantityCeiling.
	QuantityCeiling float64

	// StrictFuelBlend rejects truck shipments with an empty fuel blend
	// and any blend containing an unrecognized fuel tag. The lenient
	// default allows both: an empty blend resolves to the truck base
	// factor and unknown tags are ignored in the blend average.
	StrictFuelBlend bool
}

// Validate checks a ShipmentRequest against the policy. A nil-safe,
// all-or-nothing gate: requests that pass are safe for Calculate under
// any mode or coordinate combination.
func (p ValidationPolicy) Validate(req ShipmentRequest) error {
	unitCeiling := p.UnitWeightCeilingT
	if unitCeiling <= 0 {
		unitCeiling = DefaultUnitWeightCeilingT
	}
	qtyCeiling := p.QuantityCeiling
	if qtyCeiling <= 0 {
		qtyCeiling = DefaultQuantityCeiling
	}

	if req.Quantity <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveQuantity, req.Quantity)
	}
	if req.Quantity > qtyCeiling {
		return fmt.Errorf("%w: %v > %v", ErrQuantityCeiling, req.Quantity, qtyCeiling)
	}
	if req.UnitWeightTonnes <= 0 {
		return fmt.Errorf("%w: got %v", ErrNonPositiveUnitWeight, req.UnitWeightTonnes)
	}
	if req.UnitWeightTonnes > unitCeiling {
		return fmt.Errorf("%w: %v > %v", ErrUnitWeightCeiling, req.UnitWeightTonnes, unitCeiling)
	}

	if len(strings.TrimSpace(req.Origin.Label)) < minLabelLength ||
		len(strings.TrimSpace(req.Destination.Label)) < minLabelLength {
		return ErrMissingLabel
	}

	if p.StrictFuelBlend {
		if req.Mode == emission.ModeTruck && len(req.FuelBlend) == 0 {
			return ErrEmptyFuelBlend
		}
		for _, f := range req.FuelBlend {
			if !emission.IsKnownFuel(f) {
				return fmt.Errorf("%w: %q", ErrUnknownFuel, f)
			}
		}
	}

	return nil
}
