// Package emission resolves effective emission factors for shipments.
//
// An emission factor is expressed in kg CO2 per tonne-km and depends on
// the transport mode, the truck fuel blend, and whether the cargo is
// cooled. Resolution never fails: unknown modes degrade to a default
// factor so the calculator always produces an estimate.
package emission

import "strings"

// Mode identifies a transport mode.
type Mode string

// Known transport modes.
const (
	ModeShip       Mode = "ship"
	ModePlane      Mode = "plane"
	ModeTrain      Mode = "train"
	ModeIntermodal Mode = "intermodal"
	ModeTruck      Mode = "truck"
)

// Fuel identifies a truck fuel type.
type Fuel string

// Known truck fuels.
const (
	FuelDiesel Fuel = "diesel"
	FuelCNG    Fuel = "cng"
	FuelBEV    Fuel = "bev"
	FuelHVO    Fuel = "hvo"
)

// Default emission factors in kg CO2 per tonne-km.
//
// Mode factors apply before any fuel adjustment; the truck factor is the
// base used when no fuel blend is selected.
const (
	ShipFactor       = 0.04
	TrainFactor      = 0.03
	IntermodalFactor = 0.08
	PlaneFactor      = 0.50
	TruckBaseFactor  = 0.12

	// DefaultFactor is used for unknown or unspecified transport modes.
	DefaultFactor = 0.10

	// CoolingMultiplier is applied after mode/fuel resolution when the
	// shipment is cooled.
	CoolingMultiplier = 1.30
)

// Default per-fuel factors for truck transport, kg CO2 per tonne-km.
const (
	DieselFactor = 0.12
	CNGFactor    = 0.10
	BEVFactor    = 0.04
	HVOFactor    = 0.08
)

// ParseMode normalizes a mode string. It never rejects input: resolution
// of an unrecognized mode falls back to DefaultFactor.
func ParseMode(s string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(s)))
}

// ParseFuel normalizes a fuel string.
func ParseFuel(s string) Fuel {
	return Fuel(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnownMode reports whether m is one of the recognized transport modes.
func IsKnownMode(m Mode) bool {
	switch m {
	case ModeShip, ModePlane, ModeTrain, ModeIntermodal, ModeTruck:
		return true
	default:
		return false
	}
}

// IsKnownFuel reports whether f is one of the recognized truck fuels.
func IsKnownFuel(f Fuel) bool {
	switch f {
	case FuelDiesel, FuelCNG, FuelBEV, FuelHVO:
		return true
	default:
		return false
	}
}

// KnownModes returns the recognized transport modes in display order.
func KnownModes() []Mode {
	return []Mode{ModeShip, ModePlane, ModeTrain, ModeIntermodal, ModeTruck}
}

// KnownFuels returns the recognized truck fuels in display order.
func KnownFuels() []Fuel {
	return []Fuel{FuelDiesel, FuelCNG, FuelBEV, FuelHVO}
}
