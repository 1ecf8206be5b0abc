package engine

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Input validation errors. These are raised before a request reaches the
// calculator; the calculation itself is total over validated input.
var (
	// ErrNonPositiveQuantity indicates a zero or negative quantity.
	ErrNonPositiveQuantity = constError("quantity must be greater than zero")

	// ErrNonPositiveUnitWeight indicates a zero or negative unit weight.
	ErrNonPositiveUnitWeight = constError("unit weight must be greater than zero")

	// ErrUnitWeightCeiling indicates a unit weight above the configured ceiling.
	ErrUnitWeightCeiling = constError("unit weight exceeds configured ceiling")

	// ErrQuantityCeiling indicates a quantity above the configured ceiling.
	ErrQuantityCeiling = constError("quantity exceeds configured ceiling")

	// ErrMissingLabel indicates an origin or destination without a display label.
	ErrMissingLabel = constError("origin and destination labels are required")

	// ErrEmptyFuelBlend indicates a truck shipment without a fuel blend
	// while the strict fuel-blend policy is enabled.
	ErrEmptyFuelBlend = constError("truck transport requires at least one fuel type")

	// ErrUnknownFuel indicates an unrecognized fuel tag in the blend
	// while the strict fuel-blend policy is enabled.
	ErrUnknownFuel = constError("unrecognized fuel type")
)
