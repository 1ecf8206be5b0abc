package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/freightprint/internal/emission"
)

func validRequest() ShipmentRequest {
	return ShipmentRequest{
		Quantity:         10,
		UnitWeightTonnes: 2,
		Mode:             emission.ModeShip,
		Origin:           Place{Label: "Rotterdam"},
		Destination:      Place{Label: "Singapore"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  ValidationPolicy
		mutate  func(*ShipmentRequest)
		wantErr error
	}{
		{
			name:   "valid request passes",
			mutate: func(*ShipmentRequest) {},
		},
		{
			name:    "zero quantity",
			mutate:  func(r *ShipmentRequest) { r.Quantity = 0 },
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name:    "negative quantity",
			mutate:  func(r *ShipmentRequest) { r.Quantity = -3 },
			wantErr: ErrNonPositiveQuantity,
		},
		{
			name:    "zero unit weight",
			mutate:  func(r *ShipmentRequest) { r.UnitWeightTonnes = 0 },
			wantErr: ErrNonPositiveUnitWeight,
		},
		{
			name:    "unit weight above default ceiling",
			mutate:  func(r *ShipmentRequest) { r.UnitWeightTonnes = 1000.5 },
			wantErr: ErrUnitWeightCeiling,
		},
		{
			name:    "quantity above custom ceiling",
			policy:  ValidationPolicy{QuantityCeiling: 100},
			mutate:  func(r *ShipmentRequest) { r.Quantity = 101 },
			wantErr: ErrQuantityCeiling,
		},
		{
			name:   "unit weight within custom ceiling",
			policy: ValidationPolicy{UnitWeightCeilingT: 5000},
			mutate: func(r *ShipmentRequest) { r.UnitWeightTonnes = 2000 },
		},
		{
			name:    "missing origin label",
			mutate:  func(r *ShipmentRequest) { r.Origin.Label = " " },
			wantErr: ErrMissingLabel,
		},
		{
			name:    "one-character destination label",
			mutate:  func(r *ShipmentRequest) { r.Destination.Label = "X" },
			wantErr: ErrMissingLabel,
		},
		{
			name:   "lenient policy allows empty truck blend",
			mutate: func(r *ShipmentRequest) { r.Mode = emission.ModeTruck },
		},
		{
			name:   "strict policy rejects empty truck blend",
			policy: ValidationPolicy{StrictFuelBlend: true},
			mutate: func(r *ShipmentRequest) {
				r.Mode = emission.ModeTruck
				r.FuelBlend = nil
			},
			wantErr: ErrEmptyFuelBlend,
		},
		{
			name:   "strict policy accepts truck with blend",
			policy: ValidationPolicy{StrictFuelBlend: true},
			mutate: func(r *ShipmentRequest) {
				r.Mode = emission.ModeTruck
				r.FuelBlend = []emission.Fuel{emission.FuelHVO}
			},
		},
		{
			name:   "strict policy ignores non-truck modes",
			policy: ValidationPolicy{StrictFuelBlend: true},
			mutate: func(r *ShipmentRequest) { r.Mode = emission.ModePlane },
		},
		{
			name:   "strict policy rejects unknown fuel",
			policy: ValidationPolicy{StrictFuelBlend: true},
			mutate: func(r *ShipmentRequest) {
				r.Mode = emission.ModeTruck
				r.FuelBlend = []emission.Fuel{emission.FuelDiesel, emission.Fuel("kerosene")}
			},
			wantErr: ErrUnknownFuel,
		},
		{
			name: "lenient policy ignores unknown fuel",
			mutate: func(r *ShipmentRequest) {
				r.Mode = emission.ModeTruck
				r.FuelBlend = []emission.Fuel{emission.Fuel("kerosene")}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := tt.policy.Validate(req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTotalWeightDerived(t *testing.T) {
	req := validRequest()
	assert.InDelta(t, 20.0, req.TotalWeightTonnes(), 1e-12)
}
