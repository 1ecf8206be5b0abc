package emission

// Resolver maps (mode, fuel blend, cooled) to an effective emission
// factor. The factor tables are a tunable policy: construct with
// NewResolver for the published defaults or override individual entries
// via ResolverTables.
type Resolver struct {
	modeFactors   map[Mode]float64
	fuelFactors   map[Fuel]float64
	defaultFactor float64
	coolingMult   float64
}

// ResolverTables holds overrides for the resolver's factor tables.
// Nil fields keep the defaults; set fields are applied as given, so an
// explicit zero is honored.
type ResolverTables struct {
	ModeFactors   map[Mode]float64
	FuelFactors   map[Fuel]float64
	DefaultFactor *float64
	CoolingMult   *float64
}

// NewResolver returns a Resolver loaded with the default factor tables.
func NewResolver() *Resolver {
	return NewResolverWithTables(ResolverTables{})
}

// NewResolverWithTables returns a Resolver with the default tables
// overlaid by the entries in t.
func NewResolverWithTables(t ResolverTables) *Resolver {
	r := &Resolver{
		modeFactors: map[Mode]float64{
			ModeShip:       ShipFactor,
			ModeTrain:      TrainFactor,
			ModeIntermodal: IntermodalFactor,
			ModePlane:      PlaneFactor,
			ModeTruck:      TruckBaseFactor,
		},
		fuelFactors: map[Fuel]float64{
			FuelDiesel: DieselFactor,
			FuelCNG:    CNGFactor,
			FuelBEV:    BEVFactor,
			FuelHVO:    HVOFactor,
		},
		defaultFactor: DefaultFactor,
		coolingMult:   CoolingMultiplier,
	}

	for mode, f := range t.ModeFactors {
		r.modeFactors[mode] = f
	}
	for fuel, f := range t.FuelFactors {
		r.fuelFactors[fuel] = f
	}
	if t.DefaultFactor != nil {
		r.defaultFactor = *t.DefaultFactor
	}
	if t.CoolingMult != nil {
		r.coolingMult = *t.CoolingMult
	}

	return r
}

// Resolve returns the effective emission factor in kg CO2 per tonne-km.
//
// Unknown modes resolve to the default factor rather than an error. For
// truck transport with a non-empty fuel blend, the factor is the
// arithmetic mean of the selected fuels' factors; the blend is treated
// as a set, so duplicate tags count once and order does not matter.
// Unrecognized fuel tags are ignored. The cooling multiplier is applied
// last, after mode/fuel resolution.
func (r *Resolver) Resolve(mode Mode, blend []Fuel, cooled bool) float64 {
	factor, ok := r.modeFactors[mode]
	if !ok {
		factor = r.defaultFactor
	}

	if mode == ModeTruck {
		if avg, ok := r.blendAverage(blend); ok {
			factor = avg
		}
	}

	if cooled {
		factor *= r.coolingMult
	}

	return factor
}

// blendAverage returns the mean factor over the distinct recognized
// fuels in blend, and whether any were found.
func (r *Resolver) blendAverage(blend []Fuel) (float64, bool) {
	seen := make(map[Fuel]struct{}, len(blend))
	var sum float64

	for _, fuel := range blend {
		factor, known := r.fuelFactors[fuel]
		if !known {
			continue
		}
		if _, dup := seen[fuel]; dup {
			continue
		}
		seen[fuel] = struct{}{}
		sum += factor
	}

	if len(seen) == 0 {
		return 0, false
	}
	return sum / float64(len(seen)), true
}
