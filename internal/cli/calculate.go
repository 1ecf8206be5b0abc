package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/engine"
	"github.com/rshade/freightprint/internal/geo"
	"github.com/rshade/freightprint/internal/geocode"
)

// calculateFlags holds the calculate command's shipment input.
type calculateFlags struct {
	Quantity   float64
	UnitWeight float64
	Mode       string
	Fuels      []string
	Cooled     bool

	Origin      string
	Destination string
	OriginLat   float64
	OriginLon   float64
	DestLat     float64
	DestLon     float64

	NoGeocode bool
}

// newCalculateCmd creates the "calculate" command: one shipment request
// in, one footprint record out, saved to the user's history.
func newCalculateCmd() *cobra.Command {
	var flags calculateFlags

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate and record a shipment's carbon footprint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			req := buildRequest(cmd, flags)

			rec, err := a.svc.Calculate(cmd.Context(), a.userID, req)
			if err != nil {
				return err
			}

			if output == "json" {
				return renderJSON(cmd.OutOrStdout(), rec)
			}
			renderRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}

	cmd.Flags().Float64Var(&flags.Quantity, "quantity", 0, "number of units shipped (required)")
	cmd.Flags().Float64Var(&flags.UnitWeight, "unit-weight", 0, "tonnes per unit (required)")
	cmd.Flags().StringVar(&flags.Mode, "mode", "", "transport mode: ship, plane, train, intermodal, truck")
	cmd.Flags().StringArrayVar(&flags.Fuels, "fuel", nil, "truck fuel type (repeatable): diesel, cng, bev, hvo")
	cmd.Flags().BoolVar(&flags.Cooled, "cooled", false, "cooled transport")
	cmd.Flags().StringVar(&flags.Origin, "origin", "", "origin location (required)")
	cmd.Flags().StringVar(&flags.Destination, "destination", "", "destination location (required)")
	cmd.Flags().Float64Var(&flags.OriginLat, "origin-lat", 0, "origin latitude")
	cmd.Flags().Float64Var(&flags.OriginLon, "origin-lon", 0, "origin longitude")
	cmd.Flags().Float64Var(&flags.DestLat, "dest-lat", 0, "destination latitude")
	cmd.Flags().Float64Var(&flags.DestLon, "dest-lon", 0, "destination longitude")
	cmd.Flags().BoolVar(&flags.NoGeocode, "no-geocode", false, "skip gazetteer lookup for unresolved locations")

	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("unit-weight")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}

// buildRequest assembles the shipment request, resolving coordinates
// from explicit flags first and the gazetteer second. A failed lookup
// leaves the coordinate unset; the engine falls back to the default
// distance.
func buildRequest(cmd *cobra.Command, flags calculateFlags) engine.ShipmentRequest {
	fuels := make([]emission.Fuel, 0, len(flags.Fuels))
	for _, f := range flags.Fuels {
		fuels = append(fuels, emission.ParseFuel(f))
	}

	var geocoder geocode.Geocoder
	if !flags.NoGeocode {
		geocoder = geocode.NewGazetteer()
	}

	origin := resolvePlace(cmd.Context(), geocoder, flags.Origin,
		coordFromFlags(cmd, flags.OriginLat, flags.OriginLon, "origin-lat", "origin-lon"))
	destination := resolvePlace(cmd.Context(), geocoder, flags.Destination,
		coordFromFlags(cmd, flags.DestLat, flags.DestLon, "dest-lat", "dest-lon"))

	return engine.ShipmentRequest{
		Quantity:         flags.Quantity,
		UnitWeightTonnes: flags.UnitWeight,
		Mode:             emission.ParseMode(flags.Mode),
		FuelBlend:        fuels,
		Cooled:           flags.Cooled,
		Origin:           origin,
		Destination:      destination,
	}
}

// coordFromFlags returns a coordinate only when both flags were set
// explicitly; zero values alone are not a location.
func coordFromFlags(cmd *cobra.Command, lat, lon float64, latFlag, lonFlag string) *geo.Coordinate {
	if !cmd.Flags().Changed(latFlag) || !cmd.Flags().Changed(lonFlag) {
		return nil
	}
	return &geo.Coordinate{Latitude: lat, Longitude: lon}
}

// resolvePlace fills in missing coordinates via the geocoder, degrading
// to a label-only place when no match exists.
func resolvePlace(ctx context.Context, geocoder geocode.Geocoder, label string, coord *geo.Coordinate) engine.Place {
	if coord != nil || geocoder == nil {
		return engine.Place{Label: label, Coord: coord}
	}

	loc, err := geocoder.Lookup(ctx, label)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			logger.Warn().
				Str("query", label).
				Msg("location not found, distance will use the configured fallback")
		}
		return engine.Place{Label: label}
	}

	c := loc.Coordinate
	return engine.Place{Label: loc.Name, Coord: &c}
}
