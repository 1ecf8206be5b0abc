package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/freightprint/internal/engine"
)

// Presentation precision. Internal computation keeps full float64
// precision; rounding happens here and only here.
const (
	weightPrecision    = 2
	distancePrecision  = 2
	footprintPrecision = 2
	costPrecision      = 2
	factorPrecision    = 4
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// formatFloat renders f with the given precision and thousand separators.
func formatFloat(f float64, precision int) string {
	multiplier := math.Pow(10, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier
	return printer.Sprintf("%.*f", precision, rounded)
}

// formatInt renders n with thousand separators.
func formatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// renderRecord writes a full calculation result.
func renderRecord(w io.Writer, rec engine.FootprintRecord) {
	fmt.Fprintf(w, "Carbon Footprint Calculation %s\n", rec.ID)
	fmt.Fprintf(w, "  Route:           %s -> %s\n", rec.Origin, rec.Destination)
	fmt.Fprintf(w, "  Transport:       %s%s\n", rec.Mode, cooledSuffix(rec.Cooled))
	if len(rec.FuelBlend) > 0 {
		fuels := make([]string, len(rec.FuelBlend))
		for i, f := range rec.FuelBlend {
			fuels[i] = string(f)
		}
		fmt.Fprintf(w, "  Fuel blend:      %s\n", strings.Join(fuels, ", "))
	}
	fmt.Fprintf(w, "  Total weight:    %s t\n", formatFloat(rec.TotalWeightT, weightPrecision))
	fmt.Fprintf(w, "  Distance:        %s km%s\n",
		formatFloat(rec.DistanceKm, distancePrecision), distanceNote(rec))
	fmt.Fprintf(w, "  Emission factor: %s kg CO2/tonne-km\n",
		formatFloat(rec.EmissionFactor, factorPrecision))
	fmt.Fprintf(w, "  Footprint:       %s kg CO2\n", formatFloat(rec.CarbonKg, footprintPrecision))
	fmt.Fprintf(w, "  Offset trees:    %s for one year\n", formatInt(rec.TreesNeeded))
	fmt.Fprintf(w, "  Transport cost:  %s %s\n",
		formatFloat(rec.TransportCost, costPrecision), rec.Currency)
	fmt.Fprintf(w, "  Offset cost:     %s %s\n",
		formatFloat(rec.CarbonOffsetCost, costPrecision), rec.Currency)
	fmt.Fprintf(w, "  Total cost:      %s %s\n",
		formatFloat(rec.TotalCost, costPrecision), rec.Currency)
	fmt.Fprintf(w, "  Calculated at:   %s\n", rec.CalculatedAt.Format(time.RFC3339))
}

// renderHistory writes records as a table, newest first unless re-sorted.
func renderHistory(w io.Writer, records []engine.FootprintRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No calculations yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tROUTE\tMODE\tWEIGHT (t)\tDISTANCE (km)\tCO2 (kg)\tCOST")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s -> %s\t%s\t%s\t%s\t%s\t%s %s\n",
			rec.ID,
			rec.CalculatedAt.Format("2006-01-02 15:04"),
			rec.Origin, rec.Destination,
			rec.Mode,
			formatFloat(rec.TotalWeightT, weightPrecision),
			formatFloat(rec.DistanceKm, distancePrecision),
			formatFloat(rec.CarbonKg, footprintPrecision),
			formatFloat(rec.TotalCost, costPrecision), rec.Currency,
		)
	}
	tw.Flush()
}

// renderStats writes the aggregate statistics block.
func renderStats(w io.Writer, stats engine.UserStats) {
	fmt.Fprintln(w, "Carbon Footprint Statistics")
	fmt.Fprintf(w, "  Calculations:    %s\n", formatInt(stats.CalculationCount))
	fmt.Fprintf(w, "  Total footprint: %s kg CO2\n",
		formatFloat(stats.TotalCarbonKg, footprintPrecision))
	fmt.Fprintf(w, "  Total distance:  %s km\n",
		formatFloat(stats.TotalDistanceKm, distancePrecision))
	fmt.Fprintf(w, "  Offset trees:    %s for one year\n", formatInt(stats.TreesNeeded))
}

// renderJSON writes v as indented JSON for machine consumption.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cooledSuffix(cooled bool) string {
	if cooled {
		return " (cooled)"
	}
	return ""
}

func distanceNote(rec engine.FootprintRecord) string {
	if rec.OriginCoords == nil || rec.DestCoords == nil {
		return " (default, coordinates unavailable)"
	}
	return " (great-circle)"
}
