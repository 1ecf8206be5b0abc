// Package geocode resolves free-text place queries to coordinates.
//
// The engine never geocodes: it receives already-resolved coordinates or
// none. This package serves the invocation boundary, which may consult a
// Geocoder before building a shipment request. A failed lookup is not an
// error for the calculation; the caller falls back to the default
// distance and carries on.
package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/rshade/freightprint/internal/geo"
)

// ErrNoMatch indicates the query matched no known location.
var ErrNoMatch = errors.New("no location matches query")

// Location is a resolved place: a display name plus its coordinate.
type Location struct {
	Name       string
	Coordinate geo.Coordinate
}

// Geocoder resolves a free-text query to a Location.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (Location, error)
}

// Gazetteer is an embedded offline geocoder covering major freight hubs.
// Matching is case-insensitive; the city name may be given alone or with
// a country suffix ("rotterdam", "Rotterdam, NL").
type Gazetteer struct {
	locations map[string]Location
}

// NewGazetteer returns the built-in gazetteer.
func NewGazetteer() *Gazetteer {
	g := &Gazetteer{locations: make(map[string]Location, len(builtinLocations))}
	for _, loc := range builtinLocations {
		key := normalizeQuery(loc.Name)
		g.locations[key] = loc
		// Also index by bare city name ("rotterdam" for "Rotterdam, NL").
		if city, _, ok := strings.Cut(key, ","); ok {
			g.locations[strings.TrimSpace(city)] = loc
		}
	}
	return g
}

// Lookup resolves query against the built-in location table.
func (g *Gazetteer) Lookup(ctx context.Context, query string) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}

	if loc, ok := g.locations[normalizeQuery(query)]; ok {
		return loc, nil
	}
	return Location{}, ErrNoMatch
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// builtinLocations covers the ports and cities that show up in shipment
// routes often enough to matter for offline use.
var builtinLocations = []Location{
	{Name: "Rotterdam, NL", Coordinate: geo.Coordinate{Latitude: 51.9244, Longitude: 4.4777}},
	{Name: "Hamburg, DE", Coordinate: geo.Coordinate{Latitude: 53.5511, Longitude: 9.9937}},
	{Name: "Antwerp, BE", Coordinate: geo.Coordinate{Latitude: 51.2194, Longitude: 4.4025}},
	{Name: "Singapore, SG", Coordinate: geo.Coordinate{Latitude: 1.3521, Longitude: 103.8198}},
	{Name: "Shanghai, CN", Coordinate: geo.Coordinate{Latitude: 31.2304, Longitude: 121.4737}},
	{Name: "Shenzhen, CN", Coordinate: geo.Coordinate{Latitude: 22.5431, Longitude: 114.0579}},
	{Name: "Hong Kong, HK", Coordinate: geo.Coordinate{Latitude: 22.3193, Longitude: 114.1694}},
	{Name: "Busan, KR", Coordinate: geo.Coordinate{Latitude: 35.1796, Longitude: 129.0756}},
	{Name: "Tokyo, JP", Coordinate: geo.Coordinate{Latitude: 35.6762, Longitude: 139.6503}},
	{Name: "Dubai, AE", Coordinate: geo.Coordinate{Latitude: 25.2048, Longitude: 55.2708}},
	{Name: "Mumbai, IN", Coordinate: geo.Coordinate{Latitude: 19.0760, Longitude: 72.8777}},
	{Name: "New York, US", Coordinate: geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}},
	{Name: "Los Angeles, US", Coordinate: geo.Coordinate{Latitude: 34.0522, Longitude: -118.2437}},
	{Name: "San Francisco, US", Coordinate: geo.Coordinate{Latitude: 37.7749, Longitude: -122.4194}},
	{Name: "Chicago, US", Coordinate: geo.Coordinate{Latitude: 41.8781, Longitude: -87.6298}},
	{Name: "Houston, US", Coordinate: geo.Coordinate{Latitude: 29.7604, Longitude: -95.3698}},
	{Name: "Vancouver, CA", Coordinate: geo.Coordinate{Latitude: 49.2827, Longitude: -123.1207}},
	{Name: "Santos, BR", Coordinate: geo.Coordinate{Latitude: -23.9608, Longitude: -46.3336}},
	{Name: "Buenos Aires, AR", Coordinate: geo.Coordinate{Latitude: -34.6037, Longitude: -58.3816}},
	{Name: "Cape Town, ZA", Coordinate: geo.Coordinate{Latitude: -33.9249, Longitude: 18.4241}},
	{Name: "Lagos, NG", Coordinate: geo.Coordinate{Latitude: 6.5244, Longitude: 3.3792}},
	{Name: "Sydney, AU", Coordinate: geo.Coordinate{Latitude: -33.8688, Longitude: 151.2093}},
	{Name: "Melbourne, AU", Coordinate: geo.Coordinate{Latitude: -37.8136, Longitude: 144.9631}},
	{Name: "London, GB", Coordinate: geo.Coordinate{Latitude: 51.5074, Longitude: -0.1278}},
	{Name: "Felixstowe, GB", Coordinate: geo.Coordinate{Latitude: 51.9617, Longitude: 1.3513}},
	{Name: "Warsaw, PL", Coordinate: geo.Coordinate{Latitude: 52.2297, Longitude: 21.0122}},
	{Name: "Istanbul, TR", Coordinate: geo.Coordinate{Latitude: 41.0082, Longitude: 28.9784}},
}
