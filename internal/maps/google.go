// README: Google Maps adapter for the Provider interface (places, geocoding, directions).
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

const googleProviderName = "google"

// AMap transit category codes mapped onto Google place types.
var googleAroundTypes = map[string]maps.PlaceType{
	"150500": maps.PlaceTypeSubwayStation,
	"150700": maps.PlaceTypeBusStation,
}

var googleModes = map[Mode]maps.Mode{
	ModeDriving:   maps.TravelModeDriving,
	ModeWalking:   maps.TravelModeWalking,
	ModeTransit:   maps.TravelModeTransit,
	ModeBicycling: maps.TravelModeBicycling,
}

// GoogleProvider handles interactions with the Google Maps APIs.
type GoogleProvider struct {
	client   *maps.Client
	limiter  *Limiter
	observer CallObserver
	language string
}

// NewGoogleProvider creates a GoogleProvider with the given API Key.
// Extra client options (e.g. maps.WithBaseURL) are passed through.
func NewGoogleProvider(apiKey string, limiter *Limiter, observer CallObserver, opts ...maps.ClientOption) (*GoogleProvider, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleProvider{client: client, limiter: limiter, observer: observer, language: "zh-CN"}, nil
}

func (g *GoogleProvider) Name() string { return googleProviderName }

func (g *GoogleProvider) call(ctx context.Context, endpoint string, fn func() error) error {
	err := g.limiter.Do(ctx, fn)
	observe(g.observer, googleProviderName, endpoint, err)
	return err
}

func (g *GoogleProvider) SearchPOI(ctx context.Context, keyword, city string) ([]POI, error) {
	query := keyword
	if city != "" && !strings.Contains(keyword, city) {
		query = city + " " + keyword
	}
	var resp maps.PlacesSearchResponse
	err := g.call(ctx, "textsearch", func() error {
		var err error
		resp, err = g.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query, Language: g.language})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	pois := placesToPOIs(resp.Results)
	if len(pois) == 0 {
		return nil, ErrNotFound
	}
	return pois, nil
}

func (g *GoogleProvider) Geocode(ctx context.Context, address, city string) (*GeocodeResult, error) {
	if city != "" && !strings.Contains(address, city) {
		address = city + address
	}
	var results []maps.GeocodingResult
	err := g.call(ctx, "geocode", func() error {
		var err error
		results, err = g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address, Language: g.language})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	loc := results[0].Geometry.Location
	return &GeocodeResult{
		Location:         Coordinate{Lng: loc.Lng, Lat: loc.Lat},
		FormattedAddress: results[0].FormattedAddress,
	}, nil
}

func (g *GoogleProvider) ReverseGeocode(ctx context.Context, c Coordinate) (Region, error) {
	var results []maps.GeocodingResult
	err := g.call(ctx, "reverse_geocode", func() error {
		var err error
		results, err = g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
			LatLng:   &maps.LatLng{Lat: c.Lat, Lng: c.Lng},
			Language: g.language,
		})
		return err
	})
	if err != nil {
		return Region{}, fmt.Errorf("reverse geocoding api error: %w", err)
	}
	var region Region
	for _, r := range results {
		for _, comp := range r.AddressComponents {
			for _, t := range comp.Types {
				switch t {
				case "locality":
					if region.City == "" {
						region.City = comp.LongName
					}
				case "administrative_area_level_1":
					if region.Province == "" {
						region.Province = comp.LongName
					}
				}
			}
		}
	}
	return region, nil
}

func (g *GoogleProvider) SearchAround(ctx context.Context, q AroundQuery) ([]POI, error) {
	var types []maps.PlaceType
	for _, code := range strings.Split(q.Types, "|") {
		if t, ok := googleAroundTypes[code]; ok {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []maps.PlaceType{maps.PlaceTypeTransitStation}
	}

	var out []POI
	for _, t := range types {
		var resp maps.PlacesSearchResponse
		err := g.call(ctx, "nearbysearch", func() error {
			var err error
			resp, err = g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
				Location: &maps.LatLng{Lat: q.Center.Lat, Lng: q.Center.Lng},
				Radius:   uint(q.RadiusM),
				Type:     t,
				Language: g.language,
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search api error: %w", err)
		}
		out = append(out, placesToPOIs(resp.Results)...)
		if q.Limit > 0 && len(out) >= q.Limit {
			return out[:q.Limit], nil
		}
	}
	return out, nil
}

func (g *GoogleProvider) Route(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	mode, ok := googleModes[req.Mode]
	if !ok {
		return nil, fmt.Errorf("unsupported travel mode %q", req.Mode)
	}
	var routes []maps.Route
	err := g.call(ctx, "directions", func() error {
		var err error
		routes, _, err = g.client.Directions(ctx, &maps.DirectionsRequest{
			Origin:      latLng(req.Origin),
			Destination: latLng(req.Destination),
			Mode:        mode,
			Language:    g.language,
		})
		return err
	})
	if err != nil {
		// ZERO_RESULTS and similar are provider answers, not transport failures.
		if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
			return &RouteResult{Mode: req.Mode}, nil
		}
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	res := &RouteResult{Mode: req.Mode, Success: len(routes) > 0}
	if !res.Success {
		return res, nil
	}
	payload, err := json.Marshal(routes)
	if err != nil {
		return nil, fmt.Errorf("encode google routes: %w", err)
	}
	res.Route = payload
	res.Raw = payload
	res.HasDuration = len(routes[0].Legs) > 0
	for _, leg := range routes[0].Legs {
		res.DurationSeconds += int(leg.Duration.Seconds())
		for _, step := range leg.Steps {
			if step.TransitDetails == nil {
				continue
			}
			name := step.TransitDetails.Line.ShortName
			if name == "" {
				name = step.TransitDetails.Line.Name
			}
			if name == "" {
				name = ModeTransit.Label()
			}
			res.Lines = append(res.Lines, name)
		}
	}
	return res, nil
}

// Weather is not offered by Google Maps.
func (g *GoogleProvider) Weather(ctx context.Context, adcode string) ([]Forecast, error) {
	return nil, ErrUnsupported
}

func placesToPOIs(results []maps.PlacesSearchResult) []POI {
	out := make([]POI, 0, len(results))
	for _, r := range results {
		c := Coordinate{Lng: r.Geometry.Location.Lng, Lat: r.Geometry.Location.Lat}
		if !c.Valid() {
			continue
		}
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		out = append(out, POI{
			Name:     r.Name,
			Address:  address,
			Type:     strings.Join(r.Types, ";"),
			Location: c,
		})
	}
	return out
}

func latLng(c Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}
