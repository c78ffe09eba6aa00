// README: Provider-neutral map types shared by the AMap and Google adapters.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a lookup succeeds but yields no result.
	ErrNotFound = errors.New("not found")
	// ErrUnsupported is returned by providers lacking an endpoint.
	ErrUnsupported = errors.New("operation not supported by map provider")
	// ErrRateLimited marks provider rejections that may succeed on retry.
	ErrRateLimited = errors.New("map provider rate limited")
)

// NationwideCity is used when no city can be determined for a coordinate.
const NationwideCity = "全国"

// Coordinate is a WGS84/GCJ02 longitude-latitude pair as returned by the provider.
type Coordinate struct {
	Lng float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// Valid reports whether both components are within geographic bounds.
func (c Coordinate) Valid() bool {
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// String renders the provider wire format "lng,lat".
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// ParseCoordinate parses the "lng,lat" wire format.
func ParseCoordinate(s string) (Coordinate, error) {
	lngStr, latStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid location %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", lngStr, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", latStr, err)
	}
	c := Coordinate{Lng: lng, Lat: lat}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("location %q out of range", s)
	}
	return c, nil
}

// Mode is a travel mode understood by every provider.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeTransit   Mode = "transit"
	ModeBicycling Mode = "bicycling"
)

var modeLabels = map[Mode]string{
	ModeDriving:   "驾车",
	ModeWalking:   "步行",
	ModeTransit:   "公交",
	ModeBicycling: "骑行",
}

// ParseMode validates s; the empty string selects driving.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeDriving, nil
	}
	if _, ok := modeLabels[m]; !ok {
		return "", fmt.Errorf("unsupported travel mode %q", s)
	}
	return m, nil
}

// Label is the localized display text of the mode.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

// POI is a point of interest returned by text or radius search.
type POI struct {
	Name     string
	Address  string
	Type     string
	Location Coordinate
}

// GeocodeResult is the first candidate for an address lookup.
type GeocodeResult struct {
	Location         Coordinate
	Adcode           string
	FormattedAddress string
}

// Region is the administrative area containing a coordinate.
type Region struct {
	City     string
	Province string
}

// Name returns the city, the province when the city is empty, else NationwideCity.
func (r Region) Name() string {
	if r.City != "" {
		return r.City
	}
	if r.Province != "" {
		return r.Province
	}
	return NationwideCity
}

// AroundQuery describes a radius search.
type AroundQuery struct {
	Center  Coordinate
	RadiusM int
	// Types uses AMap category codes joined by "|".
	Types string
	Limit int
}

// RouteRequest asks for a single origin-destination route. Cities are only
// consulted for transit.
type RouteRequest struct {
	Origin      Coordinate
	Destination Coordinate
	Mode        Mode
	OriginCity  string
	DestCity    string
}

// RouteResult is the outcome of one route call.
type RouteResult struct {
	Mode    Mode
	Success bool
	// Route is the provider route payload, opaque to callers.
	Route json.RawMessage
	// Raw is the complete provider response.
	Raw json.RawMessage
	// HasDuration is false when the provider answered without a usable duration.
	HasDuration     bool
	DurationSeconds int
	// Lines holds transit line names in travel order.
	Lines []string
}

// Forecast is one day of weather forecast.
type Forecast struct {
	Date         string
	DayWeather   string
	NightWeather string
	DayTemp      int
	NightTemp    int
	DayWind      string
	NightWind    string
	DayPower     string
	NightPower   string
}

// Provider is the mapping/geocoding backend used by the enrichment pipeline.
type Provider interface {
	Name() string
	SearchPOI(ctx context.Context, keyword, city string) ([]POI, error)
	Geocode(ctx context.Context, address, city string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, c Coordinate) (Region, error)
	SearchAround(ctx context.Context, q AroundQuery) ([]POI, error)
	Route(ctx context.Context, req RouteRequest) (*RouteResult, error)
	Weather(ctx context.Context, adcode string) ([]Forecast, error)
}

// CallObserver records the outcome of provider calls.
type CallObserver interface {
	ObserveProviderCall(provider, endpoint, outcome string)
}

func observe(o CallObserver, provider, endpoint string, err error) {
	if o == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.Is(err, ErrRateLimited):
		outcome = "rate_limited"
	case err != nil:
		outcome = "error"
	}
	o.ObserveProviderCall(provider, endpoint, outcome)
}
