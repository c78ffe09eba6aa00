// Package mapstest provides an in-memory maps.Provider for tests.
package mapstest

import (
	"context"
	"sync"

	"tripcopilot/internal/maps"
)

// Provider answers from fixed tables and counts calls per operation.
// Missing entries behave like empty provider answers.
type Provider struct {
	POIs      map[string][]maps.POI
	Geocodes  map[string]maps.GeocodeResult
	Regions   map[string]maps.Region
	Stations  map[string][]maps.POI
	Forecasts map[string][]maps.Forecast
	RouteFunc func(req maps.RouteRequest) (*maps.RouteResult, error)
	// Err, when set, is returned by every call.
	Err error

	mu     sync.Mutex
	calls  map[string]int
	routes []maps.RouteRequest
}

func (p *Provider) Name() string { return "fake" }

func (p *Provider) record(op string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[op]++
}

// Calls returns how often op was invoked.
func (p *Provider) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

// RouteRequests returns the route requests received so far.
func (p *Provider) RouteRequests() []maps.RouteRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]maps.RouteRequest(nil), p.routes...)
}

func (p *Provider) SearchPOI(ctx context.Context, keyword, city string) ([]maps.POI, error) {
	p.record("SearchPOI")
	if p.Err != nil {
		return nil, p.Err
	}
	pois, ok := p.POIs[keyword]
	if !ok || len(pois) == 0 {
		return nil, maps.ErrNotFound
	}
	return pois, nil
}

func (p *Provider) Geocode(ctx context.Context, address, city string) (*maps.GeocodeResult, error) {
	p.record("Geocode")
	if p.Err != nil {
		return nil, p.Err
	}
	g, ok := p.Geocodes[address]
	if !ok {
		return nil, maps.ErrNotFound
	}
	return &g, nil
}

func (p *Provider) ReverseGeocode(ctx context.Context, c maps.Coordinate) (maps.Region, error) {
	p.record("ReverseGeocode")
	if p.Err != nil {
		return maps.Region{}, p.Err
	}
	return p.Regions[c.String()], nil
}

func (p *Provider) SearchAround(ctx context.Context, q maps.AroundQuery) ([]maps.POI, error) {
	p.record("SearchAround")
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Stations[q.Center.String()], nil
}

func (p *Provider) Route(ctx context.Context, req maps.RouteRequest) (*maps.RouteResult, error) {
	p.record("Route")
	p.mu.Lock()
	p.routes = append(p.routes, req)
	p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	if p.RouteFunc == nil {
		return &maps.RouteResult{Mode: req.Mode}, nil
	}
	return p.RouteFunc(req)
}

func (p *Provider) Weather(ctx context.Context, adcode string) ([]maps.Forecast, error) {
	p.record("Weather")
	if p.Err != nil {
		return nil, p.Err
	}
	fc, ok := p.Forecasts[adcode]
	if !ok {
		return nil, maps.ErrNotFound
	}
	return fc, nil
}

// OKRoute returns a RouteFunc that succeeds for every request with the given duration.
func OKRoute(seconds int, lines ...string) func(maps.RouteRequest) (*maps.RouteResult, error) {
	return func(req maps.RouteRequest) (*maps.RouteResult, error) {
		return &maps.RouteResult{
			Mode:            req.Mode,
			Success:         true,
			Route:           []byte(`{"paths":[]}`),
			Raw:             []byte(`{"status":"1"}`),
			HasDuration:     true,
			DurationSeconds: seconds,
			Lines:           lines,
		}, nil
	}
}
