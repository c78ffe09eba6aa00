// README: Builds per-hop route segments between consecutive resolved places.
package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/modules/geocode"
	"tripcopilot/internal/types"
)

var (
	ErrTooFewPlaces = errors.New("至少需要2个地点才能进行路径规划")
	ErrRouteFailed  = errors.New("获取路径规划失败，请检查起点和终点是否正确")
)

// PlaceNotFoundError reports an endpoint name that could not be resolved.
type PlaceNotFoundError struct {
	Role string
	Name string
}

func (e *PlaceNotFoundError) Error() string {
	return fmt.Sprintf("无法获取%s'%s'的坐标信息", e.Role, e.Name)
}

// Builder requests one route per consecutive pair of endpoints.
type Builder struct {
	provider maps.Provider
	resolver *geocode.Resolver
	logger   *slog.Logger
}

func NewBuilder(provider maps.Provider, resolver *geocode.Resolver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{provider: provider, resolver: resolver, logger: logger}
}

// Build returns len(points)-1 segments in input order, or none for fewer
// than two points. Failed hops are kept with a straight-line fallback.
func (b *Builder) Build(ctx context.Context, points []types.Endpoint, mode maps.Mode) []types.RouteSegment {
	if len(points) < 2 {
		return nil
	}
	segments := make([]types.RouteSegment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		seg := b.segment(ctx, i+1, points[i], points[i+1], mode)
		seg.RawData = nil
		segments = append(segments, seg)
	}
	return segments
}

func (b *Builder) segment(ctx context.Context, seq int, start, end types.Endpoint, mode maps.Mode) types.RouteSegment {
	seg := types.RouteSegment{
		Sequence:   seq,
		StartPoint: start,
		EndPoint:   end,
		Mode:       mode,
	}
	req := maps.RouteRequest{Origin: start.Coordinate(), Destination: end.Coordinate(), Mode: mode}
	if mode == maps.ModeTransit {
		city := maps.TransitCity(ctx, b.provider, req.Origin, req.Destination)
		req.OriginCity, req.DestCity = city, city
	}

	res, err := b.provider.Route(ctx, req)
	if err != nil || !res.Success {
		if err != nil {
			b.logger.Warn("route segment failed",
				slog.Int("sequence", seq), slog.String("from", start.Name), slog.String("to", end.Name), slog.Any("error", err))
		} else {
			b.logger.Info("route segment unavailable",
				slog.Int("sequence", seq), slog.String("from", start.Name), slog.String("to", end.Name), slog.String("mode", string(mode)))
		}
		seg.Fallback = types.FallbackSimpleLine
		return seg
	}
	seg.Success = true
	seg.RouteInfo = res.Route
	seg.RawData = res.Raw
	return seg
}

// PlanRoute resolves both names without a city hint and routes between them.
func (b *Builder) PlanRoute(ctx context.Context, startName, endName string, mode maps.Mode) (types.RouteSegment, error) {
	start, err := b.resolveEndpoint(ctx, "起点", startName)
	if err != nil {
		return types.RouteSegment{}, err
	}
	end, err := b.resolveEndpoint(ctx, "终点", endName)
	if err != nil {
		return types.RouteSegment{}, err
	}
	seg := b.segment(ctx, 1, start, end, mode)
	if !seg.Success {
		return types.RouteSegment{}, ErrRouteFailed
	}
	return seg, nil
}

func (b *Builder) resolveEndpoint(ctx context.Context, role, name string) (types.Endpoint, error) {
	c, err := b.resolver.Resolve(ctx, name, "")
	if err != nil || !c.Valid() {
		return types.Endpoint{}, &PlaceNotFoundError{Role: role, Name: name}
	}
	return types.Endpoint{Name: name, Longitude: c.Lng, Latitude: c.Lat}, nil
}

// UsableEndpoints keeps places that have a name and valid coordinates, in order.
func UsableEndpoints(places []types.Place) []types.Endpoint {
	var out []types.Endpoint
	for _, p := range places {
		if p.Name == "" {
			continue
		}
		if e, ok := types.EndpointOf(p); ok {
			out = append(out, e)
		}
	}
	return out
}
