// README: Transit station lookup and distance-based travel mode recommendation.
package transport

import (
	"context"
	"log/slog"

	"tripcopilot/internal/maps"
)

const (
	// StationRadiusM is the walking radius considered "near a station".
	StationRadiusM = 500
	// Bus stop and subway station categories.
	stationPOITypes = "150500|150700"
)

// StationProbe reports whether a coordinate has a transit stop nearby.
type StationProbe struct {
	provider maps.Provider
	logger   *slog.Logger
}

func NewStationProbe(provider maps.Provider, logger *slog.Logger) *StationProbe {
	if logger == nil {
		logger = slog.Default()
	}
	return &StationProbe{provider: provider, logger: logger}
}

// HasNearbyStation is fail-closed: provider errors report false.
func (p *StationProbe) HasNearbyStation(ctx context.Context, c maps.Coordinate) bool {
	pois, err := p.provider.SearchAround(ctx, maps.AroundQuery{
		Center:  c,
		RadiusM: StationRadiusM,
		Types:   stationPOITypes,
		Limit:   1,
	})
	if err != nil {
		p.logger.Warn("station probe failed", slog.String("location", c.String()), slog.Any("error", err))
		return false
	}
	return len(pois) > 0
}
