package transport

import (
	"context"

	"tripcopilot/internal/maps"
)

// Recommendation is the advised mode for one hop plus every feasible mode.
type Recommendation struct {
	Default   maps.Mode
	Available []maps.Mode
}

// AvailableStrings renders the feasible modes for JSON output.
func (r Recommendation) AvailableStrings() []string {
	out := make([]string, len(r.Available))
	for i, m := range r.Available {
		out[i] = string(m)
	}
	return out
}

// Advisor picks travel modes from straight-line distance and station coverage.
type Advisor struct {
	probe *StationProbe
}

func NewAdvisor(probe *StationProbe) *Advisor {
	return &Advisor{probe: probe}
}

// Recommend applies the distance policy. distanceKm is the great-circle
// distance between start and end.
func (a *Advisor) Recommend(ctx context.Context, start, end maps.Coordinate, distanceKm float64) Recommendation {
	stationed := a.probe.HasNearbyStation(ctx, start) && a.probe.HasNearbyStation(ctx, end)
	return recommend(stationed, distanceKm)
}

func recommend(stationed bool, distanceKm float64) Recommendation {
	var rec Recommendation
	switch {
	case stationed && distanceKm > 1:
		rec.Default = maps.ModeTransit
	case distanceKm < 1:
		rec.Default = maps.ModeWalking
	case distanceKm < 5:
		rec.Default = maps.ModeBicycling
	default:
		rec.Default = maps.ModeDriving
	}

	rec.Available = []maps.Mode{maps.ModeDriving}
	if stationed {
		rec.Available = append(rec.Available, maps.ModeTransit)
	}
	if distanceKm < 5 {
		rec.Available = append(rec.Available, maps.ModeWalking)
	}
	if distanceKm < 10 {
		rec.Available = append(rec.Available, maps.ModeBicycling)
	}
	return rec
}
