package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tripcopilot/internal/maps"
)

// UnknownTravelTime is reported when no duration could be obtained.
const UnknownTravelTime = "交通时间未知"

// TravelInfo is the human-readable time and legs for one hop.
type TravelInfo struct {
	Time  string `json:"time"`
	Steps string `json:"steps"`
}

// Estimator asks the provider for a route and reduces it to TravelInfo.
type Estimator struct {
	provider maps.Provider
	logger   *slog.Logger
}

func NewEstimator(provider maps.Provider, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{provider: provider, logger: logger}
}

// Estimate never fails: provider errors yield UnknownTravelTime.
func (e *Estimator) Estimate(ctx context.Context, start, end maps.Coordinate, mode maps.Mode) TravelInfo {
	info := TravelInfo{Time: UnknownTravelTime, Steps: mode.Label()}

	req := maps.RouteRequest{Origin: start, Destination: end, Mode: mode}
	if mode == maps.ModeTransit {
		city := maps.TransitCity(ctx, e.provider, start, end)
		req.OriginCity, req.DestCity = city, city
	}
	res, err := e.provider.Route(ctx, req)
	if err != nil {
		e.logger.Warn("travel time lookup failed", slog.String("mode", string(mode)), slog.Any("error", err))
		return info
	}
	if res.Success && res.HasDuration {
		info.Time = FormatDuration(res.DurationSeconds)
	}
	if mode == maps.ModeTransit && len(res.Lines) > 0 {
		info.Steps = strings.Join(res.Lines, "->")
	}
	return info
}

// FormatDuration renders seconds as "N分钟", "H小时" or "H小时M分钟".
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d分钟", minutes)
	}
	hours, rest := minutes/60, minutes%60
	if rest == 0 {
		return fmt.Sprintf("%d小时", hours)
	}
	return fmt.Sprintf("%d小时%d分钟", hours, rest)
}
