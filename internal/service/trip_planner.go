// README: TripPlanner composes classification, drafting, revision, enrichment, and routing.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/modules/intent"
	"tripcopilot/internal/modules/itinerary"
	"tripcopilot/internal/modules/planner"
	"tripcopilot/internal/modules/route"
	"tripcopilot/internal/modules/transport"
	"tripcopilot/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	// ErrMissingEndpoints is reported by TransportInfo for unusable endpoints.
	ErrMissingEndpoints = errors.New("缺少起终点信息")
)

// MaxDays bounds generated itineraries.
const MaxDays = 30

type Deps struct {
	Classifier *intent.Classifier
	Planner    *planner.Planner
	Enricher   *itinerary.Enricher
	Builder    *route.Builder
	Estimator  *transport.Estimator
	Logger     *slog.Logger
}

// TripPlanner is the single entry point the HTTP layer uses for plan work.
type TripPlanner struct {
	classifier *intent.Classifier
	planner    *planner.Planner
	enricher   *itinerary.Enricher
	builder    *route.Builder
	estimator  *transport.Estimator
	logger     *slog.Logger
}

func NewTripPlanner(deps Deps) *TripPlanner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TripPlanner{
		classifier: deps.Classifier,
		planner:    deps.Planner,
		enricher:   deps.Enricher,
		builder:    deps.Builder,
		estimator:  deps.Estimator,
		logger:     logger,
	}
}

func (p *TripPlanner) Classify(ctx context.Context, query string, current *types.Plan) intent.Result {
	return p.classifier.Classify(ctx, query, current)
}

func (p *TripPlanner) StreamOutline(ctx context.Context, destination string, days int, onChunk func(string) error) error {
	destination, err := validateTrip(destination, days)
	if err != nil {
		return err
	}
	return p.planner.StreamOutline(ctx, destination, days, onChunk)
}

// GeneratePlan drafts a plan and enriches it with coordinates, routes, and
// transport advice.
func (p *TripPlanner) GeneratePlan(ctx context.Context, destination string, days int, outline string) (*types.Plan, error) {
	destination, err := validateTrip(destination, days)
	if err != nil {
		return nil, err
	}
	started := time.Now()
	plan, err := p.planner.Generate(ctx, destination, days, outline)
	if err != nil {
		return nil, err
	}
	if plan.Destination == "" {
		plan.Destination = destination
	}
	p.enricher.Enrich(ctx, plan)
	p.logger.Info("plan generated",
		slog.String("destination", destination),
		slog.Int("days", len(plan.Itinerary)),
		slog.Duration("elapsed", time.Since(started)))
	return plan, nil
}

// RevisePlan applies instruction to current and re-enriches the result.
func (p *TripPlanner) RevisePlan(ctx context.Context, current *types.Plan, instruction string) (*types.Plan, error) {
	instruction = strings.TrimSpace(instruction)
	if current == nil || instruction == "" {
		return nil, fmt.Errorf("%w: current_plan and modification_request are required", ErrBadRequest)
	}
	plan, err := p.planner.Revise(ctx, current, instruction)
	if err != nil {
		return nil, err
	}
	p.enricher.Enrich(ctx, plan)
	return plan, nil
}

func (p *TripPlanner) PlanRoute(ctx context.Context, start, end string, mode maps.Mode) (types.RouteSegment, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return types.RouteSegment{}, fmt.Errorf("%w: start and end are required", ErrBadRequest)
	}
	return p.builder.PlanRoute(ctx, start, end, mode)
}

// PlanItineraryRoutes routes consecutive usable places. Places without a
// name or valid coordinates are skipped.
func (p *TripPlanner) PlanItineraryRoutes(ctx context.Context, places []types.Place, mode maps.Mode) ([]types.RouteSegment, error) {
	points := route.UsableEndpoints(places)
	if skipped := len(places) - len(points); skipped > 0 {
		p.logger.Warn("places skipped for routing", slog.Int("skipped", skipped), slog.Int("usable", len(points)))
	}
	if len(points) < 2 {
		return nil, route.ErrTooFewPlaces
	}
	return p.builder.Build(ctx, points, mode), nil
}

func (p *TripPlanner) TransportInfo(ctx context.Context, start, end *types.Endpoint, mode maps.Mode) (transport.TravelInfo, error) {
	if start == nil || end == nil || !start.Coordinate().Valid() || !end.Coordinate().Valid() {
		return transport.TravelInfo{}, ErrMissingEndpoints
	}
	return p.estimator.Estimate(ctx, start.Coordinate(), end.Coordinate(), mode), nil
}

func validateTrip(destination string, days int) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", fmt.Errorf("%w: destination is required", ErrBadRequest)
	}
	if days < 1 || days > MaxDays {
		return "", fmt.Errorf("%w: duration must be between 1 and %d", ErrBadRequest, MaxDays)
	}
	return destination, nil
}
