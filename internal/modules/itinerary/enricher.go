// README: Geo-enrichment of an itinerary skeleton: coordinates, routes, transport advice.
package itinerary

import (
	"context"
	"log/slog"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/modules/geocode"
	"tripcopilot/internal/modules/route"
	"tripcopilot/internal/modules/transport"
	"tripcopilot/internal/types"
)

// PlanRouteMode is the mode used for the day routes of a generated plan.
const PlanRouteMode = maps.ModeDriving

// Enricher annotates every day of a plan, one place and segment at a time.
type Enricher struct {
	resolver  *geocode.Resolver
	builder   *route.Builder
	advisor   *transport.Advisor
	estimator *transport.Estimator
	logger    *slog.Logger
}

func NewEnricher(resolver *geocode.Resolver, builder *route.Builder, advisor *transport.Advisor, estimator *transport.Estimator, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{
		resolver:  resolver,
		builder:   builder,
		advisor:   advisor,
		estimator: estimator,
		logger:    logger,
	}
}

// Enrich mutates plan in place. Places are never dropped; unresolved ones
// keep null coordinates and are left out of routing.
func (e *Enricher) Enrich(ctx context.Context, plan *types.Plan) {
	city := geocode.CityHint(plan.Destination)
	for i := range plan.Itinerary {
		day := &plan.Itinerary[i]
		e.resolveDay(ctx, day, city)

		valid := validIndexes(day.Places)
		points := make([]types.Endpoint, 0, len(valid))
		for _, idx := range valid {
			ep, _ := types.EndpointOf(day.Places[idx])
			points = append(points, ep)
		}
		day.Routes = e.builder.Build(ctx, points, PlanRouteMode)

		e.annotateTransport(ctx, day, valid)
		e.logger.Info("day enriched",
			slog.Int("day", day.Day),
			slog.Int("places", len(day.Places)),
			slog.Int("resolved", len(valid)),
			slog.Int("routes", len(day.Routes)))
	}
}

func (e *Enricher) resolveDay(ctx context.Context, day *types.DayPlan, city string) {
	for j := range day.Places {
		place := &day.Places[j]
		c, err := e.resolver.Resolve(ctx, place.Name, city)
		if err != nil {
			e.logger.Warn("place unresolved", slog.Int("day", day.Day), slog.String("name", place.Name), slog.Any("error", err))
			place.ClearCoordinate()
			continue
		}
		if !c.Valid() {
			e.logger.Warn("place coordinate out of range", slog.String("name", place.Name), slog.String("location", c.String()))
			place.ClearCoordinate()
			continue
		}
		place.SetCoordinate(c)
	}
}

// annotateTransport attaches advice for each consecutive valid pair to the
// start place of the pair.
func (e *Enricher) annotateTransport(ctx context.Context, day *types.DayPlan, valid []int) {
	for j := range day.Places {
		p := &day.Places[j]
		p.Transportation, p.AvailableTransportations, p.TransitionTime, p.RouteSteps = "", nil, "", ""
	}
	for k := 0; k+1 < len(valid); k++ {
		from := &day.Places[valid[k]]
		to := day.Places[valid[k+1]]
		a, _ := from.Coordinate()
		b, _ := to.Coordinate()

		rec := e.advisor.Recommend(ctx, a, b, transport.DistanceKm(a, b))
		info := e.estimator.Estimate(ctx, a, b, rec.Default)

		from.Transportation = string(rec.Default)
		from.AvailableTransportations = rec.AvailableStrings()
		from.TransitionTime = info.Time
		from.RouteSteps = info.Steps
	}
}

func validIndexes(places []types.Place) []int {
	var idx []int
	for i, p := range places {
		if _, ok := p.Coordinate(); ok {
			idx = append(idx, i)
		}
	}
	return idx
}
