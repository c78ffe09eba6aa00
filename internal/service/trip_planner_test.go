package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcopilot/internal/ai/aitest"
	"tripcopilot/internal/maps"
	"tripcopilot/internal/maps/mapstest"
	"tripcopilot/internal/modules/geocode"
	"tripcopilot/internal/modules/intent"
	"tripcopilot/internal/modules/itinerary"
	"tripcopilot/internal/modules/planner"
	"tripcopilot/internal/modules/route"
	"tripcopilot/internal/modules/transport"
	"tripcopilot/internal/types"
)

var (
	forbiddenCity = maps.Coordinate{Lng: 116.397, Lat: 39.918}
	tiananmen     = maps.Coordinate{Lng: 116.397, Lat: 39.903}
)

func newTestPlanner(model *aitest.Model, fake *mapstest.Provider) *TripPlanner {
	resolver := geocode.NewResolver(fake, 0, nil)
	builder := route.NewBuilder(fake, resolver, nil)
	estimator := transport.NewEstimator(fake, nil)
	return NewTripPlanner(Deps{
		Classifier: intent.NewClassifier(model, nil, nil, nil),
		Planner:    planner.New(model, nil),
		Enricher:   itinerary.NewEnricher(resolver, builder, transport.NewAdvisor(transport.NewStationProbe(fake, nil)), estimator, nil),
		Builder:    builder,
		Estimator:  estimator,
	})
}

func beijingProvider() *mapstest.Provider {
	return &mapstest.Provider{
		POIs: map[string][]maps.POI{
			"北京市故宫":  {{Name: "故宫博物院", Location: forbiddenCity}},
			"北京市天安门": {{Name: "天安门", Location: tiananmen}},
		},
		RouteFunc: mapstest.OKRoute(600),
	}
}

func TestGeneratePlanEnriches(t *testing.T) {
	model := &aitest.Model{Reply: `{"destination": "北京市", "total_days": 1, "itinerary": [{"day": 1, "theme": "皇城", "places": [
		{"name": "北京市故宫", "description": "", "duration": 3},
		{"name": "北京市天安门", "description": "", "duration": 1}
	]}]}`}
	fake := beijingProvider()

	plan, err := newTestPlanner(model, fake).GeneratePlan(context.Background(), "北京市", 1, "")
	require.NoError(t, err)
	require.Len(t, plan.Itinerary, 1)
	day := plan.Itinerary[0]
	require.Len(t, day.Routes, 1)
	assert.True(t, day.Routes[0].Success)
	// ~1.7km without stations.
	assert.Equal(t, "bicycling", day.Places[0].Transportation)
	assert.Equal(t, "10分钟", day.Places[0].TransitionTime)
	assert.Empty(t, day.Places[1].Transportation)
}

func TestGeneratePlanValidation(t *testing.T) {
	p := newTestPlanner(&aitest.Model{}, &mapstest.Provider{})
	for _, days := range []int{0, MaxDays + 1} {
		_, err := p.GeneratePlan(context.Background(), "北京", days, "")
		assert.ErrorIs(t, err, ErrBadRequest)
	}
	_, err := p.GeneratePlan(context.Background(), " ", 2, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGeneratePlanSurfacesParseFailure(t *testing.T) {
	p := newTestPlanner(&aitest.Model{Reply: "无法生成"}, &mapstest.Provider{})
	_, err := p.GeneratePlan(context.Background(), "北京", 2, "")
	assert.True(t, errors.Is(err, planner.ErrNoPlanJSON))
}

func TestRevisePlan(t *testing.T) {
	model := &aitest.Model{Reply: `{"destination": "北京市", "total_days": 1, "itinerary": [{"day": 1, "theme": "皇城", "places": [
		{"name": "北京市天安门", "description": "", "duration": 1},
		{"name": "北京市故宫", "description": "", "duration": 3}
	]}]}`}
	p := newTestPlanner(model, beijingProvider())
	current := &types.Plan{Destination: "北京市", TotalDays: 1, Itinerary: []types.DayPlan{{Day: 1, Places: []types.Place{{Name: "北京市故宫"}}}}}

	revised, err := p.RevisePlan(context.Background(), current, "先去天安门")
	require.NoError(t, err)
	assert.Equal(t, "北京市天安门", revised.Itinerary[0].Places[0].Name)
	require.Len(t, revised.Itinerary[0].Routes, 1)
	assert.Equal(t, "北京市天安门", revised.Itinerary[0].Routes[0].StartPoint.Name)

	_, err = p.RevisePlan(context.Background(), current, "  ")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestPlanItineraryRoutes(t *testing.T) {
	p := newTestPlanner(&aitest.Model{}, beijingProvider())
	lng1, lat1 := forbiddenCity.Lng, forbiddenCity.Lat
	lng2, lat2 := tiananmen.Lng, tiananmen.Lat
	bad := 300.0

	segs, err := p.PlanItineraryRoutes(context.Background(), []types.Place{
		{Name: "故宫", Longitude: &lng1, Latitude: &lat1},
		{Name: "坏点", Longitude: &bad, Latitude: &lat1},
		{Name: "", Longitude: &lng2, Latitude: &lat2},
		{Name: "天安门", Longitude: &lng2, Latitude: &lat2},
	}, maps.ModeWalking)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "故宫", segs[0].StartPoint.Name)
	assert.Equal(t, "天安门", segs[0].EndPoint.Name)
	assert.Equal(t, maps.ModeWalking, segs[0].Mode)
	assert.Nil(t, segs[0].RawData)

	_, err = p.PlanItineraryRoutes(context.Background(), []types.Place{{Name: "故宫", Longitude: &lng1, Latitude: &lat1}}, maps.ModeDriving)
	assert.ErrorIs(t, err, route.ErrTooFewPlaces)
}

func TestPlanRoute(t *testing.T) {
	p := newTestPlanner(&aitest.Model{}, beijingProvider())
	seg, err := p.PlanRoute(context.Background(), "北京市故宫", "北京市天安门", maps.ModeDriving)
	require.NoError(t, err)
	assert.True(t, seg.Success)
	assert.NotEmpty(t, seg.RawData)

	_, err = p.PlanRoute(context.Background(), "北京市故宫", "火星", maps.ModeDriving)
	var nf *route.PlaceNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "终点", nf.Role)

	_, err = p.PlanRoute(context.Background(), "", "火星", maps.ModeDriving)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestTransportInfo(t *testing.T) {
	p := newTestPlanner(&aitest.Model{}, beijingProvider())
	start := &types.Endpoint{Name: "故宫", Longitude: forbiddenCity.Lng, Latitude: forbiddenCity.Lat}
	end := &types.Endpoint{Name: "天安门", Longitude: tiananmen.Lng, Latitude: tiananmen.Lat}

	info, err := p.TransportInfo(context.Background(), start, end, maps.ModeDriving)
	require.NoError(t, err)
	assert.Equal(t, "10分钟", info.Time)
	assert.Equal(t, "驾车", info.Steps)

	_, err = p.TransportInfo(context.Background(), nil, end, maps.ModeDriving)
	assert.ErrorIs(t, err, ErrMissingEndpoints)
}

func TestClassifyDelegates(t *testing.T) {
	r := newTestPlanner(&aitest.Model{}, &mapstest.Provider{}).Classify(context.Background(), "我想去杭州玩3天", nil)
	assert.Equal(t, intent.TypeNewPlan, r.IntentType)
}
