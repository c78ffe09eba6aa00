package itinerary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/maps/mapstest"
	"tripcopilot/internal/modules/geocode"
	"tripcopilot/internal/modules/route"
	"tripcopilot/internal/modules/transport"
	"tripcopilot/internal/types"
)

func newTestEnricher(fake *mapstest.Provider) *Enricher {
	resolver := geocode.NewResolver(fake, 0, nil)
	probe := transport.NewStationProbe(fake, nil)
	return NewEnricher(
		resolver,
		route.NewBuilder(fake, resolver, nil),
		transport.NewAdvisor(probe),
		transport.NewEstimator(fake, nil),
		nil,
	)
}

func TestEnrichSkipsUnresolvedPlace(t *testing.T) {
	westLake := maps.Coordinate{Lng: 120.148, Lat: 30.259}
	lingyin := maps.Coordinate{Lng: 120.101, Lat: 30.241}
	fake := &mapstest.Provider{
		POIs: map[string][]maps.POI{
			"杭州西湖":  {{Name: "西湖", Location: westLake}},
			"杭州灵隐寺": {{Name: "灵隐寺", Location: lingyin}},
		},
		RouteFunc: mapstest.OKRoute(1200),
	}
	plan := &types.Plan{
		Destination: "杭州市",
		TotalDays:   1,
		Itinerary: []types.DayPlan{{
			Day:   1,
			Theme: "湖光山色",
			Places: []types.Place{
				{Name: "杭州西湖", Duration: 3},
				{Name: "不存在的景点", Duration: 1},
				{Name: "杭州灵隐寺", Duration: 2},
			},
		}},
	}

	newTestEnricher(fake).Enrich(context.Background(), plan)

	day := plan.Itinerary[0]
	require.Len(t, day.Places, 3)
	_, ok := day.Places[0].Coordinate()
	assert.True(t, ok)
	assert.Nil(t, day.Places[1].Longitude)
	assert.Nil(t, day.Places[1].Latitude)
	_, ok = day.Places[2].Coordinate()
	assert.True(t, ok)

	require.Len(t, day.Routes, 1)
	seg := day.Routes[0]
	assert.Equal(t, 1, seg.Sequence)
	assert.Equal(t, "杭州西湖", seg.StartPoint.Name)
	assert.Equal(t, "杭州灵隐寺", seg.EndPoint.Name)
	assert.Equal(t, maps.ModeDriving, seg.Mode)
	assert.True(t, seg.Success)

	// ~4.9km without stations.
	first := day.Places[0]
	assert.Equal(t, "bicycling", first.Transportation)
	assert.Equal(t, []string{"driving", "walking", "bicycling"}, first.AvailableTransportations)
	assert.Equal(t, "20分钟", first.TransitionTime)
	assert.Equal(t, "骑行", first.RouteSteps)
	assert.Empty(t, day.Places[1].Transportation)
	assert.Empty(t, day.Places[2].Transportation)
}

func TestEnrichSinglePlaceHasNoRoutes(t *testing.T) {
	fake := &mapstest.Provider{}
	plan := &types.Plan{
		Destination: "杭州市",
		Itinerary:   []types.DayPlan{{Day: 1, Places: []types.Place{{Name: "西湖"}}}},
	}
	newTestEnricher(fake).Enrich(context.Background(), plan)

	assert.Equal(t, 1, fake.Calls("SearchPOI"))
	assert.Equal(t, 1, fake.Calls("Geocode"))
	assert.Equal(t, 0, fake.Calls("Route"))
	assert.Empty(t, plan.Itinerary[0].Routes)
}
