package maps_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/maps/mapstest"
)

func TestTransitCity(t *testing.T) {
	a := maps.Coordinate{Lng: 120.1, Lat: 30.2}
	b := maps.Coordinate{Lng: 121.4, Lat: 31.2}
	ctx := context.Background()

	tests := []struct {
		name    string
		regions map[string]maps.Region
		want    string
	}{
		{name: "shared", regions: map[string]maps.Region{a.String(): {City: "杭州市"}, b.String(): {City: "杭州市"}}, want: "杭州市"},
		{name: "start wins", regions: map[string]maps.Region{a.String(): {City: "杭州市"}, b.String(): {City: "上海市"}}, want: "杭州市"},
		{name: "end only", regions: map[string]maps.Region{b.String(): {Province: "上海市"}}, want: "上海市"},
		{name: "none", regions: map[string]maps.Region{}, want: maps.NationwideCity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &mapstest.Provider{Regions: tt.regions}
			assert.Equal(t, tt.want, maps.TransitCity(ctx, fake, a, b))
		})
	}
}

func TestCityOfError(t *testing.T) {
	fake := &mapstest.Provider{Err: errors.New("timeout")}
	assert.Equal(t, maps.NationwideCity, maps.CityOf(context.Background(), fake, maps.Coordinate{}))
}
