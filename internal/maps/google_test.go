package maps

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGoogleProvider("AIzaTestKey", NewLimiter(1000, 10, 0, time.Millisecond), nil, maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return g
}

func TestGoogleRoute(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/directions/json"))
		assert.Equal(t, "walking", r.URL.Query().Get("mode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"OK","routes":[{"summary":"Nanshan Rd","legs":[
			{"duration":{"value":600,"text":"10 mins"},"distance":{"value":800,"text":"0.8 km"},"steps":[]}
		]}]}`)
	})
	res, err := g.Route(context.Background(), RouteRequest{
		Origin:      Coordinate{Lng: 120.1, Lat: 30.2},
		Destination: Coordinate{Lng: 120.2, Lat: 30.3},
		Mode:        ModeWalking,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 600, res.DurationSeconds)
	assert.NotEmpty(t, res.Route)
}

func TestGoogleWeatherUnsupported(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := g.Weather(context.Background(), "330100")
	assert.True(t, errors.Is(err, ErrUnsupported))
}
