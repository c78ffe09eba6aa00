package transport

import (
	"math"
	"testing"

	"tripcopilot/internal/maps"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      maps.Coordinate
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         maps.Coordinate{Lng: 120.155, Lat: 30.274},
			b:         maps.Coordinate{Lng: 120.155, Lat: 30.274},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "West Lake to Lingyin Temple (~4.9km)",
			a:         maps.Coordinate{Lng: 120.148, Lat: 30.259},
			b:         maps.Coordinate{Lng: 120.101, Lat: 30.241},
			wantKm:    4.9,
			tolerance: 0.6,
		},
		{
			name:      "Beijing to Shanghai (~1067km)",
			a:         maps.Coordinate{Lng: 116.407, Lat: 39.904},
			b:         maps.Coordinate{Lng: 121.473, Lat: 31.230},
			wantKm:    1067,
			tolerance: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(30.0, 120.0, 31.0, 121.0)
	d2 := haversineKm(31.0, 121.0, 30.0, 120.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}
