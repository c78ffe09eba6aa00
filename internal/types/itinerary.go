// README: Itinerary value objects shared by the planner, enricher, and HTTP layer.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"tripcopilot/internal/maps"
)

// Hours is a visit duration. Models sometimes answer "2小时" or "1.5", so
// decoding accepts strings with a leading number; anything else is zero.
type Hours float64

var leadingNumber = regexp.MustCompile(`\d+(\.\d+)?`)

func (h *Hours) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if m := leadingNumber.FindString(s); m != "" {
			v, _ := strconv.ParseFloat(m, 64)
			*h = Hours(v)
			return nil
		}
		*h = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*h = 0
		return nil
	}
	*h = Hours(v)
	return nil
}

// lenientInt decodes a count that models sometimes quote ("2", "第1天").
// Values without a usable number decode to zero.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(data []byte) error {
	var h Hours
	if err := h.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = lenientInt(math.Round(float64(h)))
	return nil
}

// Place is one named stop of a day.
type Place struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    Hours  `json:"duration"`

	// Longitude and Latitude are both set or both nil.
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`

	Transportation           string   `json:"transportation,omitempty"`
	AvailableTransportations []string `json:"available_transportations,omitempty"`
	TransitionTime           string   `json:"transition_time,omitempty"`
	RouteSteps               string   `json:"route_steps,omitempty"`
}

// Coordinate returns the place location when both components are present and in range.
func (p Place) Coordinate() (maps.Coordinate, bool) {
	if p.Longitude == nil || p.Latitude == nil {
		return maps.Coordinate{}, false
	}
	c := maps.Coordinate{Lng: *p.Longitude, Lat: *p.Latitude}
	return c, c.Valid()
}

// SetCoordinate stores both components together.
func (p *Place) SetCoordinate(c maps.Coordinate) {
	lng, lat := c.Lng, c.Lat
	p.Longitude, p.Latitude = &lng, &lat
}

// ClearCoordinate marks the place as unresolved.
func (p *Place) ClearCoordinate() {
	p.Longitude, p.Latitude = nil, nil
}

// Endpoint is a resolved route end.
type Endpoint struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// EndpointOf converts a place with valid coordinates.
func EndpointOf(p Place) (Endpoint, bool) {
	c, ok := p.Coordinate()
	if !ok {
		return Endpoint{}, false
	}
	return Endpoint{Name: p.Name, Longitude: c.Lng, Latitude: c.Lat}, true
}

// Coordinate of the endpoint.
func (e Endpoint) Coordinate() maps.Coordinate {
	return maps.Coordinate{Lng: e.Longitude, Lat: e.Latitude}
}

// FallbackSimpleLine tells clients to draw a straight line for a failed segment.
const FallbackSimpleLine = "simple_line"

// RouteSegment joins two consecutive resolved places.
type RouteSegment struct {
	Sequence   int             `json:"sequence"`
	StartPoint Endpoint        `json:"start_point"`
	EndPoint   Endpoint        `json:"end_point"`
	Mode       maps.Mode       `json:"mode"`
	RouteInfo  json.RawMessage `json:"route_info"`
	RawData    json.RawMessage `json:"raw_data,omitempty"`
	Success    bool            `json:"success"`
	Fallback   string          `json:"fallback,omitempty"`
}

// DayPlan is one day of the itinerary.
type DayPlan struct {
	Day    int            `json:"day"`
	Theme  string         `json:"theme"`
	Places []Place        `json:"places"`
	Routes []RouteSegment `json:"routes,omitempty"`
}

type dayPlanFields DayPlan

func (d *DayPlan) UnmarshalJSON(data []byte) error {
	aux := struct {
		*dayPlanFields
		Day lenientInt `json:"day"`
	}{dayPlanFields: (*dayPlanFields)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Day = int(aux.Day)
	return nil
}

// Plan is the full itinerary document exchanged with clients and models.
type Plan struct {
	Destination string    `json:"destination"`
	TotalDays   int       `json:"total_days"`
	Itinerary   []DayPlan `json:"itinerary"`
}

type planFields Plan

func (p *Plan) UnmarshalJSON(data []byte) error {
	aux := struct {
		*planFields
		TotalDays lenientInt `json:"total_days"`
	}{planFields: (*planFields)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.TotalDays = int(aux.TotalDays)
	return nil
}

// Normalize numbers unnumbered days by position, sorts days ascending, and
// fills a missing day count.
func (p *Plan) Normalize() {
	for i := range p.Itinerary {
		if p.Itinerary[i].Day <= 0 {
			p.Itinerary[i].Day = i + 1
		}
	}
	sort.SliceStable(p.Itinerary, func(i, j int) bool {
		return p.Itinerary[i].Day < p.Itinerary[j].Day
	})
	if p.TotalDays <= 0 {
		p.TotalDays = len(p.Itinerary)
	}
	p.Destination = strings.TrimSpace(p.Destination)
}

// AttractionNames lists place names across all days in order, stopping at
// limit when limit > 0.
func (p *Plan) AttractionNames(limit int) []string {
	if p == nil {
		return nil
	}
	var names []string
	for _, day := range p.Itinerary {
		for _, place := range day.Places {
			if place.Name == "" {
				continue
			}
			names = append(names, place.Name)
			if limit > 0 && len(names) == limit {
				return names
			}
		}
	}
	return names
}

// HasItinerary reports whether the plan carries at least one day.
func (p *Plan) HasItinerary() bool {
	return p != nil && len(p.Itinerary) > 0
}
