package planner

import "tripcopilot/internal/types"

type simplePlace struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Duration    types.Hours `json:"duration"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
}

type simpleDay struct {
	Day    int           `json:"day"`
	Theme  string        `json:"theme"`
	Places []simplePlace `json:"places"`
}

type simplePlan struct {
	Destination string      `json:"destination"`
	TotalDays   int         `json:"total_days"`
	Itinerary   []simpleDay `json:"itinerary"`
}

// simplify drops routes and transport annotations. Coordinates are kept
// only when both are present.
func simplify(p *types.Plan) simplePlan {
	out := simplePlan{
		Destination: p.Destination,
		TotalDays:   p.TotalDays,
		Itinerary:   make([]simpleDay, 0, len(p.Itinerary)),
	}
	for _, day := range p.Itinerary {
		sd := simpleDay{Day: day.Day, Theme: day.Theme, Places: make([]simplePlace, 0, len(day.Places))}
		for _, place := range day.Places {
			sp := simplePlace{Name: place.Name, Description: place.Description, Duration: place.Duration}
			if place.Longitude != nil && place.Latitude != nil {
				sp.Longitude, sp.Latitude = place.Longitude, place.Latitude
			}
			sd.Places = append(sd.Places, sp)
		}
		out.Itinerary = append(out.Itinerary, sd)
	}
	return out
}
