package maps

import "context"

// CityOf reverse-geocodes c to its city (or province). Failures yield NationwideCity.
func CityOf(ctx context.Context, p Provider, c Coordinate) string {
	region, err := p.ReverseGeocode(ctx, c)
	if err != nil {
		return NationwideCity
	}
	return region.Name()
}

// TransitCity picks the single city used for a transit query: the origin's
// city when it resolved, else the destination's.
func TransitCity(ctx context.Context, p Provider, origin, dest Coordinate) string {
	if start := CityOf(ctx, p, origin); start != NationwideCity {
		return start
	}
	return CityOf(ctx, p, dest)
}
