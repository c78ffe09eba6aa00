// README: Resolves place names to coordinates via POI search with geocode fallback.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"tripcopilot/internal/maps"
)

// ErrNotFound is returned when neither POI search nor geocoding yields a location.
var ErrNotFound = errors.New("place not found")

// Resolver turns a place name plus optional city hint into a coordinate.
type Resolver struct {
	provider maps.Provider
	memo     *cache.Cache
	logger   *slog.Logger
}

// NewResolver memoizes successful lookups for ttl; ttl <= 0 disables memoization.
func NewResolver(provider maps.Provider, ttl time.Duration, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{provider: provider, logger: logger}
	if ttl > 0 {
		r.memo = cache.New(ttl, 2*ttl)
	}
	return r
}

// Resolve tries POI text search first and falls back to address geocoding.
func (r *Resolver) Resolve(ctx context.Context, name, city string) (maps.Coordinate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return maps.Coordinate{}, ErrNotFound
	}
	key := name + "|" + city
	if r.memo != nil {
		if v, ok := r.memo.Get(key); ok {
			return v.(maps.Coordinate), nil
		}
	}

	c, err := r.lookup(ctx, name, city)
	if err != nil {
		return maps.Coordinate{}, err
	}
	if r.memo != nil {
		r.memo.Set(key, c, cache.DefaultExpiration)
	}
	return c, nil
}

func (r *Resolver) lookup(ctx context.Context, name, city string) (maps.Coordinate, error) {
	pois, err := r.provider.SearchPOI(ctx, name, city)
	if err == nil && len(pois) > 0 {
		best := pickPOI(name, pois)
		r.logger.Debug("resolved by poi search",
			slog.String("name", name), slog.String("match", best.Name), slog.String("location", best.Location.String()))
		return best.Location, nil
	}
	if err != nil && !errors.Is(err, maps.ErrNotFound) {
		r.logger.Warn("poi search failed", slog.String("name", name), slog.Any("error", err))
	}

	geo, gerr := r.provider.Geocode(ctx, name, city)
	if gerr == nil && geo != nil {
		r.logger.Debug("resolved by geocode", slog.String("name", name), slog.String("location", geo.Location.String()))
		return geo.Location, nil
	}
	if gerr != nil && !errors.Is(gerr, maps.ErrNotFound) {
		r.logger.Warn("geocode failed", slog.String("name", name), slog.Any("error", gerr))
	}
	return maps.Coordinate{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// pickPOI prefers a result whose name contains the query or is contained by it.
func pickPOI(name string, pois []maps.POI) maps.POI {
	for _, p := range pois {
		if strings.Contains(p.Name, name) || strings.Contains(name, p.Name) {
			return p
		}
	}
	return pois[0]
}

// CityHint derives the search city from a plan destination: the prefix up to
// the first "市", or the whole destination when it names a province.
func CityHint(destination string) string {
	destination = strings.TrimSpace(destination)
	if i := strings.Index(destination, "市"); i >= 0 {
		return destination[:i+len("市")]
	}
	if strings.Contains(destination, "省") && len([]rune(destination)) > 2 {
		return destination
	}
	return ""
}
