// README: AMap (Gaode) REST adapter: POI, geocode, regeo, around search, directions, weather.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	amapDefaultBaseURL = "https://restapi.amap.com"
	amapProviderName   = "amap"
)

// Infocodes AMap uses for QPS and quota rejections.
var amapRateLimitCodes = map[string]bool{
	"10019": true,
	"10020": true,
	"10021": true,
}

// AMapConfig configures an AMapClient.
type AMapConfig struct {
	Key      string
	BaseURL  string
	Timeout  time.Duration
	Limiter  *Limiter
	Logger   *slog.Logger
	Observer CallObserver
}

// AMapClient talks to the AMap web service API over plain HTTP.
type AMapClient struct {
	key      string
	baseURL  string
	http     *http.Client
	limiter  *Limiter
	logger   *slog.Logger
	observer CallObserver
}

// NewAMapClient creates a client; zero config fields fall back to defaults.
func NewAMapClient(cfg AMapConfig) *AMapClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = amapDefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AMapClient{
		key:      cfg.Key,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  cfg.Limiter,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

func (c *AMapClient) Name() string { return amapProviderName }

// amapStatus is the envelope shared by v3 (status/info/infocode) and v4 (errcode/errmsg).
type amapStatus struct {
	Status   string     `json:"status"`
	Info     string     `json:"info"`
	Infocode string     `json:"infocode"`
	Errcode  *flexInt   `json:"errcode"`
	Errmsg   flexString `json:"errmsg"`
}

func (s amapStatus) ok() bool {
	if s.Errcode != nil {
		return *s.Errcode == 0
	}
	return s.Status == "1"
}

func (s amapStatus) rateLimited() bool {
	if amapRateLimitCodes[s.Infocode] {
		return true
	}
	return s.Errcode != nil && amapRateLimitCodes[strconv.Itoa(int(*s.Errcode))]
}

// APIError is a non-success AMap answer.
type APIError struct {
	Endpoint string
	Info     string
	Code     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("amap %s: %s (%s)", e.Endpoint, e.Info, e.Code)
}

// get performs a rate-limited GET and returns the body. When requireOK is
// set a non-success envelope is returned as *APIError.
func (c *AMapClient) get(ctx context.Context, endpoint string, params url.Values, requireOK bool) ([]byte, error) {
	params.Set("key", c.key)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	var body []byte
	err := c.limiter.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("amap %s request: %w", endpoint, err)
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("amap %s read body: %w", endpoint, err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("amap %s: http status %d", endpoint, resp.StatusCode)
		}
		var st amapStatus
		if err := json.Unmarshal(b, &st); err != nil {
			return fmt.Errorf("amap %s decode: %w", endpoint, err)
		}
		if st.rateLimited() {
			c.logger.Warn("amap rate limited", slog.String("endpoint", endpoint), slog.String("infocode", st.Infocode))
			return fmt.Errorf("%w: %s", ErrRateLimited, endpoint)
		}
		if requireOK && !st.ok() {
			info, code := st.Info, st.Infocode
			if st.Errcode != nil {
				info, code = string(st.Errmsg), strconv.Itoa(int(*st.Errcode))
			}
			return &APIError{Endpoint: endpoint, Info: info, Code: code}
		}
		body = b
		return nil
	})
	observe(c.observer, amapProviderName, endpoint, err)
	if err != nil {
		return nil, err
	}
	return body, nil
}

type amapPOI struct {
	Name     flexString `json:"name"`
	Type     flexString `json:"type"`
	Address  flexString `json:"address"`
	Location flexString `json:"location"`
}

type amapPOIResponse struct {
	POIs []amapPOI `json:"pois"`
}

func (r amapPOIResponse) toPOIs() []POI {
	out := make([]POI, 0, len(r.POIs))
	for _, p := range r.POIs {
		loc, err := ParseCoordinate(string(p.Location))
		if err != nil {
			continue
		}
		out = append(out, POI{
			Name:     string(p.Name),
			Address:  string(p.Address),
			Type:     string(p.Type),
			Location: loc,
		})
	}
	return out
}

// POI categories used for attraction lookup: scenic spots, government and
// landmarks, culture, and commercial places.
const attractionPOITypes = "110000|130000|140000|170000"

// SearchPOI runs a keyword search restricted to attraction-like categories.
func (c *AMapClient) SearchPOI(ctx context.Context, keyword, city string) ([]POI, error) {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("types", attractionPOITypes)
	params.Set("extensions", "all")
	params.Set("page", "1")
	params.Set("size", "5")
	if city != "" {
		params.Set("city", city)
	}
	body, err := c.get(ctx, "/v3/place/text", params, true)
	if err != nil {
		return nil, err
	}
	var resp amapPOIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("amap place/text decode: %w", err)
	}
	pois := resp.toPOIs()
	if len(pois) == 0 {
		return nil, ErrNotFound
	}
	return pois, nil
}

// Geocode resolves an address to its first geocode candidate.
func (c *AMapClient) Geocode(ctx context.Context, address, city string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	if city != "" {
		params.Set("city", city)
	}
	body, err := c.get(ctx, "/v3/geocode/geo", params, true)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Geocodes []struct {
			FormattedAddress flexString `json:"formatted_address"`
			Adcode           flexString `json:"adcode"`
			Location         flexString `json:"location"`
		} `json:"geocodes"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("amap geocode decode: %w", err)
	}
	if len(resp.Geocodes) == 0 {
		return nil, ErrNotFound
	}
	first := resp.Geocodes[0]
	loc, err := ParseCoordinate(string(first.Location))
	if err != nil {
		return nil, fmt.Errorf("amap geocode %q: %w", address, err)
	}
	return &GeocodeResult{
		Location:         loc,
		Adcode:           string(first.Adcode),
		FormattedAddress: string(first.FormattedAddress),
	}, nil
}

// ReverseGeocode returns the city and province for c.
func (c *AMapClient) ReverseGeocode(ctx context.Context, coord Coordinate) (Region, error) {
	params := url.Values{}
	params.Set("location", coord.String())
	params.Set("extensions", "base")
	body, err := c.get(ctx, "/v3/geocode/regeo", params, true)
	if err != nil {
		return Region{}, err
	}
	var resp struct {
		Regeocode struct {
			AddressComponent struct {
				City     flexString `json:"city"`
				Province flexString `json:"province"`
			} `json:"addressComponent"`
		} `json:"regeocode"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return Region{}, fmt.Errorf("amap regeo decode: %w", err)
	}
	ac := resp.Regeocode.AddressComponent
	return Region{City: string(ac.City), Province: string(ac.Province)}, nil
}

// SearchAround lists POIs of the given categories within the radius.
func (c *AMapClient) SearchAround(ctx context.Context, q AroundQuery) ([]POI, error) {
	params := url.Values{}
	params.Set("location", q.Center.String())
	params.Set("radius", strconv.Itoa(q.RadiusM))
	if q.Types != "" {
		params.Set("types", q.Types)
	}
	if q.Limit > 0 {
		params.Set("offset", strconv.Itoa(q.Limit))
	}
	body, err := c.get(ctx, "/v3/place/around", params, true)
	if err != nil {
		return nil, err
	}
	var resp amapPOIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("amap place/around decode: %w", err)
	}
	return resp.toPOIs(), nil
}

// Route requests a single route. A provider-level failure yields a result
// with Success=false and no error; transport failures return an error.
func (c *AMapClient) Route(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	params := url.Values{}
	params.Set("origin", req.Origin.String())
	params.Set("destination", req.Destination.String())

	var endpoint string
	switch req.Mode {
	case ModeDriving, ModeWalking:
		endpoint = "/v3/direction/" + string(req.Mode)
	case ModeTransit:
		endpoint = "/v3/direction/transit/integrated"
		params.Set("city", orNationwide(req.OriginCity))
		params.Set("cityd", orNationwide(req.DestCity))
		params.Set("extensions", "all")
	case ModeBicycling:
		endpoint = "/v4/direction/bicycling"
	default:
		return nil, fmt.Errorf("unsupported travel mode %q", req.Mode)
	}

	body, err := c.get(ctx, endpoint, params, false)
	if err != nil {
		return nil, err
	}
	return parseAMapRoute(req.Mode, body)
}

type amapSegment struct {
	Bus     json.RawMessage `json:"bus"`
	Railway json.RawMessage `json:"railway"`
}

func parseAMapRoute(mode Mode, body []byte) (*RouteResult, error) {
	var env struct {
		amapStatus
		Route json.RawMessage `json:"route"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("amap route decode: %w", err)
	}
	res := &RouteResult{Mode: mode, Raw: json.RawMessage(body)}

	payload := env.Route
	if mode == ModeBicycling {
		payload = env.Data
		res.Success = env.Errcode != nil && *env.Errcode == 0
	} else {
		res.Success = env.Status == "1"
	}
	if !res.Success {
		return res, nil
	}
	res.Route = payload

	switch mode {
	case ModeTransit:
		var route struct {
			Transits []struct {
				Duration flexInt       `json:"duration"`
				Segments []amapSegment `json:"segments"`
			} `json:"transits"`
		}
		if decodeObject(payload, &route) && len(route.Transits) > 0 {
			first := route.Transits[0]
			res.DurationSeconds = int(first.Duration)
			res.HasDuration = true
			res.Lines = transitLines(first.Segments)
		}
	default:
		var route struct {
			Paths []struct {
				Duration flexInt `json:"duration"`
			} `json:"paths"`
		}
		if decodeObject(payload, &route) && len(route.Paths) > 0 {
			res.DurationSeconds = int(route.Paths[0].Duration)
			res.HasDuration = true
		}
	}
	return res, nil
}

// transitLines names each bus or rail leg. Unnamed legs get a generic label.
func transitLines(segments []amapSegment) []string {
	var lines []string
	for _, seg := range segments {
		var bus struct {
			Buslines []struct {
				Name flexString `json:"name"`
			} `json:"buslines"`
		}
		if decodeObject(seg.Bus, &bus) && len(bus.Buslines) > 0 {
			name := string(bus.Buslines[0].Name)
			if name == "" {
				name = "公交"
			}
			lines = append(lines, name)
		}

		var rail struct {
			Name  flexString `json:"name"`
			Lines []struct {
				Name flexString `json:"name"`
			} `json:"lines"`
		}
		if decodeObject(seg.Railway, &rail) && (rail.Name != "" || len(rail.Lines) > 0) {
			name := string(rail.Name)
			if len(rail.Lines) > 0 && rail.Lines[0].Name != "" {
				name = string(rail.Lines[0].Name)
			}
			if name == "" {
				name = "地铁"
			}
			lines = append(lines, name)
		}
	}
	return lines
}

// Weather returns the multi-day forecast for an adcode.
func (c *AMapClient) Weather(ctx context.Context, adcode string) ([]Forecast, error) {
	params := url.Values{}
	params.Set("city", adcode)
	params.Set("extensions", "all")
	body, err := c.get(ctx, "/v3/weather/weatherInfo", params, true)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Forecasts []struct {
			Casts []struct {
				Date         flexString `json:"date"`
				DayWeather   flexString `json:"dayweather"`
				NightWeather flexString `json:"nightweather"`
				DayTemp      flexInt    `json:"daytemp"`
				NightTemp    flexInt    `json:"nighttemp"`
				DayWind      flexString `json:"daywind"`
				NightWind    flexString `json:"nightwind"`
				DayPower     flexString `json:"daypower"`
				NightPower   flexString `json:"nightpower"`
			} `json:"casts"`
		} `json:"forecasts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("amap weather decode: %w", err)
	}
	if len(resp.Forecasts) == 0 || len(resp.Forecasts[0].Casts) == 0 {
		return nil, ErrNotFound
	}
	casts := resp.Forecasts[0].Casts
	out := make([]Forecast, 0, len(casts))
	for _, cast := range casts {
		out = append(out, Forecast{
			Date:         string(cast.Date),
			DayWeather:   string(cast.DayWeather),
			NightWeather: string(cast.NightWeather),
			DayTemp:      int(cast.DayTemp),
			NightTemp:    int(cast.NightTemp),
			DayWind:      string(cast.DayWind),
			NightWind:    string(cast.NightWind),
			DayPower:     string(cast.DayPower),
			NightPower:   string(cast.NightPower),
		})
	}
	return out, nil
}

func orNationwide(city string) string {
	if city == "" {
		return NationwideCity
	}
	return city
}
