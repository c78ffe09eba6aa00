// README: Three-day weather forecast for a named location.
package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tripcopilot/internal/maps"
)

const maxDays = 3

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNoForecast       = errors.New("forecast unavailable")
)

// LookupError carries a user-facing message for a failed forecast.
type LookupError struct {
	Err     error
	Message string
}

func (e *LookupError) Error() string { return e.Message }
func (e *LookupError) Unwrap() error { return e.Err }

// DayForecast is one labelled forecast day.
type DayForecast struct {
	Date        string `json:"date"`
	TempHigh    int    `json:"tempHigh"`
	TempLow     int    `json:"tempLow"`
	Description string `json:"description"`
	DayWind     string `json:"daywind"`
	NightWind   string `json:"nightwind"`
	DayPower    string `json:"daypower"`
	NightPower  string `json:"nightpower"`
}

type Report struct {
	Location  string        `json:"location"`
	Forecasts []DayForecast `json:"forecasts"`
}

type Service struct {
	provider maps.Provider
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(provider maps.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, now: time.Now, logger: logger}
}

// Forecast geocodes location to an administrative code and returns at most
// three days starting with the provider's first day.
func (s *Service) Forecast(ctx context.Context, location string) (*Report, error) {
	geo, err := s.provider.Geocode(ctx, location, "")
	if err != nil || geo == nil || geo.Adcode == "" {
		if errors.Is(err, maps.ErrUnsupported) {
			return nil, err
		}
		s.logger.Warn("weather geocode failed", slog.String("location", location), slog.Any("error", err))
		return nil, &LookupError{Err: ErrLocationNotFound, Message: fmt.Sprintf("无法找到%s的地理位置信息", location)}
	}

	casts, err := s.provider.Weather(ctx, geo.Adcode)
	if err != nil {
		if errors.Is(err, maps.ErrUnsupported) {
			return nil, err
		}
		s.logger.Warn("weather lookup failed", slog.String("location", location), slog.String("adcode", geo.Adcode), slog.Any("error", err))
		return nil, &LookupError{Err: ErrNoForecast, Message: fmt.Sprintf("获取%s的天气信息失败", location)}
	}

	today := s.now()
	out := make([]DayForecast, 0, maxDays)
	for _, c := range casts {
		if len(out) == maxDays {
			break
		}
		out = append(out, DayForecast{
			Date:        dateLabel(c.Date, today),
			TempHigh:    c.DayTemp,
			TempLow:     c.NightTemp,
			Description: c.DayWeather,
			DayWind:     c.DayWind,
			NightWind:   c.NightWind,
			DayPower:    c.DayPower,
			NightPower:  c.NightPower,
		})
	}
	return &Report{Location: location, Forecasts: out}, nil
}

// dateLabel names the first three days relative to today and shows MM-DD
// otherwise. Unparseable dates are passed through.
func dateLabel(date string, today time.Time) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	y, m, dd := today.Date()
	start := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	switch int(d.Sub(start).Hours() / 24) {
	case 0:
		return "今天"
	case 1:
		return "明天"
	case 2:
		return "后天"
	}
	return d.Format("01-02")
}
