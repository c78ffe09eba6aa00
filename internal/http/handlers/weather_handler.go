// README: Weather forecast endpoint.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/modules/weather"
)

type WeatherHandler struct {
	weather *weather.Service
}

func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

type weatherResp struct {
	Success   bool                  `json:"success"`
	Location  string                `json:"location,omitempty"`
	Forecasts []weather.DayForecast `json:"forecasts,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// Get handles GET /api/weather/:location.
func (h *WeatherHandler) Get(c *gin.Context) {
	location := strings.TrimSpace(c.Param("location"))
	if location == "" {
		writeJSON(c, http.StatusBadRequest, weatherResp{Error: "missing location"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	report, err := h.weather.Forecast(ctx, location)
	if err != nil {
		var lookup *weather.LookupError
		var msg string
		switch {
		case errors.As(err, &lookup):
			msg = lookup.Message
		case errors.Is(err, maps.ErrUnsupported):
			msg = "当前地图服务不支持天气查询"
		default:
			msg = fmt.Sprintf("获取天气信息时发生错误: %v", err)
		}
		writeJSON(c, http.StatusOK, weatherResp{Error: msg})
		return
	}
	writeJSON(c, http.StatusOK, weatherResp{Success: true, Location: report.Location, Forecasts: report.Forecasts})
}
