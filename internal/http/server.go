// README: API gateway; holds service dependencies and exposes the HTTP handler.
package http

import (
	"log/slog"
	"net/http"

	"tripcopilot/internal/config"
	"tripcopilot/internal/infra"
	"tripcopilot/internal/modules/chat"
	"tripcopilot/internal/modules/weather"
	"tripcopilot/internal/service"
)

type ServerDeps struct {
	Trip    *service.TripPlanner
	Chat    *chat.Assistant
	Weather *weather.Service
	Metrics *infra.Metrics
	Logger  *slog.Logger
	Config  config.HTTPConfig
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.deps)
}
