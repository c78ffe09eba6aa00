// README: Trip endpoints: intent parsing, plan generation and revision, routing, transport info.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripcopilot/internal/maps"
	"tripcopilot/internal/service"
	"tripcopilot/internal/types"
)

type TripHandler struct {
	trip    *service.TripPlanner
	timeout time.Duration
	logger  *slog.Logger
}

func NewTripHandler(trip *service.TripPlanner, timeout time.Duration, logger *slog.Logger) *TripHandler {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TripHandler{trip: trip, timeout: timeout, logger: logger}
}

type parseQueryReq struct {
	Query       string      `json:"query"`
	CurrentPlan *types.Plan `json:"current_plan"`
}

// ParseQuery handles POST /api/trip/parse-query. Classification never fails.
func (h *TripHandler) ParseQuery(c *gin.Context) {
	var req parseQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	r := h.trip.Classify(ctx, req.Query, req.CurrentPlan)
	writeJSON(c, http.StatusOK, envelope{Success: true, Data: r})
}

type planReq struct {
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Plan        string `json:"plan"`
}

// Plan handles POST /api/trip/plan.
func (h *TripHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	plan, err := h.trip.GeneratePlan(ctx, req.Destination, req.Duration, req.Plan)
	if err != nil {
		h.logger.Warn("plan generation failed", slog.String("destination", req.Destination), slog.Any("error", err))
		writeFailure(c, err)
		return
	}
	writeJSON(c, http.StatusOK, envelope{Success: true, PlanData: plan})
}

// StreamPlan handles POST /api/trip/streamplan (SSE outline).
func (h *TripHandler) StreamPlan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	err := streamSSE(c, func(onChunk func(string) error) error {
		return h.trip.StreamOutline(ctx, req.Destination, req.Duration, onChunk)
	})
	if err != nil {
		h.logger.Warn("outline stream failed", slog.Any("error", err))
	}
}

type updateReq struct {
	CurrentPlan         *types.Plan `json:"current_plan"`
	ModificationRequest string      `json:"modification_request"`
	ChatContext         string      `json:"chat_context"`
}

// Update handles POST /api/trip/update.
func (h *TripHandler) Update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	plan, err := h.trip.RevisePlan(ctx, req.CurrentPlan, req.ModificationRequest)
	if err != nil {
		h.logger.Warn("plan revision failed", slog.Any("error", err))
		writeFailure(c, err)
		return
	}
	writeJSON(c, http.StatusOK, envelope{Success: true, UpdatedPlan: plan})
}

type pathReq struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Mode  string `json:"mode"`
}

// Path handles POST /api/trip/path.
func (h *TripHandler) Path(c *gin.Context) {
	var req pathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	mode, ok := parseMode(c, req.Mode)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	seg, err := h.trip.PlanRoute(ctx, req.Start, req.End, mode)
	if err != nil {
		writeFailure(c, err)
		return
	}
	writeJSON(c, http.StatusOK, envelope{Success: true, PathData: seg})
}

type itineraryRoutesReq struct {
	Places []types.Place `json:"places"`
	Mode   string        `json:"mode"`
}

// ItineraryRoutes handles POST /api/trip/itinerary-routes.
func (h *TripHandler) ItineraryRoutes(c *gin.Context) {
	var req itineraryRoutesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadJSON(c)
		return
	}
	mode, ok := parseMode(c, req.Mode)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	segs, err := h.trip.PlanItineraryRoutes(ctx, req.Places, mode)
	if err != nil {
		writeFailure(c, err)
		return
	}
	writeJSON(c, http.StatusOK, envelope{Success: true, RoutesData: segs})
}

type transportReq struct {
	Start *types.Endpoint `json:"start"`
	End   *types.Endpoint `json:"end"`
	Mode  string          `json:"mode"`
}

// Transportation handles POST /api/trip/transportation.
func (h *TripHandler) Transportation(c *gin.Context) {
	var req transportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, invalidJSON)
		return
	}
	mode, err := maps.ParseMode(req.Mode)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	info, err := h.trip.TransportInfo(ctx, req.Start, req.End, mode)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, info)
}

func parseMode(c *gin.Context, raw string) (maps.Mode, bool) {
	mode, err := maps.ParseMode(strings.TrimSpace(raw))
	if err != nil {
		writeJSON(c, http.StatusBadRequest, envelope{Success: false, ErrorMessage: err.Error()})
		return "", false
	}
	return mode, true
}
