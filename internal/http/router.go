// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripcopilot/internal/http/handlers"
	"tripcopilot/internal/http/middleware"
)

func NewRouter(deps ServerDeps) *gin.Engine {
	corsCfg := cors.Config{
		AllowOrigins:     deps.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins, corsCfg.AllowCredentials = true, false
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Logger),
		middleware.Recovery(deps.Logger),
		cors.New(corsCfg),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "欢迎使用 Trip Copilot API"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")

	trip := handlers.NewTripHandler(deps.Trip, deps.Config.RequestTimeout, deps.Logger)
	api.POST("/trip/parse-query", trip.ParseQuery)
	api.POST("/trip/plan", trip.Plan)
	api.POST("/trip/streamplan", trip.StreamPlan)
	api.POST("/trip/update", trip.Update)
	api.POST("/trip/path", trip.Path)
	api.POST("/trip/itinerary-routes", trip.ItineraryRoutes)
	api.POST("/trip/transportation", trip.Transportation)

	chatHandler := handlers.NewChatHandler(deps.Chat, deps.Config.RequestTimeout, deps.Logger)
	api.POST("/chat/stream", chatHandler.Stream)

	weatherHandler := handlers.NewWeatherHandler(deps.Weather)
	api.GET("/weather/:location", weatherHandler.Get)

	return r
}
