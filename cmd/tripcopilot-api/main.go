// README: Entry point; loads config, wires providers and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tripcopilot/internal/app"
	"tripcopilot/internal/config"
	httptransport "tripcopilot/internal/http"
	"tripcopilot/internal/infra"
	"tripcopilot/internal/modules/chat"
	"tripcopilot/internal/modules/geocode"
	"tripcopilot/internal/modules/intent"
	"tripcopilot/internal/modules/itinerary"
	"tripcopilot/internal/modules/planner"
	"tripcopilot/internal/modules/route"
	"tripcopilot/internal/modules/transport"
	"tripcopilot/internal/modules/weather"
	"tripcopilot/internal/service"
)

func main() {
	cfg, err := config.Load()
	logger := infra.NewLogger(cfg.Env, os.Stdout)
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

// run serves until an interrupt or a listener failure.
func run(cfg config.Config, logger *slog.Logger) error {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := infra.NewMetrics()

	model, closeModel, err := app.NewChatModel(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("chat model init: %w", err)
	}
	defer closeModel()

	provider, err := app.NewMapProvider(cfg.Maps, logger, metrics)
	if err != nil {
		return fmt.Errorf("map provider init: %w", err)
	}

	cache, closeCache, err := app.NewIntentCache(ctx, cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("intent cache init: %w", err)
	}
	defer closeCache()

	resolver := geocode.NewResolver(provider, cfg.Maps.GeocodeTTL, logger)
	builder := route.NewBuilder(provider, resolver, logger)
	estimator := transport.NewEstimator(provider, logger)
	advisor := transport.NewAdvisor(transport.NewStationProbe(provider, logger))

	trip := service.NewTripPlanner(service.Deps{
		Classifier: intent.NewClassifier(model, cache, metrics, logger),
		Planner:    planner.New(model, logger),
		Enricher:   itinerary.NewEnricher(resolver, builder, advisor, estimator, logger),
		Builder:    builder,
		Estimator:  estimator,
		Logger:     logger,
	})

	server := httptransport.NewServer(httptransport.ServerDeps{
		Trip:    trip,
		Chat:    chat.NewAssistant(model, logger),
		Weather: weather.NewService(provider, logger),
		Metrics: metrics,
		Logger:  logger,
		Config:  cfg.HTTP,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("llm", model.Name()),
			slog.String("maps", provider.Name()),
			slog.String("intent_cache", cfg.Cache.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
