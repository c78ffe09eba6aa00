// README: Builds the configured chat model, map provider, and intent cache.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/config"
	"tripcopilot/internal/infra"
	"tripcopilot/internal/maps"
	"tripcopilot/internal/modules/intent"
)

// NewChatModel returns the selected model and a cleanup func.
func NewChatModel(ctx context.Context, cfg config.AIConfig) (ai.ChatModel, func() error, error) {
	switch cfg.Provider {
	case config.LLMProviderGemini:
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.Temperature)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini init: %w", err)
		}
		return p, p.Close, nil
	case config.LLMProviderDashScope:
		p := ai.NewOpenAICompatProvider(cfg.DashScopeKey, cfg.DashScopeURL, cfg.DashScopeModel, cfg.Temperature)
		return p, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// NewMapProvider returns the selected provider behind one shared limiter.
func NewMapProvider(cfg config.MapsConfig, logger *slog.Logger, metrics *infra.Metrics) (maps.Provider, error) {
	limiter := maps.NewLimiter(cfg.RatePerSec, cfg.Burst, cfg.MaxRetries, cfg.RetryBackoff)
	switch cfg.Provider {
	case config.MapProviderAMap:
		return maps.NewAMapClient(maps.AMapConfig{
			Key:      cfg.AMapKey,
			BaseURL:  cfg.AMapBaseURL,
			Timeout:  cfg.Timeout,
			Limiter:  limiter,
			Logger:   logger,
			Observer: metrics,
		}), nil
	case config.MapProviderGoogle:
		return maps.NewGoogleProvider(cfg.GoogleKey, limiter, metrics)
	default:
		return nil, fmt.Errorf("unknown map provider %q", cfg.Provider)
	}
}

// NewIntentCache returns the configured classifier cache and a cleanup func.
func NewIntentCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (intent.Cache, func() error, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		rdb, err := infra.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return intent.NewRedisCache(rdb, cfg.RedisTTL, logger), rdb.Close, nil
	default:
		c, err := intent.NewLRUCache(cfg.Size)
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return nil }, nil
	}
}
