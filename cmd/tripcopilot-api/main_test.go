package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcopilot/internal/config"
	"tripcopilot/internal/infra"
)

func testConfig() config.Config {
	return config.Config{
		Env: "development",
		AI: config.AIConfig{
			Provider:       config.LLMProviderDashScope,
			DashScopeKey:   "k",
			DashScopeURL:   "http://127.0.0.1:1/v1",
			DashScopeModel: "qwen-plus",
		},
		Maps: config.MapsConfig{
			Provider:   config.MapProviderAMap,
			AMapKey:    "k",
			RatePerSec: 3,
			Burst:      1,
		},
		Cache: config.CacheConfig{Backend: config.CacheBackendMemory, Size: 10},
		HTTP:  config.HTTPConfig{Addr: "127.0.0.1:0"},
	}
}

func TestRunReturnsInitErrors(t *testing.T) {
	logger := infra.NewLogger("production", io.Discard)

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "chat model", mutate: func(c *config.Config) { c.AI.Provider = "other" }, want: "chat model init"},
		{name: "map provider", mutate: func(c *config.Config) { c.Maps.Provider = "osm" }, want: "map provider init"},
		{name: "intent cache", mutate: func(c *config.Config) {
			c.Cache.Backend = config.CacheBackendRedis
			c.Cache.RedisAddr = "127.0.0.1:1"
		}, want: "intent cache init"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := run(cfg, logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
