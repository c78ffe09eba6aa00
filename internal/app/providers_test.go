package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcopilot/internal/config"
	"tripcopilot/internal/modules/intent"
)

func TestNewChatModelDashScope(t *testing.T) {
	m, closeFn, err := NewChatModel(context.Background(), config.AIConfig{
		Provider:       config.LLMProviderDashScope,
		DashScopeKey:   "k",
		DashScopeURL:   "http://127.0.0.1:1/v1",
		DashScopeModel: "qwen-plus",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai-compat/qwen-plus", m.Name())
	assert.NoError(t, closeFn())

	_, _, err = NewChatModel(context.Background(), config.AIConfig{Provider: "other"})
	assert.Error(t, err)
}

func TestNewMapProvider(t *testing.T) {
	p, err := NewMapProvider(config.MapsConfig{Provider: config.MapProviderAMap, AMapKey: "k", RatePerSec: 3, Burst: 1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "amap", p.Name())

	p, err = NewMapProvider(config.MapsConfig{Provider: config.MapProviderGoogle, GoogleKey: "AIza-test", RatePerSec: 3, Burst: 1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	_, err = NewMapProvider(config.MapsConfig{Provider: "osm", RatePerSec: 1}, nil, nil)
	assert.Error(t, err)
}

func TestNewIntentCacheMemory(t *testing.T) {
	c, closeFn, err := NewIntentCache(context.Background(), config.CacheConfig{Backend: config.CacheBackendMemory, Size: 10}, nil)
	require.NoError(t, err)
	_, ok := c.(*intent.LRUCache)
	assert.True(t, ok)
	assert.NoError(t, closeFn())
}
