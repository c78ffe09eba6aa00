// README: Config loader with env defaults for HTTP, LLM, maps, cache, and Redis settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when the selected provider has no API key.
var ErrMissingCredential = errors.New("missing credential")

const (
	LLMProviderDashScope = "dashscope"
	LLMProviderGemini    = "gemini"

	MapProviderAMap   = "amap"
	MapProviderGoogle = "google"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type HTTPConfig struct {
	Addr           string        `env:"TRIPCOPILOT_HTTP_ADDR" envDefault:":8000"`
	AllowedOrigins []string      `env:"TRIPCOPILOT_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"`
	RequestTimeout time.Duration `env:"TRIPCOPILOT_REQUEST_TIMEOUT" envDefault:"120s"`
}

type AIConfig struct {
	Provider       string  `env:"TRIPCOPILOT_LLM_PROVIDER" envDefault:"dashscope"`
	DashScopeKey   string  `env:"DASHSCOPE_API_KEY"`
	DashScopeURL   string  `env:"DASHSCOPE_BASE_URL" envDefault:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	DashScopeModel string  `env:"DASHSCOPE_MODEL" envDefault:"qwen-plus"`
	GeminiKey      string  `env:"GEMINI_API_KEY"`
	GeminiModel    string  `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	Temperature    float64 `env:"TRIPCOPILOT_LLM_TEMPERATURE" envDefault:"0.4"`
}

type MapsConfig struct {
	Provider     string        `env:"TRIPCOPILOT_MAP_PROVIDER" envDefault:"amap"`
	AMapKey      string        `env:"AMAP_API_KEY"`
	AMapBaseURL  string        `env:"AMAP_BASE_URL" envDefault:"https://restapi.amap.com"`
	GoogleKey    string        `env:"GOOGLE_MAPS_API_KEY"`
	RatePerSec   float64       `env:"TRIPCOPILOT_MAP_QPS" envDefault:"3"`
	Burst        int           `env:"TRIPCOPILOT_MAP_BURST" envDefault:"1"`
	Timeout      time.Duration `env:"TRIPCOPILOT_MAP_TIMEOUT" envDefault:"10s"`
	MaxRetries   int           `env:"TRIPCOPILOT_MAP_MAX_RETRIES" envDefault:"3"`
	RetryBackoff time.Duration `env:"TRIPCOPILOT_MAP_RETRY_BACKOFF" envDefault:"500ms"`
	GeocodeTTL   time.Duration `env:"TRIPCOPILOT_GEOCODE_TTL" envDefault:"1h"`
}

type CacheConfig struct {
	Backend   string        `env:"TRIPCOPILOT_INTENT_CACHE" envDefault:"memory"`
	Size      int           `env:"TRIPCOPILOT_INTENT_CACHE_SIZE" envDefault:"100"`
	RedisTTL  time.Duration `env:"TRIPCOPILOT_INTENT_CACHE_TTL" envDefault:"24h"`
	RedisAddr string        `env:"TRIPCOPILOT_REDIS_ADDR" envDefault:"localhost:6379"`
}

type Config struct {
	Env   string `env:"APP_ENV" envDefault:"development"`
	HTTP  HTTPConfig
	AI    AIConfig
	Maps  MapsConfig
	Cache CacheConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}
	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	cfg.Maps.Provider = strings.ToLower(strings.TrimSpace(cfg.Maps.Provider))
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case LLMProviderDashScope:
		if c.AI.DashScopeKey == "" {
			return fmt.Errorf("%w: DASHSCOPE_API_KEY", ErrMissingCredential)
		}
	case LLMProviderGemini:
		if c.AI.GeminiKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.AI.Provider)
	}

	switch c.Maps.Provider {
	case MapProviderAMap:
		if c.Maps.AMapKey == "" {
			return fmt.Errorf("%w: AMAP_API_KEY", ErrMissingCredential)
		}
	case MapProviderGoogle:
		if c.Maps.GoogleKey == "" {
			return fmt.Errorf("%w: GOOGLE_MAPS_API_KEY", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("unknown map provider %q", c.Maps.Provider)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown intent cache backend %q", c.Cache.Backend)
	}
	if c.Maps.RatePerSec <= 0 {
		return fmt.Errorf("TRIPCOPILOT_MAP_QPS must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}
