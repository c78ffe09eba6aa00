package intent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"tripcopilot/internal/types"
)

// Cache stores model-tier classifications. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool)
	Add(ctx context.Context, key string, r Result)
}

// cacheKey hashes the query and a reduced plan summary.
func cacheKey(query string, plan *types.Plan) string {
	planHash := "none"
	if plan != nil {
		summary := struct {
			AttractionNames []string `json:"attraction_names"`
			Destination     string   `json:"destination"`
			TotalDays       int      `json:"total_days"`
		}{
			AttractionNames: plan.AttractionNames(0),
			Destination:     plan.Destination,
			TotalDays:       plan.TotalDays,
		}
		if summary.AttractionNames == nil {
			summary.AttractionNames = []string{}
		}
		b, _ := json.Marshal(summary)
		planHash = hashHex(b)
	}
	return hashHex([]byte(query)) + "_" + planHash
}

func hashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// LRUCache is a bounded in-process cache with least-recently-used eviction.
type LRUCache struct {
	entries *lru.Cache[string, Result]
}

func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		size = 100
	}
	c, err := lru.New[string, Result](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{entries: c}, nil
}

func (c *LRUCache) Get(_ context.Context, key string) (Result, bool) {
	return c.entries.Get(key)
}

func (c *LRUCache) Add(_ context.Context, key string, r Result) {
	c.entries.Add(key, r)
}

// Len reports the number of cached entries.
func (c *LRUCache) Len() int { return c.entries.Len() }

// RedisCache shares classifications between instances with a TTL.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

const redisKeyPrefix = "tripcopilot:intent:"

func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get treats any Redis failure as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (Result, bool) {
	b, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("intent cache read failed", slog.Any("error", err))
		}
		return Result{}, false
	}
	var r Result
	if err := json.Unmarshal(b, &r); err != nil {
		return Result{}, false
	}
	return r, true
}

func (c *RedisCache) Add(ctx context.Context, key string, r Result) {
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("intent cache write failed", slog.Any("error", err))
	}
}
