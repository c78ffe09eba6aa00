// README: Two-tier intent classifier: deterministic rules, then a cached model call.
package intent

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/types"
)

// Observer records which tier produced a classification.
type Observer interface {
	ObserveIntent(tier, intent string)
}

// Classifier never fails: every path yields a usable Result.
type Classifier struct {
	model    ai.ChatModel
	cache    Cache
	group    singleflight.Group
	observer Observer
	logger   *slog.Logger
}

// NewClassifier builds a classifier; cache and observer may be nil.
func NewClassifier(model ai.ChatModel, cache Cache, observer Observer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{model: model, cache: cache, observer: observer, logger: logger}
}

// Classify labels query as new_plan, modify, or chat.
func (c *Classifier) Classify(ctx context.Context, query string, plan *types.Plan) Result {
	if r, ok := matchRules(query, plan); ok {
		c.logger.Info("intent matched by rules", slog.String("query", preview(query)), slog.String("intent", string(r.IntentType)))
		c.observe("rule", r)
		return r
	}

	key := cacheKey(query, plan)
	if c.cache != nil {
		if r, ok := c.cache.Get(ctx, key); ok {
			c.observe("cache", r)
			return r
		}
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		r, err := c.askModel(ctx, query, plan)
		if err != nil {
			c.logger.Warn("intent model tier failed", slog.String("query", preview(query)), slog.Any("error", err))
			c.observe("fallback", Fallback())
			return Fallback(), nil
		}
		if c.cache != nil {
			c.cache.Add(ctx, key, r)
		}
		c.observe("llm", r)
		return r, nil
	})
	return v.(Result)
}

func (c *Classifier) askModel(ctx context.Context, query string, plan *types.Plan) (Result, error) {
	text, err := c.model.Invoke(ctx, buildMessages(query, plan))
	if err != nil {
		return Result{}, err
	}
	return parseModelAnswer(text)
}

func (c *Classifier) observe(tier string, r Result) {
	if c.observer != nil {
		c.observer.ObserveIntent(tier, string(r.IntentType))
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}
