// README: Classifies a few sample queries against the configured model; prints tier results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"tripcopilot/internal/app"
	"tripcopilot/internal/config"
	"tripcopilot/internal/infra"
	"tripcopilot/internal/modules/intent"
	"tripcopilot/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := infra.NewLogger(cfg.Env, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	model, closeModel, err := app.NewChatModel(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize chat model: %v", err)
	}
	defer closeModel()

	cache, err := intent.NewLRUCache(cfg.Cache.Size)
	if err != nil {
		log.Fatal(err)
	}
	classifier := intent.NewClassifier(model, cache, nil, logger)

	current := &types.Plan{
		Destination: "北京",
		TotalDays:   2,
		Itinerary: []types.DayPlan{
			{Day: 1, Theme: "皇城", Places: []types.Place{{Name: "故宫"}, {Name: "天安门"}}},
			{Day: 2, Theme: "园林", Places: []types.Place{{Name: "颐和园"}}},
		},
	}

	queries := []string{"我想去杭州玩3天", "删除第一天的故宫", "北京有什么好吃的", "那里冬天冷不冷"}
	if len(os.Args) > 1 {
		queries = os.Args[1:]
	}
	for _, q := range queries {
		r := classifier.Classify(ctx, q, current)
		b, _ := json.Marshal(r)
		fmt.Printf("User: %s\nIntent: %s\n\n", q, b)
	}
}
