// README: LLM-backed itinerary drafting, streamed outlines, and plan revision.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/types"
)

var (
	ErrNoPlanJSON      = errors.New("AI返回的内容不包含有效的JSON格式")
	ErrInvalidPlanJSON = errors.New("解析AI返回的JSON数据失败")
	ErrEmptyPlan       = errors.New("当前行程为空")
)

// LargePromptChars is the plan size above which revision prompts are flagged.
const LargePromptChars = 100000

// Planner turns user requests into itinerary skeletons via a chat model.
type Planner struct {
	model  ai.ChatModel
	logger *slog.Logger
}

func New(model ai.ChatModel, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{model: model, logger: logger}
}

// StreamOutline streams a prose outline that Generate can later convert.
func (p *Planner) StreamOutline(ctx context.Context, destination string, days int, onChunk func(string) error) error {
	messages := []ai.Message{
		ai.System(outlineSystemPrompt),
		ai.User(fmt.Sprintf(outlinePromptPattern, destination, days)),
	}
	return p.model.Stream(ctx, messages, onChunk)
}

// Generate converts outline (or, when empty, a direct request) into a plan
// skeleton without coordinates.
func (p *Planner) Generate(ctx context.Context, destination string, days int, outline string) (*types.Plan, error) {
	user := strings.TrimSpace(outline)
	if user == "" {
		user = fmt.Sprintf(directPlanPromptPattern, destination, days)
	}
	messages := []ai.Message{
		ai.System(fmt.Sprintf(planSystemPromptPattern, destination, days)),
		ai.User(user),
	}
	text, err := p.model.Invoke(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	plan, err := decodePlan(text)
	if err != nil {
		p.logger.Warn("plan response not decodable", slog.Int("length", len(text)), slog.String("head", head(text, 100)))
		return nil, err
	}
	if plan.Destination == "" {
		plan.Destination = destination
	}
	return plan, nil
}

// Revise applies a natural-language instruction to plan. Only the
// simplified form of the plan is sent to the model.
func (p *Planner) Revise(ctx context.Context, plan *types.Plan, instruction string) (*types.Plan, error) {
	if plan == nil {
		return nil, ErrEmptyPlan
	}
	b, err := json.MarshalIndent(simplify(plan), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	current := string(b)
	p.logger.Info("revising plan", slog.Int("prompt_chars", len(current)))
	if len(current) > LargePromptChars {
		p.logger.Warn("revision prompt close to model limit", slog.Int("prompt_chars", len(current)))
	}

	messages := []ai.Message{
		ai.System(reviseSystemPrompt),
		ai.User(fmt.Sprintf(revisePromptPattern, current, instruction)),
	}
	text, err := p.model.Invoke(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("revise plan: %w", err)
	}
	p.logger.Info("revision answered", slog.Int("length", len(text)), slog.String("head", head(text, 100)))

	revised, err := decodePlan(text)
	if err != nil {
		return nil, err
	}
	if revised.Destination == "" {
		revised.Destination = plan.Destination
	}
	return revised, nil
}

func decodePlan(text string) (*types.Plan, error) {
	var plan types.Plan
	if err := ai.DecodeJSONObject(text, &plan); err != nil {
		if errors.Is(err, ai.ErrNoJSONObject) {
			return nil, ErrNoPlanJSON
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanJSON, err)
	}
	plan.Normalize()
	return &plan, nil
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
