package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/ai/aitest"
	"tripcopilot/internal/types"
)

const planReply = "好的，这是行程：\n```json\n" + `{
  "destination": "杭州",
  "itinerary": [
    {"day": 2, "theme": "灵隐", "places": [{"name": "浙江省杭州市灵隐寺", "description": "古刹", "duration": "2小时"}]},
    {"day": 1, "theme": "西湖", "places": [
      {"name": "浙江省杭州市西湖", "description": "湖", "duration": 3, "rating": 5},
      {"name": "浙江省杭州市雷峰塔", "description": "塔", "duration": 1.5}
    ]}
  ]
}` + "\n```"

func TestGenerateFromOutline(t *testing.T) {
	model := &aitest.Model{Reply: planReply}
	p := New(model, nil)

	plan, err := p.Generate(context.Background(), "杭州", 2, "第一天：西湖、雷峰塔\n第二天：灵隐寺")
	require.NoError(t, err)

	assert.Equal(t, "杭州", plan.Destination)
	assert.Equal(t, 2, plan.TotalDays)
	require.Len(t, plan.Itinerary, 2)
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	assert.Equal(t, "西湖", plan.Itinerary[0].Theme)
	assert.Equal(t, types.Hours(3), plan.Itinerary[0].Places[0].Duration)
	assert.Equal(t, types.Hours(2), plan.Itinerary[1].Places[0].Duration)
	assert.Nil(t, plan.Itinerary[0].Places[0].Longitude)

	msgs := model.LastMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, `"destination": "杭州"`)
	assert.Contains(t, msgs[0].Content, `"total_days": 2`)
	assert.Equal(t, "第一天：西湖、雷峰塔\n第二天：灵隐寺", msgs[1].Content)
}

func TestGenerateQuotedCounts(t *testing.T) {
	model := &aitest.Model{Reply: `{"destination":"杭州","total_days":"2","itinerary":[
		{"day":"2","theme":"灵隐","places":[{"name":"灵隐寺"}]},
		{"day":"1","theme":"西湖","places":[{"name":"西湖"}]}]}`}
	plan, err := New(model, nil).Generate(context.Background(), "杭州", 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, plan.TotalDays)
	require.Len(t, plan.Itinerary, 2)
	assert.Equal(t, 1, plan.Itinerary[0].Day)
	assert.Equal(t, "西湖", plan.Itinerary[0].Theme)
}

func TestGenerateWithoutOutline(t *testing.T) {
	model := &aitest.Model{Reply: `{"total_days": 1, "itinerary": [{"day": 1, "theme": "", "places": []}]}`}
	plan, err := New(model, nil).Generate(context.Background(), "苏州", 1, "  ")
	require.NoError(t, err)
	assert.Equal(t, "苏州", plan.Destination)
	assert.Contains(t, model.LastMessages()[1].Content, "苏州")
	assert.Contains(t, model.LastMessages()[1].Content, "1天")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *aitest.Model
		want  error
	}{
		{name: "no object", model: &aitest.Model{Reply: "抱歉，我无法完成"}, want: ErrNoPlanJSON},
		{name: "broken object", model: &aitest.Model{Reply: `{"destination": "杭州", "itinerary": [}`}, want: ErrInvalidPlanJSON},
		{name: "wrong shape", model: &aitest.Model{Reply: `{"itinerary": "none"}`}, want: ErrInvalidPlanJSON},
		{name: "model failure", model: &aitest.Model{Err: ai.ErrEmptyResponse}, want: ai.ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.model, nil).Generate(context.Background(), "杭州", 2, "outline")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestStreamOutline(t *testing.T) {
	model := &aitest.Model{Chunks: []string{"第一天", "：西湖"}}
	var got []string
	err := New(model, nil).StreamOutline(context.Background(), "杭州", 3, func(s string) error {
		got = append(got, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"第一天", "：西湖"}, got)
	assert.Contains(t, model.LastMessages()[1].Content, "杭州3天")
}

func TestReviseSendsSimplifiedPlan(t *testing.T) {
	lng, lat := 120.1, 30.2
	current := &types.Plan{
		Destination: "杭州",
		TotalDays:   1,
		Itinerary: []types.DayPlan{{
			Day:   1,
			Theme: "西湖",
			Places: []types.Place{
				{Name: "西湖", Duration: 2, Longitude: &lng, Latitude: &lat, Transportation: "walking", RouteSteps: "步行"},
				{Name: "雷峰塔", Longitude: &lng},
			},
			Routes: []types.RouteSegment{{Sequence: 1, RouteInfo: []byte(`{"paths":[]}`)}},
		}},
	}
	model := &aitest.Model{Reply: `{"itinerary": [{"day": 1, "theme": "西湖", "places": [{"name": "浙江省杭州市断桥", "description": "桥", "duration": 1}]}]}`}

	revised, err := New(model, nil).Revise(context.Background(), current, "把雷峰塔换成断桥")
	require.NoError(t, err)
	assert.Equal(t, "杭州", revised.Destination)
	assert.Equal(t, 1, revised.TotalDays)
	assert.Equal(t, "浙江省杭州市断桥", revised.Itinerary[0].Places[0].Name)

	msgs := model.LastMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, reviseSystemPrompt, msgs[0].Content)
	prompt := msgs[1].Content
	assert.Contains(t, prompt, `"把雷峰塔换成断桥"`)
	assert.Contains(t, prompt, `"longitude": 120.1`)
	assert.NotContains(t, prompt, "routes")
	assert.NotContains(t, prompt, "transportation")
	assert.NotContains(t, prompt, "paths")
	assert.Equal(t, 1, strings.Count(prompt, "longitude"))
}

func TestReviseNilPlan(t *testing.T) {
	_, err := New(&aitest.Model{}, nil).Revise(context.Background(), nil, "x")
	assert.ErrorIs(t, err, ErrEmptyPlan)
}
