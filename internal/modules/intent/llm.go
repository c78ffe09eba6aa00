package intent

import (
	"fmt"
	"math"
	"strings"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/types"
)

const (
	systemPrompt      = "你是意图识别助手，只返回JSON，不要解释。"
	maxPromptPlaces   = 10
	userPromptPattern = `分析用户查询并判断意图，返回JSON格式。

查询: "%s"
%s

判断规则:
- 新规划: 包含"去xxx玩x天"、"规划行程"等
- 修改行程: 包含"修改"、"调整"、"删除"、"添加"或提到当前景点名称
- 普通聊天: 询问信息、问候、推荐等

返回JSON (不要其他文字):
{
  "is_plan": true/false,
  "is_modification": true/false,
  "destination": "目的地或null",
  "duration": 天数或3,
  "intent_confidence": 0到1的数字
}`
)

func buildMessages(query string, plan *types.Plan) []ai.Message {
	attractions := ""
	if names := plan.AttractionNames(maxPromptPlaces); len(names) > 0 {
		attractions = "用户当前行程包含的景点: " + strings.Join(names, ", ")
	}
	return []ai.Message{
		ai.System(systemPrompt),
		ai.User(fmt.Sprintf(userPromptPattern, query, attractions)),
	}
}

// parseModelAnswer decodes the model JSON leniently: a field with the wrong
// type is treated as missing.
func parseModelAnswer(text string) (Result, error) {
	var raw map[string]any
	if err := ai.DecodeJSONObject(text, &raw); err != nil {
		return Result{}, err
	}
	return finalize(
		asBool(raw["is_plan"]),
		asBool(raw["is_modification"]),
		asDestination(raw["destination"]),
		asDuration(raw["duration"]),
		asConfidence(raw["intent_confidence"]),
	), nil
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

func asDestination(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "null", "none", "无":
		return ""
	}
	return s
}

func asDuration(v any) int {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 1 {
		return DefaultDuration
	}
	return int(f)
}

func asConfidence(v any) float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		return defaultLLMConfidence
	}
	return f
}
