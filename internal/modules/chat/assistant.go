// README: Streamed travel chat with the caller's map and plan state as background.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tripcopilot/internal/ai"
	"tripcopilot/internal/maps"
	"tripcopilot/internal/types"
)

const systemPrompt = `你是一位专业友好的旅行助手，名叫Trip Copilot。你可以：
1. 为用户提供旅行建议和规划
2. 回答关于目的地的问题
3. 推荐景点、美食、住宿等
4. 帮助估算旅行费用
5. 解释地图上的标记和路径规划
6. 基于当前行程规划提供建议和修改意见
7. 解答关于具体景点位置和交通方式的问题

重要提示：
- 如果用户提到地图、路径、行程或具体景点，请结合提供的背景信息回答
- 如果背景信息中包含行程规划数据，你可以参考这些信息来回答用户问题
- 如果用户询问路径或交通，你可以基于已规划的路线给出建议
- 请用友好、专业的语气回复用户。`

type Assistant struct {
	model  ai.ChatModel
	logger *slog.Logger
}

func NewAssistant(model ai.ChatModel, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{model: model, logger: logger}
}

// Stream answers message, forwarding each model chunk to onChunk.
// background is the optional client state, usually JSON.
func (a *Assistant) Stream(ctx context.Context, message, background string, onChunk func(string) error) error {
	messages := []ai.Message{ai.System(systemPrompt), ai.User(message)}
	if bg := RenderBackground(background); bg != "" {
		messages = append(messages, ai.User("背景信息："+bg))
	}
	a.logger.Info("chat stream started", slog.Int("message_chars", len([]rune(message))), slog.Bool("background", background != ""))
	return a.model.Stream(ctx, messages, onChunk)
}

type routeEnd struct {
	Name string `json:"name"`
}

type routeState struct {
	StartPoint *routeEnd `json:"start_point"`
	EndPoint   *routeEnd `json:"end_point"`
	Mode       string    `json:"mode"`
}

type clientState struct {
	CurrentPlan  *types.Plan `json:"currentPlan"`
	CurrentRoute *routeState `json:"currentRoute"`
	SelectedDay  any         `json:"selectedDay"`
}

// RenderBackground turns the client state into a short description. Text
// that is not a JSON object, or carries none of the known keys, is returned
// unchanged.
func RenderBackground(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var st clientState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return raw
	}

	var parts []string
	if p := st.CurrentPlan; p != nil {
		dest := p.Destination
		if dest == "" {
			dest = "未知目的地"
		}
		days := "N"
		if p.TotalDays > 0 {
			days = strconv.Itoa(p.TotalDays)
		}
		parts = append(parts, fmt.Sprintf("当前行程规划：%s%s日游", dest, days))
		if len(p.Itinerary) > 0 {
			parts = append(parts, "详细安排：")
			for _, day := range p.Itinerary {
				theme := day.Theme
				if theme == "" {
					theme = "主题未定"
				}
				names := make([]string, 0, len(day.Places))
				for _, place := range day.Places {
					names = append(names, place.Name)
				}
				parts = append(parts, fmt.Sprintf("第%d天（%s）：%s", day.Day, theme, strings.Join(names, " -> ")))
			}
		}
	}
	if r := st.CurrentRoute; r != nil {
		start, end := "起点", "终点"
		if r.StartPoint != nil && r.StartPoint.Name != "" {
			start = r.StartPoint.Name
		}
		if r.EndPoint != nil && r.EndPoint.Name != "" {
			end = r.EndPoint.Name
		}
		mode := maps.Mode(r.Mode)
		if mode == "" {
			mode = maps.ModeDriving
		}
		parts = append(parts, fmt.Sprintf("当前路径规划：%s → %s（%s）", start, end, mode.Label()))
	}
	if st.SelectedDay != nil {
		parts = append(parts, fmt.Sprintf("当前查看：第%v天的行程", st.SelectedDay))
	}

	if len(parts) == 0 {
		return raw
	}
	return "当前状态：\n" + strings.Join(parts, "\n")
}
