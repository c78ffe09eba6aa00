package planner

const (
	outlineSystemPrompt  = "你是一位专业友好的旅行助手，名叫Trip Copilot。"
	outlinePromptPattern = `请为用户制定一个详细的%s%d天旅行行程规划。

要求：
1. 为每一天按顺序推荐3-4个逻辑上顺路的地点
2. 每天都要有一个主题描述
3. 每个地点按照省市+具体地点名称的形式输出，不要包含区县名称，例如"四川省成都市武侯祠"而不是"四川省成都市武侯区武侯祠"
4. 为每个地点添加详细介绍
5. 为每个地点添加建议停留时间（小时）
6. 地点名称要具体准确，便于地图定位，格式为"省市+景点名称"
7. 不要包含区县信息，避免定位错误
8. 同一天的地点应该地理位置相对集中，便于游览
9. 每天3-4个地点即可，不要过多`

	planSystemPromptPattern = `给你一个已经计划好的行程规划，你必须严格按照要求的JSON格式返回结果，每个地点按照省市+具体地点名称的形式输出。

返回格式示例：
{
  "destination": "%s",
  "total_days": %d,
  "itinerary": [
    {
      "day": 1,
      "theme": "第一天主题描述",
      "places": [
        {"name": "具体地点名称1", "description": "地点详细描述", "duration": 2.5},
        {"name": "具体地点名称2", "description": "地点详细描述", "duration": 2.0},
        {"name": "具体地点名称3", "description": "地点详细描述", "duration": 1.5}
      ]
    },
    {
      "day": 2,
      "theme": "第二天主题描述",
      "places": [
        {"name": "具体地点名称4", "description": "地点详细描述", "duration": 2.5},
        {"name": "具体地点名称5", "description": "地点详细描述", "duration": 2.0},
        {"name": "具体地点名称6", "description": "地点详细描述", "duration": 1.5}
      ]
    }
  ]
}`

	directPlanPromptPattern = "请为%s制定%d天的旅行行程规划，每天3-4个地理位置集中的地点。"

	reviseSystemPrompt  = "你是一个JSON编辑专家，专门根据指令修改旅行计划。"
	revisePromptPattern = `你是一个智能行程规划编辑助手。你的任务是根据用户的修改要求，更新一份已有的JSON格式的旅行计划。

**当前行程规划 (JSON格式):**
%s

**用户的修改要求:**
"%s"

**你的任务:**
1. 理解用户的修改要求（可能是增加、删除或替换某个地点）。
2. 修改上面的JSON数据以反映这些变化。
3. **严格要求**：返回一个完整的、经过修改的JSON对象。除了JSON本身，不要包含任何额外的解释、注释或道歉。其结构必须与原始JSON完全一致。
4. 对于新增的地点，请按照"省市+具体地点名称"的格式，例如"四川省成都市武侯祠"。
5. 保持每天的地点数量适中（3-4个），确保地理位置相对集中。
6. 新增地点需要包含详细描述和建议停留时间。

请严格按照以下JSON格式返回，不要包含任何额外的解释性文字：
`
)
