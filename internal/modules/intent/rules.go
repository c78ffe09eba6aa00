package intent

import (
	"regexp"
	"strconv"
	"strings"

	"tripcopilot/internal/types"
)

var newPlanPatterns = compileAll(
	`(我想|我要|帮我)(去|到)(.+?)(玩|旅游|旅行)(\d+)天`,
	`(规划|安排|制定)(.+?)(\d+)天(的)?(行程|旅行)`,
	`去(.+?)(\d+)天(的)?(行程|计划|旅游)`,
	`(我想|想要|想去)(.+?)(玩|旅游|游玩)(\d+)天`,
	`(\d+)天(.+?)(行程|旅游|旅行|游玩)`,
	`(想|要)去(.+?)(玩|旅游|旅行|游览)(\d+)天?`,
	`去(.+?)(\d+)天(旅游|游玩|玩)`,
	`到(.+?)(\d+)天(的)?(旅游|旅行|游玩)`,
)

var modifyPatterns = compileAll(
	`(修改|更改|调整|变更)(第\d+天|行程)`,
	`(删除|去掉|移除|取消)(.+?)`,
	`(添加|增加|加上|新增)(.+?)`,
	`把(.+?)(换成|替换为|改为)(.+?)`,
	`(第\d+天)(不去|改成|换成)(.+?)`,
	`(重新)(规划|安排)(行程|第\d+天)`,
)

var chatPatterns = compileAll(
	`(?i)^(你好|hello|hi)$`,
	`(什么是|介绍一下|告诉我)(.+?)`,
	`(.+?)(有什么|怎么样|好玩吗|特色|著名)`,
	`^(请问|能告诉我|我想知道|想了解)`,
	`(推荐|建议)(一些|几个)?(.+?)`,
	`(谢谢|感谢|不用了|算了|再见)`,
)

var (
	destinationPattern = regexp.MustCompile(`(去|到)(.+?)(玩|旅游|旅行)`)
	daysPattern        = regexp.MustCompile(`(\d+)天`)
	editVerbs          = []string{"修改", "调整", "换", "改", "删除", "去掉"}
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// matchRules is the deterministic tier. ok is false when no rule applies.
func matchRules(query string, plan *types.Plan) (Result, bool) {
	query = strings.TrimSpace(query)

	if matchAny(newPlanPatterns, query) {
		destination, duration := extractTrip(query)
		return finalize(true, false, destination, duration, ruleConfidence), true
	}

	if plan.HasItinerary() {
		duration := plan.TotalDays
		if matchAny(modifyPatterns, query) {
			return finalize(false, true, "", duration, ruleConfidence), true
		}
		if mentionsAttraction(query, plan) && containsEditVerb(strings.ToLower(query)) {
			return finalize(false, true, "", duration, mentionConfidence), true
		}
	}

	if matchAny(chatPatterns, query) {
		return finalize(false, false, "", DefaultDuration, ruleConfidence), true
	}
	return Result{}, false
}

// extractTrip pulls the destination between 去/到 and 玩/旅游/旅行, and the
// day count before 天.
func extractTrip(query string) (string, int) {
	destination := ""
	if m := destinationPattern.FindStringSubmatch(query); m != nil {
		destination = strings.TrimSpace(m[2])
	}
	duration := DefaultDuration
	if m := daysPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			duration = n
		}
	}
	return destination, duration
}

func mentionsAttraction(query string, plan *types.Plan) bool {
	for _, name := range plan.AttractionNames(0) {
		if strings.Contains(query, name) {
			return true
		}
	}
	return false
}

func containsEditVerb(s string) bool {
	for _, v := range editVerbs {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}
