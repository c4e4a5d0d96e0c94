// Package blueprint 电影蓝图生成与解析
package blueprint

import (
	"regexp"
	"strings"

	"scriptoria-api/internal/domain/entity"
)

// sectionPattern 标题关键字到分节的映射
type sectionPattern struct {
	key      entity.SectionKey
	keywords []string
}

// sectionPatterns 按优先级排列，首个命中的分节生效。
// storyboard 必须排在 story 之前，否则 "Storyboard Notes" 会归入 story。
var sectionPatterns = []sectionPattern{
	{entity.SectionStoryboard, []string{"storyboard"}},
	{entity.SectionStory, []string{"story", "structure", "story & structure", "story and structure"}},
	{entity.SectionCharacters, []string{"character arc", "character arcs"}},
	{entity.SectionCharacterDesign, []string{"character design"}},
	{entity.SectionLocations, []string{"location"}},
	{entity.SectionScreenplay, []string{"screenplay"}},
	{entity.SectionVisualStyle, []string{"visual style", "visual guide"}},
	{entity.SectionCostumes, []string{"costume"}},
	{entity.SectionProps, []string{"prop", "set design"}},
	{entity.SectionSound, []string{"sound"}},
	{entity.SectionShots, []string{"shot list", "shot"}},
	{entity.SectionLighting, []string{"lighting"}},
	{entity.SectionCasting, []string{"casting"}},
	{entity.SectionProduction, []string{"production"}},
}

var numberedHeading = regexp.MustCompile(`^\d+\.`)

var headingMarks = strings.NewReplacer("*", "", "#", "")

// ParseResult 解析结果
type ParseResult struct {
	Blueprint entity.FilmBlueprint
	// Matched 至少匹配过一次标题的分节，按首次出现顺序
	Matched []entity.SectionKey
	// Missing 在有分节命中的前提下，最终内容为空的分节
	Missing []entity.SectionKey
	// Fallback 没有任何分节被填充，原文整体写入 story
	Fallback bool
}

// ParseBlueprint 将模型输出按标题关键字切分到 14 个分节，永不失败
func ParseBlueprint(content string) *ParseResult {
	res := &ParseResult{}
	bp := &res.Blueprint

	var (
		current entity.SectionKey
		buf     []string
		seen    = make(map[entity.SectionKey]bool)
	)

	flush := func() {
		if current != "" && len(buf) > 0 {
			bp.Set(current, strings.TrimSpace(strings.Join(buf, "\n")))
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if key, ok := matchHeading(line); ok {
			flush()
			current = key
			buf = buf[:0]
			if !seen[key] {
				seen[key] = true
				res.Matched = append(res.Matched, key)
			}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	if bp.IsEmpty() {
		bp.Story = content
		res.Fallback = true
		return res
	}
	res.Missing = bp.EmptySections()
	return res
}

// matchHeading 判断一行是否为可识别的分节标题
func matchHeading(line string) (entity.SectionKey, bool) {
	if !isHeadingCandidate(line) {
		return "", false
	}
	clean := headingMarks.Replace(strings.ToLower(line))
	for _, p := range sectionPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(clean, kw) {
				return p.key, true
			}
		}
	}
	return "", false
}

func isHeadingCandidate(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "**") ||
		numberedHeading.MatchString(strings.TrimSpace(line))
}
