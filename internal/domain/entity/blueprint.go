// Package entity 定义领域实体
package entity

// SectionKey 蓝图分节键，取值即 JSON 字段名
type SectionKey string

const (
	SectionStory           SectionKey = "story"
	SectionCharacters      SectionKey = "characters"
	SectionCharacterDesign SectionKey = "characterDesign"
	SectionLocations       SectionKey = "locations"
	SectionScreenplay      SectionKey = "screenplay"
	SectionStoryboard      SectionKey = "storyboard"
	SectionVisualStyle     SectionKey = "visualStyle"
	SectionCostumes        SectionKey = "costumes"
	SectionProps           SectionKey = "props"
	SectionSound           SectionKey = "sound"
	SectionShots           SectionKey = "shots"
	SectionLighting        SectionKey = "lighting"
	SectionCasting         SectionKey = "casting"
	SectionProduction      SectionKey = "production"
)

// SectionKeys 全部分节，按展示顺序
var SectionKeys = []SectionKey{
	SectionStory,
	SectionCharacters,
	SectionCharacterDesign,
	SectionLocations,
	SectionScreenplay,
	SectionStoryboard,
	SectionVisualStyle,
	SectionCostumes,
	SectionProps,
	SectionSound,
	SectionShots,
	SectionLighting,
	SectionCasting,
	SectionProduction,
}

var sectionTitles = map[SectionKey]string{
	SectionStory:           "Story & Structure",
	SectionCharacters:      "Character Arcs",
	SectionCharacterDesign: "Character Design",
	SectionLocations:       "Locations",
	SectionScreenplay:      "Screenplay",
	SectionStoryboard:      "Storyboard Notes",
	SectionVisualStyle:     "Visual Style Guide",
	SectionCostumes:        "Costume Design",
	SectionProps:           "Props & Set Design",
	SectionSound:           "Sound Design",
	SectionShots:           "Shot List",
	SectionLighting:        "Lighting Design",
	SectionCasting:         "Casting Breakdown",
	SectionProduction:      "Production Plan",
}

// Title 分节展示标题
func (k SectionKey) Title() string {
	if t, ok := sectionTitles[k]; ok {
		return t
	}
	return string(k)
}

// FilmBlueprint 14 个固定分节的电影蓝图，每个字段始终序列化（可能为空串）
type FilmBlueprint struct {
	Story           string `json:"story"`
	Characters      string `json:"characters"`
	CharacterDesign string `json:"characterDesign"`
	Locations       string `json:"locations"`
	Screenplay      string `json:"screenplay"`
	Storyboard      string `json:"storyboard"`
	VisualStyle     string `json:"visualStyle"`
	Costumes        string `json:"costumes"`
	Props           string `json:"props"`
	Sound           string `json:"sound"`
	Shots           string `json:"shots"`
	Lighting        string `json:"lighting"`
	Casting         string `json:"casting"`
	Production      string `json:"production"`
}

// field 返回分节对应字段的指针；未知键返回 nil
func (b *FilmBlueprint) field(key SectionKey) *string {
	switch key {
	case SectionStory:
		return &b.Story
	case SectionCharacters:
		return &b.Characters
	case SectionCharacterDesign:
		return &b.CharacterDesign
	case SectionLocations:
		return &b.Locations
	case SectionScreenplay:
		return &b.Screenplay
	case SectionStoryboard:
		return &b.Storyboard
	case SectionVisualStyle:
		return &b.VisualStyle
	case SectionCostumes:
		return &b.Costumes
	case SectionProps:
		return &b.Props
	case SectionSound:
		return &b.Sound
	case SectionShots:
		return &b.Shots
	case SectionLighting:
		return &b.Lighting
	case SectionCasting:
		return &b.Casting
	case SectionProduction:
		return &b.Production
	default:
		return nil
	}
}

// Get 读取分节内容
func (b *FilmBlueprint) Get(key SectionKey) string {
	if p := b.field(key); p != nil {
		return *p
	}
	return ""
}

// Set 写入分节内容，未知键忽略并返回 false
func (b *FilmBlueprint) Set(key SectionKey, value string) bool {
	p := b.field(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// IsEmpty 所有分节均为空
func (b *FilmBlueprint) IsEmpty() bool {
	for _, k := range SectionKeys {
		if b.Get(k) != "" {
			return false
		}
	}
	return true
}

// EmptySections 返回内容为空的分节，按展示顺序
func (b *FilmBlueprint) EmptySections() []SectionKey {
	var out []SectionKey
	for _, k := range SectionKeys {
		if b.Get(k) == "" {
			out = append(out, k)
		}
	}
	return out
}
