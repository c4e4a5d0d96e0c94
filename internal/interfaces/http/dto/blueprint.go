package dto

import "scriptoria-api/internal/domain/entity"

// GenerateBlueprintRequest 蓝图生成请求，字段均可选
type GenerateBlueprintRequest struct {
	Genre       string `json:"genre"`
	Tone        string `json:"tone"`
	Logline     string `json:"logline"`
	Setting     string `json:"setting"`
	Era         string `json:"era"`
	VisualStyle string `json:"visualStyle"`
	Budget      string `json:"budget"`
}

func (r *GenerateBlueprintRequest) ToFormData() entity.FormData {
	return entity.FormData{
		Genre:       r.Genre,
		Tone:        r.Tone,
		Logline:     r.Logline,
		Setting:     r.Setting,
		Era:         r.Era,
		VisualStyle: r.VisualStyle,
		Budget:      entity.Budget(r.Budget),
	}
}

// GenerateBlueprintResponse 蓝图生成响应；missingSections 仅在部分解析时出现
type GenerateBlueprintResponse struct {
	Blueprint       entity.FilmBlueprint `json:"blueprint"`
	MissingSections []entity.SectionKey  `json:"missingSections,omitempty"`
}
