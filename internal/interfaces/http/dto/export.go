package dto

import "scriptoria-api/internal/domain/entity"

// ExportBlueprintRequest 蓝图导出请求
type ExportBlueprintRequest struct {
	Title     string                `json:"title"`
	Blueprint *entity.FilmBlueprint `json:"blueprint"`
}

// ExportContinuationRequest 续写导出请求
type ExportContinuationRequest struct {
	Title        string `json:"title"`
	Continuation string `json:"continuation"`
}
