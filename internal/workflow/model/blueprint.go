package model

import "scriptoria-api/internal/domain/entity"

type BlueprintGenerateInput struct {
	// Form 已填充默认值的表单
	Form entity.FormData

	ModelOverrides
}
