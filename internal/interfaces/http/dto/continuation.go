package dto

import "scriptoria-api/internal/domain/entity"

// ContinueStoryRequest 续写请求；existingStory 的非空校验在应用层完成
type ContinueStoryRequest struct {
	ExistingStory string `json:"existingStory"`
	Direction     string `json:"direction"`
}

func (r *ContinueStoryRequest) ToEntity() entity.ContinuationRequest {
	return entity.ContinuationRequest{
		ExistingStory: r.ExistingStory,
		Direction:     r.Direction,
	}
}

// ContinueStoryResponse 续写响应
type ContinueStoryResponse struct {
	Continuation string `json:"continuation"`
}
