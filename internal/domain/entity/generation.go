// Package entity 定义领域实体
package entity

import "time"

// GenerationMetadata 生成元数据
type GenerationMetadata struct {
	Provider         string    `json:"provider,omitempty"`
	Model            string    `json:"model,omitempty"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	DurationMs       int64     `json:"duration_ms,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// ContinuationRequest 续写输入
type ContinuationRequest struct {
	ExistingStory string `json:"existingStory"`
	Direction     string `json:"direction,omitempty"`
}

// ContinuationResult 续写结果，单块文本
type ContinuationResult struct {
	Text      string             `json:"continuation"`
	WordCount int                `json:"-"`
	Meta      GenerationMetadata `json:"-"`
}
