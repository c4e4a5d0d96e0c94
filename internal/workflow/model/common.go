package model

import "time"

type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Duration         time.Duration
	GeneratedAt      time.Time
}

// ModelOverrides 单次调用的可选模型参数，为空时沿用提供商配置
type ModelOverrides struct {
	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}
