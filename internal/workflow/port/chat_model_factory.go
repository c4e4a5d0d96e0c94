package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 工作流层对 LLM ChatModel 的依赖，name 为空时取默认提供商
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
}

// ProviderChecker 检查提供商是否可用（密钥已配置），供就绪探针使用
type ProviderChecker interface {
	CheckProvider(name string) error
}
