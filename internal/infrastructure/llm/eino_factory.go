package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"scriptoria-api/internal/config"
	einoobs "scriptoria-api/internal/observability/eino"
	apperrors "scriptoria-api/pkg/errors"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config     *config.LLMConfig
	httpClient *http.Client
	models     map[string]model.BaseChatModel
	mu         sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// WithHTTPClient 指定出站 HTTP 客户端（测试中指向 httptest）
func (f *EinoFactory) WithHTTPClient(c *http.Client) *EinoFactory {
	f.httpClient = c
	return f
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端。
// 密钥缺失时返回配置错误且不缓存，补齐密钥后无需重启。
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name = f.resolveName(name)

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, err := f.providerConfig(name)
	if err != nil {
		return nil, err
	}
	apiKey := providerCfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, apperrors.ErrConfigMissing(providerCfg.CredentialName())
	}

	// 使用 Eino 的 OpenAI 适配器，网关为 OpenAI 兼容协议
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(strings.TrimSpace(providerCfg.BaseURL), "/"),
		Model:       providerCfg.Model,
		MaxTokens:   positiveInt(providerCfg.MaxTokens),
		Temperature: positiveFloat32(providerCfg.Temperature),
		Timeout:     providerCfg.Timeout,
		HTTPClient:  f.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	m = einoobs.Instrument(chatModel, name, providerCfg.Model)
	f.models[name] = m
	return m, nil
}

// CheckProvider 检查提供商存在且密钥可解析
func (f *EinoFactory) CheckProvider(name string) error {
	providerCfg, err := f.providerConfig(f.resolveName(name))
	if err != nil {
		return err
	}
	if providerCfg.ResolveAPIKey() == "" {
		return apperrors.ErrConfigMissing(providerCfg.CredentialName())
	}
	return nil
}

func (f *EinoFactory) resolveName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return f.config.DefaultProvider
}

func (f *EinoFactory) providerConfig(name string) (config.ProviderConfig, error) {
	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return config.ProviderConfig{}, fmt.Errorf("provider %s not found in LLM config", name)
	}
	return providerCfg, nil
}

// positiveInt 零值表示沿用网关默认
func positiveInt(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func positiveFloat32(v float64) *float32 {
	if v <= 0 {
		return nil
	}
	f := float32(v)
	return &f
}
