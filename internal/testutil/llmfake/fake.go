// Package llmfake 测试用的 ChatModel 与工厂替身
package llmfake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModel 记录收到的消息并返回预设结果
type ChatModel struct {
	mu sync.Mutex

	Content string
	Usage   *schema.TokenUsage
	Err     error

	Calls    int
	Messages []*schema.Message
	Options  *model.Options
}

func (m *ChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Messages = input
	m.Options = model.GetCommonOptions(&model.Options{}, opts...)
	if m.Err != nil {
		return nil, m.Err
	}
	out := schema.AssistantMessage(m.Content, nil)
	if m.Usage != nil {
		out.ResponseMeta = &schema.ResponseMeta{Usage: m.Usage}
	}
	return out, nil
}

func (m *ChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

// UserPrompt 最近一次调用的 user 消息内容
func (m *ChatModel) UserPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if msg != nil && msg.Role == schema.User {
			return msg.Content
		}
	}
	return ""
}

// Factory 固定返回同一个 ChatModel，或返回 Err
type Factory struct {
	Model *ChatModel
	Err   error

	Requested []string
}

func (f *Factory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.Requested = append(f.Requested, name)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Model, nil
}

func (f *Factory) CheckProvider(_ string) error {
	return f.Err
}

// UpstreamError 模拟网关以 JSON 错误体返回的非 2xx 状态
func UpstreamError(code int) error {
	return &openai.APIError{
		Message:        http.StatusText(code),
		HTTPStatus:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		HTTPStatusCode: code,
	}
}
