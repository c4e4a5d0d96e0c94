// Package eino 为 eino ChatModel 调用补充指标与追踪
package eino

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	llmctx "scriptoria-api/internal/domain/service"
	apperrors "scriptoria-api/pkg/errors"
	"scriptoria-api/pkg/metrics"
)

const tracerName = "eino"

// instrumentedChatModel 在每次 Generate 前后记录 span、调用次数、耗时与 token 消耗
type instrumentedChatModel struct {
	inner        model.BaseChatModel
	provider     string
	defaultModel string
}

// Instrument 包装 ChatModel；provider 用于 ctx 未标记提供商时的指标标签
func Instrument(inner model.BaseChatModel, provider, defaultModel string) model.BaseChatModel {
	if inner == nil {
		return nil
	}
	return &instrumentedChatModel{inner: inner, provider: provider, defaultModel: defaultModel}
}

func (m *instrumentedChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	start := time.Now()
	workflow := llmctx.WorkflowFromContext(ctx)
	provider := llmctx.ProviderFromContext(ctx)
	if provider == "unknown" && m.provider != "" {
		provider = m.provider
	}
	modelName := m.modelName(opts)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("eino.workflow", workflow),
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", modelName),
		attribute.Int("llm.messages", len(input)),
	))
	defer span.End()

	out, err := m.inner.Generate(ctx, input, opts...)
	metrics.LLMCallDuration.WithLabelValues(workflow, provider, modelName).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "error").Inc()
		if code, ok := apperrors.UpstreamStatus(err); ok {
			span.SetAttributes(attribute.String("llm.upstream_status", strconv.Itoa(code)))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.LLMCallTotal.WithLabelValues(workflow, provider, modelName, "success").Inc()
	if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		usage := out.ResponseMeta.Usage
		metrics.LLMTokensUsed.WithLabelValues(workflow, provider, modelName, "prompt").Add(float64(usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(workflow, provider, modelName, "completion").Add(float64(usage.CompletionTokens))
		span.SetAttributes(
			attribute.Int("llm.prompt_tokens", usage.PromptTokens),
			attribute.Int("llm.completion_tokens", usage.CompletionTokens),
		)
	}
	return out, nil
}

func (m *instrumentedChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return m.inner.Stream(ctx, input, opts...)
}

func (m *instrumentedChatModel) modelName(opts []model.Option) string {
	name := m.defaultModel
	base := model.Options{Model: &name}
	if o := model.GetCommonOptions(&base, opts...); o.Model != nil {
		return *o.Model
	}
	return name
}
