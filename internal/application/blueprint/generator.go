package blueprint

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scriptoria-api/internal/domain/entity"
	workflowchain "scriptoria-api/internal/workflow/chain"
	wfmodel "scriptoria-api/internal/workflow/model"
	workflowport "scriptoria-api/internal/workflow/port"
	apperrors "scriptoria-api/pkg/errors"
	"scriptoria-api/pkg/logger"
	"scriptoria-api/pkg/metrics"
)

type GenerateOutput struct {
	Blueprint entity.FilmBlueprint
	// Missing 部分解析时为空的分节
	Missing  []entity.SectionKey
	Fallback bool
	Raw      string
	Meta     wfmodel.LLMUsageMeta
}

type Generator struct {
	chain    *workflowchain.BlueprintChain
	provider string
}

func NewGenerator(factory workflowport.ChatModelFactory, provider string) *Generator {
	return &Generator{
		chain:    workflowchain.NewBlueprintChain(factory),
		provider: strings.TrimSpace(provider),
	}
}

// Generate 填充默认值、调用模型并解析为 14 个分节；错误统一归类为 AppError
func (g *Generator) Generate(ctx context.Context, form entity.FormData) (*GenerateOutput, error) {
	if g == nil || g.chain == nil {
		return nil, fmt.Errorf("blueprint workflow not configured")
	}

	in := &wfmodel.BlueprintGenerateInput{
		Form:           form.WithDefaults(),
		ModelOverrides: wfmodel.ModelOverrides{Provider: g.provider},
	}

	if !in.Form.Budget.Valid() {
		logger.Warn(ctx, "unknown budget, using medium budget label",
			"budget", string(in.Form.Budget),
		)
	}

	start := time.Now()
	logger.Info(ctx, "generating blueprint",
		"genre", in.Form.Genre,
		"budget", in.Form.Budget.Label(),
	)

	outMsg, err := g.chain.Invoke(ctx, in)
	if err != nil {
		appErr := apperrors.FromLLMError(err)
		metrics.BlueprintGenerationTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "blueprint generation failed", err,
			"status", appErr.HTTPStatus,
			"code", string(appErr.Code),
		)
		return nil, appErr
	}

	res := ParseBlueprint(outMsg.Content)
	out := &GenerateOutput{
		Blueprint: res.Blueprint,
		Missing:   res.Missing,
		Fallback:  res.Fallback,
		Raw:       outMsg.Content,
		Meta: wfmodel.LLMUsageMeta{
			Provider:    g.provider,
			Duration:    time.Since(start),
			GeneratedAt: time.Now().UTC(),
		},
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		out.Meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		out.Meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	metrics.BlueprintGenerationTotal.WithLabelValues("success").Inc()
	metrics.BlueprintSectionsParsed.Observe(float64(len(entity.SectionKeys) - len(res.Blueprint.EmptySections())))
	switch {
	case res.Fallback:
		metrics.BlueprintParseOutcome.WithLabelValues("fallback").Inc()
		logger.Warn(ctx, "blueprint parse found no sections, falling back to story",
			"content_length", len(outMsg.Content),
		)
	case len(res.Missing) > 0:
		metrics.BlueprintParseOutcome.WithLabelValues("partial").Inc()
		logger.Warn(ctx, "blueprint parse incomplete",
			"matched", len(res.Matched),
			"missing", sectionNames(res.Missing),
		)
	default:
		metrics.BlueprintParseOutcome.WithLabelValues("complete").Inc()
	}

	logger.Info(ctx, "blueprint generated",
		"duration_ms", out.Meta.Duration.Milliseconds(),
		"prompt_tokens", out.Meta.PromptTokens,
		"completion_tokens", out.Meta.CompletionTokens,
	)
	return out, nil
}

func sectionNames(keys []entity.SectionKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}
