// Package continuation 故事续写
package continuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scriptoria-api/internal/domain/entity"
	workflowchain "scriptoria-api/internal/workflow/chain"
	wfmodel "scriptoria-api/internal/workflow/model"
	wfnode "scriptoria-api/internal/workflow/node"
	workflowport "scriptoria-api/internal/workflow/port"
	apperrors "scriptoria-api/pkg/errors"
	"scriptoria-api/pkg/logger"
	"scriptoria-api/pkg/metrics"
)

// logExcerptRunes 日志中保留的故事开头长度
const logExcerptRunes = 80

type Generator struct {
	chain    *workflowchain.ContinuationChain
	provider string
}

func NewGenerator(factory workflowport.ChatModelFactory, provider string) *Generator {
	return &Generator{
		chain:    workflowchain.NewContinuationChain(factory),
		provider: strings.TrimSpace(provider),
	}
}

// Generate 校验输入后调用模型，原样返回补全文本。
// 空故事在取模型之前拒绝，因此缺少密钥时空输入仍返回 400。
func (g *Generator) Generate(ctx context.Context, req entity.ContinuationRequest) (*entity.ContinuationResult, error) {
	if g == nil || g.chain == nil {
		return nil, fmt.Errorf("continuation workflow not configured")
	}
	if strings.TrimSpace(req.ExistingStory) == "" {
		metrics.ContinuationTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidParam(apperrors.MsgStoryRequired)
	}

	in := &wfmodel.ContinuationGenerateInput{
		ExistingStory:  req.ExistingStory,
		Direction:      req.Direction,
		WordCount:      wfnode.CountWords(req.ExistingStory),
		ModelOverrides: wfmodel.ModelOverrides{Provider: g.provider},
	}
	metrics.StoryWordCount.Observe(float64(in.WordCount))

	start := time.Now()
	logger.Info(ctx, "generating story continuation",
		"word_count", in.WordCount,
		"has_direction", strings.TrimSpace(in.Direction) != "",
		"excerpt", wfnode.TruncateByRunes(in.ExistingStory, logExcerptRunes),
	)

	outMsg, err := g.chain.Invoke(ctx, in)
	if err != nil {
		appErr := apperrors.FromLLMError(err)
		metrics.ContinuationTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "story continuation failed", err,
			"status", appErr.HTTPStatus,
			"code", string(appErr.Code),
		)
		return nil, appErr
	}

	res := &entity.ContinuationResult{
		Text:      outMsg.Content,
		WordCount: in.WordCount,
		Meta: entity.GenerationMetadata{
			Provider:    g.provider,
			DurationMs:  time.Since(start).Milliseconds(),
			GeneratedAt: time.Now().UTC(),
		},
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		res.Meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		res.Meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	metrics.ContinuationTotal.WithLabelValues("success").Inc()
	logger.Info(ctx, "story continuation generated",
		"duration_ms", res.Meta.DurationMs,
		"content_length", len(res.Text),
	)
	return res, nil
}
