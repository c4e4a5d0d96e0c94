package chain

import (
	"strings"

	"github.com/cloudwego/eino/components/model"

	wfmodel "scriptoria-api/internal/workflow/model"
	workflowprompt "scriptoria-api/internal/workflow/prompt"
)

var defaultPromptRegistry = workflowprompt.NewRegistry()

// PreloadPrompts 解析全部内置提示词模板
func PreloadPrompts() error {
	return defaultPromptRegistry.Preload()
}

func buildModelOptions(in wfmodel.ModelOverrides) []model.Option {
	opts := make([]model.Option, 0, 3)

	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	return opts
}
