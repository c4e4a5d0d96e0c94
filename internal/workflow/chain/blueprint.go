package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "scriptoria-api/internal/domain/service"
	wfmodel "scriptoria-api/internal/workflow/model"
	workflowport "scriptoria-api/internal/workflow/port"
	workflowprompt "scriptoria-api/internal/workflow/prompt"
)

const WorkflowBlueprint = "blueprint_generate"

// BlueprintChain 编译后的 template -> llm 链，单次同步生成
type BlueprintChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.BlueprintGenerateInput, *schema.Message]
	chainErr  error
}

func NewBlueprintChain(factory workflowport.ChatModelFactory) *BlueprintChain {
	return &BlueprintChain{factory: factory}
}

func (c *BlueprintChain) Invoke(ctx context.Context, in *wfmodel.BlueprintGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type blueprintChainState struct {
	In       *wfmodel.BlueprintGenerateInput
	Messages []*schema.Message
}

func (c *BlueprintChain) getChain() (compose.Runnable[*wfmodel.BlueprintGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *BlueprintChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.BlueprintGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.BlueprintGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *wfmodel.BlueprintGenerateInput) (*blueprintChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			msgs, err := FormatBlueprintMessages(ctx, in)
			if err != nil {
				return nil, err
			}
			return &blueprintChainState{In: in, Messages: msgs}, nil
		}),
		compose.WithNodeName("blueprint.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *blueprintChainState) (*schema.Message, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}

			provider := strings.TrimSpace(st.In.Provider)
			ctx = llmctx.WithWorkflowProvider(ctx, WorkflowBlueprint, provider)
			chatModel, err := c.factory.Get(ctx, provider)
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildModelOptions(st.In.ModelOverrides)...)
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			return outMsg, nil
		}),
		compose.WithNodeName("blueprint.llm"),
	)

	return chain.Compile(ctx)
}

// FormatBlueprintMessages 渲染 system + user 两条消息
func FormatBlueprintMessages(ctx context.Context, in *wfmodel.BlueprintGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptBlueprintV1)
	if err != nil {
		return nil, err
	}
	f := in.Form
	vars := map[string]any{
		"genre":        f.Genre,
		"tone":         f.Tone,
		"logline":      f.Logline,
		"setting":      f.Setting,
		"era":          f.Era,
		"visual_style": f.VisualStyle,
		"budget_label": f.Budget.Label(),
	}
	return tpl.Format(ctx, vars)
}
