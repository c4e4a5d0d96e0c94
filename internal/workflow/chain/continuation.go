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

const WorkflowContinuation = "story_continue"

const naturalContinuation = "Continue the story naturally, following its established momentum."

// ContinuationChain 编译后的 template -> llm 链，单次同步生成
type ContinuationChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ContinuationGenerateInput, *schema.Message]
	chainErr  error
}

func NewContinuationChain(factory workflowport.ChatModelFactory) *ContinuationChain {
	return &ContinuationChain{factory: factory}
}

func (c *ContinuationChain) Invoke(ctx context.Context, in *wfmodel.ContinuationGenerateInput) (*schema.Message, error) {
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

type continuationChainState struct {
	In       *wfmodel.ContinuationGenerateInput
	Messages []*schema.Message
}

func (c *ContinuationChain) getChain() (compose.Runnable[*wfmodel.ContinuationGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *ContinuationChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ContinuationGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.ContinuationGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *wfmodel.ContinuationGenerateInput) (*continuationChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			msgs, err := FormatContinuationMessages(ctx, in)
			if err != nil {
				return nil, err
			}
			return &continuationChainState{In: in, Messages: msgs}, nil
		}),
		compose.WithNodeName("continuation.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *continuationChainState) (*schema.Message, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}

			provider := strings.TrimSpace(st.In.Provider)
			ctx = llmctx.WithWorkflowProvider(ctx, WorkflowContinuation, provider)
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
		compose.WithNodeName("continuation.llm"),
	)

	return chain.Compile(ctx)
}

func FormatContinuationMessages(ctx context.Context, in *wfmodel.ContinuationGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptContinuationV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"word_count":            in.WordCount,
		"existing_story":        in.ExistingStory,
		"direction_instruction": directionInstruction(in.Direction),
	}
	return tpl.Format(ctx, vars)
}

func directionInstruction(direction string) string {
	d := strings.TrimSpace(direction)
	if d == "" {
		return naturalContinuation
	}
	return fmt.Sprintf(`The writer wants the story to move in this direction: "%s"`, d)
}
