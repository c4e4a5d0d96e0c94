package chain

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptoria-api/internal/domain/entity"
	"scriptoria-api/internal/testutil/llmfake"
	wfmodel "scriptoria-api/internal/workflow/model"
	apperrors "scriptoria-api/pkg/errors"
)

func TestBlueprintChain_InvokeWithOverrides(t *testing.T) {
	fake := &llmfake.ChatModel{Content: "## Story\nAct one."}
	factory := &llmfake.Factory{Model: fake}
	c := NewBlueprintChain(factory)

	temp := float32(0.4)
	maxTokens := 512
	out, err := c.Invoke(context.Background(), &wfmodel.BlueprintGenerateInput{
		Form: entity.FormData{Genre: "Noir", Budget: entity.BudgetLow}.WithDefaults(),
		ModelOverrides: wfmodel.ModelOverrides{
			Provider:    " lovable ",
			Model:       "other/model",
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "## Story\nAct one.", out.Content)

	assert.Equal(t, []string{"lovable"}, factory.Requested)
	require.NotNil(t, fake.Options.Model)
	assert.Equal(t, "other/model", *fake.Options.Model)
	require.NotNil(t, fake.Options.Temperature)
	assert.InDelta(t, 0.4, *fake.Options.Temperature, 0.0001)
	require.NotNil(t, fake.Options.MaxTokens)
	assert.Equal(t, 512, *fake.Options.MaxTokens)

	assert.Contains(t, fake.UserPrompt(), "Budget Level: Low Budget")
}

func TestBlueprintChain_UpstreamStatusSurvivesCompose(t *testing.T) {
	fake := &llmfake.ChatModel{Err: llmfake.UpstreamError(http.StatusTooManyRequests)}
	c := NewBlueprintChain(&llmfake.Factory{Model: fake})

	_, err := c.Invoke(context.Background(), &wfmodel.BlueprintGenerateInput{Form: entity.FormData{}.WithDefaults()})
	require.Error(t, err)

	var apiErr *openai.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
	assert.Equal(t, apperrors.MsgRateLimited, apperrors.FromLLMError(err).Message)
}

func TestBlueprintChain_FactoryErrorKeepsAppError(t *testing.T) {
	c := NewBlueprintChain(&llmfake.Factory{Err: apperrors.ErrConfigMissing("LOVABLE_API_KEY")})

	_, err := c.Invoke(context.Background(), &wfmodel.BlueprintGenerateInput{Form: entity.FormData{}.WithDefaults()})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigMissing, apperrors.FromLLMError(err).Code)
}

func TestChains_RejectNilInput(t *testing.T) {
	_, err := NewBlueprintChain(&llmfake.Factory{}).Invoke(context.Background(), nil)
	assert.Error(t, err)
	_, err = NewContinuationChain(&llmfake.Factory{}).Invoke(context.Background(), nil)
	assert.Error(t, err)
	_, err = NewContinuationChain(nil).Invoke(context.Background(), &wfmodel.ContinuationGenerateInput{})
	assert.Error(t, err)
}

func TestContinuationChain_DirectionInstruction(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		want      string
	}{
		{"natural", "   ", naturalContinuation},
		{"directed", "toward the sea", `The writer wants the story to move in this direction: "toward the sea"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &llmfake.ChatModel{Content: "## Analysis\nok"}
			c := NewContinuationChain(&llmfake.Factory{Model: fake})

			out, err := c.Invoke(context.Background(), &wfmodel.ContinuationGenerateInput{
				ExistingStory: "Rain fell hard.",
				Direction:     tt.direction,
				WordCount:     3,
			})
			require.NoError(t, err)
			assert.Equal(t, "## Analysis\nok", out.Content)
			assert.Contains(t, fake.UserPrompt(), tt.want)
			assert.Contains(t, fake.UserPrompt(), "(3 words)")
		})
	}
}

func TestPreloadPrompts(t *testing.T) {
	assert.NoError(t, PreloadPrompts())
}
