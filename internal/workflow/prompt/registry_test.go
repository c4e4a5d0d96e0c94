package prompt

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BlueprintTemplate(t *testing.T) {
	r := NewRegistry()
	tpl, err := r.ChatTemplate(PromptBlueprintV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"genre":        "Noir",
		"tone":         "Bleak",
		"logline":      "A detective {loses} everything.",
		"setting":      "Harbor town",
		"era":          "1940s",
		"visual_style": "High contrast",
		"budget_label": "Low Budget",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "14. **Production Plan**")
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Genre: Noir")
	assert.Contains(t, msgs[1].Content, "Logline: A detective {loses} everything.")
	assert.Contains(t, msgs[1].Content, "Budget Level: Low Budget")
}

func TestRegistry_ContinuationTemplate(t *testing.T) {
	r := NewRegistry()
	tpl, err := r.ChatTemplate(PromptContinuationV1)
	require.NoError(t, err)

	msgs, err := tpl.Format(context.Background(), map[string]any{
		"word_count":            3,
		"existing_story":        "Rain fell hard.",
		"direction_instruction": "Go north.",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Content, "Immediate Next Beat")
	assert.Contains(t, msgs[1].Content, "(3 words)")
	assert.Contains(t, msgs[1].Content, "---\nRain fell hard.\n---")
	assert.Contains(t, msgs[1].Content, "Go north.")
}

func TestRegistry_CachesTemplate(t *testing.T) {
	r := NewRegistry()
	a, err := r.ChatTemplate(PromptBlueprintV1)
	require.NoError(t, err)
	b, err := r.ChatTemplate(PromptBlueprintV1)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestRegistry_UnknownPrompt(t *testing.T) {
	_, err := NewRegistry().ChatTemplate("nope")
	assert.Error(t, err)
}

func TestRegistry_PreloadEmbedded(t *testing.T) {
	require.NoError(t, NewRegistry().Preload())
	assert.Equal(t, []PromptID{PromptBlueprintV1, PromptContinuationV1}, IDs())
}

func TestRegistry_MissingOrEmptyFile(t *testing.T) {
	r := NewRegistryFS(fstest.MapFS{
		"templates/blueprint_v1.system.txt": {Data: []byte("system {genre}")},
		"templates/blueprint_v1.user.txt":   {Data: []byte("  \n")},
	})

	_, err := r.ChatTemplate(PromptBlueprintV1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user template is empty")

	_, err = r.ChatTemplate(PromptContinuationV1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "continuation_v1 system")

	assert.Error(t, r.Preload())
}
