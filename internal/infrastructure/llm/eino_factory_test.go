package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptoria-api/internal/config"
	apperrors "scriptoria-api/pkg/errors"
)

func testLLMConfig(baseURL, apiKey string) *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "lovable",
			Providers: map[string]config.ProviderConfig{
				"lovable": {
					APIKey:    apiKey,
					APIKeyEnv: "SCRIPTORIA_TEST_UNSET_KEY",
					BaseURL:   baseURL,
					Model:     "google/gemini-3-flash-preview",
				},
			},
		},
	}
}

func TestEinoFactory_MissingKey(t *testing.T) {
	f := NewEinoFactory(testLLMConfig("http://127.0.0.1:1", ""))

	_, err := f.Get(context.Background(), "")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeConfigMissing, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, "SCRIPTORIA_TEST_UNSET_KEY is not configured", appErr.Message)

	assert.Error(t, f.CheckProvider(""))
}

func TestEinoFactory_MissingKeyResolvedFromEnv(t *testing.T) {
	t.Setenv("SCRIPTORIA_TEST_UNSET_KEY", "from-env")
	f := NewEinoFactory(testLLMConfig("http://127.0.0.1:1", ""))

	assert.NoError(t, f.CheckProvider("lovable"))
	m, err := f.Get(context.Background(), "lovable")
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestEinoFactory_UnknownProvider(t *testing.T) {
	f := NewEinoFactory(testLLMConfig("http://127.0.0.1:1", "k"))
	_, err := f.Get(context.Background(), "nope")
	assert.Error(t, err)
}

func TestEinoFactory_CachesAndCalls(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	f := NewEinoFactory(testLLMConfig(srv.URL, "k")).WithHTTPClient(srv.Client())
	a, err := f.Get(context.Background(), "")
	require.NoError(t, err)
	b, err := f.Get(context.Background(), "lovable")
	require.NoError(t, err)
	assert.Same(t, a, b)

	out, err := a.Generate(context.Background(), []*schema.Message{schema.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Content)
	assert.Equal(t, 1, calls)
}
