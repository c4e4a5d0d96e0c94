package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptoria-api/internal/application/blueprint"
	"scriptoria-api/internal/application/continuation"
	"scriptoria-api/internal/config"
	"scriptoria-api/internal/interfaces/http/handler"
	"scriptoria-api/internal/testutil/llmfake"
	apperrors "scriptoria-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "scriptoria-api"
	cfg.App.Env = "test"
	cfg.Server.HTTP.MaxBodyBytes = 1 << 20
	return cfg
}

func newTestRouter(t *testing.T, factory *llmfake.Factory, limiter *fixedLimiter) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	h := &Handlers{
		Blueprint:    handler.NewBlueprintHandler(blueprint.NewGenerator(factory, "lovable")),
		Continuation: handler.NewContinuationHandler(continuation.NewGenerator(factory, "lovable")),
		Export:       handler.NewExportHandler(),
		Health:       handler.NewHealthHandler("test", factory, nil),
		UI:           handler.NewUIHandler("Scriptoria"),
	}
	var r *Router
	var err error
	if limiter != nil {
		cfg.Security.RateLimit.Enabled = true
		cfg.Security.RateLimit.RequestsPerMinute = 1
		r, err = New(cfg, h, limiter)
	} else {
		r, err = New(cfg, h, nil)
	}
	require.NoError(t, err)
	return r.Engine()
}

type fixedLimiter struct {
	allow bool
	keys  []string
}

func (l *fixedLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, nil
}

func doJSON(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestGenerateBlueprint_Success(t *testing.T) {
	fake := &llmfake.ChatModel{Content: "## Story & Structure\nAct one.\n## Sound Design\nRain."}
	e := newTestRouter(t, &llmfake.Factory{Model: fake}, nil)

	for _, path := range []string{"/v1/blueprints/generate", "/functions/v1/generate-blueprint"} {
		w := doJSON(e, http.MethodPost, path, `{"genre":"Noir","budget":"low"}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp struct {
			Blueprint       map[string]string `json:"blueprint"`
			MissingSections []string          `json:"missingSections"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Blueprint, 14)
		assert.Equal(t, "Act one.", resp.Blueprint["story"])
		assert.Equal(t, "Rain.", resp.Blueprint["sound"])
		assert.Equal(t, "", resp.Blueprint["shots"])
		assert.Len(t, resp.MissingSections, 12)
	}
	assert.Contains(t, fake.UserPrompt(), "Budget Level: Low Budget")
}

func TestGenerateBlueprint_InvalidBody(t *testing.T) {
	fake := &llmfake.ChatModel{}
	e := newTestRouter(t, &llmfake.Factory{Model: fake}, nil)

	w := doJSON(e, http.MethodPost, "/v1/blueprints/generate", `{"genre":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeError(t, w))
	assert.Zero(t, fake.Calls)
}

func TestGenerateBlueprint_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		factory    *llmfake.Factory
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", &llmfake.Factory{Model: &llmfake.ChatModel{Err: llmfake.UpstreamError(429)}}, http.StatusTooManyRequests, apperrors.MsgRateLimited},
		{"credits", &llmfake.Factory{Model: &llmfake.ChatModel{Err: llmfake.UpstreamError(402)}}, http.StatusPaymentRequired, apperrors.MsgCreditsExhausted},
		{"gateway", &llmfake.Factory{Model: &llmfake.ChatModel{Err: llmfake.UpstreamError(503)}}, http.StatusInternalServerError, "AI gateway error: 503"},
		{"missing key", &llmfake.Factory{Err: apperrors.ErrConfigMissing("LOVABLE_API_KEY")}, http.StatusInternalServerError, "LOVABLE_API_KEY is not configured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestRouter(t, tt.factory, nil)
			w := doJSON(e, http.MethodPost, "/v1/blueprints/generate", `{}`)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
		})
	}
}

func TestContinueStory(t *testing.T) {
	fake := &llmfake.ChatModel{Content: "  The door creaked open.  "}
	e := newTestRouter(t, &llmfake.Factory{Model: fake}, nil)

	w := doJSON(e, http.MethodPost, "/functions/v1/continue-story", `{"existingStory":"It was late.","direction":"a stranger arrives"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "  The door creaked open.  ", resp["continuation"])
	assert.Contains(t, fake.UserPrompt(), `"a stranger arrives"`)
}

func TestContinueStory_Errors(t *testing.T) {
	t.Run("empty story", func(t *testing.T) {
		fake := &llmfake.ChatModel{}
		e := newTestRouter(t, &llmfake.Factory{Model: fake}, nil)
		w := doJSON(e, http.MethodPost, "/v1/stories/continue", `{"existingStory":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.MsgStoryRequired, decodeError(t, w))
		assert.Zero(t, fake.Calls)
	})

	t.Run("rate limited", func(t *testing.T) {
		fake := &llmfake.ChatModel{Err: llmfake.UpstreamError(429)}
		e := newTestRouter(t, &llmfake.Factory{Model: fake}, nil)
		w := doJSON(e, http.MethodPost, "/v1/stories/continue", `{"existingStory":"Once."}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, apperrors.MsgRateLimited, decodeError(t, w))
	})
}

func TestCORSPreflight(t *testing.T) {
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/generate-blueprint", nil)
	req.Header.Set("Origin", "https://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")), "content-type")
}

func TestExportBlueprint(t *testing.T) {
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, nil)

	body, err := json.Marshal(map[string]any{
		"title":     "Harbor Lights",
		"blueprint": map[string]string{"story": "Three acts.", "shots": "Wide."},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/exports/blueprint?format=markdown", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="harbor-lights.md"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "# Harbor Lights")
	assert.Contains(t, w.Body.String(), "## Story & Structure")
	assert.Contains(t, w.Body.String(), "## Shot List")
}

func TestExport_Errors(t *testing.T) {
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, nil)

	w := doJSON(e, http.MethodPost, "/v1/exports/blueprint?format=pdf", `{"blueprint":{"story":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unsupported export format", decodeError(t, w))

	w = doJSON(e, http.MethodPost, "/v1/exports/blueprint", `{"blueprint":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "nothing to export", decodeError(t, w))

	w = doJSON(e, http.MethodPost, "/v1/exports/continuation?format=text", `{"continuation":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUIPages(t *testing.T) {
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, nil)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"Generate a Blueprint", "Continue a Story"}},
		{"/generate", []string{"Production Plan", "Storyboard Notes", "Medium Budget", "Expand all", "Quick suggestions"}},
		{"/continue", []string{"existingStory", "direction"}},
		{"/static/app.js", []string{"Generation Failed", "Continuation Failed", "finally"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doJSON(e, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, w.Code)
			for _, s := range tt.want {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, nil)
	for _, path := range []string{"/health", "/live", "/ready"} {
		w := doJSON(e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	notReady := newTestRouter(t, &llmfake.Factory{Err: apperrors.ErrConfigMissing("LOVABLE_API_KEY")}, nil)
	w := doJSON(notReady, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "LOVABLE_API_KEY is not configured")
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	limiter := &fixedLimiter{allow: false}
	e := newTestRouter(t, &llmfake.Factory{Model: &llmfake.ChatModel{}}, limiter)

	w := doJSON(e, http.MethodPost, "/v1/blueprints/generate", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, limiter.keys, 1)
	assert.True(t, strings.HasSuffix(limiter.keys[0], ":/v1/blueprints/generate"))
}
