package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoadFromDefaultsOnly(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "scriptoria-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 180*time.Second, cfg.Server.HTTP.WriteTimeout)
	assert.Equal(t, "lovable", cfg.LLM.DefaultProvider)

	p, ok := cfg.LLM.Providers["lovable"]
	require.True(t, ok)
	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", p.BaseURL)
	assert.Equal(t, "google/gemini-3-flash-preview", p.Model)
	assert.Equal(t, "LOVABLE_API_KEY", p.APIKeyEnv)
	assert.Equal(t, []string{"*"}, cfg.Security.CORS.AllowedOrigins)
	assert.False(t, cfg.Cache.Redis.Enabled)
}

func TestLoadFromExpandsPlaceholdersAndMergesEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", `
app:
  name: ${APP_NAME_UNDER_TEST:from-default}
llm:
  default_provider: lovable
  providers:
    lovable:
      api_key: ${TEST_GATEWAY_KEY}
      model: google/gemini-3-flash-preview
`)
	writeConfig(t, dir, "config.staging.yaml", `
llm:
  providers:
    lovable:
      model: test/model
`)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("TEST_GATEWAY_KEY", "secret-123")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-default", cfg.App.Name)
	p := cfg.LLM.Providers["lovable"]
	assert.Equal(t, "secret-123", p.APIKey)
	assert.Equal(t, "test/model", p.Model)
	assert.Equal(t, "https://ai.gateway.lovable.dev/v1", p.BaseURL)
}

func TestLoadFromEnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_HTTP_PORT", "9191")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.HTTP.Port)
}

func TestExpandEnvUndefinedBecomesEmpty(t *testing.T) {
	t.Setenv("DEFINED_VAR", "x")
	assert.Equal(t, "a=x b=fallback c=", expandEnv("a=${DEFINED_VAR} b=${UNDEFINED_VAR_1:fallback} c=${UNDEFINED_VAR_2}"))
}

func TestProviderResolveAPIKey(t *testing.T) {
	t.Setenv("FAKE_GATEWAY_KEY", " env-key ")

	assert.Equal(t, "cfg-key", ProviderConfig{APIKey: "cfg-key", APIKeyEnv: "FAKE_GATEWAY_KEY"}.ResolveAPIKey())
	assert.Equal(t, "env-key", ProviderConfig{APIKeyEnv: "FAKE_GATEWAY_KEY"}.ResolveAPIKey())
	assert.Empty(t, ProviderConfig{}.ResolveAPIKey())

	assert.Equal(t, "FAKE_GATEWAY_KEY", ProviderConfig{APIKeyEnv: "FAKE_GATEWAY_KEY"}.CredentialName())
	assert.Equal(t, "llm api key", ProviderConfig{}.CredentialName())
}
