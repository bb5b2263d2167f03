package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INVEX_EXTRACTOR_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, int64(25), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 20, cfg.Loader.MaxPages)
	assert.Equal(t, 2048, cfg.Loader.MaxDimensionPx)
	assert.Equal(t, 90, cfg.Loader.JPEGQuality)
	assert.Equal(t, "English", cfg.Prompt.TargetLanguage)
	assert.True(t, cfg.Prompt.PreserveNumerics)
	assert.Equal(t, "gemini", cfg.Extractor.Provider)
	assert.Equal(t, "test-key", cfg.Extractor.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Extractor.DefaultModel)
	assert.Equal(t, 120, cfg.Extractor.TimeoutSecs)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_MissingAPIKeyIsFatal(t *testing.T) {
	t.Setenv("INVEX_EXTRACTOR_API_KEY", "")

	cfg, err := config.Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVEX_EXTRACTOR_API_KEY")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVEX_EXTRACTOR_API_KEY", "test-key")
	t.Setenv("INVEX_EXTRACTOR_PROVIDER", "openai")
	t.Setenv("INVEX_EXTRACTOR_DEFAULT_MODEL", "gpt-4o")
	t.Setenv("INVEX_PROMPT_PRESERVE_NUMERICS", "false")
	t.Setenv("INVEX_PROMPT_TARGET_LANGUAGE", "German")
	t.Setenv("INVEX_SERVER_PORT", ":9090")
	t.Setenv("INVEX_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Extractor.Provider)
	assert.Equal(t, "gpt-4o", cfg.Extractor.DefaultModel)
	assert.False(t, cfg.Prompt.PreserveNumerics)
	assert.Equal(t, "German", cfg.Prompt.TargetLanguage)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}
