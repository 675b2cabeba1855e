package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvPromptsDir, "/srv/prompts")
	t.Setenv(EnvLLMBase, "http://localhost:8001")
	t.Setenv(EnvVLMBase, "")
	t.Setenv(EnvModelName, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/prompts", cfg.PromptsDir)
	assert.Equal(t, "http://localhost:8001", cfg.LLMBaseURL)
	assert.Empty(t, cfg.VLMBaseURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv(EnvPromptsDir, "")
	t.Setenv(EnvLLMBase, "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPromptsDir)
	assert.Contains(t, err.Error(), EnvLLMBase)
}

func TestLoad_OptionalOverrides(t *testing.T) {
	t.Setenv(EnvPromptsDir, "/srv/prompts")
	t.Setenv(EnvLLMBase, "http://localhost:8001")
	t.Setenv(EnvVLMBase, "http://localhost:8002")
	t.Setenv(EnvModelName, "Qwen/Qwen3-8B")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8002", cfg.VLMBaseURL)
	assert.Equal(t, "Qwen/Qwen3-8B", cfg.ModelName)
}
