// Package config loads the external configuration surface of the contract
// layer: the prompts root directory and the inference endpoints. Absence of a
// required value is a startup-time fatal error, not a runtime one.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names. The OPENAI_* names are kept for compatibility
// with the existing agent deployments.
const (
	EnvPromptsDir = "PROMPTS_DIR"
	EnvLLMBase    = "OPENAI_API_BASE"
	EnvVLMBase    = "OPENAI_API_BASE2"
	EnvModelName  = "LLM_MODEL_NAME"
)

// Config is the resolved external configuration.
type Config struct {
	PromptsDir string // Root directory of prompt template files (required)
	LLMBaseURL string // Language-model server base URL (required)
	VLMBaseURL string // Vision-model server base URL (optional)
	ModelName  string // Explicit model override; empty means discover from server
}

// Load reads a .env file when present, then the process environment, and
// fails listing every missing required variable.
func Load() (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		PromptsDir: os.Getenv(EnvPromptsDir),
		LLMBaseURL: os.Getenv(EnvLLMBase),
		VLMBaseURL: os.Getenv(EnvVLMBase),
		ModelName:  os.Getenv(EnvModelName),
	}

	var missing []string
	if cfg.PromptsDir == "" {
		missing = append(missing, EnvPromptsDir)
	}
	if cfg.LLMBaseURL == "" {
		missing = append(missing, EnvLLMBase)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
