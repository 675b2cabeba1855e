package llm

import (
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ClientConfig describes a connection to a locally hosted OpenAI-compatible
// inference server.
type ClientConfig struct {
	BaseURL string        // Server base URL, e.g. "http://localhost:8001"
	Timeout time.Duration // Per-request timeout; 0 means DefaultTimeout
}

// DefaultTimeout bounds chat requests against local models, which can be
// slow but should never hang forever.
const DefaultTimeout = 300 * time.Second

// NewChatClient returns an OpenAI-compatible chat client pointed at a local
// inference server. The server does not check API keys, so a placeholder is
// sent.
func NewChatClient(cfg ClientConfig) *openai.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	c := openai.DefaultConfig("dummy")
	c.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
	c.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(c)
}

// ChatTemplateKwargs returns server-side chat-template arguments for a model,
// or nil when none are needed. Qwen3 models default to emitting a thinking
// block that pollutes structured outputs, so it is switched off.
func ChatTemplateKwargs(model string) map[string]any {
	if strings.Contains(strings.ToLower(model), "qwen3") {
		return map[string]any{"enable_thinking": false}
	}
	return nil
}
