package mechlink

import (
	"context"
	"log/slog"

	"github.com/mechforge/mechlink/internal/config"
	"github.com/mechforge/mechlink/internal/logging"
	"github.com/mechforge/mechlink/pkg/llm"
	"github.com/mechforge/mechlink/pkg/prompt"
)

// Version of the contract layer. Bumped together with schema_version changes.
const Version = "0.1.0"

// Toolkit is the high-level entry point for agents using this library. It
// bundles a prompt engine and a model resolver behind one caller-owned value:
// construct it once at startup with the configured prompts root and share it.
// There is no hidden global instance.
type Toolkit struct {
	prompts    *prompt.Engine
	resolver   llm.ModelResolver
	llmBaseURL string
	modelName  string
	logger     *slog.Logger
	promptOpts []prompt.Option
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) { t.logger = logger }
}

// WithResolver injects a custom model resolver, bypassing the default
// discovery client. Tests use this to avoid network access.
func WithResolver(r llm.ModelResolver) Option {
	return func(t *Toolkit) { t.resolver = r }
}

// WithEndpoint sets the default inference endpoint used by Model.
func WithEndpoint(baseURL string) Option {
	return func(t *Toolkit) { t.llmBaseURL = baseURL }
}

// WithModelName pins the model name, skipping server discovery entirely.
func WithModelName(name string) Option {
	return func(t *Toolkit) { t.modelName = name }
}

// WithPromptOptions forwards options to the underlying prompt engine.
func WithPromptOptions(opts ...prompt.Option) Option {
	return func(t *Toolkit) { t.promptOpts = append(t.promptOpts, opts...) }
}

// New initializes a Toolkit with prompts rooted at promptsDir.
func New(promptsDir string, opts ...Option) (*Toolkit, error) {
	t := &Toolkit{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	if t.resolver == nil {
		t.resolver = llm.NewResolver()
	}

	engine, err := prompt.New(promptsDir, append([]prompt.Option{prompt.WithLogger(t.logger)}, t.promptOpts...)...)
	if err != nil {
		return nil, err
	}
	t.prompts = engine
	return t, nil
}

// FromEnv builds a Toolkit from the process environment (PROMPTS_DIR,
// OPENAI_API_BASE, ...). Missing required configuration fails here, at
// startup, rather than on first use.
func FromEnv(opts ...Option) (*Toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := []Option{WithEndpoint(cfg.LLMBaseURL)}
	if cfg.ModelName != "" {
		base = append(base, WithModelName(cfg.ModelName))
	}
	return New(cfg.PromptsDir, append(base, opts...)...)
}

// Prompts exposes the underlying prompt engine.
func (t *Toolkit) Prompts() *prompt.Engine {
	return t.prompts
}

// RenderPrompt resolves and renders a prompt template by identifier.
func (t *Toolkit) RenderPrompt(id string, context map[string]any) (string, error) {
	return t.prompts.Render(id, context)
}

// Model returns the model identifier to use: the explicitly configured name
// when one is set (LLM_MODEL_NAME or WithModelName), otherwise whatever the
// configured endpoint reports it is serving.
func (t *Toolkit) Model(ctx context.Context) (string, error) {
	if t.modelName != "" {
		return t.modelName, nil
	}
	return t.resolver.DiscoverModel(ctx, t.llmBaseURL)
}
