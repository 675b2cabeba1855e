package mechlink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	model string
}

func (r *staticResolver) DiscoverModel(ctx context.Context, endpoint string) (string, error) {
	return r.model, nil
}

func TestToolkit(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "agents", "lme")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clarify.yaml"), []byte(`metadata:
  prompt_id: lme.clarify.v1
  version: "1.0.0"
template: "Design: {{ intent }}"
`), 0o644))

	tk, err := New(root,
		WithResolver(&staticResolver{model: "Qwen/Qwen3-8B"}),
		WithEndpoint("http://localhost:8001"),
	)
	require.NoError(t, err)

	out, err := tk.RenderPrompt("lme.clarify.v1", map[string]any{"intent": "bracket"})
	require.NoError(t, err)
	assert.Equal(t, "Design: bracket", out)

	model, err := tk.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Qwen/Qwen3-8B", model)

	assert.Equal(t, []string{"lme.clarify.v1"}, tk.Prompts().List("lme"))
}

func TestNew_MissingPromptsDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestModelNameOverrideSkipsDiscovery(t *testing.T) {
	tk, err := New(t.TempDir(),
		WithResolver(&staticResolver{model: "discovered"}),
		WithModelName("pinned"),
	)
	require.NoError(t, err)

	model, err := tk.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pinned", model)
}

func TestFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PROMPTS_DIR", root)
	t.Setenv("OPENAI_API_BASE", "http://localhost:8001")
	t.Setenv("LLM_MODEL_NAME", "")

	tk, err := FromEnv(WithResolver(&staticResolver{model: "m"}))
	require.NoError(t, err)
	model, err := tk.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m", model)
}

func TestFromEnv_MissingConfigIsFatal(t *testing.T) {
	t.Setenv("PROMPTS_DIR", "")
	t.Setenv("OPENAI_API_BASE", "")
	_, err := FromEnv()
	require.Error(t, err)
}
