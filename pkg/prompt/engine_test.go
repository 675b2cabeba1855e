package prompt

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePrompt drops a template file under root, creating parent directories.
func writePrompt(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const clarifyYAML = `metadata:
  prompt_id: lme.clarify.v1
  version: "1.0.0"
  description: Clarify a design intent
  tags: [lme, clarify]
template: |
  Design: {{ intent }}
`

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	root := t.TempDir()
	engine, err := New(root)
	require.NoError(t, err)
	return engine, root
}

func TestNew_RequiresExistingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestResolve_InvalidID(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Resolve("badid")
	var invalid *InvalidIDError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "badid", invalid.ID)
}

func TestResolve_NotFoundListsSearchedPaths(t *testing.T) {
	engine, root := newTestEngine(t)

	_, err := engine.Resolve("lme.clarify.v1")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{
		filepath.Join(root, "agents", "lme", "clarify.yaml"),
		filepath.Join(root, "base", "clarify.yaml"),
		filepath.Join(root, "lme", "clarify.yaml"),
	}, notFound.Searched)
}

func TestResolve_SearchOrder(t *testing.T) {
	engine, root := newTestEngine(t)

	// base/ is the fallback when agents/<category>/ has no file.
	writePrompt(t, root, "base/clarify.yaml", clarifyYAML)
	tpl, err := engine.Resolve("lme.clarify.v1")
	require.NoError(t, err)
	assert.Equal(t, "lme.clarify.v1", tpl.Metadata.PromptID)
}

func TestResolve_MalformedFile(t *testing.T) {
	engine, root := newTestEngine(t)

	t.Run("invalid yaml", func(t *testing.T) {
		writePrompt(t, root, "agents/lme/broken.yaml", "metadata: [unclosed")
		_, err := engine.Resolve("lme.broken.v1")
		var malformed *MalformedFileError
		require.ErrorAs(t, err, &malformed)
	})

	t.Run("missing template section", func(t *testing.T) {
		writePrompt(t, root, "agents/lme/headless.yaml", "metadata:\n  prompt_id: lme.headless.v1\n  version: \"1.0.0\"\n")
		_, err := engine.Resolve("lme.headless.v1")
		var malformed *MalformedFileError
		require.ErrorAs(t, err, &malformed)
		assert.Contains(t, err.Error(), "template")
	})
}

func TestResolve_IDMismatch(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/clarify.yaml", clarifyYAML)

	// v2 resolves to the same clarify.yaml, which still declares v1.
	_, err := engine.Resolve("lme.clarify.v2")
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "lme.clarify.v2", mismatch.Requested)
	assert.Equal(t, "lme.clarify.v1", mismatch.Declared)
}

func TestResolve_CachesByID(t *testing.T) {
	root := t.TempDir()
	writePrompt(t, root, "agents/lme/clarify.yaml", clarifyYAML)

	var reads int
	engine, err := New(root, WithReadFile(func(path string) ([]byte, error) {
		reads++
		return os.ReadFile(path)
	}))
	require.NoError(t, err)

	first, err := engine.Resolve("lme.clarify.v1")
	require.NoError(t, err)
	second, err := engine.Resolve("lme.clarify.v1")
	require.NoError(t, err)

	assert.Same(t, first, second, "cache must return the identical object")
	assert.Equal(t, 1, reads)

	// Manual invalidation forces a re-read.
	engine.ClearCache()
	_, err = engine.Resolve("lme.clarify.v1")
	require.NoError(t, err)
	assert.Equal(t, 2, reads)

	// Per-call bypass always reads fresh, then refreshes the cache.
	fresh, err := engine.ResolveNoCache("lme.clarify.v1")
	require.NoError(t, err)
	assert.Equal(t, 3, reads)

	after, err := engine.Resolve("lme.clarify.v1")
	require.NoError(t, err)
	assert.Same(t, fresh, after, "cache must serve the refreshed template")
	assert.Equal(t, 3, reads)
}

func TestRender(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/clarify.yaml", clarifyYAML)

	out, err := engine.Render("lme.clarify.v1", map[string]any{"intent": "bracket"})
	require.NoError(t, err)
	assert.Equal(t, "Design: bracket", out)
}

func TestRender_ControlBlocks(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/review.yaml", `metadata:
  prompt_id: lme.review.v1
  version: "1.0.0"
template: |
  Review the design.
  {%- if constraints %}
  Constraints:
  {%- for c in constraints %}
  - {{ c }}
  {%- endfor %}
  {%- endif %}
`)

	out, err := engine.Render("lme.review.v1", map[string]any{
		"constraints": []string{"max mass 0.1kg", "wall >= 3mm"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Review the design.\nConstraints:\n- max mass 0.1kg\n- wall >= 3mm", out)

	out, err = engine.Render("lme.review.v1", map[string]any{"constraints": []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Review the design.", out)
}

func TestRender_NoEscaping(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/raw.yaml", `metadata:
  prompt_id: lme.raw.v1
  version: "1.0.0"
template: "Compare {{ a }} < {{ b }} & report"
`)
	out, err := engine.Render("lme.raw.v1", map[string]any{"a": "<stress>", "b": "\"yield\""})
	require.NoError(t, err)
	assert.Equal(t, `Compare <stress> < "yield" & report`, out)
}

func TestList(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/clarify.yaml", clarifyYAML)
	writePrompt(t, root, "agents/dfm/check.yaml", `metadata:
  prompt_id: dfm.check.v1
  version: "1.0.0"
template: "Check {{ part }}"
`)
	writePrompt(t, root, "base/system.yaml", `metadata:
  prompt_id: lme.system.v1
  version: "1.0.0"
template: "You are a mechanical design assistant."
`)
	// Duplicate declaration in another root collapses to one entry.
	writePrompt(t, root, "base/clarify.yaml", clarifyYAML)
	// Malformed files contribute nothing and raise nothing.
	writePrompt(t, root, "agents/lme/junk.yaml", "{{{ not yaml")

	assert.Equal(t, []string{"dfm.check.v1", "lme.clarify.v1", "lme.system.v1"}, engine.List(""))
	assert.Equal(t, []string{"lme.clarify.v1", "lme.system.v1"}, engine.List("lme"))
	assert.Empty(t, engine.List("sim"))
}

func TestConcurrentResolve(t *testing.T) {
	engine, root := newTestEngine(t)
	writePrompt(t, root, "agents/lme/clarify.yaml", clarifyYAML)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := engine.Render("lme.clarify.v1", map[string]any{"intent": "bracket"})
			assert.NoError(t, err)
			assert.Equal(t, "Design: bracket", out)
		}()
	}
	wg.Wait()
}
