package prompt

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"gopkg.in/yaml.v3"
)

func init() {
	// Prompt bodies are plain text handed to a language model, not HTML.
	pongo2.SetAutoescape(false)
}

// Metadata is the declarative header of a prompt template file.
type Metadata struct {
	PromptID     string   `yaml:"prompt_id" json:"prompt_id"`
	Version      string   `yaml:"version" json:"version"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author       string   `yaml:"author,omitempty" json:"author,omitempty"`
	OutputSchema string   `yaml:"output_schema,omitempty" json:"output_schema,omitempty"`
	Tags         []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Template is a resolved prompt: metadata plus the raw template body and its
// compiled form. Instances are cached by the engine and shared; treat them as
// read-only.
type Template struct {
	Metadata Metadata
	Body     string

	compiled *pongo2.Template
}

// ReadFileFunc is the file-read collaborator. Injectable so tests can count
// reads and fault-inject without touching the filesystem layout.
type ReadFileFunc func(path string) ([]byte, error)

// Engine resolves dotted, versioned prompt identifiers (category.name.version)
// to template files under a configured root, validates their metadata, caches
// them by identifier and renders them with a variable context.
//
// The engine is caller-constructed and caller-owned: create one per process
// with the prompts root from configuration and share it. The cache is safe
// for concurrent use.
type Engine struct {
	root     string
	readFile ReadFileFunc
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used for discovery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithReadFile replaces the file-read collaborator.
func WithReadFile(fn ReadFileFunc) Option {
	return func(e *Engine) { e.readFile = fn }
}

// New creates an Engine rooted at the given prompts directory. The directory
// must exist: prompts are deployed with the service, and a missing root is a
// configuration error worth failing on at startup.
func New(root string, opts ...Option) (*Engine, error) {
	e := &Engine{
		root:     root,
		readFile: os.ReadFile,
		cache:    make(map[string]*Template),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("prompts directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompts directory %q is not a directory", root)
	}
	return e, nil
}

// searchPaths returns the candidate file locations for an identifier, in
// resolution order. The version segment names the content revision, not the
// file: lme.clarify.v1 maps to clarify.yaml.
func (e *Engine) searchPaths(id string) ([]string, error) {
	parts := strings.Split(id, ".")
	if len(parts) < 2 {
		return nil, &InvalidIDError{ID: id}
	}
	category := parts[0]
	name := parts[1]
	if len(parts) > 2 {
		name = strings.Join(parts[1:len(parts)-1], ".")
	}
	return []string{
		filepath.Join(e.root, "agents", category, name+".yaml"),
		filepath.Join(e.root, "base", name+".yaml"),
		filepath.Join(e.root, category, name+".yaml"),
	}, nil
}

// Resolve returns the template for an identifier, serving from cache when
// possible. The cache has no file-modification check: if a template changes
// on disk, call ClearCache or accept staleness.
func (e *Engine) Resolve(id string) (*Template, error) {
	e.mu.RLock()
	tpl, ok := e.cache[id]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := e.load(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	// A concurrent first resolution may have won the race; keep the cached
	// instance so repeated Resolve calls return the identical object.
	if cached, ok := e.cache[id]; ok {
		tpl = cached
	} else {
		e.cache[id] = tpl
	}
	e.mu.Unlock()
	return tpl, nil
}

// ResolveNoCache reads the template fresh from disk regardless of any cached
// entry, then replaces the cached entry with the fresh read. Subsequent
// Resolve calls serve the refreshed template.
func (e *Engine) ResolveNoCache(id string) (*Template, error) {
	tpl, err := e.load(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.cache[id] = tpl
	e.mu.Unlock()
	return tpl, nil
}

// promptFile is the on-disk shape: a mapping with metadata and template.
type promptFile struct {
	Metadata *Metadata `yaml:"metadata"`
	Template *string   `yaml:"template"`
}

func (e *Engine) load(id string) (*Template, error) {
	paths, err := e.searchPaths(id)
	if err != nil {
		return nil, err
	}

	var path string
	for _, candidate := range paths {
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}
	if path == "" {
		return nil, &NotFoundError{ID: id, Searched: paths}
	}

	raw, err := e.readFile(path)
	if err != nil {
		return nil, &MalformedFileError{Path: path, Err: err}
	}

	var file promptFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, &MalformedFileError{Path: path, Err: err}
	}
	if file.Metadata == nil {
		return nil, &MalformedFileError{Path: path, Err: fmt.Errorf("missing 'metadata' section")}
	}
	if file.Template == nil {
		return nil, &MalformedFileError{Path: path, Err: fmt.Errorf("missing 'template' section")}
	}
	if file.Metadata.PromptID != id {
		return nil, &MismatchError{Path: path, Requested: id, Declared: file.Metadata.PromptID}
	}

	compiled, err := pongo2.FromString(*file.Template)
	if err != nil {
		return nil, &MalformedFileError{Path: path, Err: fmt.Errorf("template does not compile: %w", err)}
	}

	return &Template{Metadata: *file.Metadata, Body: *file.Template, compiled: compiled}, nil
}

// Render resolves an identifier (through the cache) and renders its template
// with the given variable context. Output is plain text with no HTML escaping,
// trimmed of leading and trailing whitespace.
func (e *Engine) Render(id string, context map[string]any) (string, error) {
	tpl, err := e.Resolve(id)
	if err != nil {
		return "", err
	}
	out, err := tpl.compiled.Execute(pongo2.Context(context))
	if err != nil {
		return "", fmt.Errorf("render prompt %q: %w", id, err)
	}
	return strings.TrimSpace(out), nil
}

// Metadata returns the metadata for an identifier without exposing the body.
func (e *Engine) Metadata(id string) (*Metadata, error) {
	tpl, err := e.Resolve(id)
	if err != nil {
		return nil, err
	}
	md := tpl.Metadata
	return &md, nil
}

// List walks the agents/ and base/ roots for template files and returns the
// declared prompt identifiers, sorted and deduplicated, optionally filtered
// by category prefix. Discovery is best-effort: files that fail to parse are
// logged and skipped rather than failing the walk.
func (e *Engine) List(category string) []string {
	seen := make(map[string]bool)

	for _, dir := range []string{filepath.Join(e.root, "agents"), filepath.Join(e.root, "base")} {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}
			raw, err := e.readFile(path)
			if err != nil {
				e.logger.Debug("skipping unreadable prompt file", "path", path, "err", err)
				return nil
			}
			var file promptFile
			if err := yaml.Unmarshal(raw, &file); err != nil {
				e.logger.Debug("skipping malformed prompt file", "path", path, "err", err)
				return nil
			}
			if file.Metadata == nil || file.Metadata.PromptID == "" {
				return nil
			}
			id := file.Metadata.PromptID
			if category != "" && !strings.HasPrefix(id, category+".") {
				return nil
			}
			seen[id] = true
			return nil
		})
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ClearCache drops every cached template. Invalidation is manual: the
// template set changes rarely and ships with the service.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.cache = make(map[string]*Template)
	e.mu.Unlock()
}
