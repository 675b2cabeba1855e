package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sashabaranov/go-openai"
)

// ModelResolver is the interface the contract layer consumes: given a server
// base URL, return the identifier of the model it is serving.
type ModelResolver interface {
	DiscoverModel(ctx context.Context, endpoint string) (string, error)
}

// DiscoverModel queries an OpenAI-compatible inference server (vLLM and
// friends) for the model it actually has loaded, so callers never hardcode
// model names. Transport or protocol failures return *UnreachableError; a
// healthy server with an empty model list returns *NoModelError.
func DiscoverModel(ctx context.Context, endpoint string, httpClient *http.Client) (string, error) {
	cfg := openai.DefaultConfig("dummy") // local servers do not check the key
	cfg.BaseURL = strings.TrimRight(endpoint, "/") + "/v1"
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	client := openai.NewClientWithConfig(cfg)

	list, err := client.ListModels(ctx)
	if err != nil {
		return "", &UnreachableError{Endpoint: endpoint, Err: err}
	}
	if len(list.Models) == 0 {
		return "", &NoModelError{Endpoint: endpoint}
	}
	return list.Models[0].ID, nil
}

// Resolver caches discovered model names per endpoint with a TTL, so agents
// issuing many requests do not hit /v1/models on every call but still pick up
// a model swap after the entry expires.
type Resolver struct {
	httpClient *http.Client
	cache      *expirable.LRU[string, string]
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	httpClient *http.Client
	ttl        time.Duration
}

// WithHTTPClient overrides the HTTP client used for discovery requests.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(cfg *resolverConfig) { cfg.httpClient = c }
}

// WithCacheTTL overrides how long a discovered model name is trusted.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(cfg *resolverConfig) { cfg.ttl = ttl }
}

// NewResolver builds a Resolver with a short discovery timeout and a
// 5-minute cache by default.
func NewResolver(opts ...ResolverOption) *Resolver {
	cfg := resolverConfig{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		ttl:        5 * time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{
		httpClient: cfg.httpClient,
		cache:      expirable.NewLRU[string, string](32, nil, cfg.ttl),
	}
}

// DiscoverModel implements ModelResolver with per-endpoint caching.
func (r *Resolver) DiscoverModel(ctx context.Context, endpoint string) (string, error) {
	if model, ok := r.cache.Get(endpoint); ok {
		return model, nil
	}
	model, err := DiscoverModel(ctx, endpoint, r.httpClient)
	if err != nil {
		return "", err
	}
	r.cache.Add(endpoint, model)
	return model, nil
}

// CheckAvailability reports whether the server at endpoint is reachable and
// serving a model. Useful for health checks and for skipping tests when no
// local server is up.
func (r *Resolver) CheckAvailability(ctx context.Context, endpoint string) bool {
	_, err := r.DiscoverModel(ctx, endpoint)
	return err == nil
}
