package llm

import "fmt"

// Resolver errors usually indicate misconfiguration, not transient load.
// This package does not retry them; callers should treat them as
// non-retryable without operator intervention.

// UnreachableError reports that the inference server did not answer the
// model-listing request.
type UnreachableError struct {
	Endpoint string
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("inference server %s unreachable: %v (check the server is running and OPENAI_API_BASE points at it)",
		e.Endpoint, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// NoModelError reports that the server answered but has no model loaded.
type NoModelError struct {
	Endpoint string
}

func (e *NoModelError) Error() string {
	return fmt.Sprintf("inference server %s has no model loaded", e.Endpoint)
}
