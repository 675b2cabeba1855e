package prompt

import (
	"fmt"
	"strings"
)

// Resolution failures are always surfaced to the caller; there is no
// fallback to a default template, which would hide a content-governance bug.
// Each error carries enough context for an automated caller to self-diagnose
// and branch with errors.As.

// InvalidIDError reports a prompt identifier that does not follow the
// category.name.version convention (minimum two dot-separated segments).
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid prompt id %q: expected 'category.name.version' with at least two segments", e.ID)
}

// NotFoundError reports that no template file exists for the identifier in
// any of the search roots. Searched lists every path that was tried.
type NotFoundError struct {
	ID       string
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prompt %q not found; searched: %s", e.ID, strings.Join(e.Searched, ", "))
}

// MalformedFileError reports a template file that could not be read, parsed
// as YAML, or is missing its metadata/template sections.
type MalformedFileError struct {
	Path string
	Err  error
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed prompt file %s: %v", e.Path, e.Err)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

// MismatchError reports a template file whose declared metadata.prompt_id
// differs from the identifier it was resolved under. This guards against a
// copy-pasted file silently serving the wrong content under another key.
type MismatchError struct {
	Path      string
	Requested string
	Declared  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("prompt id mismatch in %s: requested %q but file declares %q",
		e.Path, e.Requested, e.Declared)
}
