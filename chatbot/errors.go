package chatbot

import (
	"fmt"
	"strings"

	"github.com/acadassist/acadassist/store"
)

// The error taxonomy carried out of the pipeline. The HTTP layer maps each
// type to a status code; none of them is process-fatal.

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PermissionError reports a role gate failure.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// NotFoundError reports that a lookup matched nothing: an identifier with no
// user, or no active semester.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// UpstreamError reports a failed call to the generative model.
type UpstreamError struct {
	Msg string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ExecutionError reports that generated SQL failed to execute. The database
// error is returned verbatim.
type ExecutionError struct {
	Msg string
}

func (e *ExecutionError) Error() string { return e.Msg }

// MultipleMatchesError reports an ambiguous name lookup. The caller is
// expected to disambiguate and retry with a more specific identifier.
type MultipleMatchesError struct {
	Identifier string
	Candidates []*store.User
}

func (e *MultipleMatchesError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, u := range e.Candidates {
		names[i] = fmt.Sprintf("%s (%s)", u.FullName(), u.Username)
	}
	return fmt.Sprintf("Multiple users match identifier '%s': %s", e.Identifier, strings.Join(names, ", "))
}
