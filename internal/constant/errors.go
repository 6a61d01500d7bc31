package constant

import "fmt"

// DocumentIndexError marks a document whose source bytes could not be
// parsed. Sibling documents keep indexing; the document stays
// processed=false.
type DocumentIndexError struct {
	DocumentID string
	Reason     string
	Err        error
}

func (e *DocumentIndexError) Error() string {
	return fmt.Sprintf("document %s cannot be indexed: %s", e.DocumentID, e.Reason)
}

func (e *DocumentIndexError) Unwrap() error { return e.Err }

// ToolArgumentParseError is raised when the JSON payload of an explicit
// "run <tool> with {...}" command is malformed. It is surfaced to the
// user, never silently dropped.
type ToolArgumentParseError struct {
	ToolName string
	Err      error
}

func (e *ToolArgumentParseError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %q: %v", e.ToolName, e.Err)
}

func (e *ToolArgumentParseError) Unwrap() error { return e.Err }

// ToolExecutionError covers network failures, non-2xx responses and
// function handler errors. The chat turn continues without tool
// evidence; the composer reports the failure.
type ToolExecutionError struct {
	ToolName string
	Err      error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %q execution failed: %v", e.ToolName, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// SearchUnavailableError marks a provider/network failure during
// internet search. The turn degrades to document/tool evidence only.
type SearchUnavailableError struct {
	Err error
}

func (e *SearchUnavailableError) Error() string {
	return fmt.Sprintf("internet search unavailable: %v", e.Err)
}

func (e *SearchUnavailableError) Unwrap() error { return e.Err }
