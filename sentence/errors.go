package sentence

import "fmt"

// ParseMetadata carries debug context for more helpful parse errors.
type ParseMetadata struct {
	FileName   string
	LineNumber int
	IntentName string
}

// ParseError is raised when a grammar template is syntactically invalid:
// unbalanced delimiters, a trailing escape, an empty bracketed body, or a
// parser loop that failed to make progress on malformed input.
type ParseError struct {
	Reason   string
	Chunk    string
	Metadata *ParseMetadata
}

func (e *ParseError) Error() string {
	if e.Metadata != nil {
		return fmt.Sprintf("parse error: %s (chunk %q) at %s:%d",
			e.Reason, e.Chunk, e.Metadata.FileName, e.Metadata.LineNumber)
	}
	return fmt.Sprintf("parse error: %s (chunk %q)", e.Reason, e.Chunk)
}

// MissingListError is raised when a {list} reference has no matching slot
// list in the match settings. Fatal for the whole recognition call.
type MissingListError struct {
	ListName string
}

func (e *MissingListError) Error() string {
	return fmt.Sprintf("missing slot list {%s}", e.ListName)
}

// MissingRuleError is raised when a <rule> reference has no matching
// expansion rule in the match settings. Fatal for the whole recognition call.
type MissingRuleError struct {
	RuleName string
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("missing expansion rule <%s>", e.RuleName)
}

// InvariantError signals a state that should be unreachable under
// well-formed input; its presence indicates an implementation bug rather
// than a user-facing error.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Reason)
}
