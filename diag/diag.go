// Package diag is the diagnostic side-channel the tokenizer and tree
// constructor report recoverable parse errors through. Parsing never
// aborts on a malformed document; every anomaly is instead handed to a
// Sink, which decides whether and how to surface it.
package diag

import "fmt"

// Kind classifies a diagnostic by the stage of parsing that raised it.
type Kind int

const (
	// TokenizerError covers any of the named parse errors from the HTML
	// tokenization algorithm (e.g. "unexpected-null-character",
	// "eof-in-tag", "missing-semicolon-after-character-reference").
	TokenizerError Kind = iota
	// TreeConstructionError covers the tree construction algorithm's own
	// named parse errors (e.g. "unexpected-end-tag").
	TreeConstructionError
	// CSSSyntaxError covers CSS Syntax Level 3's parse errors (e.g. a bad
	// string or an unterminated block).
	CSSSyntaxError
)

func (k Kind) String() string {
	switch k {
	case TokenizerError:
		return "tokenizer"
	case TreeConstructionError:
		return "tree-construction"
	case CSSSyntaxError:
		return "css-syntax"
	default:
		return "unknown"
	}
}

// Error is a single recoverable diagnostic: what kind of stage raised it,
// a human-readable message, and the 1-based line/column it occurred at
// (Line/Col are 0 when the reporting site doesn't track position).
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Col     int
}

func (e Error) String() string {
	if e.Line == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %d:%d: %s", e.Kind, e.Line, e.Col, e.Message)
}

// Sink receives diagnostics as parsing encounters them. Implementations
// must not block or panic; a parse that floods a Sink with thousands of
// errors on malformed input must still finish.
type Sink interface {
	Report(Error)
}

// discardSink silently drops every diagnostic.
type discardSink struct{}

func (discardSink) Report(Error) {}

// Discard is a Sink that ignores every diagnostic, for callers that only
// want the parse result.
var Discard Sink = discardSink{}

// CollectingSink accumulates diagnostics in memory, for tests and for
// callers that want to inspect parse errors after the fact rather than
// stream them.
type CollectingSink struct {
	Errors []Error
}

// Report appends err to the sink's Errors slice.
func (s *CollectingSink) Report(err Error) {
	s.Errors = append(s.Errors, err)
}
