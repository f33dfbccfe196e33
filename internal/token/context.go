// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package token

import (
	"fmt"

	"github.com/google/uuid"
)

// Stage names the pipeline stage that raised a Diagnostic (spec.md §7).
type Stage int

const (
	StageScanner Stage = iota
	StageParser
	StageAnalyzer
	StageInterpreter
)

func (s Stage) String() string {
	switch s {
	case StageScanner:
		return "scanner"
	case StageParser:
		return "parser"
	case StageAnalyzer:
		return "analyzer"
	case StageInterpreter:
		return "interpreter"
	default:
		return "unknown"
	}
}

// Diagnostic is a structured error record (spec.md §6). No stage aborts on
// a Diagnostic; every stage pushes into the shared Context sink and keeps
// going, returning a best-effort tree (spec.md §7).
type Diagnostic struct {
	Origin  Stage
	Message string
	Line    int
	Offset  int
	Lexeme  string
}

// Context is the single piece of shared mutable state for one parse
// (spec.md §4.1, §9). It owns the monotonic id counter used for token,
// AST node, and CST node ids, and the diagnostics sink all stages push
// into. A Context must not be shared between two concurrent parses
// (spec.md §5): it is created per input document and handed explicitly
// to the scanner, parser, CST conversion, and transforms, then discarded
// when the document is released. The formatter takes no Context.
type Context struct {
	nextID int

	// SessionID correlates every Diagnostic emitted during one parse/edit
	// call so a host (editor, language server) can group log lines from
	// the same operation. It is not a node identity — node and token ids
	// remain the monotonic counter below, per spec.md's id invariant.
	SessionID uuid.UUID

	Diagnostics []Diagnostic
}

// NewContext creates a parse context with a fresh session id and an
// empty id counter and diagnostics sink.
func NewContext() *Context {
	return &Context{SessionID: uuid.New()}
}

// NewID returns the next id in the monotonic sequence. Ids are never
// reused within a Context (spec.md §3.1 invariant).
func (c *Context) NewID() int {
	c.nextID++
	return c.nextID
}

// Errorf records a diagnostic at the given stage and position. It never
// panics and never aborts the caller.
func (c *Context) Errorf(origin Stage, line, offset int, lexeme, format string, args ...any) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Origin:  origin,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Offset:  offset,
		Lexeme:  lexeme,
	})
}
