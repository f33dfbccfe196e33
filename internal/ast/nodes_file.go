// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// File is the AST root (spec.md §3.2 File_structure): an optional
// FileHeader followed by the ordered sequence of top-level items (Tune,
// SectionBreak, FreeText, Comment, Directive, ErrorExpr, and the Trivia
// leaves that separate them).
type File struct {
	ID     int
	Header *FileHeader
	Items  []Node
}

func (n *File) Kind() Kind   { return KindFile }
func (n *File) NodeID() int  { return n.ID }

// FileHeader and TuneHeader both hold an ordered sequence of
// InfoLine / Directive / Comment / MacroDecl / UserSymbolDecl items
// (spec.md §3.2), interspersed with Trivia for the WS/EOL between them.
type FileHeader struct {
	ID    int
	Items []Node
}

func (n *FileHeader) Kind() Kind  { return KindFileHeader }
func (n *FileHeader) NodeID() int { return n.ID }

type TuneHeader struct {
	ID    int
	Items []Node
}

func (n *TuneHeader) Kind() Kind  { return KindTuneHeader }
func (n *TuneHeader) NodeID() int { return n.ID }

// Tune holds a TuneHeader and an optional TuneBody (spec.md §3.2 "Tune
// with no Tune_Body -> body is null", spec.md §8 boundary behavior).
type Tune struct {
	ID     int
	Header *TuneHeader
	Body   *TuneBody
}

func (n *Tune) Kind() Kind  { return KindTune }
func (n *Tune) NodeID() int { return n.ID }

// TuneBody is a sequence of Systems (spec.md §3.2, §4.3 "Tune_Body:
// sequence of Systems").
type TuneBody struct {
	ID      int
	Systems []*System
}

func (n *TuneBody) Kind() Kind  { return KindTuneBody }
func (n *TuneBody) NodeID() int { return n.ID }

// System is a maximal run of tune-body elements delimited by EOL
// (spec.md §4.3). An empty System (only WS/EOL trivia) is retained rather
// than dropped (spec.md §8 "System with no elements -> empty System
// wrapper").
type System struct {
	ID       int
	Elements []Node
}

func (n *System) Kind() Kind  { return KindSystem }
func (n *System) NodeID() int { return n.ID }

// Trivia wraps a WS or EOL token kept in the tree so verbatimFormat can
// reconstruct the source directly from the AST, not only from the CST
// (spec.md §8's "verbatimFormat(fromAst(a)) == verbatimFormat(a)" requires
// format to operate on either representation; see DESIGN.md's ast entry).
type Trivia struct {
	ID  int
	Tok token.Token
}

func (n *Trivia) Kind() Kind  { return KindTrivia }
func (n *Trivia) NodeID() int { return n.ID }

// SectionBreak wraps an SCT_BRK token (spec.md §3.2's "SystemBreak"
// variant; named SectionBreak here to match the scanner's SCT_BRK kind).
type SectionBreak struct {
	ID  int
	Tok token.Token
}

func (n *SectionBreak) Kind() Kind  { return KindSectionBreak }
func (n *SectionBreak) NodeID() int { return n.ID }

// FreeText wraps a FREE_TXT token: file-header prose, or a directive's
// captured text body.
type FreeText struct {
	ID  int
	Tok token.Token
}

func (n *FreeText) Kind() Kind  { return KindFreeText }
func (n *FreeText) NodeID() int { return n.ID }

// Comment wraps a COMMENT token (`% ...` to end of line).
type Comment struct {
	ID  int
	Tok token.Token
}

func (n *Comment) Kind() Kind  { return KindComment }
func (n *Comment) NodeID() int { return n.ID }

// Directive is a `%%...` stylesheet directive (spec.md §4.3 "Directive").
// FreeText is set when a FREE_TXT token directly follows the identifier,
// which is the case for begintext's captured block. For the single-line
// free-text directives (text/center/header/footer) written with a space
// before the text, the scanner emits a WS token first, so their text is
// kept in Values and FreeText stays nil.
type Directive struct {
	ID         int
	Marker     token.Token // STYLESHEET_DIRECTIVE
	Identifier token.Token // IDENTIFIER
	FreeText   *token.Token
	Values     []Node // KV / Measurement / Rational / *Pitch / Annotation / Literal
}

func (n *Directive) Kind() Kind  { return KindDirective }
func (n *Directive) NodeID() int { return n.ID }

// ErrorExpr is a real AST variant, not a null (spec.md §9): it carries the
// invalid token run so the formatter can reproduce the user's typing
// untouched.
type ErrorExpr struct {
	ID     int
	Tokens []token.Token
}

func (n *ErrorExpr) Kind() Kind  { return KindErrorExpr }
func (n *ErrorExpr) NodeID() int { return n.ID }
