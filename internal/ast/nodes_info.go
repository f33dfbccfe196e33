// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// InfoLine is a header line (`K:`, `T:`, `M:`, ...): the header token,
// the flat token list for back-compat, and an optional structured value
// list (spec.md §3.2, §9 "dual representation in Info_line and
// Inline_field"). Consumers prefer Value when non-nil.
type InfoLine struct {
	ID     int
	Header token.Token
	Text   string
	Tokens []token.Token
	Value  []Node
}

func (n *InfoLine) Kind() Kind  { return KindInfoLine }
func (n *InfoLine) NodeID() int { return n.ID }

// MacroDecl is an `m:` tune-header line declaring a macro substitution
// (spec.md §3.2 Tune_header item list); it keeps the same flat-token
// shape as InfoLine since the scanner tokenizes its RHS through the same
// info_line submode.
type MacroDecl struct {
	ID     int
	Header token.Token
	Text   string
	Tokens []token.Token
}

func (n *MacroDecl) Kind() Kind  { return KindMacroDecl }
func (n *MacroDecl) NodeID() int { return n.ID }

// UserSymbolDecl is a `U:` tune-header line assigning a decoration or
// symbol to a one-letter invocation.
type UserSymbolDecl struct {
	ID     int
	Header token.Token
	Text   string
	Tokens []token.Token
}

func (n *UserSymbolDecl) Kind() Kind  { return KindUserSymbolDecl }
func (n *UserSymbolDecl) NodeID() int { return n.ID }

// MacroInvocation is a body-level reference to a macro declared by a
// MacroDecl.
type MacroInvocation struct {
	ID  int
	Tok token.Token
}

func (n *MacroInvocation) Kind() Kind  { return KindMacroInvocation }
func (n *MacroInvocation) NodeID() int { return n.ID }

// UserSymbolInvocation is a body-level reference to a symbol declared by
// a UserSymbolDecl.
type UserSymbolInvocation struct {
	ID  int
	Tok token.Token
}

func (n *UserSymbolInvocation) Kind() Kind  { return KindUserSymbolInvocation }
func (n *UserSymbolInvocation) NodeID() int { return n.ID }

// KV is `key = value` inside an Info_line/Inline_field/Directive value
// list (spec.md §4.3).
type KV struct {
	ID    int
	Key   token.Token
	Eql   token.Token
	Value Node
}

func (n *KV) Kind() Kind  { return KindKV }
func (n *KV) NodeID() int { return n.ID }

// Binary is `number [+/-] number` (spec.md §4.3); division is folded into
// Rational instead of Binary, per the spec's own grouping.
type Binary struct {
	ID    int
	Left  Node
	Op    token.Token
	Right Node
}

func (n *Binary) Kind() Kind  { return KindBinary }
func (n *Binary) NodeID() int { return n.ID }

// Unary is `[+-] operand` (spec.md §4.3).
type Unary struct {
	ID      int
	Op      token.Token
	Operand Node
}

func (n *Unary) Kind() Kind  { return KindUnary }
func (n *Unary) NodeID() int { return n.ID }

// Grouping is `( expr )` (spec.md §4.3).
type Grouping struct {
	ID     int
	LParen token.Token
	Inner  Node
	RParen token.Token
}

func (n *Grouping) Kind() Kind  { return KindGrouping }
func (n *Grouping) NodeID() int { return n.ID }

// Rational is `number / number` (spec.md §4.3 "Binary (... number/number
// -> Rational)").
type Rational struct {
	ID          int
	Numerator   token.Token
	Slash       token.Token
	Denominator token.Token
}

func (n *Rational) Kind() Kind  { return KindRational }
func (n *Rational) NodeID() int { return n.ID }

// Measurement is NUMBER + MEASUREMENT_UNIT (spec.md §4.3).
type Measurement struct {
	ID     int
	Number token.Token
	Unit   token.Token
}

func (n *Measurement) Kind() Kind  { return KindMeasurement }
func (n *Measurement) NodeID() int { return n.ID }

// AbsolutePitch wraps the single IDENTIFIER token the scanner produces
// for a note letter with its optional `#`/`b` and octave digits (spec.md
// §4.2's info-line AbsolutePitch rule; the scanner folds letter/
// accidental/octave into one token rather than three, so there is nothing
// further to decompose here). The scanner takes this path when the letter
// is followed by a mode letter; the mode letter is not part of the token.
type AbsolutePitch struct {
	ID  int
	Tok token.Token
}

func (n *AbsolutePitch) Kind() Kind  { return KindAbsolutePitch }
func (n *AbsolutePitch) NodeID() int { return n.ID }

// Literal wraps any value-list token that doesn't participate in a larger
// structured expression (a bare IDENTIFIER, NUMBER, or stray Token).
type Literal struct {
	ID  int
	Tok token.Token
}

func (n *Literal) Kind() Kind  { return KindLiteral }
func (n *Literal) NodeID() int { return n.ID }
