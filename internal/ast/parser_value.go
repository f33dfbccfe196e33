// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// valueParser builds the structured Value list an Info_line, Inline_field,
// or Directive carries alongside its flat Tokens list (spec.md §9's dual
// representation). It runs over an already-collected token slice rather
// than the main Parser's live cursor, since its input is always a bounded
// sub-run with its own stop conditions already applied by the caller.
type valueParser struct {
	toks       []token.Token
	pos        int
	ctx        *token.Context
	allowPitch bool
}

func (vp *valueParser) nextID() int { return vp.ctx.NewID() }

func (vp *valueParser) atEnd() bool { return vp.pos >= len(vp.toks) }

func (vp *valueParser) peek() token.Token {
	if vp.atEnd() {
		return token.Token{Kind: token.EOF}
	}
	return vp.toks[vp.pos]
}

func (vp *valueParser) peekAt(n int) token.Token {
	i := vp.pos + n
	if i >= len(vp.toks) {
		return token.Token{Kind: token.EOF}
	}
	return vp.toks[i]
}

func (vp *valueParser) bump() token.Token {
	t := vp.peek()
	if !vp.atEnd() {
		vp.pos++
	}
	return t
}

func (vp *valueParser) skipWS() {
	for !vp.atEnd() && vp.peek().Kind == token.WS {
		vp.pos++
	}
}

func (vp *valueParser) want(k token.Kind) token.Token {
	if vp.peek().Kind == k {
		return vp.bump()
	}
	cur := vp.peek()
	vp.ctx.Errorf(token.StageAnalyzer, cur.Line, cur.Offset, cur.Lexeme, "expected %s in structured value", k)
	return token.Token{Kind: k, Line: cur.Line, Offset: cur.Offset, ID: vp.ctx.NewID()}
}

// ParseInfoValueList is the exported form of parseInfoValueList, used by
// internal/cst's toAST to re-derive an Info_line/Inline_field's structured
// Value overlay from its reconstituted flat Tokens list, rather than
// duplicating the value grammar in the CST package.
func ParseInfoValueList(toks []token.Token, ctx *token.Context) []Node {
	return parseInfoValueList(toks, ctx)
}

// ParseDirectiveValues is the exported form of parseDirectiveValues, used
// by internal/cst's toAST when rebuilding a Directive from CST children.
func ParseDirectiveValues(toks []token.Token, ctx *token.Context) []Node {
	return parseDirectiveValues(toks, ctx)
}

// parseInfoValueList builds the Value list for an Info_line or
// Inline_field from its already-collected flat token run (spec.md §4.3).
// Interior WS is a pure separator here and is dropped; the caller's
// Tokens field already keeps it for a lossless reconstruction.
func parseInfoValueList(toks []token.Token, ctx *token.Context) []Node {
	nonWS := false
	for _, t := range toks {
		if t.Kind != token.WS {
			nonWS = true
			break
		}
	}
	if !nonWS {
		return nil
	}
	vp := &valueParser{toks: toks, ctx: ctx}
	var out []Node
	for {
		vp.skipWS()
		if vp.atEnd() {
			break
		}
		out = append(out, vp.parseOne())
	}
	return out
}

// parseDirectiveValues builds the Value list for a Directive. Unlike an
// Info_line, a Directive's Values list is the only structured home its
// value tokens have (Directive carries no separate flat-token field for
// its value run beyond Marker/Identifier/FreeText), so interior WS is
// kept as Trivia nodes to stay lossless, and a leading pitch run
// (ACCIDENTAL?/NOTE_LETTER/OCTAVE, as produced by the scanner's directive
// submode) is recognized in addition to the Info_line grammar.
func parseDirectiveValues(toks []token.Token, ctx *token.Context) []Node {
	vp := &valueParser{toks: toks, ctx: ctx, allowPitch: true}
	var out []Node
	for !vp.atEnd() {
		if vp.peek().Kind == token.WS {
			out = append(out, &Trivia{ID: vp.nextID(), Tok: vp.bump()})
			continue
		}
		out = append(out, vp.parseOne())
	}
	return out
}

// findEqlAhead reports whether an EQL token immediately follows the current token (optionally across a single
// WS), which is how a KV's `key = value` shape is distinguished from a
// bare Literal/AbsolutePitch.
func (vp *valueParser) findEqlAhead() bool {
	i := 1
	if vp.peekAt(i).Kind == token.WS {
		i++
	}
	return vp.peekAt(i).Kind == token.EQL
}

func (vp *valueParser) parseOne() Node {
	t := vp.peek()
	switch {
	case vp.allowPitch && (t.Kind == token.ACCIDENTAL || t.Kind == token.NOTE_LETTER):
		return vp.parsePitch()
	case t.Kind == token.IDENTIFIER || t.Kind == token.NUMBER:
		if vp.findEqlAhead() {
			return vp.parseKV()
		}
		return vp.parseNumericOrIdent()
	case t.Kind == token.MINUS || t.Kind == token.PLUS:
		return vp.parseUnary()
	case t.Kind == token.LPAREN:
		return vp.parseGrouping()
	default:
		vp.bump()
		return &Literal{ID: vp.nextID(), Tok: t}
	}
}

func (vp *valueParser) parsePitch() Node {
	var acc *token.Token
	if vp.peek().Kind == token.ACCIDENTAL {
		t := vp.bump()
		acc = &t
	}
	letter := vp.want(token.NOTE_LETTER)
	var oct *token.Token
	if vp.peek().Kind == token.OCTAVE {
		t := vp.bump()
		oct = &t
	}
	return &Pitch{ID: vp.nextID(), Accidental: acc, Letter: letter, Octave: oct}
}

func (vp *valueParser) parseKV() Node {
	key := vp.bump()
	vp.skipWS()
	eql := vp.bump()
	vp.skipWS()
	val := vp.parseOne()
	return &KV{ID: vp.nextID(), Key: key, Eql: eql, Value: val}
}

func (vp *valueParser) parseNumericOrIdent() Node {
	t := vp.bump()
	if t.Kind == token.NUMBER {
		if vp.peek().Kind == token.MEASUREMENT_UNIT {
			unit := vp.bump()
			return &Measurement{ID: vp.nextID(), Number: t, Unit: unit}
		}
		if vp.peek().Kind == token.SLASH {
			slash := vp.bump()
			denom := vp.want(token.NUMBER)
			return &Rational{ID: vp.nextID(), Numerator: t, Slash: slash, Denominator: denom}
		}
		if vp.peek().Kind == token.PLUS || vp.peek().Kind == token.MINUS {
			op := vp.bump()
			right := vp.parseOne()
			return &Binary{ID: vp.nextID(), Left: &Literal{ID: vp.nextID(), Tok: t}, Op: op, Right: right}
		}
		return &Literal{ID: vp.nextID(), Tok: t}
	}
	if isAbsolutePitchLexeme(t.Lexeme) {
		return &AbsolutePitch{ID: vp.nextID(), Tok: t}
	}
	return &Literal{ID: vp.nextID(), Tok: t}
}

func (vp *valueParser) parseUnary() Node {
	op := vp.bump()
	vp.skipWS()
	operand := vp.parseOne()
	return &Unary{ID: vp.nextID(), Op: op, Operand: operand}
}

func (vp *valueParser) parseGrouping() Node {
	lp := vp.bump()
	vp.skipWS()
	inner := vp.parseOne()
	vp.skipWS()
	rp := vp.want(token.RPAREN)
	return &Grouping{ID: vp.nextID(), LParen: lp, Inner: inner, RParen: rp}
}

// isAbsolutePitchLexeme reports whether s has the shape scanAbsolutePitch
// produces: a note letter, an optional accidental, and optional octave
// digits/marks (spec.md §4.2's AbsolutePitch rule).
func isAbsolutePitchLexeme(s string) bool {
	if len(s) == 0 {
		return false
	}
	i := 0
	if s[0] < 'A' || s[0] > 'G' {
		return false
	}
	i++
	for i < len(s) && (s[i] == '#' || s[i] == 'b') {
		i++
	}
	for i < len(s) {
		if (s[i] >= '0' && s[i] <= '9') || s[i] == '\'' || s[i] == ',' {
			i++
			continue
		}
		return false
	}
	return true
}

// isChordSymbolLexeme reports whether an ANNOTATION token's lexeme reads
// as a harmonic chord symbol rather than free-text: after stripping the
// surrounding quotes, the text starts with a note letter and carries none
// of the placement glyphs (`^`, `_`, `<`, `>`, `@`) that mark a positioned
// annotation (spec.md §4.2).
func isChordSymbolLexeme(lexeme string) bool {
	s := lexeme
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if len(s) == 0 {
		return false
	}
	switch s[0] {
	case '^', '_', '<', '>', '@':
		return false
	}
	return s[0] >= 'A' && s[0] <= 'G'
}
