// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package cst

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// ToAST is the inverse of FromAST: it rebuilds an ast.Node from n's
// children, discriminating optional fields by tag (for nested AST nodes)
// or by token.Kind (for flat leaves) in the same fixed order FromAST
// emitted them (spec.md §4.4 "toAst is its inverse"). ctx supplies ids
// for any value re-derived from tokens (e.g. an Info_line's structured
// Value overlay, recomputed rather than duplicated in the tree).
func ToAST(n *Node, ctx *token.Context) ast.Node {
	if n == nil {
		return nil
	}
	return toASTNode(n, ctx)
}

// cursor walks an already-materialized child slice the way the original
// token-level Parser walks a token slice, so the per-tag builders below
// read like the parser they mirror.
type cursor struct {
	children []*Node
	pos      int
}

func newCursor(n *Node) *cursor { return &cursor{children: n.Children()} }

func (c *cursor) atEnd() bool { return c.pos >= len(c.children) }

func (c *cursor) peek() *Node {
	if c.atEnd() {
		return nil
	}
	return c.children[c.pos]
}

func (c *cursor) bump() *Node {
	n := c.peek()
	if n != nil {
		c.pos++
	}
	return n
}

// bumpTag consumes and returns the next child if it is tagged tag.
func (c *cursor) bumpTag(tag Tag) *Node {
	if n := c.peek(); n != nil && n.Tag == tag {
		return c.bump()
	}
	return nil
}

// bumpTokenKind consumes and returns the next child's token if it is a
// leaf of the given token.Kind.
func (c *cursor) bumpTokenKind(k token.Kind) *token.Token {
	if n := c.peek(); n != nil && n.IsLeaf() && n.Token != nil && n.Token.Kind == k {
		c.pos++
		return n.Token
	}
	return nil
}

// rest returns every remaining child.
func (c *cursor) rest() []*Node {
	out := c.children[c.pos:]
	c.pos = len(c.children)
	return out
}

func mustToken(n *Node) token.Token {
	if n == nil || n.Token == nil {
		return token.Token{}
	}
	return *n.Token
}

func tokensOf(nodes []*Node) []token.Token {
	out := make([]token.Token, 0, len(nodes))
	for _, n := range nodes {
		if n.IsLeaf() && n.Token != nil {
			out = append(out, *n.Token)
		}
	}
	return out
}

func toASTNode(n *Node, ctx *token.Context) ast.Node {
	k := ast.Kind(n.Tag)
	switch k {
	case ast.KindFile:
		c := newCursor(n)
		out := &ast.File{ID: n.ID}
		if h := c.bumpTag(tagFor(ast.KindFileHeader)); h != nil {
			out.Header = toASTNode(h, ctx).(*ast.FileHeader)
		}
		for !c.atEnd() {
			out.Items = append(out.Items, toASTNode(c.bump(), ctx))
		}
		return out
	case ast.KindFileHeader:
		out := &ast.FileHeader{ID: n.ID}
		for _, ch := range n.Children() {
			out.Items = append(out.Items, toASTNode(ch, ctx))
		}
		return out
	case ast.KindTuneHeader:
		out := &ast.TuneHeader{ID: n.ID}
		for _, ch := range n.Children() {
			out.Items = append(out.Items, toASTNode(ch, ctx))
		}
		return out
	case ast.KindTune:
		c := newCursor(n)
		out := &ast.Tune{ID: n.ID}
		if h := c.bumpTag(tagFor(ast.KindTuneHeader)); h != nil {
			out.Header = toASTNode(h, ctx).(*ast.TuneHeader)
		}
		if b := c.bumpTag(tagFor(ast.KindTuneBody)); b != nil {
			out.Body = toASTNode(b, ctx).(*ast.TuneBody)
		}
		return out
	case ast.KindTuneBody:
		out := &ast.TuneBody{ID: n.ID}
		for _, ch := range n.Children() {
			out.Systems = append(out.Systems, toASTNode(ch, ctx).(*ast.System))
		}
		return out
	case ast.KindSystem:
		out := &ast.System{ID: n.ID}
		for _, ch := range n.Children() {
			out.Elements = append(out.Elements, toASTNode(ch, ctx))
		}
		return out
	case ast.KindTrivia:
		return &ast.Trivia{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindSectionBreak:
		return &ast.SectionBreak{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindFreeText:
		return &ast.FreeText{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindComment:
		return &ast.Comment{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindDirective:
		c := newCursor(n)
		out := &ast.Directive{ID: n.ID}
		out.Marker = mustToken(c.bump())
		out.Identifier = mustToken(c.bump())
		for !c.atEnd() {
			ch := c.peek()
			if ch.IsLeaf() {
				// The only raw leaf that can follow Marker/Identifier is
				// the FreeText token (emitted right after Identifier);
				// every structured value is wrapped in its own interior
				// node (KV/Binary/.../Trivia).
				t := mustToken(c.bump())
				out.FreeText = &t
				continue
			}
			out.Values = append(out.Values, toASTNode(c.bump(), ctx))
		}
		return out
	case ast.KindErrorExpr:
		return &ast.ErrorExpr{ID: n.ID, Tokens: tokensOf(n.Children())}
	case ast.KindBeam:
		out := &ast.Beam{ID: n.ID}
		for _, ch := range n.Children() {
			out.Elements = append(out.Elements, toASTNode(ch, ctx))
		}
		return out
	case ast.KindNote:
		out := &ast.Note{ID: n.ID}
		for _, ch := range n.Children() {
			switch {
			case ch.Tag == tagFor(ast.KindPitch):
				out.Pitch = toASTNode(ch, ctx).(*ast.Pitch)
			case ch.Tag == tagFor(ast.KindRhythm):
				out.Rhythm = toASTNode(ch, ctx).(*ast.Rhythm)
			case ch.IsLeaf():
				t := mustToken(ch)
				out.Tie = &t
			}
		}
		return out
	case ast.KindPitch:
		c := newCursor(n)
		out := &ast.Pitch{ID: n.ID}
		if t := c.bumpTokenKind(token.ACCIDENTAL); t != nil {
			out.Accidental = t
		}
		out.Letter = mustToken(c.bump())
		if t := c.bumpTokenKind(token.OCTAVE); t != nil {
			out.Octave = t
		}
		return out
	case ast.KindRhythm:
		c := newCursor(n)
		out := &ast.Rhythm{ID: n.ID}
		out.Numerator = c.bumpTokenKind(token.RHY_NUMER)
		out.Separator = c.bumpTokenKind(token.RHY_SEP)
		out.Denominator = c.bumpTokenKind(token.RHY_DENOM)
		out.Broken = c.bumpTokenKind(token.RHY_BRKN)
		return out
	case ast.KindChord:
		c := newCursor(n)
		out := &ast.Chord{ID: n.ID}
		out.LBracket = mustToken(c.bump())
		for c.peek() != nil && !c.peek().IsLeaf() && c.peek().Tag != tagFor(ast.KindRhythm) {
			out.Contents = append(out.Contents, toASTNode(c.bump(), ctx))
		}
		out.RBracket = mustToken(c.bump())
		if r := c.bumpTag(tagFor(ast.KindRhythm)); r != nil {
			out.Rhythm = toASTNode(r, ctx).(*ast.Rhythm)
		}
		if rest := c.rest(); len(rest) > 0 {
			t := mustToken(rest[0])
			out.Tie = &t
		}
		return out
	case ast.KindGraceGroup:
		c := newCursor(n)
		out := &ast.GraceGroup{ID: n.ID}
		out.LBrace = mustToken(c.bump())
		if t := c.bumpTokenKind(token.RHY_SEP); t != nil {
			out.Acciaccatura = t
		}
		for c.peek() != nil && !(c.peek().IsLeaf() && c.pos == len(c.children)-1) {
			out.Notes = append(out.Notes, toASTNode(c.bump(), ctx))
		}
		out.RBrace = mustToken(c.bump())
		return out
	case ast.KindBarLine:
		children := n.Children()
		out := &ast.BarLine{ID: n.ID, Tok: mustToken(children[0])}
		for _, ch := range children[1:] {
			out.RepeatNumbers = append(out.RepeatNumbers, mustToken(ch))
		}
		return out
	case ast.KindTuplet:
		c := newCursor(n)
		out := &ast.Tuplet{ID: n.ID}
		out.LParen = mustToken(c.bump())
		out.P = mustToken(c.bump())
		if t := c.bumpTokenKind(token.TUPLET_COLON); t != nil {
			out.Colon1 = t
			out.Q = c.bumpTokenKind(token.TUPLET_Q)
			if t2 := c.bumpTokenKind(token.TUPLET_COLON); t2 != nil {
				out.Colon2 = t2
				out.R = c.bumpTokenKind(token.TUPLET_R)
			}
		}
		return out
	case ast.KindRest:
		c := newCursor(n)
		out := &ast.Rest{ID: n.ID}
		out.Tok = mustToken(c.bump())
		if r := c.bumpTag(tagFor(ast.KindRhythm)); r != nil {
			out.Rhythm = toASTNode(r, ctx).(*ast.Rhythm)
		}
		return out
	case ast.KindMultiMeasureRest:
		c := newCursor(n)
		out := &ast.MultiMeasureRest{ID: n.ID}
		out.Tok = mustToken(c.bump())
		if t := c.peek(); t != nil {
			tt := mustToken(c.bump())
			out.Length = &tt
		}
		return out
	case ast.KindAnnotation:
		return &ast.Annotation{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindChordSymbol:
		return &ast.ChordSymbol{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindDecoration:
		return &ast.Decoration{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindSymbol:
		return &ast.Symbol{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindSlur:
		t := mustToken(n.FirstChild)
		return &ast.Slur{ID: n.ID, Tok: t, Open: t.Lexeme == "("}
	case ast.KindVoiceOverlay:
		return &ast.VoiceOverlay{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindLineContinuation:
		return &ast.LineContinuation{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindYSpacer:
		return &ast.YSpacer{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindInlineField:
		children := n.Children()
		out := &ast.InlineField{ID: n.ID}
		out.LBracket = mustToken(children[0])
		out.Header = mustToken(children[1])
		out.RBracket = mustToken(children[len(children)-1])
		out.Tokens = tokensOf(children[2 : len(children)-1])
		out.Value = ast.ParseInfoValueList(out.Tokens, ctx)
		return out
	case ast.KindInfoLine:
		children := n.Children()
		out := &ast.InfoLine{ID: n.ID}
		out.Header = mustToken(children[0])
		out.Tokens = tokensOf(children[1:])
		out.Text = lexemes(out.Tokens)
		out.Value = ast.ParseInfoValueList(out.Tokens, ctx)
		return out
	case ast.KindMacroDecl:
		children := n.Children()
		out := &ast.MacroDecl{ID: n.ID}
		out.Header = mustToken(children[0])
		out.Tokens = tokensOf(children[1:])
		out.Text = lexemes(out.Tokens)
		return out
	case ast.KindUserSymbolDecl:
		children := n.Children()
		out := &ast.UserSymbolDecl{ID: n.ID}
		out.Header = mustToken(children[0])
		out.Tokens = tokensOf(children[1:])
		out.Text = lexemes(out.Tokens)
		return out
	case ast.KindMacroInvocation:
		return &ast.MacroInvocation{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindUserSymbolInvocation:
		return &ast.UserSymbolInvocation{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindKV:
		c := newCursor(n)
		out := &ast.KV{ID: n.ID}
		out.Key = mustToken(c.bump())
		out.Eql = mustToken(c.bump())
		if v := c.bump(); v != nil {
			out.Value = toASTNode(v, ctx)
		}
		return out
	case ast.KindBinary:
		children := n.Children()
		left := toASTNode(children[0], ctx)
		op := mustToken(children[1])
		right := toASTNode(children[2], ctx)
		return &ast.Binary{ID: n.ID, Left: left, Op: op, Right: right}
	case ast.KindUnary:
		children := n.Children()
		op := mustToken(children[0])
		operand := toASTNode(children[1], ctx)
		return &ast.Unary{ID: n.ID, Op: op, Operand: operand}
	case ast.KindGrouping:
		children := n.Children()
		return &ast.Grouping{
			ID:     n.ID,
			LParen: mustToken(children[0]),
			Inner:  toASTNode(children[1], ctx),
			RParen: mustToken(children[2]),
		}
	case ast.KindRational:
		children := n.Children()
		return &ast.Rational{
			ID:          n.ID,
			Numerator:   mustToken(children[0]),
			Slash:       mustToken(children[1]),
			Denominator: mustToken(children[2]),
		}
	case ast.KindMeasurement:
		children := n.Children()
		return &ast.Measurement{ID: n.ID, Number: mustToken(children[0]), Unit: mustToken(children[1])}
	case ast.KindAbsolutePitch:
		return &ast.AbsolutePitch{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindLiteral:
		return &ast.Literal{ID: n.ID, Tok: mustToken(n.FirstChild)}
	case ast.KindLyricLine:
		children := n.Children()
		return &ast.LyricLine{ID: n.ID, Header: mustToken(children[0]), Items: tokensOf(children[1:])}
	case ast.KindSymbolLine:
		children := n.Children()
		return &ast.SymbolLine{ID: n.ID, Header: mustToken(children[0]), Items: tokensOf(children[1:])}
	default:
		return nil
	}
}

func lexemes(toks []token.Token) string {
	var out []byte
	for _, t := range toks {
		out = append(out, t.Lexeme...)
	}
	return string(out)
}
