// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// Parse assembles a File from a token stream produced by internal/scanner
// (spec.md §4.3's top-level procedure). It never panics; malformed input
// surfaces as ErrorExpr nodes and diagnostics on ctx, not as a Go error.
func Parse(tokens []token.Token, ctx *token.Context) *File {
	p := &Parser{tokens: tokens, ctx: ctx}
	return p.parseFile()
}

// Parser is a hand-written recursive-descent parser over []token.Token.
// Its cursor/helper vocabulary (atKind/atAny/bump/want/wantOneOf/synth/
// recoverTo) is the teacher's idiomatic answer to "recursive descent with
// synchronization points" (grounded on internal/reports/cst.Parser),
// generalized from a byte-position cursor to a token-index one.
type Parser struct {
	tokens []token.Token
	pos    int
	ctx    *token.Context
}

func (p *Parser) nextID() int { return p.ctx.NewID() }

// --- cursor primitives ---

// cur returns the token at the cursor. The scanner always terminates its
// stream with EOF, so this is never out of range once pos has been
// clamped by bump.
func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) atKind(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) atAny(ks ...token.Kind) bool {
	c := p.cur().Kind
	for _, k := range ks {
		if c == k {
			return true
		}
	}
	return false
}

func (p *Parser) bump() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// want consumes a token of kind k, or records a diagnostic and
// synthesizes a zero-width placeholder when the expectation fails
// (spec.md §4.3 "error recovery... collects the offending tokens into an
// ErrorExpr and resumes"; want is the single-token version of that same
// philosophy).
func (p *Parser) want(k token.Kind) token.Token {
	if p.atKind(k) {
		return p.bump()
	}
	p.errorExpected(k)
	return p.synth(k)
}

func (p *Parser) wantOneOf(ks ...token.Kind) token.Token {
	if p.atAny(ks...) {
		return p.bump()
	}
	p.errorExpectedSet(ks)
	return p.synth(ks[0])
}

func (p *Parser) synth(k token.Kind) token.Token {
	cur := p.cur()
	return token.Token{Kind: k, Lexeme: "", Line: cur.Line, Offset: cur.Offset, ID: p.ctx.NewID()}
}

func (p *Parser) errorExpected(k token.Kind) {
	cur := p.cur()
	p.ctx.Errorf(token.StageParser, cur.Line, cur.Offset, cur.Lexeme, "expected %s, found %s", k, cur.Kind)
}

func (p *Parser) errorExpectedSet(ks []token.Kind) {
	cur := p.cur()
	p.ctx.Errorf(token.StageParser, cur.Line, cur.Offset, cur.Lexeme, "expected one of %v, found %s", ks, cur.Kind)
}

// recoverTo skips tokens until one of sync is seen or EOF (spec.md §4.3
// "resumes at the next synchronization point").
func (p *Parser) recoverTo(sync ...token.Kind) {
	for !p.atEOF() && !p.atAny(sync...) {
		p.bump()
	}
}

// collectValueTokens consumes and returns every token up to (not
// including) the first occurrence of a stop kind or EOF.
func (p *Parser) collectValueTokens(stop ...token.Kind) []token.Token {
	var toks []token.Token
	for !p.atEOF() && !p.atAny(stop...) {
		toks = append(toks, p.bump())
	}
	return toks
}

// --- top-level ---

// parseFile implements "File_structure = optional File_header, then
// repeat { Tune | SCT_BRK | FREE_TXT | INVALID | stray token }" (spec.md
// §4.3). The File_header is everything before the first X: tune start in
// the whole stream (spec.md "Anything before the first tune's X:... is
// File_header"); if no X: ever appears, the entire input is File_header
// and the tune list stays empty (spec.md §8 boundary behavior).
func (p *Parser) parseFile() *File {
	f := &File{ID: p.nextID()}
	if idx := p.findFirstTuneStart(); idx != p.pos && !p.atEOF() {
		f.Header = p.parseFileHeaderUntil(idx)
	}
	for !p.atEOF() {
		if p.atTuneStart() {
			f.Items = append(f.Items, p.parseTune())
			continue
		}
		f.Items = append(f.Items, p.parseTopLevelItem())
	}
	return f
}

func (p *Parser) parseFileHeaderUntil(stop int) *FileHeader {
	fh := &FileHeader{ID: p.nextID()}
	for !p.atEOF() && p.pos != stop {
		fh.Items = append(fh.Items, p.parseTopLevelItem())
	}
	return fh
}

// parseTopLevelItem parses one item of the repeat{} loop that follows an
// optional File_header: a section break, a trivia separator, file-header
// prose, a comment, a stylesheet directive, a standalone info line, or
// (falling through every known shape) an ErrorExpr.
func (p *Parser) parseTopLevelItem() Node {
	switch {
	case p.atKind(token.SCT_BRK):
		return p.parseSectionBreak()
	case p.atKind(token.WS) || p.atKind(token.EOL):
		return p.parseTrivia()
	case p.atKind(token.FREE_TXT):
		return p.parseFreeText()
	case p.atKind(token.COMMENT):
		return p.parseComment()
	case p.atKind(token.STYLESHEET_DIRECTIVE):
		return p.parseDirective()
	case p.atKind(token.INF_HDR):
		return p.parseHeaderItem()
	default:
		return p.parseErrorExprUntil(token.SCT_BRK, token.EOL)
	}
}

func (p *Parser) findFirstTuneStart() int {
	for i := p.pos; i < len(p.tokens); i++ {
		if headerLetterByte(p.tokens[i]) == 'X' {
			return i
		}
	}
	return -1
}

func (p *Parser) atTuneStart() bool {
	return headerLetterByte(p.cur()) == 'X'
}

func headerLetterByte(t token.Token) byte {
	if t.Kind != token.INF_HDR || len(t.Lexeme) == 0 {
		return 0
	}
	return t.Lexeme[0]
}

func (p *Parser) parseSectionBreak() *SectionBreak {
	return &SectionBreak{ID: p.nextID(), Tok: p.bump()}
}

func (p *Parser) parseTrivia() *Trivia {
	return &Trivia{ID: p.nextID(), Tok: p.bump()}
}

func (p *Parser) parseFreeText() *FreeText {
	return &FreeText{ID: p.nextID(), Tok: p.bump()}
}

func (p *Parser) parseComment() *Comment {
	return &Comment{ID: p.nextID(), Tok: p.bump()}
}

// parseErrorExprUntil consumes at least one token, then continues until a
// stop kind or EOF, wrapping the run in an ErrorExpr (spec.md §9
// "ErrorExpr is a real AST variant, not a null").
func (p *Parser) parseErrorExprUntil(stop ...token.Kind) *ErrorExpr {
	start := p.cur()
	toks := []token.Token{p.bump()}
	toks = append(toks, p.collectValueTokens(stop...)...)
	p.ctx.Errorf(token.StageParser, start.Line, start.Offset, start.Lexeme, "unrecognized construct")
	return &ErrorExpr{ID: p.nextID(), Tokens: toks}
}

func (p *Parser) parseDirective() *Directive {
	marker := p.want(token.STYLESHEET_DIRECTIVE)
	ident := p.want(token.IDENTIFIER)
	d := &Directive{ID: p.nextID(), Marker: marker, Identifier: ident}
	if p.atKind(token.FREE_TXT) {
		t := p.bump()
		d.FreeText = &t
	}
	toks := p.collectValueTokens(token.EOL, token.SCT_BRK)
	d.Values = parseDirectiveValues(toks, p.ctx)
	return d
}

// parseHeaderItem parses an INF_HDR and the value content that follows it
// up to EOL/SCT_BRK/EOF, dispatching on the header letter to the variant
// spec.md §3.2 names: LyricLine (w/W), SymbolLine (s), MacroDecl (m),
// UserSymbolDecl (U), else InfoLine. This single function serves every
// context an info line can appear in: File_header, Tune_header, and a
// standalone inline-switch line inside a Tune_Body (spec.md §4.2's
// "info-line (inline K:/M:/L:/V:/…)" inside tune_body).
func (p *Parser) parseHeaderItem() Node {
	hdr := p.bump()
	letter := headerLetterByte(hdr)
	switch letter {
	case 'w', 'W':
		items := p.collectValueTokens(token.EOL, token.SCT_BRK)
		return &LyricLine{ID: p.nextID(), Header: hdr, Items: items}
	case 's':
		items := p.collectValueTokens(token.EOL, token.SCT_BRK)
		return &SymbolLine{ID: p.nextID(), Header: hdr, Items: items}
	case 'm':
		toks := p.collectValueTokens(token.EOL, token.SCT_BRK)
		return &MacroDecl{ID: p.nextID(), Header: hdr, Text: joinLexemes(toks), Tokens: toks}
	case 'U':
		toks := p.collectValueTokens(token.EOL, token.SCT_BRK)
		return &UserSymbolDecl{ID: p.nextID(), Header: hdr, Text: joinLexemes(toks), Tokens: toks}
	default:
		toks := p.collectValueTokens(token.EOL, token.SCT_BRK)
		value := parseInfoValueList(toks, p.ctx)
		return &InfoLine{ID: p.nextID(), Header: hdr, Text: joinLexemes(toks), Tokens: toks, Value: value}
	}
}

func joinLexemes(toks []token.Token) string {
	s := ""
	for _, t := range toks {
		s += t.Lexeme
	}
	return s
}

// parseInlineField parses a mid-body `[letter:value]` switch (spec.md
// §3.2, §4.3): the scanner already produces a flat
// INLN_FLD_LFT_BRKT, INF_HDR, <value tokens>, INLN_FLD_RGT_BRKT run for
// it, so this reduces to the same shape as parseHeaderItem's default case
// bounded by the closing bracket instead of EOL.
func (p *Parser) parseInlineField() *InlineField {
	lb := p.want(token.INLN_FLD_LFT_BRKT)
	hdr := p.want(token.INF_HDR)
	toks := p.collectValueTokens(token.INLN_FLD_RGT_BRKT)
	rb := p.want(token.INLN_FLD_RGT_BRKT)
	value := parseInfoValueList(toks, p.ctx)
	return &InlineField{ID: p.nextID(), LBracket: lb, Header: hdr, Tokens: toks, Value: value, RBracket: rb}
}
