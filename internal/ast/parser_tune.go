// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// parseTune parses one Tune: a header run ending at (and including) its
// K: info line, then an optional body (spec.md §3.2, §4.3, §8 "a Tune
// with no Tune_Body has a nil body").
func (p *Parser) parseTune() *Tune {
	header := p.parseTuneHeaderSection()
	tune := &Tune{ID: p.nextID(), Header: header}
	if !p.atEOF() && !p.atKind(token.SCT_BRK) {
		tune.Body = p.parseTuneBody()
	}
	return tune
}

// parseTuneHeaderSection consumes Info_line / Comment / Directive /
// Macro_decl / User_symbol_decl / trivia items until an Info_line whose
// header letter is K: is consumed; that line ends the header (spec.md
// §4.3). A malformed tune missing its K: line ends its header at the next
// section break or EOF instead.
func (p *Parser) parseTuneHeaderSection() *TuneHeader {
	th := &TuneHeader{ID: p.nextID()}
	for !p.atEOF() && !p.atKind(token.SCT_BRK) {
		item := p.parseTuneHeaderItem()
		th.Items = append(th.Items, item)
		if il, ok := item.(*InfoLine); ok && headerLetterByte(il.Header) == 'K' {
			// The K: line's own terminating EOL belongs to the header,
			// not the body: consuming it here means a Tune whose body is
			// genuinely absent (EOF or SCT_BRK immediately follows) gets
			// a nil Body rather than one holding only that trivia.
			if p.atKind(token.EOL) {
				th.Items = append(th.Items, p.parseTrivia())
			}
			break
		}
	}
	return th
}

func (p *Parser) parseTuneHeaderItem() Node {
	switch {
	case p.atKind(token.WS) || p.atKind(token.EOL):
		return p.parseTrivia()
	case p.atKind(token.COMMENT):
		return p.parseComment()
	case p.atKind(token.STYLESHEET_DIRECTIVE):
		return p.parseDirective()
	case p.atKind(token.INF_HDR):
		return p.parseHeaderItem()
	default:
		return p.parseErrorExprUntil(token.EOL, token.SCT_BRK)
	}
}

// parseTuneBody parses a run of Systems until a section break or EOF
// (spec.md §3.2).
func (p *Parser) parseTuneBody() *TuneBody {
	tb := &TuneBody{ID: p.nextID()}
	for !p.atEOF() && !p.atKind(token.SCT_BRK) {
		tb.Systems = append(tb.Systems, p.parseSystem())
	}
	return tb
}

// parseSystem parses one maximal EOL-delimited run of tune-body elements
// (spec.md §4.3). A LINE_CONT token does not end the System: the scanner
// already folds `\` + EOL into one atomic token, so it never satisfies
// the EOL stop condition here and is carried through as an ordinary
// LineContinuation element. An empty line (EOL with nothing before it)
// produces a System with a single Trivia element (spec.md §8 "an empty
// System is retained, not dropped").
func (p *Parser) parseSystem() *System {
	sys := &System{ID: p.nextID()}
	var raw []Node
	for !p.atEOF() && !p.atKind(token.EOL) && !p.atKind(token.SCT_BRK) {
		raw = append(raw, p.parseMusicElement())
	}
	if p.atKind(token.EOL) {
		raw = append(raw, p.parseTrivia())
	}
	sys.Elements = p.groupBeams(raw)
	return sys
}

func isBeamable(n Node) bool {
	switch n.Kind() {
	case KindNote, KindChord, KindGraceGroup, KindDecoration, KindSymbol,
		KindAnnotation, KindChordSymbol, KindRest, KindMultiMeasureRest, KindTuplet:
		return true
	default:
		return false
	}
}

// groupBeams wraps maximal runs of two-or-more beamable elements in a
// Beam node; a lone beamable element, WS, and BarLine all pass through
// unchanged (spec.md §4.3 "a contiguous run... with no intervening WS or
// BarLine"; "single-element runs are not wrapped").
func (p *Parser) groupBeams(raw []Node) []Node {
	var out []Node
	var buf []Node
	flush := func() {
		switch len(buf) {
		case 0:
		case 1:
			out = append(out, buf[0])
		default:
			out = append(out, &Beam{ID: p.nextID(), Elements: append([]Node(nil), buf...)})
		}
		buf = nil
	}
	for _, n := range raw {
		if isBeamable(n) {
			buf = append(buf, n)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()
	return out
}

// parseMusicElement parses one atomic tune-body element, dispatching by
// token kind in the same priority order the scanner's own tune_body mode
// uses (spec.md §4.2, §4.3): inline field, annotation/chord symbol,
// chord, grace group, tuplet, bar line, note, rest, decoration, symbol,
// slur, voice overlay, line continuation, y-spacer, or (falling through)
// an ErrorExpr. Macro_invocation and User_symbol_invocation are not
// constructed here: the scanner has no dedicated token kind for them (a
// reassigned decoration letter still tokenizes as DECORATION), so
// resolving a DECORATION token to one of those variants needs the tune
// header's Macro_decl/User_symbol_decl table and belongs to a later
// semantic pass, not this syntactic one.
func (p *Parser) parseMusicElement() Node {
	switch {
	case p.atKind(token.WS):
		return p.parseTrivia()
	case p.atKind(token.STYLESHEET_DIRECTIVE):
		return p.parseDirective()
	case p.atKind(token.COMMENT):
		return p.parseComment()
	case p.atKind(token.INF_HDR):
		return p.parseHeaderItem()
	case p.atKind(token.INLN_FLD_LFT_BRKT):
		return p.parseInlineField()
	case p.atKind(token.ANNOTATION):
		return p.parseAnnotationOrChordSymbol()
	case p.atKind(token.CHRD_LEFT_BRKT):
		return p.parseChord()
	case p.atKind(token.GRC_GRP_LEFT_BRACE):
		return p.parseGraceGroup()
	case p.atKind(token.TUPLET_LPAREN):
		return p.parseTuplet()
	case p.atKind(token.BARLINE):
		return p.parseBarLine()
	case p.atKind(token.ACCIDENTAL) || p.atKind(token.NOTE_LETTER):
		return p.parseNote()
	case p.atKind(token.REST):
		return p.parseRestOrMMR()
	case p.atKind(token.DECORATION):
		return &Decoration{ID: p.nextID(), Tok: p.bump()}
	case p.atKind(token.SYMBOL):
		return &Symbol{ID: p.nextID(), Tok: p.bump()}
	case p.atKind(token.SLUR):
		t := p.bump()
		return &Slur{ID: p.nextID(), Tok: t, Open: t.Lexeme == "("}
	case p.atKind(token.TIE):
		return &Decoration{ID: p.nextID(), Tok: p.bump()}
	case p.atKind(token.VOICE_OVRLAY):
		return &VoiceOverlay{ID: p.nextID(), Tok: p.bump()}
	case p.atKind(token.LINE_CONT):
		return &LineContinuation{ID: p.nextID(), Tok: p.bump()}
	case p.atKind(token.Y_SPC):
		return &YSpacer{ID: p.nextID(), Tok: p.bump()}
	default:
		return p.parseErrorExprUntil(token.EOL, token.SCT_BRK, token.WS, token.BARLINE)
	}
}

func (p *Parser) parseAnnotationOrChordSymbol() Node {
	t := p.bump()
	if isChordSymbolLexeme(t.Lexeme) {
		return &ChordSymbol{ID: p.nextID(), Tok: t}
	}
	return &Annotation{ID: p.nextID(), Tok: t}
}

func (p *Parser) parseChord() *Chord {
	lb := p.want(token.CHRD_LEFT_BRKT)
	var contents []Node
	for !p.atEOF() && !p.atKind(token.CHRD_RIGHT_BRKT) && !p.atKind(token.EOL) && !p.atKind(token.SCT_BRK) {
		switch {
		case p.atKind(token.WS):
			contents = append(contents, p.parseTrivia())
		case p.atKind(token.ANNOTATION):
			contents = append(contents, p.parseAnnotationOrChordSymbol())
		case p.atKind(token.ACCIDENTAL) || p.atKind(token.NOTE_LETTER):
			contents = append(contents, p.parseNote())
		default:
			contents = append(contents, &Literal{ID: p.nextID(), Tok: p.bump()})
		}
	}
	rb := p.want(token.CHRD_RIGHT_BRKT)
	rhythm := p.parseOptionalRhythm()
	var tie *token.Token
	if p.atKind(token.TIE) {
		t := p.bump()
		tie = &t
	}
	return &Chord{ID: p.nextID(), LBracket: lb, Contents: contents, RBracket: rb, Rhythm: rhythm, Tie: tie}
}

func (p *Parser) parseGraceGroup() *GraceGroup {
	lb := p.want(token.GRC_GRP_LEFT_BRACE)
	// A RHY_SEP can only be a rhythm separator once a note has introduced
	// something to divide; at the very start of a grace group it is
	// unambiguously the acciaccatura marker, whatever its run length.
	var acci *token.Token
	if p.atKind(token.RHY_SEP) {
		t := p.bump()
		acci = &t
	}
	var notes []Node
	for !p.atEOF() && !p.atKind(token.GRC_GRP_RGHT_BRACE) && !p.atKind(token.EOL) && !p.atKind(token.SCT_BRK) {
		switch {
		case p.atKind(token.WS):
			notes = append(notes, p.parseTrivia())
		case p.atKind(token.ACCIDENTAL) || p.atKind(token.NOTE_LETTER):
			notes = append(notes, p.parseNote())
		default:
			notes = append(notes, &Literal{ID: p.nextID(), Tok: p.bump()})
		}
	}
	rb := p.want(token.GRC_GRP_RGHT_BRACE)
	return &GraceGroup{ID: p.nextID(), LBrace: lb, Acciaccatura: acci, Notes: notes, RBrace: rb}
}

func (p *Parser) parseTuplet() *Tuplet {
	lp := p.want(token.TUPLET_LPAREN)
	pTok := p.want(token.TUPLET_P)
	tup := &Tuplet{ID: p.nextID(), LParen: lp, P: pTok}
	if p.atKind(token.TUPLET_COLON) {
		c1 := p.bump()
		tup.Colon1 = &c1
		if p.atKind(token.TUPLET_Q) {
			q := p.bump()
			tup.Q = &q
		}
		if p.atKind(token.TUPLET_COLON) {
			c2 := p.bump()
			tup.Colon2 = &c2
			if p.atKind(token.TUPLET_R) {
				r := p.bump()
				tup.R = &r
			}
		}
	}
	return tup
}

func (p *Parser) parseBarLine() *BarLine {
	t := p.want(token.BARLINE)
	var reps []token.Token
	for p.atKind(token.NUMBER) {
		reps = append(reps, p.bump())
	}
	return &BarLine{ID: p.nextID(), Tok: t, RepeatNumbers: reps}
}

func (p *Parser) parseNote() *Note {
	pitch := p.parsePitch()
	rhythm := p.parseOptionalRhythm()
	var tie *token.Token
	if p.atKind(token.TIE) {
		t := p.bump()
		tie = &t
	}
	return &Note{ID: p.nextID(), Pitch: pitch, Rhythm: rhythm, Tie: tie}
}

func (p *Parser) parsePitch() *Pitch {
	var acc *token.Token
	if p.atKind(token.ACCIDENTAL) {
		t := p.bump()
		acc = &t
	}
	letter := p.want(token.NOTE_LETTER)
	var oct *token.Token
	if p.atKind(token.OCTAVE) {
		t := p.bump()
		oct = &t
	}
	return &Pitch{ID: p.nextID(), Accidental: acc, Letter: letter, Octave: oct}
}

func (p *Parser) parseOptionalRhythm() *Rhythm {
	if !p.atAny(token.RHY_NUMER, token.RHY_SEP, token.RHY_DENOM, token.RHY_BRKN) {
		return nil
	}
	r := &Rhythm{ID: p.nextID()}
	if p.atKind(token.RHY_NUMER) {
		t := p.bump()
		r.Numerator = &t
	}
	if p.atKind(token.RHY_SEP) {
		t := p.bump()
		r.Separator = &t
	}
	if p.atKind(token.RHY_DENOM) {
		t := p.bump()
		r.Denominator = &t
	}
	if p.atKind(token.RHY_BRKN) {
		t := p.bump()
		r.Broken = &t
	}
	return r
}

func (p *Parser) parseRestOrMMR() Node {
	t := p.bump()
	upper := len(t.Lexeme) > 0 && t.Lexeme[0] >= 'A' && t.Lexeme[0] <= 'Z'
	if upper {
		var length *token.Token
		if p.atKind(token.RHY_NUMER) {
			lt := p.bump()
			length = &lt
		}
		return &MultiMeasureRest{ID: p.nextID(), Tok: t, Length: length}
	}
	rhythm := p.parseOptionalRhythm()
	return &Rest{ID: p.nextID(), Tok: t, Rhythm: rhythm}
}
