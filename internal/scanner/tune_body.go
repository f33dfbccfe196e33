// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanTuneBody implements the music-code dispatch table (spec.md §4.2),
// in the precedence order the spec lists: directive/comment, info-line
// start, annotation/inline-field, chord/grace-group/tuplet, barline,
// pitch+rhythm, rest, decoration, slur/tie/voice-overlay/line-continuation
// /y-spacer, whitespace/EOL/section-break, and finally INVALID.
func (s *Scanner) scanTuneBody() {
	switch {
	case s.current() == '\n':
		s.scanEOL(true)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atDirectiveMarker():
		s.enterDirective()
	case s.atComment():
		s.scanComment()
	case s.headerLetterAtInBody():
		s.enterInfoLineHeader()
	case s.at('"'):
		s.scanAnnotation()
	case s.at('['):
		s.scanLeftBracket()
	case s.at(']'):
		s.scanRightBracket()
	case s.at('{'):
		s.scanRune(token.GRC_GRP_LEFT_BRACE)
	case s.at('}'):
		s.scanRune(token.GRC_GRP_RGHT_BRACE)
	case s.at('(') && s.peekDigit(1):
		s.scanTuplet()
	case s.at('('):
		s.scanRune(token.SLUR)
	case s.at(')'):
		s.scanRune(token.SLUR)
	case s.atBarline():
		s.scanBarline()
	case s.isAccidentalStart() || s.isNoteLetter(s.current()):
		s.scanPitch()
	case s.isRestLetter(s.current()):
		s.scanRune(token.REST)
	case s.at('!') || s.at('+'):
		s.scanDelimitedSymbol()
	case s.isDecorationChar():
		s.scanRune(token.DECORATION)
	case s.at('-'):
		s.scanRune(token.TIE)
	case s.at('&'):
		s.scanVoiceOverlay()
	case s.at('\\') && s.peekAt(1) == '\n':
		s.scanLineContinuation()
	case s.at('y') || s.at('`'):
		s.scanRune(token.Y_SPC)
	case s.isDigit():
		s.scanDigitRun()
	case s.at('/'):
		s.scanRhythmSep()
	case s.at('>') || s.at('<'):
		s.scanBrokenRhythm()
	default:
		s.scanInvalidRun()
	}
}

// headerLetterAtInBody reports an info-line start inside the tune body:
// any header letter followed by `:` (lyric/symbol-line headers and
// standalone lines such as `K:`/`M:`/`V:` alike). Bracketed inline fields
// (`[K:...]`) start with `[`, so they reach scanLeftBracket instead and
// the two don't double-fire.
func (s *Scanner) headerLetterAtInBody() bool {
	letter, ok := s.headerLetterAt()
	return ok && letter != 0
}

func (s *Scanner) peekDigit(n int) bool {
	return s.peekAt(n) >= '0' && s.peekAt(n) <= '9'
}

func (s *Scanner) isNoteLetter(r rune) bool {
	return (r >= 'A' && r <= 'G') || (r >= 'a' && r <= 'g')
}

func (s *Scanner) isRestLetter(r rune) bool {
	return r == 'z' || r == 'Z' || r == 'x' || r == 'X'
}

func (s *Scanner) isAccidentalStart() bool {
	ch := s.current()
	return ch == '^' || ch == '_' || ch == '='
}

func (s *Scanner) isDecorationChar() bool {
	switch s.current() {
	case '.', '~', 'H', 'L', 'M', 'O', 'P', 'S', 'T', 'u', 'v':
		return true
	default:
		return false
	}
}

// scanRune emits the single current rune as the given kind; an INVALID
// rune also records a scanner diagnostic.
func (s *Scanner) scanRune(kind token.Kind) {
	start, startLine, startOffset := s.mark()
	s.advance()
	if kind == token.INVALID {
		s.invalid(start, startLine, startOffset, "unrecognized character")
		return
	}
	s.emitSpan(kind, start, startLine, startOffset)
}

// scanAnnotation consumes a double-quoted string verbatim, including the
// quotes, as a single ANNOTATION token (spec.md §4.2 rule 3).
func (s *Scanner) scanAnnotation() {
	start, startLine, startOffset := s.mark()
	s.advance() // opening quote
	for !s.isEOF() && s.current() != '"' && s.current() != '\n' {
		s.advance()
	}
	if s.at('"') {
		s.advance()
	}
	s.emitSpan(token.ANNOTATION, start, startLine, startOffset)
}

// scanDelimitedSymbol consumes a `!…!` or `+…+` decoration symbol verbatim
// (spec.md §4.2 rule 8).
func (s *Scanner) scanDelimitedSymbol() {
	delim := s.current()
	start, startLine, startOffset := s.mark()
	s.advance()
	for !s.isEOF() && s.current() != delim && s.current() != '\n' {
		s.advance()
	}
	if s.current() == delim {
		s.advance()
	}
	s.emitSpan(token.SYMBOL, start, startLine, startOffset)
}

// scanLeftBracket disambiguates `[` between a barline lead-in (`[|`), an
// inline field (`[` then `letter:`), and a chord (anything else); spec.md
// §4.2 rule 3's "disambiguated by a prefix check".
func (s *Scanner) scanLeftBracket() {
	if s.peekAt(1) == '|' {
		s.scanBarline()
		return
	}
	if letter := s.peekAt(1); isASCIILetter(letter) && s.peekAt(2) == ':' {
		start, startLine, startOffset := s.mark()
		s.advance()
		s.emitSpan(token.INLN_FLD_LFT_BRKT, start, startLine, startOffset)
		s.bracketKinds = append(s.bracketKinds, token.INLN_FLD_RGT_BRKT)
		return
	}
	start, startLine, startOffset := s.mark()
	s.advance()
	s.emitSpan(token.CHRD_LEFT_BRKT, start, startLine, startOffset)
	s.bracketKinds = append(s.bracketKinds, token.CHRD_RIGHT_BRKT)
}

func (s *Scanner) scanRightBracket() {
	start, startLine, startOffset := s.mark()
	s.advance()
	kind := token.CHRD_RIGHT_BRKT
	if n := len(s.bracketKinds); n > 0 {
		kind = s.bracketKinds[n-1]
		s.bracketKinds = s.bracketKinds[:n-1]
	}
	s.emitSpan(kind, start, startLine, startOffset)
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// atBarline reports whether the cursor sits on a run of `|`/`:` barline
// glyphs, optionally prefixed by `[` or followed by `]` (spec.md §4.2 rule
// 5's glyph set).
func (s *Scanner) atBarline() bool {
	if s.at('|') {
		return true
	}
	if s.at(':') && (s.peekAt(1) == '|' || s.peekAt(1) == ':') {
		return true
	}
	return false
}

// scanBarline consumes a maximal run of barline glyphs (`|`, `:`, and an
// adjoining `[` or `]`) as one BARLINE token, then any immediately
// following repeat-number content (spec.md §4.3 "BarLine: the BARLINE
// token and any immediately-following repeat-number tokens").
func (s *Scanner) scanBarline() {
	start, startLine, startOffset := s.mark()
	if s.at('[') {
		s.advance()
	}
	for s.at('|') || s.at(':') {
		s.advance()
	}
	if s.at(']') {
		s.advance()
	}
	s.emitSpan(token.BARLINE, start, startLine, startOffset)

	if s.isDigit() {
		s.scanRepeatNumber()
	}
}

// scanRepeatNumber consumes a repeat marking such as `1`, `2-3x`, or
// `1,2` as a single NUMBER token (spec.md §3.2 BarLine's "repeat-number
// tokens"; this scanner collapses the whole marking to one token rather
// than splitting digits/comma/hyphen, since the parser only needs the
// literal text to attach to the BarLine node).
func (s *Scanner) scanRepeatNumber() {
	start, startLine, startOffset := s.mark()
	for s.isDigit() || s.at(',') || s.at('-') || s.at('x') {
		s.advance()
	}
	s.emitSpan(token.NUMBER, start, startLine, startOffset)
}

// scanTuplet consumes `(p[:q[:r]]` as TUPLET_LPAREN, TUPLET_P, and the
// optional `:q`/`:r` pairs (spec.md §4.3 Tuplet).
func (s *Scanner) scanTuplet() {
	start, startLine, startOffset := s.mark()
	s.advance() // '('
	s.emitSpan(token.TUPLET_LPAREN, start, startLine, startOffset)

	s.scanTupletDigits(token.TUPLET_P)
	if s.at(':') {
		s.scanRune(token.TUPLET_COLON)
		if s.isDigit() {
			s.scanTupletDigits(token.TUPLET_Q)
		}
		if s.at(':') {
			s.scanRune(token.TUPLET_COLON)
			if s.isDigit() {
				s.scanTupletDigits(token.TUPLET_R)
			}
		}
	}
}

func (s *Scanner) scanTupletDigits(kind token.Kind) {
	start, startLine, startOffset := s.mark()
	for s.isDigit() {
		s.advance()
	}
	s.emitSpan(kind, start, startLine, startOffset)
}

// scanPitch consumes an optional accidental, a mandatory note letter, and
// an optional run of octave marks as up to three tokens (spec.md §4.3
// Pitch).
func (s *Scanner) scanPitch() {
	if s.isAccidentalStart() {
		start, startLine, startOffset := s.mark()
		ch := s.current()
		s.advance()
		if ch == '^' || ch == '_' {
			for s.current() == ch {
				s.advance()
			}
		}
		s.emitSpan(token.ACCIDENTAL, start, startLine, startOffset)
	}

	if s.isNoteLetter(s.current()) {
		s.scanRune(token.NOTE_LETTER)
	} else {
		start, startLine, startOffset := s.mark()
		s.invalid(start, startLine, startOffset, "expected note letter after accidental")
		return
	}

	if s.current() == '\'' || s.current() == ',' {
		start, startLine, startOffset := s.mark()
		mark := s.current()
		for s.current() == mark {
			s.advance()
		}
		s.emitSpan(token.OCTAVE, start, startLine, startOffset)
	}
}

// scanVoiceOverlay consumes `&`, swallowing a trailing `\n` into the same
// token when present so the suppressed line break doesn't also register
// as a System boundary (spec.md §4.2 rule 9, `&` / `&\n`).
func (s *Scanner) scanVoiceOverlay() {
	start, startLine, startOffset := s.mark()
	s.advance()
	if s.current() == '\n' {
		s.advance()
	}
	s.emitSpan(token.VOICE_OVRLAY, start, startLine, startOffset)
}

func (s *Scanner) scanLineContinuation() {
	start, startLine, startOffset := s.mark()
	s.advance() // '\\'
	s.advance() // '\n'
	s.emitSpan(token.LINE_CONT, start, startLine, startOffset)
}

// scanDigitRun resolves a bare digit run using the kind of the last
// significant token (spec.md §4.2 rules 5/6): after BARLINE it's a
// repeat-number already handled by scanBarline, so reaching here means a
// rhythm numerator or, after RHY_SEP, a denominator.
func (s *Scanner) scanDigitRun() {
	start, startLine, startOffset := s.mark()
	for s.isDigit() {
		s.advance()
	}
	kind := token.RHY_NUMER
	if s.lastSignificant == token.RHY_SEP {
		kind = token.RHY_DENOM
	}
	s.emitSpan(kind, start, startLine, startOffset)
}

func (s *Scanner) scanRhythmSep() {
	start, startLine, startOffset := s.mark()
	for s.at('/') {
		s.advance()
	}
	s.emitSpan(token.RHY_SEP, start, startLine, startOffset)
}

func (s *Scanner) scanBrokenRhythm() {
	start, startLine, startOffset := s.mark()
	ch := s.current()
	for s.current() == ch {
		s.advance()
	}
	s.emitSpan(token.RHY_BRKN, start, startLine, startOffset)
}

// scanInvalidRun consumes a maximal run of bytes recognized by none of the
// dispatch rules above, stopping at a recovery point: EOL, whitespace, a
// barline glyph, an annotation/comment start, or a note letter (spec.md
// §4.2 rule 11).
func (s *Scanner) scanInvalidRun() {
	start, startLine, startOffset := s.mark()
	for !s.isEOF() &&
		s.current() != '\n' &&
		!s.isSpaceNotNL() &&
		!s.atBarline() &&
		s.current() != '"' &&
		s.current() != '%' &&
		!s.isNoteLetter(s.current()) {
		s.advance()
	}
	if s.pos == start {
		s.advance() // guarantee forward progress
	}
	s.invalid(start, startLine, startOffset, "unrecognized input in tune body")
}
