// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

var freeTextDirectives = map[string]bool{
	"text": true, "center": true, "header": true, "footer": true,
}

// scanDirective implements the `directive` dispatch table (spec.md §4.2):
// numberWithUnit, tuneBodyPitch, grouping symbols, IDENTIFIER (hyphens
// allowed), STRING, signed NUMBER, `=`, `/`, WS. `%%begintext` and the
// free-text directives capture everything up to the matching end marker
// (or EOL, for the single-line ones) as one FREE_TXT token.
func (s *Scanner) scanDirective() {
	switch {
	case s.current() == '\n':
		s.pop()
		s.scanEOL(false)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atString("begintext"):
		s.scanBeginTextBlock()
	case s.isDirectiveIdentStart():
		s.scanDirectiveIdentOrFreeText()
	case s.at('"'):
		s.scanAnnotation()
	case s.isDigit() || ((s.at('-') || s.at('+')) && s.peekAt(1) >= '0' && s.peekAt(1) <= '9'):
		s.scanSignedNumberWithUnit()
	case s.isAccidentalStart() || s.isNoteLetter(s.current()):
		s.scanPitch()
	case s.at('('):
		s.scanRune(token.LPAREN)
	case s.at(')'):
		s.scanRune(token.RPAREN)
	case s.at('{'):
		s.scanRune(token.LBRACE)
	case s.at('}'):
		s.scanRune(token.RBRACE)
	case s.at('['):
		s.scanRune(token.LBRACKET)
	case s.at(']'):
		s.scanRune(token.RBRACKET)
	case s.at('|'):
		s.scanRune(token.PIPE)
	case s.at('='):
		s.scanRune(token.EQL)
	case s.at('/'):
		s.scanRune(token.SLASH)
	default:
		s.scanRune(token.INVALID)
	}
}

func (s *Scanner) isDirectiveIdentStart() bool {
	return s.isAlpha()
}

// scanDirectiveIdentOrFreeText consumes an identifier (hyphens allowed,
// spec.md §4.2 "treble-8 tokenizes as one identifier"); when the
// identifier names one of the single-line free-text directives (`%%text`,
// `%%center`, `%%header`, `%%footer`), the remainder of the line is
// captured as one FREE_TXT token.
func (s *Scanner) scanDirectiveIdentOrFreeText() {
	start, startLine, startOffset := s.mark()
	for s.isAlpha() || s.isDigit() || s.at('-') || s.at('_') {
		s.advance()
	}
	ident := string(s.input[start:s.pos])
	s.emitSpan(token.IDENTIFIER, start, startLine, startOffset)

	if freeTextDirectives[ident] {
		s.scanRestOfLineAsFreeText()
	}
}

func (s *Scanner) scanRestOfLineAsFreeText() {
	if s.isSpaceNotNL() {
		s.scanWS()
	}
	start, startLine, startOffset := s.mark()
	for !s.isEOF() && s.current() != '\n' {
		s.advance()
	}
	if s.pos > start {
		s.emitSpan(token.FREE_TXT, start, startLine, startOffset)
	}
}

// scanBeginTextBlock consumes `begintext` as an IDENTIFIER, then
// everything after it (starting with the rest of the `begintext` line and
// its newline) up to, but not including, the matching `%%endtext` as one
// FREE_TXT token (spec.md §4.2 "%%begintext…%%endtext…capture free text").
// The `%%endtext` marker itself is scanned as its own
// STYLESHEET_DIRECTIVE and IDENTIFIER tokens.
func (s *Scanner) scanBeginTextBlock() {
	start, startLine, startOffset := s.mark()
	for i := 0; i < len("begintext"); i++ {
		s.advance()
	}
	s.emitSpan(token.IDENTIFIER, start, startLine, startOffset)

	bodyStart, bodyLine, bodyOffset := s.mark()
	for !s.isEOF() {
		if s.atString("%%endtext") {
			break
		}
		for !s.isEOF() && s.current() != '\n' {
			s.advance()
		}
		if s.current() == '\n' {
			s.advance()
		}
	}
	if s.pos > bodyStart {
		s.emitSpan(token.FREE_TXT, bodyStart, bodyLine, bodyOffset)
	}
	if s.atString("%%endtext") {
		s.enterDirective() // emits STYLESHEET_DIRECTIVE for "%%"
		s.scanDirectiveIdentOrFreeText()
		s.pop() // endtext closes its own directive mode immediately
	}
	s.pop()
}

// scanSignedNumberWithUnit consumes an optional sign, digits, an optional
// fractional part, and an immediately-following measurement unit
// (spec.md §4.2 "numberWithUnit (NUMBER + MEASUREMENT_UNIT)").
func (s *Scanner) scanSignedNumberWithUnit() {
	start, startLine, startOffset := s.mark()
	if s.at('-') || s.at('+') {
		s.advance()
	}
	for s.isDigit() {
		s.advance()
	}
	if s.at('.') && s.peekAt(1) >= '0' && s.peekAt(1) <= '9' {
		s.advance()
		for s.isDigit() {
			s.advance()
		}
	}
	s.emitSpan(token.NUMBER, start, startLine, startOffset)

	if unitStart, unitLine, unitOffset := s.mark(); s.isAlpha() {
		for s.isAlpha() || s.at('%') {
			s.advance()
		}
		s.emitSpan(token.MEASUREMENT_UNIT, unitStart, unitLine, unitOffset)
	}
}
