// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanInfoLine implements the `info_line` dispatch table (spec.md §4.2):
// the value grammar shared by most header letters (T:, C:, M:, L:, Q:,
// and the rest) — WS, SPECIAL_LITERAL, AbsolutePitch, IDENTIFIER,
// ANNOTATION, and the small operator set, falling back to INVALID.
func (s *Scanner) scanInfoLine() {
	switch {
	case s.current() == '\n':
		s.popSubmode()
		s.scanEOL(false)
	case s.at(']') && s.inBracket():
		// closes an inline field's embedded info-line value, e.g. the
		// `]` in `[M:3/4]` (spec.md §4.3 Inline_field).
		s.popSubmode()
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atComment():
		s.scanComment()
	case s.at('"'):
		s.scanAnnotation()
	case s.atString("C|"):
		s.scanRune2(token.SPECIAL_LITERAL)
	case s.at('C') && s.specialLiteralBoundaryAfter(1):
		s.scanRune(token.SPECIAL_LITERAL)
	case s.isAbsolutePitchStart():
		s.scanAbsolutePitch()
	case s.isAlpha():
		s.scanIdentifier()
	case s.isDigit():
		s.scanNumber()
	case s.at('='):
		s.scanRune(token.EQL)
	case s.at('-'):
		s.scanRune(token.MINUS)
	case s.at('+'):
		s.scanRune(token.PLUS)
	case s.at('/'):
		s.scanRune(token.SLASH)
	case s.at('('):
		s.scanRune(token.LPAREN)
	case s.at(')'):
		s.scanRune(token.RPAREN)
	default:
		s.scanRune(token.INVALID)
	}
}

// specialLiteralBoundaryAfter reports whether the byte n positions ahead
// is whitespace, EOL, `%`, or EOF — the trailing-boundary rule that lets a
// bare `C` fire as common-time (spec.md §4.2 "both require trailing
// whitespace / EOL / % to fire").
func (s *Scanner) specialLiteralBoundaryAfter(n int) bool {
	r := s.peekAt(n)
	return r == eofRune || r == '\n' || r == ' ' || r == '\t' || r == '%'
}

func (s *Scanner) scanRune2(kind token.Kind) {
	start, startLine, startOffset := s.mark()
	s.advance()
	s.advance()
	s.emitSpan(kind, start, startLine, startOffset)
}

// isAbsolutePitchStart reports an uppercase note letter immediately
// followed by an info-line mode letter (M, D, P, L, …), per spec.md §4.2
// "a bare uppercase A–G followed by a mode letter is an AbsolutePitch".
func (s *Scanner) isAbsolutePitchStart() bool {
	ch := s.current()
	if ch < 'A' || ch > 'G' {
		return false
	}
	next := s.peekAt(1)
	return next == 'M' || next == 'D' || next == 'P' || next == 'L'
}

// scanAbsolutePitch consumes a note letter, optional accidental, and
// optional digit octave as one token run (spec.md §3.2 AbsolutePitch).
func (s *Scanner) scanAbsolutePitch() {
	start, startLine, startOffset := s.mark()
	s.advance() // note letter
	if s.current() == '#' || s.current() == 'b' {
		s.advance()
	}
	for s.isDigit() {
		s.advance()
	}
	s.emitSpan(token.IDENTIFIER, start, startLine, startOffset)
}

func (s *Scanner) scanIdentifier() {
	start, startLine, startOffset := s.mark()
	for s.isAlpha() || s.isDigit() || s.at('_') {
		s.advance()
	}
	s.emitSpan(token.IDENTIFIER, start, startLine, startOffset)
}

func (s *Scanner) scanNumber() {
	start, startLine, startOffset := s.mark()
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
}
