// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

var keyModes = []string{
	"major", "minor", "ionian", "dorian", "phrygian", "lydian",
	"mixolydian", "aeolian", "locrian",
	"dor", "mix", "phr", "lyd", "aeo", "loc", "ion", "maj", "min",
}

// scanKeyInfo implements the `key_info` dispatch table (spec.md §4.2):
// the value grammar for K: (and V: clef) lines.
func (s *Scanner) scanKeyInfo() {
	switch {
	case s.current() == '\n':
		s.popSubmode()
		s.scanEOL(false)
	case s.at(']') && s.inBracket():
		s.popSubmode()
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atComment():
		s.scanComment()
	case s.atKeyword("none"):
		s.scanKeyword(token.KEY_NONE, "none")
	case s.atAnyKeyword(keyModes):
		s.scanMatchedKeyword(token.KEY_MODE, keyModes)
	case s.isExplicitAccidentalStart():
		s.scanExplicitAccidental()
	case s.current() >= 'A' && s.current() <= 'G':
		s.scanRune(token.KEY_ROOT)
	case s.at('#') || s.at('b'):
		s.scanRune(token.KEY_ACCIDENTAL)
	case s.isAlpha():
		s.scanIdentifier()
	default:
		s.scanRune(token.INVALID)
	}
}

func (s *Scanner) atKeyword(kw string) bool {
	return s.atString(kw) && !s.isIdentTailAt(len(kw))
}

func (s *Scanner) atAnyKeyword(kws []string) bool {
	for _, kw := range kws {
		if s.atKeyword(kw) {
			return true
		}
	}
	return false
}

// isIdentTailAt reports whether the byte n positions ahead would extend
// an identifier, used so "dor" doesn't fire inside a longer word.
func (s *Scanner) isIdentTailAt(n int) bool {
	r := s.peekAt(n)
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func (s *Scanner) scanKeyword(kind token.Kind, kw string) {
	start, startLine, startOffset := s.mark()
	for range kw {
		s.advance()
	}
	s.emitSpan(kind, start, startLine, startOffset)
}

func (s *Scanner) scanMatchedKeyword(kind token.Kind, kws []string) {
	for _, kw := range kws {
		if s.atKeyword(kw) {
			s.scanKeyword(kind, kw)
			return
		}
	}
}

// isExplicitAccidentalStart reports `^`, `_`, or `=` immediately followed
// by a note letter (spec.md §4.2 KEY_EXPLICIT_ACC, e.g. `^c` / `_b` /
// `=f`).
func (s *Scanner) isExplicitAccidentalStart() bool {
	ch := s.current()
	if ch != '^' && ch != '_' && ch != '=' {
		return false
	}
	next := s.peekAt(1)
	return (next >= 'a' && next <= 'g') || (next >= 'A' && next <= 'G')
}

func (s *Scanner) scanExplicitAccidental() {
	start, startLine, startOffset := s.mark()
	s.advance() // accidental glyph
	s.advance() // note letter
	s.emitSpan(token.KEY_EXPLICIT_ACC, start, startLine, startOffset)
}
