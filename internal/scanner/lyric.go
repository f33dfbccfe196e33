// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanLyric implements the `lyric` dispatch table (spec.md §4.2): every
// divider glyph gets its own token kind, and everything else accumulates
// into LY_TXT.
func (s *Scanner) scanLyric() {
	switch {
	case s.current() == '\n':
		s.popSubmode()
		s.scanEOL(true)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.at('-'):
		s.scanRune(token.LY_HYPH)
	case s.at('_'):
		s.scanRune(token.LY_UNDR)
	case s.at('*'):
		s.scanRune(token.LY_STAR)
	case s.at('~'):
		s.scanRune(token.LY_SPS)
	case s.at('\\') && s.peekAt(1) == '-':
		start, startLine, startOffset := s.mark()
		s.advance()
		s.advance()
		s.emitSpan(token.LY_SPS, start, startLine, startOffset)
	case s.atBarline():
		s.scanBarline()
	default:
		s.scanLyricText()
	}
}

// scanLyricText consumes a run of non-divider bytes as LY_TXT.
func (s *Scanner) scanLyricText() {
	start, startLine, startOffset := s.mark()
	for !s.isEOF() {
		switch s.current() {
		case '\n', ' ', '\t', '-', '_', '*', '~', '|', ':':
			goto done
		}
		s.advance()
	}
done:
	if s.pos == start {
		s.advance()
	}
	s.emitSpan(token.LY_TXT, start, startLine, startOffset)
}
