// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanSymbolLine implements the `symbol_line` dispatch table (spec.md
// §4.2): SY_TXT, SY_STAR, BARLINE, WS, EOL.
func (s *Scanner) scanSymbolLine() {
	switch {
	case s.current() == '\n':
		s.popSubmode()
		s.scanEOL(true)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.at('*'):
		s.scanRune(token.SY_STAR)
	case s.atBarline():
		s.scanBarline()
	default:
		s.scanSymbolText()
	}
}

func (s *Scanner) scanSymbolText() {
	start, startLine, startOffset := s.mark()
	for !s.isEOF() {
		switch s.current() {
		case '\n', ' ', '\t', '*', '|', ':':
			goto done
		}
		s.advance()
	}
done:
	if s.pos == start {
		s.advance()
	}
	s.emitSpan(token.SY_TXT, start, startLine, startOffset)
}
