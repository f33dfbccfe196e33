// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanFile implements the `file` mode dispatch table (spec.md §4.2): an
// `X:` header starts a tune and switches the scanner into tune_header for
// everything that follows; anything else at top level is a directive,
// comment, section break, EOL, or FREE_TXT belonging to the File_header
// (the parser, not the scanner, decides whether preceding Info_lines end
// up attached to a File_header or a dangling Tune; spec.md §4.3).
func (s *Scanner) scanFile() {
	switch {
	case s.current() == '\n':
		s.scanEOL(true)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atDirectiveMarker():
		s.enterDirective()
	case s.atComment():
		s.scanComment()
	default:
		if _, ok := s.headerLetterAt(); ok {
			s.enterInfoLineHeader()
			return
		}
		s.scanFreeText()
	}
}

// scanFreeText consumes everything up to the next EOL as one FREE_TXT
// token (spec.md §4.2 "free text").
func (s *Scanner) scanFreeText() {
	start, startLine, startOffset := s.mark()
	for !s.isEOF() && s.current() != '\n' {
		s.advance()
	}
	s.emitSpan(token.FREE_TXT, start, startLine, startOffset)
}
