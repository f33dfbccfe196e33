// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

// scanTuneHeader implements the `tune_header` dispatch table (spec.md
// §4.2): info-lines, directives, comments, macro/user-symbol
// declarations, WS, EOL. The header ends the moment a `K:` line's EOL is
// reached; popSubmode performs that widening into tune_body once the
// key_info submode it pushed pops back.
func (s *Scanner) scanTuneHeader() {
	switch {
	case s.current() == '\n':
		s.scanEOL(false)
	case s.isSpaceNotNL():
		s.scanWS()
	case s.atDirectiveMarker():
		s.enterDirective()
	case s.atComment():
		s.scanComment()
	case s.at('U') && s.peekAt(1) == ':':
		// U: is a user-symbol declaration header; scanned through the
		// same info-line submode as any other header (its RHS is a
		// decoration/symbol assignment, captured as flat tokens and
		// reassembled by the parser into User_symbol_decl).
		s.enterInfoLineHeader()
	default:
		if _, ok := s.headerLetterAt(); ok {
			s.enterInfoLineHeader()
			return
		}
		start, startLine, startOffset := s.mark()
		for !s.isEOF() && s.current() != '\n' {
			s.advance()
		}
		s.invalid(start, startLine, startOffset, "unrecognized tune-header content")
	}
}
