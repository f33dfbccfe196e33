// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// scanComment consumes a `%` comment to end of line, including the `%`
// itself, but not the terminating EOL (spec.md §4.2, every mode's
// "comment" entry). Assumes the caller has already ruled out `%%`.
func (s *Scanner) scanComment() {
	start, startLine, startOffset := s.mark()
	for !s.isEOF() && s.current() != '\n' {
		s.advance()
	}
	s.emitSpan(token.COMMENT, start, startLine, startOffset)
}

// atDirectiveMarker reports whether the cursor sits on `%%`.
func (s *Scanner) atDirectiveMarker() bool {
	return s.atString("%%")
}

// atComment reports whether the cursor sits on a single `%` that is not a
// directive marker.
func (s *Scanner) atComment() bool {
	return s.at('%') && !s.atDirectiveMarker()
}

// enterDirective emits the `%%` marker as STYLESHEET_DIRECTIVE and pushes
// directive mode (spec.md §4.2 "directive (%%…)" / "directive | after %%").
func (s *Scanner) enterDirective() {
	start, startLine, startOffset := s.mark()
	s.advance()
	s.advance()
	s.emitSpan(token.STYLESHEET_DIRECTIVE, start, startLine, startOffset)
	s.push(ModeDirective)
}

// headerLetterAt reports whether the scanner sits at the start of an
// info-line header: a letter, optional single space, then `:` (spec.md
// §4.2 music-code dispatch rule 2).
func (s *Scanner) headerLetterAt() (letter byte, ok bool) {
	ch := s.current()
	if ch == eofRune || ch > 127 || !isInfoHeaderLetter(byte(ch)) {
		return 0, false
	}
	n := 1
	if s.peekAt(1) == ' ' {
		n = 2
	}
	if s.peekAt(n) == ':' {
		return byte(ch), true
	}
	return 0, false
}

// enterInfoLineHeader consumes a `letter[ ]:` header, emits it as a single
// INF_HDR token, and pushes the submode its letter dictates (spec.md §4.2
// "info-line (header + rescan in mode dictated by header letter)").
//
// Returns the header letter so the caller (tune_header mode) can detect
// the `K:` that closes the header.
func (s *Scanner) enterInfoLineHeader() byte {
	start, startLine, startOffset := s.mark()
	letter := byte(s.current())
	s.advance()
	if s.current() == ' ' {
		s.advance()
	}
	s.advance() // ':'
	s.emitSpan(token.INF_HDR, start, startLine, startOffset)

	s.pendingHeader = letter
	switch letter {
	case 'K', 'V':
		s.push(ModeKeyInfo)
	case 'w', 'W':
		s.push(ModeLyric)
	case 's':
		s.push(ModeSymbolLine)
	default:
		s.push(ModeInfoLine)
	}
	return letter
}

// popSubmode pops the current submode (info_line/key_info/lyric/symbol_line)
// back to its enclosing mode, unless the header that opened it was `K:`
// while inside tune_header, in which case the enclosing mode is widened to
// tune_body (spec.md §4.3 "ends the header").
func (s *Scanner) popSubmode() {
	closedHeader := s.pendingHeader
	s.pendingHeader = 0
	s.pop()
	switch {
	case closedHeader == 'X' && s.mode() == ModeFile:
		s.replace(ModeTuneHeader)
		s.inTuneHeader = true
	case closedHeader == 'K' && s.mode() == ModeTuneHeader:
		s.replace(ModeTuneBody)
		s.inTuneHeader = false
	}
}

// inBracket reports whether an inline field (`[letter:...]`) is currently
// open, so an info_line/key_info submode entered from inside it knows to
// treat `]` as its terminator rather than an ordinary token.
func (s *Scanner) inBracket() bool {
	if n := len(s.bracketKinds); n > 0 {
		return s.bracketKinds[n-1] == token.INLN_FLD_RGT_BRKT
	}
	return false
}
