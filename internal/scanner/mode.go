// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package scanner

import "fmt"

// Mode names one of the scanner's lexical contexts (spec.md §4.2). The
// active mode decides which dispatch table fires for the next byte; the
// same glyph tokenizes differently in different modes (a `-` is TIE in
// tune_body, LY_HYPH in lyric).
type Mode int

const (
	ModeFile Mode = iota
	ModeTuneHeader
	ModeTuneBody
	ModeLyric
	ModeSymbolLine
	ModeInfoLine
	ModeKeyInfo
	ModeDirective
)

func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeTuneHeader:
		return "tune_header"
	case ModeTuneBody:
		return "tune_body"
	case ModeLyric:
		return "lyric"
	case ModeSymbolLine:
		return "symbol_line"
	case ModeInfoLine:
		return "info_line"
	case ModeKeyInfo:
		return "key_info"
	case ModeDirective:
		return "directive"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
