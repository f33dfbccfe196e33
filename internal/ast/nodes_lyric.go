// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast

import "github.com/AntoineBalaine/abc-parse-sub011/internal/token"

// LyricLine is a `w:`/`W:` line: header token plus the flat content
// tokens (LY_TXT, LY_HYPH, LY_UNDR, LY_STAR, LY_SPS, BARLINE, and the WS
// between them) (spec.md §3.2).
type LyricLine struct {
	ID     int
	Header token.Token
	Items  []token.Token
}

func (n *LyricLine) Kind() Kind  { return KindLyricLine }
func (n *LyricLine) NodeID() int { return n.ID }

// SymbolLine is an `s:` line: header token plus content tokens (SY_TXT,
// SY_STAR, BARLINE, WS) (spec.md §3.2).
type SymbolLine struct {
	ID     int
	Header token.Token
	Items  []token.Token
}

func (n *SymbolLine) Kind() Kind  { return KindSymbolLine }
func (n *SymbolLine) NodeID() int { return n.ID }
