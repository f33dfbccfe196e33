// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package format reprints a CST back to text, either byte-for-byte
// (Verbatim) or with a small set of whitespace rules applied around
// structural landmarks (Formatted). Neither mode mutates the tree it
// walks.
package format

import (
	"strings"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

var (
	systemTag     = cst.Tag(ast.KindSystem)
	beamTag       = cst.Tag(ast.KindBeam)
	barLineTag    = cst.Tag(ast.KindBarLine)
	triviaTag     = cst.Tag(ast.KindTrivia)
	infoLineTag   = cst.Tag(ast.KindInfoLine)
	symbolLineTag = cst.Tag(ast.KindSymbolLine)
	lyricLineTag  = cst.Tag(ast.KindLyricLine)
	chordTag      = cst.Tag(ast.KindChord)
)

// Options gates the Formatted-mode behaviors that can be turned off
// independently of the spacing rules themselves.
type Options struct {
	// ChordNoteSort reorders a Chord's notes ascending by pitch, moving
	// any decoration/annotation that precedes a note along with it
	// (spec.md §4.5).
	ChordNoteSort bool
}

// VerbatimFormat emits every token in root in sibling (document) order,
// recursing into children — the guarantee that an unedited CST round-trips
// identically to its source (spec.md §4.5, §8).
func VerbatimFormat(root *cst.Node) string {
	var sb strings.Builder
	writeVerbatim(&sb, root)
	return sb.String()
}

func writeVerbatim(sb *strings.Builder, n *cst.Node) {
	if n.IsLeaf() {
		if n.Token != nil {
			sb.WriteString(n.Token.Lexeme)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVerbatim(sb, c)
	}
}

// Format reprints root, applying spec.md §4.5's Formatted-mode rules:
// a single space after an info-line/symbol-line/lyric-line header,
// exactly one space between a beamed group and a bar line, no extra
// space between SY_TXT siblings or between SY_STAR siblings, and (when
// opts.ChordNoteSort is set) chord notes sorted ascending by pitch.
// Everywhere else it reprints verbatim.
func Format(root *cst.Node, opts Options) string {
	var sb strings.Builder
	writeFormatted(&sb, root, opts)
	return sb.String()
}

func writeFormatted(sb *strings.Builder, n *cst.Node, opts Options) {
	switch n.Tag {
	case infoLineTag:
		writeHeaderLine(sb, n, opts)
		return
	case symbolLineTag, lyricLineTag:
		writeFlatLine(sb, n, opts)
		return
	case systemTag:
		writeSystem(sb, n, opts)
		return
	case chordTag:
		writeChord(sb, n, opts)
		return
	}
	if n.IsLeaf() {
		if n.Token != nil {
			sb.WriteString(n.Token.Lexeme)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeFormatted(sb, c, opts)
	}
}

// writeHeaderLine emits an InfoLine's header lexeme followed by exactly
// one space, then its value tokens — dropping a leading WS token from
// the value run since the single space already covers it.
func writeHeaderLine(sb *strings.Builder, n *cst.Node, opts Options) {
	header := n.FirstChild
	if header == nil {
		return
	}
	writeFormatted(sb, header, opts)
	sb.WriteString(" ")
	rest := header.NextSibling
	if rest != nil && isWS(rest) {
		rest = rest.NextSibling
	}
	for c := rest; c != nil; c = c.NextSibling {
		writeFormatted(sb, c, opts)
	}
}

// writeFlatLine handles SymbolLine/LyricLine: header plus a single space,
// then its items with a WS token dropped whenever it sits between two
// SY_TXT tokens or two SY_STAR tokens (spec.md §4.5 "no extra space
// between SY_TXT siblings or between SY_STAR siblings").
func writeFlatLine(sb *strings.Builder, n *cst.Node, opts Options) {
	header := n.FirstChild
	if header == nil {
		return
	}
	writeFormatted(sb, header, opts)
	sb.WriteString(" ")

	var items []*cst.Node
	for c := header.NextSibling; c != nil; c = c.NextSibling {
		items = append(items, c)
	}
	if len(items) > 0 && isWS(items[0]) {
		items = items[1:]
	}
	for i, c := range items {
		if isWS(c) && collapsesBetweenSameKindSiblings(items, i) {
			continue
		}
		writeFormatted(sb, c, opts)
	}
}

func collapsesBetweenSameKindSiblings(items []*cst.Node, wsIdx int) bool {
	if wsIdx == 0 || wsIdx == len(items)-1 {
		return false
	}
	before, ok1 := leafKind(items[wsIdx-1])
	after, ok2 := leafKind(items[wsIdx+1])
	if !ok1 || !ok2 || before != after {
		return false
	}
	return before == token.SY_TXT || before == token.SY_STAR
}

// writeSystem emits a System's elements, collapsing or inserting the
// single required space between a beamed group and a bar line (spec.md
// §4.5 "exactly one space separating beamed groups from bar lines").
// Trivia elsewhere in the System (including newlines around it) is
// passed through untouched.
func writeSystem(sb *strings.Builder, n *cst.Node, opts Options) {
	var elements []*cst.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		elements = append(elements, c)
	}
	for i, el := range elements {
		if el.Tag == triviaTag && isSingleWS(el) && isBeamBarLineBoundary(elements, i) {
			sb.WriteString(" ")
			continue
		}
		writeFormatted(sb, el, opts)
		if el.Tag == beamTag && i+1 < len(elements) && elements[i+1].Tag == barLineTag {
			sb.WriteString(" ")
		} else if el.Tag == barLineTag && i+1 < len(elements) && elements[i+1].Tag == beamTag {
			sb.WriteString(" ")
		}
	}
}

func isBeamBarLineBoundary(elements []*cst.Node, i int) bool {
	prevIsBeam := i > 0 && elements[i-1].Tag == beamTag
	nextIsBarLine := i+1 < len(elements) && elements[i+1].Tag == barLineTag
	prevIsBarLine := i > 0 && elements[i-1].Tag == barLineTag
	nextIsBeam := i+1 < len(elements) && elements[i+1].Tag == beamTag
	return (prevIsBeam && nextIsBarLine) || (prevIsBarLine && nextIsBeam)
}

func isSingleWS(trivia *cst.Node) bool {
	leaf := trivia.FirstChild
	return leaf != nil && leaf.IsLeaf() && leaf.Token != nil && leaf.Token.Kind == token.WS
}

func isWS(n *cst.Node) bool {
	return n.IsLeaf() && n.Token != nil && n.Token.Kind == token.WS
}

func leafKind(n *cst.Node) (token.Kind, bool) {
	if !n.IsLeaf() || n.Token == nil {
		return 0, false
	}
	return n.Token.Kind, true
}
