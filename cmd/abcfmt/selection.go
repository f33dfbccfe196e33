// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"math"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
)

var systemTag = cst.Tag(ast.KindSystem)

// selectionForLine builds the Selection a --line flag names: every System
// whose subtree contains a token scanned on that source line. line <= 0
// means "no line given", which keeps transform.Selection's own "no
// cursors at all" convention of operating over the whole tree.
func selectionForLine(root *cst.Node, line int) transform.Selection {
	if line <= 0 {
		return transform.Selection{Root: root}
	}
	var ids []int
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n.Tag == systemTag && systemHasLine(n, line) {
			ids = append(ids, n.ID)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return transform.Selection{Root: root, Cursors: []transform.Cursor{transform.NewCursor(ids...)}}
}

func systemHasLine(n *cst.Node, line int) bool {
	if n.IsLeaf() {
		return n.Token != nil && n.Token.Line == line
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if systemHasLine(c, line) {
			return true
		}
	}
	return false
}

// rangeForLine spans every character of line, or the whole file when line
// is <= 0 (ScaleRhythm's own "nil rng" convention).
func rangeForLine(line int) *transform.Range {
	if line <= 0 {
		return nil
	}
	return &transform.Range{
		Start: transform.Position{Line: line, Character: 0},
		End:   transform.Position{Line: line, Character: math.MaxInt},
	}
}
