// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package transform implements the structural CST edits of spec.md §4.5:
// Transpose, Harmonize, InsertVoiceLine, and ScaleRhythm. Every transform
// mutates a *cst.Node tree in place and is grounded on the same
// navigation/splice vocabulary internal/cst exposes
// (FindChildByTag/FindParent/FindTieChild/RemoveChild/ReplaceChild/
// InsertBefore/InsertAfter/ReplaceNodeWithSequence).
package transform

import "github.com/AntoineBalaine/abc-parse-sub011/internal/cst"

// Cursor is a set of CST node ids a host (editor, language server) has a
// cursor or selection anchored to (spec.md §6 "a cursor is a set of node
// ids").
type Cursor map[int]struct{}

// NewCursor builds a Cursor from a list of node ids.
func NewCursor(ids ...int) Cursor {
	c := make(Cursor, len(ids))
	for _, id := range ids {
		c[id] = struct{}{}
	}
	return c
}

// Selection is the CST root plus the cursor sets a transform operates
// over (spec.md §6 "A Selection is the CST root plus a list of cursor
// sets").
type Selection struct {
	Root    *cst.Node
	Cursors []Cursor
}

// Contains reports whether id appears in any of sel's cursors.
func (sel Selection) Contains(id int) bool {
	for _, c := range sel.Cursors {
		if _, ok := c[id]; ok {
			return true
		}
	}
	return false
}

// selected reports whether n or any of its ancestors is named by sel, so
// selecting a System or Beam implicitly selects every element nested
// inside it.
func selected(n *cst.Node, sel Selection) bool {
	if len(sel.Cursors) == 0 {
		// No cursor given at all is treated as "whole tree", matching the
		// transforms' own CLI convenience path (internal/format's
		// "format everything" default uses the same convention).
		return true
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if sel.Contains(cur.ID) {
			return true
		}
	}
	return false
}

// Position is one half of a Range (spec.md §6 "Range is a pair of (line,
// character) positions").
type Position struct {
	Line      int
	Character int
}

// Range bounds a scaleRhythm call to a sub-region of the tree.
type Range struct {
	Start Position
	End   Position
}

func (p Position) before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Character <= q.Character
}

// contains reports whether pos falls within rng, inclusive.
func (rng Range) contains(pos Position) bool {
	return rng.Start.before(pos) && pos.before(rng.End)
}

// collect walks from root in document order, invoking visit on every node
// selected by sel (or every node, when sel has no cursors).
func collect(root *cst.Node, sel Selection, visit func(n *cst.Node)) {
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n == nil {
			return
		}
		if selected(n, sel) {
			visit(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}
