// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package format

import (
	"sort"
	"strings"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
)

var noteTag = cst.Tag(ast.KindNote)

// writeChord emits a Chord's LBracket/RBracket verbatim and, when
// opts.ChordNoteSort is set, its interior Contents sorted ascending by
// pitch — a decoration/annotation preceding a note travels with it
// (spec.md §4.5). Anything after the RBracket (Rhythm, Tie) is untouched.
func writeChord(sb *strings.Builder, n *cst.Node, opts Options) {
	var all []*cst.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		all = append(all, c)
	}
	if len(all) == 0 {
		return
	}
	rIdx := -1
	for i := 1; i < len(all); i++ {
		if all[i].IsLeaf() {
			rIdx = i
			break
		}
	}
	if rIdx < 0 {
		for _, c := range all {
			writeFormatted(sb, c, opts)
		}
		return
	}

	writeFormatted(sb, all[0], opts) // LBracket
	contents := all[1:rIdx]
	if opts.ChordNoteSort {
		contents = sortChordContents(contents)
	}
	for _, c := range contents {
		writeFormatted(sb, c, opts)
	}
	for i := rIdx; i < len(all); i++ {
		writeFormatted(sb, all[i], opts) // RBracket, Rhythm, Tie
	}
}

type chordUnit struct {
	nodes    []*cst.Node
	pitch    int
	hasPitch bool
}

// sortChordContents stably sorts contents by ascending pitch. A run of
// decorations/annotations immediately preceding a Note travels with that
// note as one unit; a trailing run with no following note is left in
// place after the sorted units (spec.md §4.5 "tokens preceding each note
// within the chord ... travel with the note they precede").
func sortChordContents(contents []*cst.Node) []*cst.Node {
	var units []chordUnit
	var pending []*cst.Node
	for _, c := range contents {
		pending = append(pending, c)
		if c.Tag == noteTag {
			midi, ok := transform.PitchMIDI(c)
			units = append(units, chordUnit{nodes: pending, pitch: midi, hasPitch: ok})
			pending = nil
		}
	}
	trailing := pending

	sort.SliceStable(units, func(i, j int) bool {
		if !units[i].hasPitch || !units[j].hasPitch {
			return false
		}
		return units[i].pitch < units[j].pitch
	})

	var out []*cst.Node
	for _, u := range units {
		out = append(out, u.nodes...)
	}
	return append(out, trailing...)
}
