// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// Harmonize adds a diatonic harmony voice steps letter-names above (or
// below, for a negative steps) every selected Note and every Note inside
// every selected Chord. steps == 0 is the identity (spec.md §4.5).
func Harmonize(sel Selection, steps int, ctx *token.Context) {
	if steps == 0 {
		return
	}
	var notes, chords []*cst.Node
	collect(sel.Root, sel, func(n *cst.Node) {
		switch n.Tag {
		case noteTag:
			if n.Parent == nil || n.Parent.Tag != chordTag {
				notes = append(notes, n)
			}
		case chordTag:
			chords = append(chords, n)
		}
	})
	for _, note := range notes {
		harmonizeStandaloneNote(note, steps, ctx)
	}
	for _, chord := range chords {
		harmonizeChordNode(chord, steps, ctx)
	}
}

// harmonyNoteFor builds a bare Note CST node (Pitch only, no Rhythm/Tie of
// its own) carrying the diatonic harmony of pc.
func harmonyNoteFor(ctx *token.Context, pc pitchComponents, steps int) *cst.Node {
	harmony := cst.NewInterior(ctx.NewID(), ast.KindNote)
	harmony.AppendChild(buildPitchNode(ctx, diatonicStep(pc, steps)))
	return harmony
}

// harmonizeStandaloneNote wraps note plus its harmony note in a new Chord,
// moving note's own Rhythm/Tie up to the chord level (spec.md §4.5 "wrap
// the original Note plus the harmony Note in a new Chord CST node...
// rhythm, tie moved from note level to chord level, siblings rewired").
func harmonizeStandaloneNote(note *cst.Node, steps int, ctx *token.Context) {
	pitchNode := cst.FindChildByTag(note, pitchTag)
	if pitchNode == nil {
		return
	}
	pc := readPitch(pitchNode)

	rhythmNode := cst.FindChildByTag(note, rhythmTag)
	if rhythmNode != nil {
		cst.RemoveChild(note, rhythmNode)
	}
	tieNode := cst.FindTieChild(note)
	if tieNode != nil {
		cst.RemoveChild(note, tieNode)
	}

	chordNode := cst.NewInterior(ctx.NewID(), ast.KindChord)
	// Splice chordNode into note's original slot while note is still
	// attached to its real parent; note is reattached as chordNode's
	// child afterward, once it no longer needs its own Parent link to
	// locate the splice point.
	cst.ReplaceNodeWithSequence(note, []*cst.Node{chordNode})

	chordNode.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.CHRD_LEFT_BRKT, "[")))
	chordNode.AppendChild(note)
	chordNode.AppendChild(harmonyNoteFor(ctx, pc, steps))
	chordNode.AppendChild(cst.NewToken(ctx.NewID(), newTok(ctx, token.CHRD_RIGHT_BRKT, "]")))
	if rhythmNode != nil {
		chordNode.AppendChild(rhythmNode)
	}
	if tieNode != nil {
		chordNode.AppendChild(tieNode)
	}
}

// harmonizeChordNode appends a harmony Note after each existing Note in
// chord, in order, so `[CA]` with steps=2 becomes `[CAEc]` (spec.md §4.5
// "append harmony Notes after the existing notes").
func harmonizeChordNode(chord *cst.Node, steps int, ctx *token.Context) {
	rbracket := findRBracket(chord)
	if rbracket == nil {
		return
	}
	var originals []*cst.Node
	for c := chord.FirstChild; c != nil && c != rbracket; c = c.NextSibling {
		if c.Tag == noteTag {
			originals = append(originals, c)
		}
	}
	for _, note := range originals {
		pitchNode := cst.FindChildByTag(note, pitchTag)
		if pitchNode == nil {
			continue
		}
		pc := readPitch(pitchNode)
		cst.InsertBefore(chord, rbracket, harmonyNoteFor(ctx, pc, steps))
	}
}

// findRBracket returns a Chord node's closing-bracket leaf, the first
// leaf-kind child after the opening bracket (Contents entries are always
// wrapped in their own interior node, so the next bare leaf is
// unambiguously the close).
func findRBracket(chord *cst.Node) *cst.Node {
	seenOpen := false
	for c := chord.FirstChild; c != nil; c = c.NextSibling {
		if !c.IsLeaf() {
			continue
		}
		if !seenOpen {
			seenOpen = true
			continue
		}
		return c
	}
	return nil
}
