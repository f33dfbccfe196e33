// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// clampMIDI guards the [0, 127] range (spec.md §4.5 "guard the [0, 127]
// range").
func clampMIDI(m int) int {
	if m < 0 {
		return 0
	}
	if m > 127 {
		return 127
	}
	return m
}

// Transpose converts every selected Note's Pitch (standalone or nested
// inside a Chord) to a chromatic MIDI number, adds semitones, guards the
// range, and converts back, preferring the natural letter with minimal
// octave marks and preserving an existing accidental's sharp/flat bias
// when the result itself needs one (spec.md §4.5).
func Transpose(sel Selection, semitones int, ctx *token.Context) {
	var notes []*cst.Node
	collect(sel.Root, sel, func(n *cst.Node) {
		if n.Tag == noteTag {
			notes = append(notes, n)
		}
	})
	for _, note := range notes {
		transposeNote(note, semitones, ctx)
	}
}

func transposeNote(note *cst.Node, semitones int, ctx *token.Context) {
	pitchNode := cst.FindChildByTag(note, pitchTag)
	if pitchNode == nil {
		return
	}
	pc := readPitch(pitchNode)
	preferFlat := isFlatAccidental(pc.Accidental)
	newMidi := clampMIDI(pc.midi() + semitones)
	newPC := midiToPitch(newMidi, preferFlat)
	replacement := buildPitchNode(ctx, newPC)
	cst.ReplaceChild(note, pitchNode, replacement)
}
