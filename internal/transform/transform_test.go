// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package transform_test

import (
	"testing"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
)

func parseToCST(t *testing.T, input string) (*cst.Node, *token.Context) {
	t.Helper()
	ctx := token.NewContext()
	toks := scanner.Scan([]byte(input), ctx)
	file := ast.Parse(toks, ctx)
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics parsing fixture: %v", ctx.Diagnostics)
	}
	return cst.FromAST(file, ctx), ctx
}

func findAll(root *cst.Node, tag cst.Tag) []*cst.Node {
	var out []*cst.Node
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n.Tag == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func firstNote(root *cst.Node) *cst.Node {
	notes := findAll(root, cst.Tag(ast.KindNote))
	if len(notes) == 0 {
		return nil
	}
	return notes[0]
}

func pitchLetterLexeme(n *cst.Node) string {
	pitch := cst.FindChildByTag(n, cst.Tag(ast.KindPitch))
	if pitch == nil {
		return ""
	}
	for c := pitch.FirstChild; c != nil; c = c.NextSibling {
		if c.IsLeaf() && c.Token != nil && c.Token.Kind == token.NOTE_LETTER {
			return c.Token.Lexeme
		}
	}
	return ""
}

func accidentalLexeme(n *cst.Node) string {
	pitch := cst.FindChildByTag(n, cst.Tag(ast.KindPitch))
	if pitch == nil {
		return ""
	}
	for c := pitch.FirstChild; c != nil; c = c.NextSibling {
		if c.IsLeaf() && c.Token != nil && c.Token.Kind == token.ACCIDENTAL {
			return c.Token.Lexeme
		}
	}
	return ""
}

func TestTranspose_WholeStepUp(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC|\n")
	note := firstNote(root)
	if note == nil {
		t.Fatalf("expected a Note in the fixture")
	}
	transform.Transpose(transform.Selection{Root: root}, 2, ctx)
	if got := pitchLetterLexeme(note); got != "D" {
		t.Fatalf("expected C+2 semitones to spell D, got %q", got)
	}
}

func TestTranspose_SharpAccidentalStaysSharp(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\n^F|\n")
	note := firstNote(root)
	transform.Transpose(transform.Selection{Root: root}, 1, ctx)
	if letter, acc := pitchLetterLexeme(note), accidentalLexeme(note); letter != "G" || acc != "" {
		t.Fatalf("expected F#+1 semitone to spell a natural G, got %q%q", acc, letter)
	}
}

func TestTranspose_PreservesFlatBias(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\n_B|\n")
	note := firstNote(root)
	transform.Transpose(transform.Selection{Root: root}, -2, ctx)
	if letter, acc := pitchLetterLexeme(note), accidentalLexeme(note); letter != "A" || acc != "_" {
		t.Fatalf("expected Bb-2 semitones to prefer the flat spelling Ab, got %q%q", acc, letter)
	}
}

func TestTranspose_ClampsToMIDIRange(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC,,,,,,,,,,|\n")
	note := firstNote(root)
	transform.Transpose(transform.Selection{Root: root}, -1000, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	tune := back.Items[0].(*ast.Tune)
	n := tune.Body.Systems[0].Elements[0].(*ast.Note)
	if n.Pitch.Letter.Lexeme != "C" {
		t.Fatalf("expected the clamped-to-0 MIDI value to still spell a natural C, got %q", n.Pitch.Letter.Lexeme)
	}
}

func TestHarmonize_ChordAppendsAfterLastOriginalNote(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\n[CA]|\n")
	chord := findAll(root, cst.Tag(ast.KindChord))[0]
	transform.Harmonize(transform.Selection{Root: root}, 2, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	tune := back.Items[0].(*ast.Tune)
	var gotChord *ast.Chord
	for _, el := range tune.Body.Systems[0].Elements {
		if c, ok := el.(*ast.Chord); ok {
			gotChord = c
		}
	}
	if gotChord == nil {
		t.Fatalf("expected the Chord to survive harmonize")
	}
	var letters []string
	for _, c := range gotChord.Contents {
		if n, ok := c.(*ast.Note); ok {
			letters = append(letters, n.Pitch.Letter.Lexeme)
		}
	}
	want := []string{"C", "A", "E", "c"}
	if len(letters) != len(want) {
		t.Fatalf("expected [CA]+2 to become [CAEc], got %v", letters)
	}
	for i := range want {
		if letters[i] != want[i] {
			t.Fatalf("expected [CA]+2 to become [CAEc], got %v", letters)
		}
	}
	_ = chord
}

func TestHarmonize_StandaloneNoteWrapsIntoChord(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC2|\n")
	transform.Harmonize(transform.Selection{Root: root}, 2, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	tune := back.Items[0].(*ast.Tune)
	chord, ok := tune.Body.Systems[0].Elements[0].(*ast.Chord)
	if !ok {
		t.Fatalf("expected the standalone Note to have been wrapped in a Chord, got %T", tune.Body.Systems[0].Elements[0])
	}
	if len(chord.Contents) != 2 {
		t.Fatalf("expected the chord to hold the original note plus its harmony, got %d elements", len(chord.Contents))
	}
	if chord.Rhythm == nil || chord.Rhythm.Numerator == nil || chord.Rhythm.Numerator.Lexeme != "2" {
		t.Fatalf("expected the original note's Rhythm to move up to the chord, got %#v", chord.Rhythm)
	}
}

func TestHarmonize_ZeroStepsIsIdentity(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC|\n")
	before := ast.Tokens(cst.ToAST(root, ctx))
	transform.Harmonize(transform.Selection{Root: root}, 0, ctx)
	after := ast.Tokens(cst.ToAST(root, ctx))
	if len(before) != len(after) {
		t.Fatalf("expected steps==0 to be a no-op, token counts differ: %d vs %d", len(before), len(after))
	}
}

func TestScaleRhythm_MultiplyDoublesNumerator(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC2|\n")
	transform.ScaleRhythm(root, transform.Multiply, nil, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	note := back.Items[0].(*ast.Tune).Body.Systems[0].Elements[0].(*ast.Note)
	if note.Rhythm == nil || note.Rhythm.Numerator == nil || note.Rhythm.Numerator.Lexeme != "4" {
		t.Fatalf("expected C2 doubled to become C4, got %#v", note.Rhythm)
	}
}

func TestScaleRhythm_DivideToIdentityRemovesRhythm(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC2|\n")
	transform.ScaleRhythm(root, transform.Divide, nil, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	note := back.Items[0].(*ast.Tune).Body.Systems[0].Elements[0].(*ast.Note)
	if note.Rhythm != nil {
		t.Fatalf("expected C2 halved to C1 to drop its now-redundant Rhythm entirely, got %#v", note.Rhythm)
	}
}

func TestScaleRhythm_SynthesizesRhythmWhenAbsent(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC|\n")
	transform.ScaleRhythm(root, transform.Multiply, nil, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	note := back.Items[0].(*ast.Tune).Body.Systems[0].Elements[0].(*ast.Note)
	if note.Rhythm == nil || note.Rhythm.Numerator == nil || note.Rhythm.Numerator.Lexeme != "2" {
		t.Fatalf("expected a bare C doubled to synthesize rhythm 2, got %#v", note.Rhythm)
	}
}

func TestScaleRhythm_PowerOfTwoDenominatorUsesSlashes(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nC/2|\n")
	transform.ScaleRhythm(root, transform.Multiply, nil, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	note := back.Items[0].(*ast.Tune).Body.Systems[0].Elements[0].(*ast.Note)
	if note.Rhythm == nil || note.Rhythm.Numerator != nil || note.Rhythm.Denominator != nil || note.Rhythm.Separator == nil || note.Rhythm.Separator.Lexeme != "/" {
		t.Fatalf("expected C/2 (1/4) doubled to 1/2 to canonicalize as a bare slash, got %#v", note.Rhythm)
	}
}

func TestInsertVoiceLine_DuplicatesLineAndConvertsUnselectedNotes(t *testing.T) {
	root, ctx := parseToCST(t, "X:1\nK:C\nCD|\n")
	notes := findAll(root, cst.Tag(ast.KindNote))
	if len(notes) != 2 {
		t.Fatalf("expected two notes in the fixture, got %d", len(notes))
	}
	sel := transform.Selection{Root: root, Cursors: []transform.Cursor{transform.NewCursor(notes[0].ID)}}
	transform.InsertVoiceLine(sel, "2", ctx)

	back := cst.ToAST(root, ctx).(*ast.File)
	tune := back.Items[0].(*ast.Tune)

	var foundVoice bool
	for _, item := range tune.Header.Items {
		if il, ok := item.(*ast.InfoLine); ok && il.Header.Lexeme == "V:" {
			foundVoice = true
		}
	}
	if !foundVoice {
		t.Fatalf("expected InsertVoiceLine to add a V: line to the tune header")
	}

	if len(tune.Body.Systems) != 2 {
		t.Fatalf("expected the original System plus its duplicate, got %d", len(tune.Body.Systems))
	}
	dup := tune.Body.Systems[1]
	inf, ok := dup.Elements[0].(*ast.InlineField)
	if !ok || inf.Header.Lexeme != "V:" {
		t.Fatalf("expected the duplicate line to start with an inline V: switch, got %#v", dup.Elements[0])
	}

	// "CD" parses as a Beam, so the duplicate's notes and rests sit inside
	// it; check the Beam contents as well as the top-level elements.
	elements := dup.Elements
	for _, el := range dup.Elements {
		if b, ok := el.(*ast.Beam); ok {
			elements = append(elements, b.Elements...)
		}
	}
	var sawRest bool
	for _, el := range elements {
		if _, ok := el.(*ast.Rest); ok {
			sawRest = true
		}
		if n, ok := el.(*ast.Note); ok && n.Pitch.Letter.Lexeme == "D" {
			t.Fatalf("expected the unselected D note to have been converted to a Rest")
		}
	}
	if !sawRest {
		t.Fatalf("expected the duplicate's unselected note to become a Rest")
	}
}
