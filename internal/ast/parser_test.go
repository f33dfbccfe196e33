// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ast_test

import (
	"testing"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
	"github.com/go-test/deep"
)

func parse(t *testing.T, input string) (*ast.File, *token.Context) {
	t.Helper()
	ctx := token.NewContext()
	toks := scanner.Scan([]byte(input), ctx)
	return ast.Parse(toks, ctx), ctx
}

// countKinds walks f and tallies node kinds, for assertions that don't
// need to pin down exact tree shape.
func countKinds(n ast.Node, counts map[ast.Kind]int) {
	if n == nil {
		return
	}
	counts[n.Kind()]++
	switch v := n.(type) {
	case *ast.File:
		countKinds(v.Header, counts)
		for _, it := range v.Items {
			countKinds(it, counts)
		}
	case *ast.FileHeader:
		for _, it := range v.Items {
			countKinds(it, counts)
		}
	case *ast.TuneHeader:
		for _, it := range v.Items {
			countKinds(it, counts)
		}
	case *ast.Tune:
		countKinds(v.Header, counts)
		countKinds(v.Body, counts)
	case *ast.TuneBody:
		for _, s := range v.Systems {
			countKinds(s, counts)
		}
	case *ast.System:
		for _, el := range v.Elements {
			countKinds(el, counts)
		}
	case *ast.Beam:
		for _, el := range v.Elements {
			countKinds(el, counts)
		}
	case *ast.Chord:
		for _, c := range v.Contents {
			countKinds(c, counts)
		}
	case *ast.GraceGroup:
		for _, nt := range v.Notes {
			countKinds(nt, counts)
		}
	}
}

func TestParse_MinimalTune(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\nC|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	if f.Header != nil {
		t.Fatalf("expected no File_header, got %#v", f.Header)
	}
	if len(f.Items) != 1 {
		t.Fatalf("expected one top-level item (the Tune), got %d", len(f.Items))
	}
	tune, ok := f.Items[0].(*ast.Tune)
	if !ok {
		t.Fatalf("expected *ast.Tune, got %T", f.Items[0])
	}
	if tune.Header == nil || len(tune.Header.Items) == 0 {
		t.Fatalf("expected a populated TuneHeader")
	}
	if tune.Body == nil || len(tune.Body.Systems) == 0 {
		t.Fatalf("expected a non-nil TuneBody with at least one System")
	}
}

func TestParse_ChordAndNotes(t *testing.T) {
	// spec.md §8: "X:1\nK:C\n[CEG]2 C2 D2|\n" parses to one Tune with one
	// System containing a 3-note Chord, Note C, Note D, BarLine.
	f, ctx := parse(t, "X:1\nK:C\n[CEG]2 C2 D2|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	if len(tune.Body.Systems) == 0 {
		t.Fatalf("expected at least one System")
	}
	sys := tune.Body.Systems[0]

	var chord *ast.Chord
	var notes []*ast.Note
	var barlines int
	for _, el := range sys.Elements {
		switch v := el.(type) {
		case *ast.Chord:
			chord = v
		case *ast.Note:
			notes = append(notes, v)
		case *ast.BarLine:
			barlines++
		case *ast.Beam:
			for _, sub := range v.Elements {
				switch sv := sub.(type) {
				case *ast.Chord:
					chord = sv
				case *ast.Note:
					notes = append(notes, sv)
				}
			}
		}
	}
	if chord == nil {
		t.Fatalf("expected a Chord element in the System")
	}
	var chordNotes int
	for _, c := range chord.Contents {
		if _, ok := c.(*ast.Note); ok {
			chordNotes++
		}
	}
	if chordNotes != 3 {
		t.Fatalf("expected 3 notes in chord, got %d", chordNotes)
	}
	if chord.Rhythm == nil || chord.Rhythm.Numerator == nil || chord.Rhythm.Numerator.Lexeme != "2" {
		t.Fatalf("expected chord rhythm numerator 2, got %#v", chord.Rhythm)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 standalone notes (C2 D2), got %d", len(notes))
	}
	if notes[0].Pitch.Letter.Lexeme != "C" || notes[1].Pitch.Letter.Lexeme != "D" {
		t.Fatalf("expected notes C then D, got %s then %s", notes[0].Pitch.Letter.Lexeme, notes[1].Pitch.Letter.Lexeme)
	}
	if barlines != 1 {
		t.Fatalf("expected 1 bar line, got %d", barlines)
	}
}

func TestParse_TieAndRest(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\nC-C z2|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	sys := tune.Body.Systems[0]

	var tiedNote *ast.Note
	var rest *ast.Rest
	for _, el := range sys.Elements {
		switch v := el.(type) {
		case *ast.Rest:
			rest = v
		case *ast.Beam:
			for _, sub := range v.Elements {
				switch sv := sub.(type) {
				case *ast.Note:
					if sv.Tie != nil {
						tiedNote = sv
					}
				case *ast.Rest:
					rest = sv
				}
			}
		}
	}
	if tiedNote == nil {
		t.Fatalf("expected a tied Note in the beam")
	}
	if rest == nil || rest.Rhythm == nil || rest.Rhythm.Numerator == nil || rest.Rhythm.Numerator.Lexeme != "2" {
		t.Fatalf("expected a rest with rhythm numerator 2, got %#v", rest)
	}
}

func TestParse_MultiMeasureRest(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\nZ4|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	sys := tune.Body.Systems[0]
	var mmr *ast.MultiMeasureRest
	for _, el := range sys.Elements {
		if v, ok := el.(*ast.MultiMeasureRest); ok {
			mmr = v
		}
	}
	if mmr == nil {
		t.Fatalf("expected a MultiMeasureRest element")
	}
	if mmr.Length == nil || mmr.Length.Lexeme != "4" {
		t.Fatalf("expected MultiMeasureRest length 4, got %#v", mmr.Length)
	}
}

func TestParse_GraceGroupAcciaccatura(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\n{/AB}C|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	sys := tune.Body.Systems[0]
	var gg *ast.GraceGroup
	for _, el := range sys.Elements {
		if v, ok := el.(*ast.GraceGroup); ok {
			gg = v
		}
		if beam, ok := el.(*ast.Beam); ok {
			for _, sub := range beam.Elements {
				if v, ok := sub.(*ast.GraceGroup); ok {
					gg = v
				}
			}
		}
	}
	if gg == nil {
		t.Fatalf("expected a GraceGroup element")
	}
	if gg.Acciaccatura == nil {
		t.Fatalf("expected the leading / to be reclassified as Acciaccatura")
	}
}

func TestParse_InlineFieldMeterChange(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\nC [M:3/4] D|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	sys := tune.Body.Systems[0]
	var inf *ast.InlineField
	for _, el := range sys.Elements {
		if v, ok := el.(*ast.InlineField); ok {
			inf = v
		}
	}
	if inf == nil {
		t.Fatalf("expected an InlineField element")
	}
	if inf.Header.Lexeme != "M:" {
		t.Fatalf("expected header M:, got %q", inf.Header.Lexeme)
	}
	if len(inf.Value) == 0 {
		t.Fatalf("expected a structured Value for the inline field")
	}
	if _, ok := inf.Value[0].(*ast.Rational); !ok {
		t.Fatalf("expected 3/4 to parse as a Rational, got %T", inf.Value[0])
	}
}

func TestParse_DirectiveWithMeasurement(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\n%%staffwidth 150pt\nC|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	var directive *ast.Directive
	for _, el := range tune.Body.Systems[0].Elements {
		if v, ok := el.(*ast.Directive); ok {
			directive = v
		}
	}
	if directive == nil {
		t.Fatalf("expected a Directive element")
	}
	if directive.Identifier.Lexeme != "staffwidth" {
		t.Fatalf("expected identifier staffwidth, got %q", directive.Identifier.Lexeme)
	}
	var measurement *ast.Measurement
	for _, v := range directive.Values {
		if m, ok := v.(*ast.Measurement); ok {
			measurement = m
		}
	}
	if measurement == nil || measurement.Number.Lexeme != "150" || measurement.Unit.Lexeme != "pt" {
		t.Fatalf("expected Measurement 150pt, got %#v", measurement)
	}
}

func TestParse_FileHeaderBeforeFirstTune(t *testing.T) {
	f, ctx := parse(t, "%abc-2.1\n%%pagewidth 21cm\nX:1\nK:C\nC|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	if f.Header == nil {
		t.Fatalf("expected a File_header before the first tune's X:")
	}
	if len(f.Items) != 1 {
		t.Fatalf("expected exactly one top-level Tune item, got %d", len(f.Items))
	}
	if _, ok := f.Items[0].(*ast.Tune); !ok {
		t.Fatalf("expected *ast.Tune, got %T", f.Items[0])
	}
}

func TestParse_OnlyFileHeader_NoTunes(t *testing.T) {
	// spec.md §8 boundary: input with only a file header -> tune list empty.
	f, ctx := parse(t, "%abc-2.1\n%%pagewidth 21cm\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	if f.Header == nil {
		t.Fatalf("expected a non-nil File_header")
	}
	for _, it := range f.Items {
		if _, ok := it.(*ast.Tune); ok {
			t.Fatalf("expected no Tune items, found one")
		}
	}
}

func TestParse_TuneWithNoBody(t *testing.T) {
	// spec.md §8 boundary: a Tune with no music content has a nil Body.
	f, ctx := parse(t, "X:1\nK:C\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	if tune.Body != nil {
		t.Fatalf("expected a nil TuneBody, got %#v", tune.Body)
	}
}

func TestParse_EmptySystemRetained(t *testing.T) {
	// spec.md §8 boundary: a blank line right after the K: header (whose
	// own EOL never widens to a section break, unlike a blank line later
	// in the body) produces an empty leading System, not a dropped one.
	f, ctx := parse(t, "X:1\nK:C\n\nC|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	tune := f.Items[0].(*ast.Tune)
	if len(tune.Body.Systems) < 2 {
		t.Fatalf("expected at least 2 systems (empty, content), got %d", len(tune.Body.Systems))
	}
	empty := tune.Body.Systems[0]
	for _, el := range empty.Elements {
		if el.Kind() != ast.KindTrivia {
			t.Fatalf("expected the leading empty System to hold only Trivia, found %s", el.Kind())
		}
	}
}

func TestParse_BlankLineMidBodyEndsTune(t *testing.T) {
	// A blank line that follows body content widens its EOL to SCT_BRK
	// (spec.md §4.2 "tune_body treats a blank line... so a tune's body
	// ends there"), so it separates tunes rather than producing an empty
	// System mid-tune.
	f, ctx := parse(t, "X:1\nK:C\nC|\n\nD|\n")
	_ = ctx
	tune := f.Items[0].(*ast.Tune)
	for _, sys := range tune.Body.Systems {
		for _, el := range sys.Elements {
			if el.Kind() == ast.KindSectionBreak {
				t.Fatalf("SectionBreak should not appear inside a TuneBody's Systems")
			}
		}
	}
	var sawBreak bool
	for _, it := range f.Items {
		if it.Kind() == ast.KindSectionBreak {
			sawBreak = true
		}
	}
	if !sawBreak {
		t.Fatalf("expected a top-level SectionBreak after the blank line")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	f, ctx := parse(t, "")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	if f.Header != nil {
		t.Fatalf("expected no File_header for empty input")
	}
	if len(f.Items) != 0 {
		t.Fatalf("expected no top-level items for empty input, got %d", len(f.Items))
	}
}

func TestParse_SectionBreakSeparatesTunes(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\nC|\n\n\nX:2\nK:D\nD|\n")
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	var tunes int
	for _, it := range f.Items {
		if _, ok := it.(*ast.Tune); ok {
			tunes++
		}
	}
	if tunes != 2 {
		t.Fatalf("expected 2 tunes, got %d", tunes)
	}
}

func TestParse_RoundTripTokens(t *testing.T) {
	input := "X:1\nT:Test\nK:C\n[CEG]2 C2 D2|\n"
	f, ctx := parse(t, input)
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ctx.Diagnostics)
	}
	got := ast.Tokens(f)

	ctx2 := token.NewContext()
	want := scanner.Scan([]byte(input), ctx2)
	// drop the trailing EOF both sides add implicitly so the comparison
	// only covers tokens the tree actually claims ownership of.
	want = want[:len(want)-1]

	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i].Kind != want[i].Kind || got[i].Lexeme != want[i].Lexeme {
			t.Fatalf("token %d mismatch: got %s(%q), want %s(%q)", i, got[i].Kind, got[i].Lexeme, want[i].Kind, want[i].Lexeme)
		}
	}
}

func TestParse_UnterminatedChordRecordsDiagnostic(t *testing.T) {
	// An unterminated chord should recover via ErrorExpr/synth rather than
	// hang or panic.
	f, ctx := parse(t, "X:1\nK:C\n[CEG\n")
	if len(ctx.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic for the unterminated chord")
	}
	if f == nil {
		t.Fatalf("expected a non-nil File even for malformed input")
	}
}

func TestCountKindsNoPanicOnDeepTree(t *testing.T) {
	f, ctx := parse(t, "X:1\nK:C\n(3ABC [CEG]2 z2 Z4 {/A}B |]\n")
	if len(ctx.Diagnostics) != 0 {
		t.Logf("diagnostics: %v", ctx.Diagnostics)
	}
	counts := map[ast.Kind]int{}
	countKinds(f, counts)
	if counts[ast.KindFile] != 1 {
		t.Fatalf("expected exactly one KindFile root")
	}
	if diff := deep.Equal(counts[ast.KindFile], 1); diff != nil {
		t.Fatalf("unexpected diff: %v", diff)
	}
}
