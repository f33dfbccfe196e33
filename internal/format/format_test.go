// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package format_test

import (
	"strings"
	"testing"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/format"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

func parseToCST(t *testing.T, input string) *cst.Node {
	t.Helper()
	ctx := token.NewContext()
	toks := scanner.Scan([]byte(input), ctx)
	file := ast.Parse(toks, ctx)
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics parsing fixture %q: %v", input, ctx.Diagnostics)
	}
	return cst.FromAST(file, ctx)
}

func TestVerbatimFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"X:1\nT:MyTune\nK:C\nCD  |]\n",
		"X:1\nK:C\n[EC]2|\n",
		"X:1\nK:C\n%comment\nC D|\n",
	}
	for _, in := range inputs {
		root := parseToCST(t, in)
		if got := format.VerbatimFormat(root); got != in {
			t.Fatalf("VerbatimFormat round-trip mismatch:\n got: %q\nwant: %q", got, in)
		}
	}
}

func TestFormat_InfoLineGetsSingleSpaceAfterHeader(t *testing.T) {
	root := parseToCST(t, "X:1\nT:MyTune\nK:C\nC|\n")
	out := format.Format(root, format.Options{})
	if !strings.Contains(out, "T: MyTune") {
		t.Fatalf("expected a single space after the T: header, got %q", out)
	}
}

func TestFormat_ChordNoteSortAscending(t *testing.T) {
	root := parseToCST(t, "X:1\nK:C\n[EC]|\n")
	out := format.Format(root, format.Options{ChordNoteSort: true})
	if !strings.Contains(out, "[CE]") {
		t.Fatalf("expected [EC] sorted ascending to [CE], got %q", out)
	}
}

func TestFormat_ChordNoteSortDisabledPreservesOrder(t *testing.T) {
	root := parseToCST(t, "X:1\nK:C\n[EC]|\n")
	out := format.Format(root, format.Options{ChordNoteSort: false})
	if !strings.Contains(out, "[EC]") {
		t.Fatalf("expected [EC] to stay unsorted when ChordNoteSort is off, got %q", out)
	}
}

func TestFormat_BeamBarLineSingleSpaceInserted(t *testing.T) {
	root := parseToCST(t, "X:1\nK:C\nCD|\n")
	out := format.Format(root, format.Options{})
	if !strings.Contains(out, "CD |") {
		t.Fatalf("expected a space inserted between the beamed group and the bar line, got %q", out)
	}
}

func TestFormat_BeamBarLineCollapsesExtraSpace(t *testing.T) {
	root := parseToCST(t, "X:1\nK:C\nCD   |\n")
	out := format.Format(root, format.Options{})
	if !strings.Contains(out, "CD |") || strings.Contains(out, "CD    |") {
		t.Fatalf("expected extra space between beam and bar line collapsed to one, got %q", out)
	}
}

func TestFormatWithDiagnostics_VerbatimMatchesRoundTrip(t *testing.T) {
	src := "X:1\nK:C\nCD  |]\n"
	out, diags := format.FormatWithDiagnostics([]byte(src), true, format.Options{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if out != src {
		t.Fatalf("expected the verbatim path to reproduce the source exactly, got %q", out)
	}
}
