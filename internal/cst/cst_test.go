// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package cst_test

import (
	"testing"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

func parseFile(t *testing.T, input string) (*ast.File, *token.Context) {
	t.Helper()
	ctx := token.NewContext()
	toks := scanner.Scan([]byte(input), ctx)
	return ast.Parse(toks, ctx), ctx
}

// roundTrip asserts fromAst/toAst round-trips the token sequence exactly
// (spec.md §4.4's "toAst ∘ fromAst is structurally the identity on AST
// nodes (same variant, same child order, same token lexemes)"). Comparing
// via ast.Tokens rather than reflect.DeepEqual sidesteps the id
// renumbering toAst's re-derivation of Info_line/Inline_field Value
// performs, which is cosmetic, not structural.
func roundTrip(t *testing.T, input string) (*ast.File, *ast.File) {
	t.Helper()
	orig, ctx := parseFile(t, input)
	if len(ctx.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics parsing fixture: %v", ctx.Diagnostics)
	}
	root := cst.FromAST(orig, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)

	wantToks := ast.Tokens(orig)
	gotToks := ast.Tokens(back)
	if len(gotToks) != len(wantToks) {
		t.Fatalf("token count mismatch after round-trip: got %d, want %d\ngot:  %v\nwant: %v", len(gotToks), len(wantToks), gotToks, wantToks)
	}
	for i := range wantToks {
		if gotToks[i].Kind != wantToks[i].Kind || gotToks[i].Lexeme != wantToks[i].Lexeme {
			t.Fatalf("token %d mismatch after round-trip: got %s(%q), want %s(%q)", i, gotToks[i].Kind, gotToks[i].Lexeme, wantToks[i].Kind, wantToks[i].Lexeme)
		}
	}
	return orig, back
}

func TestRoundTrip_MinimalTune(t *testing.T) {
	roundTrip(t, "X:1\nK:C\nC|\n")
}

func TestRoundTrip_ChordAndNotes(t *testing.T) {
	roundTrip(t, "X:1\nK:C\n[CEG]2 C2 D2|\n")
}

func TestRoundTrip_TieAndRest(t *testing.T) {
	roundTrip(t, "X:1\nK:C\nC-C z2|\n")
}

func TestRoundTrip_MultiMeasureRest(t *testing.T) {
	roundTrip(t, "X:1\nK:C\nZ4|\n")
}

func TestRoundTrip_GraceGroupAcciaccatura(t *testing.T) {
	roundTrip(t, "X:1\nK:C\n{/AB}C|\n")
}

func TestRoundTrip_InlineFieldMeterChange(t *testing.T) {
	_, back := roundTrip(t, "X:1\nK:C\nC [M:3/4] D|\n")
	tune := back.Items[0].(*ast.Tune)
	var inf *ast.InlineField
	for _, el := range tune.Body.Systems[0].Elements {
		if v, ok := el.(*ast.InlineField); ok {
			inf = v
		}
	}
	if inf == nil {
		t.Fatalf("expected an InlineField to survive the round-trip")
	}
	if len(inf.Value) == 0 {
		t.Fatalf("expected toAst to re-derive the structured Value overlay")
	}
	if _, ok := inf.Value[0].(*ast.Rational); !ok {
		t.Fatalf("expected 3/4 to re-parse as a Rational, got %T", inf.Value[0])
	}
}

func TestRoundTrip_DirectiveWithMeasurement(t *testing.T) {
	_, back := roundTrip(t, "X:1\nK:C\n%%staffwidth 150pt\nC|\n")
	tune := back.Items[0].(*ast.Tune)
	var directive *ast.Directive
	for _, el := range tune.Body.Systems[0].Elements {
		if v, ok := el.(*ast.Directive); ok {
			directive = v
		}
	}
	if directive == nil {
		t.Fatalf("expected a Directive to survive the round-trip")
	}
	var measurement *ast.Measurement
	for _, v := range directive.Values {
		if m, ok := v.(*ast.Measurement); ok {
			measurement = m
		}
	}
	if measurement == nil || measurement.Number.Lexeme != "150" || measurement.Unit.Lexeme != "pt" {
		t.Fatalf("expected Measurement 150pt to survive the round-trip, got %#v", measurement)
	}
}

func TestRoundTrip_FileHeaderAndSectionBreak(t *testing.T) {
	roundTrip(t, "%abc-2.1\n%%pagewidth 21cm\nX:1\nK:C\nC|\n\n\nX:2\nK:D\nD|\n")
}

func TestRoundTrip_TuneWithNoBody(t *testing.T) {
	orig, back := roundTrip(t, "X:1\nK:C\n")
	if orig.Items[0].(*ast.Tune).Body != nil {
		t.Fatalf("fixture itself should have a nil Body")
	}
	if back.Items[0].(*ast.Tune).Body != nil {
		t.Fatalf("expected toAst to preserve the nil TuneBody, got %#v", back.Items[0].(*ast.Tune).Body)
	}
}

func TestRoundTrip_MalformedInputPreservesErrorExpr(t *testing.T) {
	orig, ctx := parseFile(t, "X:1\nK:C\n[CEG\n")
	if len(ctx.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic for the unterminated chord")
	}
	root := cst.FromAST(orig, ctx)
	back := cst.ToAST(root, ctx).(*ast.File)
	if len(ast.Tokens(back)) != len(ast.Tokens(orig)) {
		t.Fatalf("expected the malformed tree to still round-trip its tokens")
	}
}

// TestFromAST_TuneBodyWrapsSystems checks the spec.md §4.4 requirement
// that Tune_Body wraps each System as a CST child node tagged System,
// even when that System is empty.
func TestFromAST_TuneBodyWrapsSystems(t *testing.T) {
	f, ctx := parseFile(t, "X:1\nK:C\n\nC|\n")
	tune := f.Items[0].(*ast.Tune)
	bodyNode := cst.FromAST(tune.Body, ctx)
	if bodyNode.Tag != cst.Tag(ast.KindTuneBody) {
		t.Fatalf("expected the TuneBody CST node to be tagged TuneBody, got %s", bodyNode.Tag)
	}
	n := 0
	for c := bodyNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag != cst.Tag(ast.KindSystem) {
			t.Fatalf("expected every TuneBody child to be tagged System, got %s", c.Tag)
		}
		n++
	}
	if n != len(tune.Body.Systems) {
		t.Fatalf("expected %d System wrapper children, got %d", len(tune.Body.Systems), n)
	}
}

func TestFindTieChild(t *testing.T) {
	f, ctx := parseFile(t, "X:1\nK:C\nC-C|\n")
	tune := f.Items[0].(*ast.Tune)
	root := cst.FromAST(tune.Body, ctx)
	var found *cst.Node
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n.Tag == cst.Tag(ast.KindNote) {
			if tie := cst.FindTieChild(n); tie != nil {
				found = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if found == nil {
		t.Fatalf("expected FindTieChild to locate the tied note's TIE token")
	}
}

func TestReplaceNodeWithSequence(t *testing.T) {
	f, ctx := parseFile(t, "X:1\nK:C\nCD|\n")
	tune := f.Items[0].(*ast.Tune)
	root := cst.FromAST(tune.Body, ctx)

	sys := cst.FindChildByTag(root, cst.Tag(ast.KindSystem))
	if sys == nil {
		t.Fatalf("expected a System child")
	}
	var beam *cst.Node
	for c := sys.FirstChild; c != nil; c = c.NextSibling {
		if c.Tag == cst.Tag(ast.KindBeam) {
			beam = c
		}
	}
	if beam == nil {
		t.Fatalf("expected a Beam wrapping the two notes")
	}
	first := beam.FirstChild
	if first == nil {
		t.Fatalf("expected the beam to have a first element")
	}
	replacement := cst.NewInterior(ctx.NewID(), ast.KindRest)
	cst.ReplaceNodeWithSequence(first, []*cst.Node{replacement})
	if beam.FirstChild != replacement {
		t.Fatalf("expected the replacement node to take the removed node's place")
	}
	if replacement.Parent != beam {
		t.Fatalf("expected the replacement's Parent to be rewired to beam")
	}
}
