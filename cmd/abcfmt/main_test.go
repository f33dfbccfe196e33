// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"testing"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
	"gopkg.in/yaml.v3"
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

func TestSelectionForLine_NoLineSelectsWholeTree(t *testing.T) {
	t.Parallel()

	root := parseToCST(t, "X:1\nK:C\nCD|\n")
	sel := selectionForLine(root, 0)
	if len(sel.Cursors) != 0 {
		t.Fatalf("expected no cursors for line <= 0, got %d", len(sel.Cursors))
	}
}

func TestSelectionForLine_PicksOnlyMatchingSystem(t *testing.T) {
	t.Parallel()

	root := parseToCST(t, "X:1\nK:C\nCD|\nEF|\n")

	var systems []*cst.Node
	var walk func(n *cst.Node)
	walk = func(n *cst.Node) {
		if n.Tag == systemTag {
			systems = append(systems, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if len(systems) != 2 {
		t.Fatalf("expected 2 systems in fixture, got %d", len(systems))
	}

	sel := selectionForLine(root, firstLeafLine(t, systems[1]))
	if len(sel.Cursors) != 1 {
		t.Fatalf("expected exactly one cursor, got %d", len(sel.Cursors))
	}
	if sel.Contains(systems[0].ID) {
		t.Errorf("selection unexpectedly includes the other system")
	}
	if !sel.Contains(systems[1].ID) {
		t.Errorf("selection does not include the targeted system")
	}
}

func firstLeafLine(t *testing.T, n *cst.Node) int {
	t.Helper()
	if n.IsLeaf() {
		if n.Token == nil {
			t.Fatalf("leaf node %d has no token", n.ID)
		}
		return n.Token.Line
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.IsLeaf() && c.Token == nil {
			continue
		}
		return firstLeafLine(t, c)
	}
	t.Fatalf("node %d has no leaf descendant", n.ID)
	return 0
}

func TestRangeForLine_NoLineReturnsNil(t *testing.T) {
	t.Parallel()

	if got := rangeForLine(0); got != nil {
		t.Fatalf("expected nil range for line <= 0, got %+v", got)
	}
}

func TestRangeForLine_SpansWholeLine(t *testing.T) {
	t.Parallel()

	rng := rangeForLine(3)
	if rng == nil {
		t.Fatal("expected a non-nil range")
	}
	if rng.Start.Line != 3 || rng.End.Line != 3 {
		t.Fatalf("expected range confined to line 3, got %+v", rng)
	}
	if rng.Start.Character != 0 {
		t.Errorf("expected range to start at character 0, got %d", rng.Start.Character)
	}
}

func TestLineList_UnmarshalsScalar(t *testing.T) {
	t.Parallel()

	var ll lineList
	if err := yaml.Unmarshal([]byte("3"), &ll); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ll) != 1 || ll[0] != 3 {
		t.Fatalf("expected [3], got %v", ll)
	}
}

func TestLineList_UnmarshalsList(t *testing.T) {
	t.Parallel()

	var ll lineList
	if err := yaml.Unmarshal([]byte("[1, 2, 5]"), &ll); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ll) != 3 || ll[0] != 1 || ll[1] != 2 || ll[2] != 5 {
		t.Fatalf("expected [1 2 5], got %v", ll)
	}
}

func TestApplyBatchOp_UnknownOpErrors(t *testing.T) {
	t.Parallel()

	root := parseToCST(t, "X:1\nK:C\nCD|\n")
	ctx := token.NewContext()
	if err := applyBatchOp(root, batchOp{Op: "frobnicate"}, ctx); err == nil {
		t.Fatal("expected an error for an unrecognized op")
	}
}
