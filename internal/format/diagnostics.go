// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package format

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
)

// FormatWithDiagnostics runs the full scan -> parse -> CST -> print
// pipeline over src in one call, for a caller that wants the
// rendered text and any diagnostics the pipeline accumulated without
// wiring each stage by hand (spec.md §4.1's "same sink" carried through
// every stage into one place, token.Context.Diagnostics).
func FormatWithDiagnostics(src []byte, noFormat bool, opts Options) (string, []token.Diagnostic) {
	ctx := token.NewContext()
	toks := scanner.Scan(src, ctx)
	file := ast.Parse(toks, ctx)
	root := cst.FromAST(file, ctx)

	var out string
	if noFormat {
		out = VerbatimFormat(root)
	} else {
		out = Format(root, opts)
	}
	return out, ctx.Diagnostics
}
