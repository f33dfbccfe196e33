// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/ast"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/format"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/scanner"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
	"github.com/spf13/cobra"
)

// loadTree reads path, scans and parses it, and converts the result to a
// CST. Diagnostics accumulated along the way are logged but never abort
// the pipeline (spec.md §7): the subcommands work with whatever tree the
// parser could build.
func loadTree(path string) (*cst.Node, *token.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty input file")
	}
	ctx := token.NewContext()
	toks := scanner.Scan(data, ctx)
	file := ast.Parse(toks, ctx)
	for _, d := range ctx.Diagnostics {
		logger.Warn("parse", "stage", d.Origin.String(), "line", d.Line, "message", d.Message, "lexeme", d.Lexeme)
	}
	return cst.FromAST(file, ctx), ctx, nil
}

// writeOutput renders root per cfg.Format and writes it to outputPath, or
// stdout when outputPath is empty.
func writeOutput(root *cst.Node, outputPath string) error {
	var text string
	if cfg.Format.NoFormat {
		text = format.VerbatimFormat(root)
	} else {
		text = format.Format(root, format.Options{ChordNoteSort: cfg.Format.ChordNoteSort})
	}
	if outputPath == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return err
	}
	logger.Info("abcfmt", "created", outputPath)
	return nil
}

// inputOutputFlags registers the --input/--output pair every editing
// subcommand shares.
func inputOutputFlags(cmd *cobra.Command, path, outputPath *string) {
	cmd.Flags().StringVar(path, "input", "", "ABC file to read")
	cmd.Flags().StringVar(outputPath, "output", "", "write the result to this file instead of stdout")
	_ = cmd.MarkFlagRequired("input")
}
