// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
	"github.com/spf13/cobra"
)

func cmdScale() *cobra.Command {
	var path, outputPath, factorFlag string
	var line int
	cmd := &cobra.Command{
		Use:   "scale",
		Short: "double or halve the duration of every note, chord, and rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("scale", func() error {
				var factor transform.Factor
				switch factorFlag {
				case "multiply":
					factor = transform.Multiply
				case "divide":
					factor = transform.Divide
				default:
					return fmt.Errorf("--factor must be multiply or divide, got %q", factorFlag)
				}
				root, ctx, err := loadTree(path)
				if err != nil {
					return err
				}
				transform.ScaleRhythm(root, factor, rangeForLine(line), ctx)
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	cmd.Flags().StringVar(&factorFlag, "factor", "multiply", "multiply or divide every rhythm by two")
	cmd.Flags().IntVar(&line, "line", 0, "0-based source line to restrict the scale to (0 or negative scales the whole file)")
	return cmd
}
