// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
	"github.com/spf13/cobra"
)

func cmdTranspose() *cobra.Command {
	var path, outputPath string
	var semitones int
	cmd := &cobra.Command{
		Use:   "transpose",
		Short: "shift every note by a number of semitones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("transpose", func() error {
				root, ctx, err := loadTree(path)
				if err != nil {
					return err
				}
				transform.Transpose(transform.Selection{Root: root}, semitones, ctx)
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	cmd.Flags().IntVar(&semitones, "semitones", 0, "number of semitones to shift, positive or negative")
	return cmd
}
