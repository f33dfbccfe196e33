// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
	"github.com/spf13/cobra"
)

func cmdHarmonize() *cobra.Command {
	var path, outputPath string
	var steps int
	cmd := &cobra.Command{
		Use:   "harmonize",
		Short: "add a diatonic harmony voice steps letter-names above (or below) every note",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("harmonize", func() error {
				root, ctx, err := loadTree(path)
				if err != nil {
					return err
				}
				transform.Harmonize(transform.Selection{Root: root}, steps, ctx)
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	cmd.Flags().IntVar(&steps, "steps", 0, "diatonic steps to add, positive or negative")
	return cmd
}
