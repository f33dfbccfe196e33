// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

func cmdFormat() *cobra.Command {
	var path, outputPath string
	cmd := &cobra.Command{
		Use:   "format",
		Short: "reprint an ABC file (Verbatim or Formatted, per configuration)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("format", func() error {
				root, _, err := loadTree(path)
				if err != nil {
					return err
				}
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	return cmd
}
