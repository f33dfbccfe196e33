// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
	"github.com/spf13/cobra"
)

func cmdInsertVoice() *cobra.Command {
	var path, outputPath, voiceId string
	var line int
	cmd := &cobra.Command{
		Use:   "insert-voice",
		Short: "duplicate a system as a new voice line, resting every note not on that line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("insert-voice", func() error {
				root, ctx, err := loadTree(path)
				if err != nil {
					return err
				}
				if voiceId == "" {
					voiceId = cfg.Transform.DefaultVoiceID
				}
				transform.InsertVoiceLine(selectionForLine(root, line), voiceId, ctx)
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	cmd.Flags().StringVar(&voiceId, "voice", "", "voice id for the new line (defaults to the configured DefaultVoiceID)")
	cmd.Flags().IntVar(&line, "line", 0, "0-based source line of the system to duplicate (0 or negative duplicates every system)")
	return cmd
}
