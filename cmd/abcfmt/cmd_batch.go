// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/cst"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/token"
	"github.com/AntoineBalaine/abc-parse-sub011/internal/transform"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// lineList is an op's target source lines, unmarshaled from either a bare
// int or a list of ints. A missing or empty lineList means "the whole
// file", matching every transform's own no-selection convention.
type lineList []int

func (ll *lineList) UnmarshalYAML(node *yaml.Node) error {
	var one int
	if err := node.Decode(&one); err == nil {
		*ll = lineList{one}
		return nil
	}
	var many []int
	if err := node.Decode(&many); err == nil {
		*ll = lineList(many)
		return nil
	}
	return fmt.Errorf("lines must be an int or a list of ints")
}

// batchOp is one step of a batch run. Only the fields its Op uses are
// read; the rest are ignored.
type batchOp struct {
	Op        string   `yaml:"op"`
	Semitones int      `yaml:"semitones,omitempty"`
	Steps     int      `yaml:"steps,omitempty"`
	Voice     string   `yaml:"voice,omitempty"`
	Factor    string   `yaml:"factor,omitempty"`
	Lines     lineList `yaml:"lines,omitempty"`
}

type batchFile struct {
	Ops []batchOp `yaml:"ops"`
}

func cmdBatch() *cobra.Command {
	var path, outputPath, opsPath string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "replay an ordered list of edits from a YAML ops file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withElapsed("batch", func() error {
				opsData, err := os.ReadFile(opsPath)
				if err != nil {
					return err
				}
				var bf batchFile
				if err := yaml.Unmarshal(opsData, &bf); err != nil {
					return fmt.Errorf("parsing %s: %w", opsPath, err)
				}

				root, ctx, err := loadTree(path)
				if err != nil {
					return err
				}
				for i, op := range bf.Ops {
					if err := applyBatchOp(root, op, ctx); err != nil {
						return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
					}
				}
				return writeOutput(root, outputPath)
			})
		},
	}
	inputOutputFlags(cmd, &path, &outputPath)
	cmd.Flags().StringVar(&opsPath, "ops", "", "YAML file listing the operations to replay")
	_ = cmd.MarkFlagRequired("ops")
	return cmd
}

// applyBatchOp runs op against root once per line named in op.Lines, or
// once over the whole tree when Lines is empty.
func applyBatchOp(root *cst.Node, op batchOp, ctx *token.Context) error {
	lines := op.Lines
	if len(lines) == 0 {
		lines = lineList{0}
	}
	for _, line := range lines {
		switch op.Op {
		case "transpose":
			transform.Transpose(selectionForLine(root, line), op.Semitones, ctx)
		case "harmonize":
			transform.Harmonize(selectionForLine(root, line), op.Steps, ctx)
		case "insert-voice":
			voiceId := op.Voice
			if voiceId == "" {
				voiceId = cfg.Transform.DefaultVoiceID
			}
			transform.InsertVoiceLine(selectionForLine(root, line), voiceId, ctx)
		case "scale":
			var factor transform.Factor
			switch op.Factor {
			case "multiply", "":
				factor = transform.Multiply
			case "divide":
				factor = transform.Divide
			default:
				return fmt.Errorf("factor must be multiply or divide, got %q", op.Factor)
			}
			transform.ScaleRhythm(root, factor, rangeForLine(line), ctx)
		default:
			return fmt.Errorf("unknown op %q", op.Op)
		}
	}
	return nil
}
