// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package main implements the abcfmt CLI: a thin cobra wrapper around
// internal/scanner, internal/ast, internal/cst, internal/transform, and
// internal/format. It contains no parsing or formatting logic of its
// own — every subcommand just wires a file's bytes through the library
// pipeline and writes the result back out.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/AntoineBalaine/abc-parse-sub011/internal/config"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
	logger *slog.Logger
	cfg    *config.Config
)

func main() {
	var configPath string
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cmdRoot := &cobra.Command{
		Use:           "abcfmt",
		Short:         "ABC notation formatter and structural editor",
		Long:          `Format ABC tunes and apply structural edits (transpose, harmonize, insert-voice, rhythm scale) to their concrete syntax tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Root().PersistentFlags()
			logLevel, err := flags.GetString("log-level")
			if err != nil {
				return err
			}
			logSource, err := flags.GetBool("log-source")
			if err != nil {
				return err
			}
			debug, err := flags.GetBool("debug")
			if err != nil {
				return err
			}
			quiet, err := flags.GetBool("quiet")
			if err != nil {
				return err
			}
			if debug && quiet {
				return fmt.Errorf("--debug and --quiet are mutually exclusive")
			}
			var lvl slog.Level
			switch {
			case debug:
				lvl = slog.LevelDebug
			case quiet:
				lvl = slog.LevelError
			default:
				switch strings.ToLower(logLevel) {
				case "debug":
					lvl = slog.LevelDebug
				case "info":
					lvl = slog.LevelInfo
				case "warn", "warning":
					lvl = slog.LevelWarn
				case "error":
					lvl = slog.LevelError
				default:
					return fmt.Errorf("log-level: unknown value %q", logLevel)
				}
			}
			handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     lvl,
				AddSource: logSource || lvl == slog.LevelDebug,
			})
			logger = slog.New(handler)
			slog.SetDefault(logger)

			loaded, err := config.Load(configPath, debug)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	cmdRoot.PersistentFlags().Bool("debug", false, "enable debug logging (same as --log-level=debug)")
	cmdRoot.PersistentFlags().Bool("quiet", false, "only log errors (same as --log-level=error)")
	cmdRoot.PersistentFlags().String("log-level", "error", "logging level (debug|info|warn|error)")
	cmdRoot.PersistentFlags().Bool("log-source", false, "add file and line numbers to log messages")
	cmdRoot.PersistentFlags().StringVar(&configPath, "config", "abcfmt.json", "path to the configuration file")

	cmdRoot.AddCommand(
		cmdVersion(),
		cmdFormat(),
		cmdTranspose(),
		cmdHarmonize(),
		cmdInsertVoice(),
		cmdScale(),
		cmdBatch(),
	)

	if err := cmdRoot.Execute(); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(version.String())
				return nil
			}
			fmt.Println(version.Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}

// withElapsed logs how long an operation took, the way the teacher's
// cmd/parser/main.go times its single RunE body.
func withElapsed(op string, fn func() error) error {
	started := time.Now()
	err := fn()
	logger.Info(op, "elapsed time", time.Since(started).String())
	return err
}
