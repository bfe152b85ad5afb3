// Package cli is the non-interactive command surface: stage the given paths,
// format them, and deliver the block in one shot.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jesspatton/backtick/app"
	"github.com/jesspatton/backtick/config"
	"github.com/jesspatton/backtick/sink"
)

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the backtick command.
func NewRootCommand() *cobra.Command {
	var (
		noRecursive bool
		noParallel  bool
		ignoreFile  string
		printOut    bool
		outputFile  string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "backtick [paths...]",
		Short:         "Collect file contents and combine them into clipboard content",
		Long:          "Backtick stages files, directories, and glob matches, filters them\nthrough gitignore-style rules, and combines their contents into one\ntext block for the clipboard, a file, or stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("no files or directories specified")
			}

			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ignore-file") {
				cfg.IgnoreFile = ignoreFile
			}
			if noRecursive {
				cfg.Recursive = false
			}
			if noParallel {
				cfg.Parallel = false
			}

			logger := newLogger(verbose)
			defer logger.Sync()

			var out sink.Sink
			switch {
			case outputFile != "":
				out = sink.File{Path: outputFile}
			case printOut:
				out = sink.Writer{W: cmd.OutOrStdout()}
			default:
				out = sink.Clipboard{}
			}

			baseDir, err := os.Getwd()
			if err != nil {
				return err
			}
			a, err := app.New(baseDir, cfg, out, logger)
			if err != nil {
				return err
			}

			for _, path := range args {
				logger.Debug("staging", zap.String("path", path))
				report, err := a.Stage(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
					continue
				}
				logger.Debug("staged",
					zap.String("path", path),
					zap.Int("files", report.FilesAdded))
			}

			count, err := a.Copy()
			if err != nil {
				if errors.Is(err, app.ErrNothingStaged) {
					return errors.New("no files were staged, nothing to copy")
				}
				return err
			}

			switch {
			case outputFile != "":
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote content of %d file(s) to %s\n", count, outputFile)
			case printOut:
				// The content itself already went to stdout.
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %d file(s) to clipboard.\n", count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noRecursive, "no-recursive", "n", false, "disable recursive processing of directories")
	cmd.Flags().BoolVar(&noParallel, "no-parallel", false, "scan directories sequentially")
	cmd.Flags().StringVarP(&ignoreFile, "ignore-file", "i", ".backtickignore", "path to the ignore file")
	cmd.Flags().BoolVar(&printOut, "print", false, "print the combined content instead of copying")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to a file instead of the clipboard")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	return cmd
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
