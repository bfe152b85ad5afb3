// Package app wires the staging set, formatter, and output sink together and
// classifies raw user input. Both the CLI and the interactive surface drive
// the same App.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/jesspatton/backtick/config"
	"github.com/jesspatton/backtick/format"
	"github.com/jesspatton/backtick/ignore"
	"github.com/jesspatton/backtick/sink"
	"github.com/jesspatton/backtick/staging"
)

// ErrNothingStaged is returned by Copy when the staging set is empty.
var ErrNothingStaged = errors.New("no files are currently staged")

// StageReport summarizes one staging operation.
type StageReport struct {
	FilesAdded int
	DirsAdded  int // directories expanded (glob input only)
}

// App owns the session state for one staging run.
type App struct {
	staged    *staging.Set
	formatter *format.Formatter
	out       sink.Sink
	logger    *zap.Logger
	recursive bool
}

// New builds an App rooted at baseDir. The ignore file named by cfg is read
// from baseDir when present; a missing file means an empty rule set.
func New(baseDir string, cfg *config.Config, out sink.Sink, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ignorePath := cfg.IgnoreFile
	if !filepath.IsAbs(ignorePath) {
		ignorePath = filepath.Join(baseDir, ignorePath)
	}

	var matcher *ignore.Matcher
	if _, err := os.Stat(ignorePath); err == nil {
		matcher, err = ignore.NewMatcherFromFile(ignorePath)
		if err != nil {
			return nil, fmt.Errorf("loading ignore file: %w", err)
		}
		logger.Debug("loaded ignore rules", zap.String("path", ignorePath))
	} else {
		matcher = ignore.NewMatcher("")
	}

	staged := staging.NewSet(baseDir, matcher, cfg.Workers, logger)
	staged.SetParallel(cfg.Parallel)

	return &App{
		staged:    staged,
		formatter: format.NewFormatter(baseDir, cfg.CacheSize, cfg.ChunkSize),
		out:       out,
		logger:    logger,
		recursive: cfg.Recursive,
	}, nil
}

// Stage classifies raw input as a glob pattern, a directory, or a file, and
// stages the matching files. Globs may match a mix of files and directories;
// each directory expands through the ignore rules.
func (a *App) Stage(input string) (StageReport, error) {
	input = expandUser(input)

	if IsGlob(input) {
		return a.stageGlob(input)
	}

	info, err := os.Stat(a.resolve(input))
	if err != nil {
		return StageReport{}, fmt.Errorf("path %q does not exist", input)
	}

	if info.IsDir() {
		added, err := a.staged.AddDirectory(input, a.recursive)
		if err != nil {
			return StageReport{}, err
		}
		return StageReport{FilesAdded: added}, nil
	}

	if a.staged.AddFile(input) {
		return StageReport{FilesAdded: 1}, nil
	}
	return StageReport{}, nil
}

func (a *App) stageGlob(pattern string) (StageReport, error) {
	matches, err := doublestar.FilepathGlob(a.resolve(pattern))
	if err != nil {
		return StageReport{}, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return StageReport{}, fmt.Errorf("no paths match the pattern %q", pattern)
	}

	var report StageReport
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			a.logger.Warn("skipping unreadable match", zap.String("path", m), zap.Error(err))
			continue
		}
		if info.IsDir() {
			added, err := a.staged.AddDirectory(m, a.recursive)
			if err != nil {
				a.logger.Warn("skipping directory match", zap.String("path", m), zap.Error(err))
				continue
			}
			report.FilesAdded += added
			report.DirsAdded++
		} else if a.staged.AddFile(m) {
			report.FilesAdded++
		}
	}
	return report, nil
}

// Copy formats every staged file and writes the combined block to the sink.
// It returns the number of files included.
func (a *App) Copy() (int, error) {
	files := a.staged.Files()
	if len(files) == 0 {
		return 0, ErrNothingStaged
	}

	content := a.formatter.FormatFiles(files)
	if err := a.out.Write(content); err != nil {
		return 0, err
	}
	return len(files), nil
}

// Remove unstages the file at the given 1-based display index.
func (a *App) Remove(index int) (string, bool) {
	files := a.staged.Files()
	if index < 1 || index > len(files) {
		return "", false
	}
	path := files[index-1]
	return path, a.staged.RemoveFile(path)
}

// Clear unstages everything.
func (a *App) Clear() {
	a.staged.Clear()
}

// ClearCache drops the formatter's cached file contents.
func (a *App) ClearCache() {
	a.formatter.ClearCache()
}

// Files returns the staged relative paths in display order.
func (a *App) Files() []string {
	return a.staged.Files()
}

// Count returns the number of staged files.
func (a *App) Count() int {
	return a.staged.Count()
}

// IsGlob reports whether input contains glob metacharacters.
func IsGlob(input string) bool {
	return strings.ContainsAny(input, "*?[{")
}

func (a *App) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.staged.BaseDir(), path)
}

// expandUser replaces a leading ~ with the user's home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
