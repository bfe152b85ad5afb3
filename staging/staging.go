// Package staging holds the in-memory set of paths selected for the
// combined output.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/jesspatton/backtick/ignore"
)

// Set is the session's staged-path collection. Paths are stored relative to
// a base directory fixed at construction, with set semantics: no duplicates,
// insertion order preserved for display. Set is not safe for concurrent
// mutation; scans parallelize internally and the orchestrating caller
// applies their results.
type Set struct {
	baseDir  string
	matcher  *ignore.Matcher
	filter   *ignore.Filter
	scanner  *ignore.Scanner
	parallel bool
	logger   *zap.Logger

	files []string
	index map[string]struct{}
}

// NewSet creates an empty staging set rooted at baseDir. The matcher decides
// which paths may be staged; workers sizes the parallel scanner's pool.
func NewSet(baseDir string, matcher *ignore.Matcher, workers int, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{
		baseDir:  baseDir,
		matcher:  matcher,
		filter:   ignore.NewFilter(matcher, logger),
		scanner:  ignore.NewScanner(matcher, workers, logger),
		parallel: true,
		logger:   logger,
		index:    make(map[string]struct{}),
	}
}

// SetParallel switches directory expansion between the parallel scanner and
// the sequential filter.
func (s *Set) SetParallel(parallel bool) {
	s.parallel = parallel
}

// AddFile stages a single file. It returns false without mutating the set
// when the path does not exist, is a directory, resolves to an ignored
// relative path, or is already staged.
func (s *Set) AddFile(path string) bool {
	abs := s.resolve(path)

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		s.logger.Debug("not a stageable file", zap.String("path", path), zap.Error(err))
		return false
	}

	if s.matcher.IsIgnored(abs, false, s.baseDir) {
		s.logger.Debug("skipping ignored file", zap.String("path", path))
		return false
	}

	rel := ignore.Relative(abs, s.baseDir)
	if _, ok := s.index[rel]; ok {
		return false
	}

	s.files = append(s.files, rel)
	s.index[rel] = struct{}{}
	return true
}

// AddDirectory expands a directory through the ignore rules and stages every
// surviving file as one batch, skipping files already present. It returns
// the number of files added.
func (s *Set) AddDirectory(path string, recursive bool) (int, error) {
	abs := s.resolve(path)

	info, err := os.Stat(abs)
	if err != nil {
		return 0, fmt.Errorf("directory %q does not exist", path)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%q is not a directory", path)
	}

	files, err := s.expand(abs, recursive)
	if err != nil {
		return 0, fmt.Errorf("scanning %q: %w", path, err)
	}

	added := 0
	for _, f := range files {
		rel := ignore.Relative(f, s.baseDir)
		if _, ok := s.index[rel]; ok {
			continue
		}
		s.files = append(s.files, rel)
		s.index[rel] = struct{}{}
		added++
	}

	s.logger.Debug("staged directory",
		zap.String("path", path),
		zap.Int("added", added),
		zap.Int("skipped", len(files)-added))
	return added, nil
}

func (s *Set) expand(abs string, recursive bool) ([]string, error) {
	if s.parallel {
		return s.scanner.FilterFiles(abs, recursive)
	}

	paths, err := s.filter.FilterPaths(abs, recursive)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			s.logger.Warn("skipping unreadable entry", zap.String("path", p), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

// RemoveFile unstages a path. It returns false when the path was not staged.
func (s *Set) RemoveFile(path string) bool {
	rel := ignore.Relative(s.resolve(path), s.baseDir)
	if _, ok := s.index[rel]; !ok {
		return false
	}
	delete(s.index, rel)
	for i, f := range s.files {
		if f == rel {
			s.files = append(s.files[:i], s.files[i+1:]...)
			break
		}
	}
	return true
}

// Clear unstages everything.
func (s *Set) Clear() {
	s.files = nil
	s.index = make(map[string]struct{})
}

// Count returns the number of staged files.
func (s *Set) Count() int {
	return len(s.files)
}

// Files returns the staged relative paths in insertion order.
func (s *Set) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// BaseDir returns the session's fixed base directory.
func (s *Set) BaseDir() string {
	return s.baseDir
}

func (s *Set) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.baseDir, path)
}
