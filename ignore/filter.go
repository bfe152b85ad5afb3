package ignore

import (
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// Filter walks a directory tree and returns the paths that survive the
// matcher's rules. Ignored directories are pruned from the traversal
// entirely, so nothing beneath them is ever read.
type Filter struct {
	matcher *Matcher
	logger  *zap.Logger
}

// NewFilter creates a Filter over the given matcher.
func NewFilter(m *Matcher, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{matcher: m, logger: logger}
}

// FilterPaths returns the absolute paths under rootDir that are not ignored.
// When recursive is true the result holds every surviving file at any depth
// plus every surviving subdirectory; when false only the root's immediate
// children are considered and subdirectories are neither entered nor added.
// Unreadable entries are skipped and the walk continues.
func (f *Filter) FilterPaths(rootDir string, recursive bool) ([]string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	var result []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			f.logger.Warn("skipping unreadable entry",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			if f.matcher.IsIgnored(path, true, root) {
				return filepath.SkipDir
			}
			if !recursive {
				return filepath.SkipDir
			}
			result = append(result, path)
			return nil
		}

		if !f.matcher.IsIgnored(path, false, root) {
			result = append(result, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return result, nil
}
