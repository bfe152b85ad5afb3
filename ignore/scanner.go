package ignore

import (
	"io/fs"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker-pool size used when none is configured.
const DefaultWorkers = 4

// Scanner produces the same files-only result set as a sequential Filter,
// but spreads the per-file ignore checks across a bounded worker pool.
// Directory pruning stays sequential: an excluded subtree must be pruned
// before its files can be discovered at all.
type Scanner struct {
	matcher *Matcher
	workers int
	logger  *zap.Logger
}

// NewScanner creates a Scanner with the given pool size. A non-positive
// worker count falls back to DefaultWorkers.
func NewScanner(m *Matcher, workers int, logger *zap.Logger) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{matcher: m, workers: workers, logger: logger}
}

// FilterFiles returns the non-ignored files under rootDir. The result is the
// same set a sequential walk would produce, sorted for stable insertion
// order downstream. A failed check for one file is logged and excludes only
// that file.
func (s *Scanner) FilterFiles(rootDir string, recursive bool) ([]string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	candidates, err := s.discover(root, recursive)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, len(candidates))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, path := range candidates {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("ignore check failed",
						zap.String("path", path), zap.Any("reason", r))
				}
			}()
			if !s.matcher.IsIgnored(path, false, root) {
				keep[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(candidates))
	var result []string
	for i, path := range candidates {
		if !keep[i] {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}

// discover walks the tree sequentially, pruning ignored directories, and
// collects candidate files without evaluating them.
func (s *Scanner) discover(root string, recursive bool) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if s.matcher.IsIgnored(path, true, root) {
				return filepath.SkipDir
			}
			if !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
