package ignore

import (
	"bufio"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"
)

// Matcher decides whether paths are ignored according to an ordered set of
// gitignore-style rules. The pattern lists are built once at construction and
// never mutated, so a Matcher is safe for concurrent use.
type Matcher struct {
	excludes []*Pattern
	includes []*Pattern // negation patterns
}

// NewMatcher builds a Matcher from gitignore-style text. Blank lines and
// # comments are skipped; \# and \! escape the special first characters.
func NewMatcher(content string) *Matcher {
	m := &Matcher{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		m.addLine(scanner.Text())
	}
	return m
}

// NewMatcherFromFile builds a Matcher from an ignore file on disk.
func NewMatcherFromFile(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Matcher{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m.addLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matcher) addLine(line string) {
	line = trimTrailingWhitespace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	p := Compile(line)
	if p.Negated {
		m.includes = append(m.includes, p)
	} else {
		m.excludes = append(m.excludes, p)
	}
}

// IsIgnored reports whether path should be ignored. The path is normalized
// to a /-separated string relative to baseDir; the base itself is never
// ignored. Directory paths are probed with a trailing slash.
func (m *Matcher) IsIgnored(path string, isDir bool, baseDir string) bool {
	return m.ignoredRel(Relative(path, baseDir), isDir)
}

func (m *Matcher) ignoredRel(rel string, isDir bool) bool {
	if rel == "" {
		return false
	}

	probe := rel
	if isDir && !strings.HasSuffix(probe, "/") {
		probe += "/"
	}

	matched := false
	for _, p := range m.excludes {
		if p.Match(probe) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	// First matching negation wins, but a negation cannot resurrect a path
	// buried inside an excluded directory.
	for _, p := range m.includes {
		if !p.Match(probe) {
			continue
		}
		parent := pathpkg.Dir(strings.TrimSuffix(rel, "/"))
		if parent == "." || parent == "/" {
			return false
		}
		return m.ignoredRel(parent, true)
	}

	return true
}

// Relative normalizes path to a /-separated string relative to baseDir.
// The base directory itself maps to the empty string.
func Relative(path, baseDir string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}
	return rel
}
