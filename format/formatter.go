package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCacheSize bounds how many file contents stay cached.
	DefaultCacheSize = 50
	// DefaultChunkSize is the read-buffer size for file content.
	DefaultChunkSize = 4096

	binaryPlaceholder  = "[BINARY FILE - CONTENT NOT SHOWN]"
	unknownPlaceholder = "[UNKNOWN FILE TYPE - CONTENT NOT SHOWN]"
)

// Formatter renders staged files into one delimited text block. Text content
// is fetched through a bounded LRU cache keyed by path; content is assumed
// stable for the session, so entries are only dropped by eviction or an
// explicit ClearCache.
type Formatter struct {
	baseDir   string
	chunkSize int
	cache     *lru.Cache[string, string]
}

// NewFormatter creates a Formatter that resolves relative paths against
// baseDir. Non-positive sizes fall back to the defaults.
func NewFormatter(baseDir string, cacheSize, chunkSize int) *Formatter {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		cache, _ = lru.New[string, string](DefaultCacheSize)
	}
	return &Formatter{baseDir: baseDir, chunkSize: chunkSize, cache: cache}
}

// FormatFiles renders each path as a labeled block: the relative path, a
// blank line, then fenced content or a placeholder. A file that cannot be
// read becomes an inline error block; the remaining files still render.
func (f *Formatter) FormatFiles(paths []string) string {
	var b strings.Builder

	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(f.baseDir, filepath.FromSlash(p))
		}
		label := filepath.ToSlash(p)

		switch DetectFileType(abs) {
		case TypeBinary:
			fmt.Fprintf(&b, "%s\n\n```\n%s\n```\n\n", label, binaryPlaceholder)
			continue
		case TypeUnknown:
			fmt.Fprintf(&b, "%s\n\n```\n%s\n```\n\n", label, unknownPlaceholder)
			continue
		}

		content, ok := f.cache.Get(abs)
		if !ok {
			read, err := f.readFile(abs)
			if err != nil {
				fmt.Fprintf(&b, "Error reading %s: %s\n\n", label, err)
				continue
			}
			f.cache.Add(abs, read)
			content = read
		}

		fmt.Fprintf(&b, "%s\n\n```\n%s\n```\n\n", label, content)
	}

	return strings.TrimRight(b.String(), " \t\n")
}

// ClearCache drops all cached file contents.
func (f *Formatter) ClearCache() {
	f.cache.Purge()
}

// readFile reads a text file through a bounded buffer. Invalid UTF-8 byte
// sequences are replaced rather than propagated.
func (f *Formatter) readFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var b strings.Builder
	r := bufio.NewReaderSize(file, f.chunkSize)
	buf := make([]byte, f.chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}

	return strings.ToValidUTF8(b.String(), "�"), nil
}
