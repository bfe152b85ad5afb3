package format

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// FileType classifies a file's content for formatting purposes.
type FileType int

const (
	// TypeText is renderable file content.
	TypeText FileType = iota
	// TypeBinary is content that gets a placeholder instead.
	TypeBinary
	// TypeUnknown is content that could not be classified.
	TypeUnknown
)

// sampleSize is how many leading bytes the content heuristic inspects.
const sampleSize = 8192

// DetectFileType classifies a file as text or binary. The mime type of the
// extension is consulted first; when that is inconclusive the first 8KB of
// content is sampled and the file is considered binary when more than 10% of
// the sample is null or non-printable control bytes. An empty file is text.
func DetectFileType(path string) FileType {
	if mimeType := mime.TypeByExtension(filepath.Ext(path)); mimeType != "" {
		main, _, _ := strings.Cut(mimeType, "/")
		switch main {
		case "text":
			return TypeText
		case "audio", "image", "video", "application":
			return TypeBinary
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown
	}
	defer f.Close()

	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return TypeUnknown
	}
	sample = sample[:n]

	if len(sample) == 0 {
		return TypeText
	}

	suspicious := 0
	for _, c := range sample {
		if c == 0 || (c < 32 && c != '\t' && c != '\n' && c != '\r') {
			suspicious++
		}
	}
	if float64(suspicious)/float64(len(sample)) > 0.1 {
		return TypeBinary
	}
	return TypeText
}
