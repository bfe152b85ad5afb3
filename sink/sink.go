// Package sink delivers a formatted text block to its destination. The
// staging core is indifferent to which sink is in use.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Sink accepts one formatted text block.
type Sink interface {
	Write(content string) error
}

// Clipboard copies the block to the system clipboard.
type Clipboard struct{}

func (Clipboard) Write(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// File writes the block to a file, replacing any existing content.
type File struct {
	Path string
}

func (f File) Write(content string) error {
	if err := os.WriteFile(f.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}

// Writer prints the block, followed by a newline, to an io.Writer.
type Writer struct {
	W io.Writer
}

func (w Writer) Write(content string) error {
	_, err := fmt.Fprintln(w.W, content)
	return err
}
