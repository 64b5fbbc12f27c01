package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eli5/internal/mark"
)

// Writer renders a set of explanations into a document file.
type Writer interface {
	Write(explanations []mark.Explanation, path string) error

	// Extension is the filename extension for this format (e.g. ".md").
	Extension() string

	// DefaultFilename is used when the caller gives no output path.
	DefaultFilename() string
}

// Formats lists the supported output format names.
func Formats() []string {
	return []string{"markdown", "html", "docx"}
}

// ForFormat returns the writer for a format name.
func ForFormat(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	case "docx":
		return &DOCXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: %s)", format, strings.Join(Formats(), ", "))
	}
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
