package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"eli5/internal/mark"
)

// MarkdownWriter renders explanations as a single Markdown document:
// a header, a table of contents, and one section per element.
type MarkdownWriter struct{}

var anchorRe = regexp.MustCompile(`[^a-z0-9]`)

func (w *MarkdownWriter) Write(explanations []mark.Explanation, path string) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(BuildMarkdown(explanations)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *MarkdownWriter) Extension() string       { return ".md" }
func (w *MarkdownWriter) DefaultFilename() string { return "eli5.md" }

// BuildMarkdown renders the full document text. It is shared by the
// Markdown and HTML writers.
func BuildMarkdown(explanations []mark.Explanation) string {
	var b strings.Builder
	b.WriteString("# ELI5 Documentation\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("This documentation explains the code in simple terms, as if explaining to a 5-year-old.\n\n")

	if len(explanations) > 0 {
		b.WriteString("## Table of Contents\n\n")
		for _, exp := range explanations {
			fmt.Fprintf(&b, "- [%s](#%s)\n", exp.ElementName, anchor(exp.ElementName))
		}
		b.WriteString("\n")
	}

	for _, exp := range explanations {
		writeSection(&b, exp)
	}
	return b.String()
}

func writeSection(b *strings.Builder, exp mark.Explanation) {
	fmt.Fprintf(b, "## %s: %s\n\n", exp.ElementKind, exp.ElementName)

	fmt.Fprintf(b, "**Code:**\n```%s\n%s", fenceLang(exp.File), exp.Signature)
	if strings.TrimSpace(exp.Body) != "" {
		b.WriteString("\n")
		b.WriteString(exp.Body)
	}
	b.WriteString("\n```\n\n")

	if strings.TrimSpace(exp.CustomPrompt) != "" {
		fmt.Fprintf(b, "**Custom Context:** %s\n\n", exp.CustomPrompt)
	}

	fmt.Fprintf(b, "**Explanation:**\n%s\n\n---\n\n", exp.Text)
}

// anchor builds the TOC link target for an element name.
func anchor(name string) string {
	return anchorRe.ReplaceAllString(strings.ToLower(name), "-")
}

// fenceLang picks the code-fence language tag from the source file
// extension, defaulting to java.
func fenceLang(file string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	if ext == "" {
		return "java"
	}
	return ext
}
