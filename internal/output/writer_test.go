package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"markdown", ".md"},
		{"md", ".md"},
		{"Markdown", ".md"},
		{"html", ".html"},
		{"HTML", ".html"},
		{"docx", ".docx"},
	}
	for _, tt := range tests {
		w, err := ForFormat(tt.format)
		require.NoError(t, err, tt.format)
		require.Equal(t, tt.ext, w.Extension(), tt.format)
		require.True(t, strings.HasSuffix(w.DefaultFilename(), tt.ext), tt.format)
	}
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat("pdf")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported output format: pdf")
	require.Contains(t, err.Error(), "markdown, html, docx")
}

func TestHTMLWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	w := &HTMLWriter{}
	require.NoError(t, w.Write(sampleExplanations(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	require.Contains(t, page, "<!DOCTYPE html>")
	require.Contains(t, page, "<title>ELI5 Documentation</title>")
	require.Contains(t, page, "ELI5 Documentation</h1>")
	require.Contains(t, page, "<pre>")
	require.Contains(t, page, "public int add(int a, int b)")
}

func TestRenderPage_EscapesTitle(t *testing.T) {
	page, err := RenderPage(`Docs <&> "quoted"`, "# Hello")
	require.NoError(t, err)
	require.Contains(t, string(page), "Docs &lt;&amp;&gt; &#34;quoted&#34;")
	require.NotContains(t, string(page), "<title>Docs <&>")
}

func TestDOCXWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	w := &DOCXWriter{}
	require.NoError(t, w.Write(sampleExplanations(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// docx files are zip archives.
	require.Equal(t, "PK", string(data[:2]))
}
