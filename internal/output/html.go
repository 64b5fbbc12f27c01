package output

import (
	"bytes"
	"fmt"
	"html"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"eli5/internal/mark"
)

// HTMLWriter renders explanations as a standalone HTML page by converting
// the Markdown document with goldmark.
type HTMLWriter struct{}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (w *HTMLWriter) Write(explanations []mark.Explanation, path string) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	page, err := RenderPage("ELI5 Documentation", BuildMarkdown(explanations))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (w *HTMLWriter) Extension() string       { return ".html" }
func (w *HTMLWriter) DefaultFilename() string { return "eli5.html" }

// RenderPage converts Markdown source into a full HTML page. The preview
// server uses it to serve generated documents.
func RenderPage(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, pageShell, html.EscapeString(title), body.String())
	return page.Bytes(), nil
}

const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.6; color: #1f2328; }
h1, h2 { border-bottom: 1px solid #d1d9e0; padding-bottom: .3em; }
pre { background: #f6f8fa; padding: 1em; border-radius: 6px; overflow-x: auto; }
code { font-family: ui-monospace, "SF Mono", Consolas, monospace; font-size: .9em; }
hr { border: 0; border-top: 1px solid #d1d9e0; margin: 2em 0; }
a { color: #0969da; text-decoration: none; }
a:hover { text-decoration: underline; }
</style>
</head>
<body>
%s
</body>
</html>
`
