package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"eli5/internal/mark"
)

// lookahead is how many lines past a marker the scanner searches for a
// declaration before dropping the marker.
const lookahead = 4

// declPrefixes gates the declaration search: a candidate line must start
// with one of these after trimming.
var declPrefixes = []string{"public", "private", "protected", "class", "interface"}

// Scanner discovers marked declarations in a source tree. Discovery is
// heuristic line scanning, not parsing: a marker with no recognizable
// declaration within the lookahead window is dropped silently, and
// unreadable files are skipped without aborting the walk.
type Scanner struct {
	marker string
	exts   map[string]bool
	log    *slog.Logger
}

// New builds a scanner for the given marker token and file extensions.
// Extensions are matched case-insensitively and may be given with or
// without the leading dot.
func New(marker string, extensions []string, log *slog.Logger) *Scanner {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}
	return &Scanner{marker: marker, exts: exts, log: log}
}

// Scan walks root and returns every marked element in file-then-line
// order. The only hard failure is a root that does not exist or is not
// a directory; per-file read errors are logged and isolated.
func (s *Scanner) Scan(root string) ([]mark.Element, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path %s is not a directory", root)
	}

	var elements []mark.Element
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !s.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		found, err := s.scanFile(path)
		if err != nil {
			s.log.Warn("skipping file", "path", path, "error", err)
			return nil
		}
		elements = append(elements, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return elements, nil
}

func (s *Scanner) scanFile(path string) ([]mark.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(data)
	if !strings.Contains(content, s.marker) {
		return nil, nil
	}

	lines := strings.Split(content, "\n")
	var elements []mark.Element
	for i, line := range lines {
		idx := strings.Index(line, s.marker)
		if idx < 0 {
			continue
		}
		attrs := parseAttrs(line[idx+len(s.marker):])

		decl, declIdx := findDeclaration(lines, i)
		if declIdx < 0 {
			s.log.Debug("marker without declaration in window", "file", path, "line", i+1)
			continue
		}

		kind := classify(decl)
		el := mark.Element{
			Name:         extractName(decl, kind),
			Kind:         kind,
			Signature:    signature(decl),
			CustomPrompt: attrs.prompt,
			File:         path,
			Line:         i + 1,
		}
		if kind == mark.KindMethod && attrs.includeBody {
			el.Body = extractBody(lines, declIdx)
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// findDeclaration looks at most lookahead lines past the marker for the
// first line starting with a declaration keyword. It returns the trimmed
// line and its index, or -1 when the window holds none.
func findDeclaration(lines []string, markerIdx int) (string, int) {
	for j := markerIdx + 1; j < len(lines) && j <= markerIdx+lookahead; j++ {
		trimmed := strings.TrimSpace(lines[j])
		for _, p := range declPrefixes {
			if strings.HasPrefix(trimmed, p) {
				return trimmed, j
			}
		}
	}
	return "", -1
}

func classify(decl string) mark.Kind {
	tokens := strings.Fields(decl)
	has := func(keyword string) bool {
		for _, tok := range tokens {
			if tok == keyword {
				return true
			}
		}
		return false
	}
	switch {
	case has("class"):
		return mark.KindClass
	case has("interface"):
		return mark.KindInterface
	case has("enum"):
		return mark.KindEnum
	case strings.Contains(decl, "("):
		return mark.KindMethod
	default:
		return mark.KindField
	}
}

// nameCut strips generic parameters and block openers off a type name,
// e.g. "Cache<K,V>{" -> "Cache".
var nameCut = regexp.MustCompile(`[<{(]`)

func extractName(decl string, kind mark.Kind) string {
	switch kind {
	case mark.KindClass, mark.KindInterface, mark.KindEnum:
		keyword := typeKeyword(kind)
		tokens := strings.Fields(decl)
		for i, tok := range tokens {
			if tok == keyword && i+1 < len(tokens) {
				return nameCut.Split(tokens[i+1], 2)[0]
			}
		}
	case mark.KindMethod:
		head := decl[:strings.Index(decl, "(")]
		if fields := strings.Fields(head); len(fields) > 0 {
			return fields[len(fields)-1]
		}
	case mark.KindField:
		head := decl
		if eq := strings.Index(decl, "="); eq >= 0 {
			head = decl[:eq]
		}
		head = strings.TrimSuffix(strings.TrimSpace(head), ";")
		if fields := strings.Fields(head); len(fields) > 0 {
			return fields[len(fields)-1]
		}
	}
	return "Unknown"
}

func typeKeyword(kind mark.Kind) string {
	switch kind {
	case mark.KindInterface:
		return "interface"
	case mark.KindEnum:
		return "enum"
	default:
		return "class"
	}
}

// signature is the trimmed declaration line with any trailing block
// opener or statement terminator removed.
func signature(decl string) string {
	decl = strings.TrimSpace(decl)
	decl = strings.TrimSuffix(decl, "{")
	decl = strings.TrimSuffix(decl, ";")
	return strings.TrimSpace(decl)
}

type markerAttrs struct {
	prompt      string
	includeBody bool
}

var (
	promptAttrRe  = regexp.MustCompile(`prompt\s*=\s*"((?:[^"\\]|\\.)*)"`)
	includeBodyRe = regexp.MustCompile(`includeBody\s*=\s*(true|false)`)
	unescapeRe    = regexp.MustCompile(`\\(.)`)
)

// parseAttrs reads the optional attribute list following the marker,
// e.g. (prompt = "focus on the math", includeBody = false). Anything
// unparsable keeps the defaults: no prompt, body included.
func parseAttrs(rest string) markerAttrs {
	attrs := markerAttrs{includeBody: true}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") {
		return attrs
	}
	if m := promptAttrRe.FindStringSubmatch(rest); m != nil {
		attrs.prompt = unescapeRe.ReplaceAllString(m[1], "$1")
	}
	if m := includeBodyRe.FindStringSubmatch(rest); m != nil {
		attrs.includeBody = m[1] == "true"
	}
	return attrs
}

// extractBody returns the literal statements inside the block opened by
// the declaration at declIdx, dedented and trimmed of blank edge lines.
// A declaration that ends in ';' before any block opens (abstract or
// interface methods) has no body. Brace matching is textual; braces
// inside string literals can fool it, which the heuristic accepts.
func extractBody(lines []string, declIdx int) string {
	rest := strings.Join(lines[declIdx:], "\n")

	open := strings.Index(rest, "{")
	if open < 0 {
		return ""
	}
	if semi := strings.Index(rest, ";"); semi >= 0 && semi < open {
		return ""
	}

	depth := 0
	for i := open; i < len(rest); i++ {
		switch rest[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return dedent(rest[open+1 : i])
			}
		}
	}
	return ""
}

// dedent drops blank edge lines and strips the common leading whitespace
// from the remainder.
func dedent(block string) string {
	lines := strings.Split(block, "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	lines = lines[start:end]
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			out[i] = line[indent:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(out, "\n")
}
