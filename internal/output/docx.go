package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fumiama/go-docx"

	"eli5/internal/mark"
)

// DOCXWriter renders explanations as a Word document.
type DOCXWriter struct{}

func (w *DOCXWriter) Write(explanations []mark.Explanation, path string) error {
	if err := ensureParent(path); err != nil {
		return err
	}

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("ELI5 Documentation").Size("44").Bold()
	doc.AddParagraph().AddText("Generated on " + time.Now().Format("2006-01-02 15:04:05")).Size("20").Color("808080")
	doc.AddParagraph().AddText("This documentation explains the code in simple terms, as if explaining to a 5-year-old.")

	for _, exp := range explanations {
		doc.AddParagraph()
		doc.AddParagraph().AddText(fmt.Sprintf("%s: %s", exp.ElementKind, exp.ElementName)).Size("32").Bold()

		addCode(doc, exp.Signature)
		if strings.TrimSpace(exp.Body) != "" {
			addCode(doc, exp.Body)
		}

		if strings.TrimSpace(exp.CustomPrompt) != "" {
			p := doc.AddParagraph()
			p.AddText("Custom Context: ").Bold()
			p.AddText(exp.CustomPrompt)
		}

		doc.AddParagraph().AddText("Explanation:").Bold()
		doc.AddParagraph().AddText(exp.Text)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write docx: %w", err)
	}
	return f.Close()
}

func (w *DOCXWriter) Extension() string       { return ".docx" }
func (w *DOCXWriter) DefaultFilename() string { return "eli5.docx" }

// addCode writes a block of code one line per paragraph in a monospace
// font; runs cannot hold newlines.
func addCode(doc *docx.Docx, code string) {
	for _, line := range strings.Split(code, "\n") {
		doc.AddParagraph().AddText(line).Font("Consolas", "", "", "")
	}
}
