package mark

// Kind classifies a marked declaration.
type Kind string

const (
	KindClass     Kind = "Class"
	KindInterface Kind = "Interface"
	KindEnum      Kind = "Enum"
	KindMethod    Kind = "Method"
	KindField     Kind = "Field"
)

// Element is a single marked declaration found by the scanner. Identity is
// positional (its index in the scan output); duplicate signatures are legal
// and stay distinct.
type Element struct {
	Name         string
	Kind         Kind
	Signature    string // Declaration line, trailing brace/semicolon stripped
	Body         string // Block contents, methods only (empty when absent or suppressed)
	CustomPrompt string // Extra context from the marker's prompt attribute
	File         string
	Line         int // 1-based line of the marker occurrence
}

// Explanation pairs an element with its resolved explanation text. The
// pipeline emits explanations in element order; that order is the document
// order.
type Explanation struct {
	ElementName  string
	ElementKind  Kind
	Signature    string
	Body         string
	Text         string
	CustomPrompt string
	File         string
}
