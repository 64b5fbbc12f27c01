package backend

import (
	"fmt"
	"strings"
)

// Delimiter separates per-element answers in a batch response. The batch
// prompt instructs the model to emit it verbatim between answers, and
// ParseBatchResponse splits on it.
const Delimiter = "---EXPLANATION---"

// SinglePrompt builds the prompt for one element.
func SinglePrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("Explain this code like I'm 5 years old:\n\nCode: ")
	sb.WriteString(req.Signature)
	writeRequestDetails(&sb, req)
	sb.WriteString("\n\nPlease provide a simple, easy-to-understand explanation that a 5-year-old could grasp.")
	return sb.String()
}

// BatchPrompt frames every request into one prompt: a numbered block per
// element followed by an instruction naming the response delimiter.
func BatchPrompt(reqs []Request) string {
	var sb strings.Builder
	sb.WriteString("Explain these code elements like I'm 5 years old. For each element, provide a simple, easy-to-understand explanation:\n\n")
	for i, req := range reqs {
		fmt.Fprintf(&sb, "--- Element %d ---\n", i+1)
		sb.WriteString("Code: ")
		sb.WriteString(req.Signature)
		writeRequestDetails(&sb, req)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "Please provide explanations for each element, separated by '%s' markers.", Delimiter)
	return sb.String()
}

func writeRequestDetails(sb *strings.Builder, req Request) {
	if strings.TrimSpace(req.Body) != "" {
		sb.WriteString("\n\nImplementation:\n")
		sb.WriteString(req.Body)
	}
	if strings.TrimSpace(req.CustomPrompt) != "" {
		sb.WriteString("\n\nAdditional context: ")
		sb.WriteString(req.CustomPrompt)
	}
}

// EstimateTokens roughly sizes a prompt at ~1.33 tokens per word. Exact
// tokenization is not required; this only feeds debug logging.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
