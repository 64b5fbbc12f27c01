package backend

import (
	"context"
	"strings"
)

// StubNotice is appended to every stub explanation so readers cannot
// mistake placeholder text for a generated one.
const StubNotice = "[This is a stub explanation. Configure a real AI service (OpenAI, Gemini, etc.) for actual ELI5 explanations.]"

// bodyPreviewLimit caps how much of a code body the stub echoes back.
const bodyPreviewLimit = 100

// Stub synthesizes deterministic placeholder explanations. It is always
// available and never fails, which makes it the terminal fallback tier.
type Stub struct{}

func (Stub) ExplainOne(_ context.Context, req Request) (string, error) {
	var sb strings.Builder
	sb.WriteString("This is a placeholder explanation for: ")
	sb.WriteString(req.Signature)
	if strings.TrimSpace(req.Body) != "" {
		sb.WriteString("\n\nCode body: ")
		sb.WriteString(truncate(req.Body, bodyPreviewLimit))
	}
	if strings.TrimSpace(req.CustomPrompt) != "" {
		sb.WriteString("\n\nCustom prompt: ")
		sb.WriteString(req.CustomPrompt)
	}
	sb.WriteString("\n\n")
	sb.WriteString(StubNotice)
	return sb.String(), nil
}

func (s Stub) ExplainBatch(ctx context.Context, reqs []Request) ([]string, error) {
	return SequentialBatch(ctx, s, reqs)
}

func (Stub) Available() bool { return true }

func (Stub) Name() string { return "Stub" }
