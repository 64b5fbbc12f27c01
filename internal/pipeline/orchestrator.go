package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"eli5/internal/backend"
	"eli5/internal/mark"
)

// Orchestrator turns scanned elements into explanations. It degrades in
// tiers: one batch call for the whole set, per-element calls if the batch
// call itself fails, and stub text for any element that still has nothing.
// The output always has exactly one explanation per input element, in
// input order.
type Orchestrator struct {
	backend backend.Explainer
	stub    backend.Stub
	log     *slog.Logger
}

// NewOrchestrator creates an orchestrator around the chosen backend.
func NewOrchestrator(be backend.Explainer, stub backend.Stub, log *slog.Logger) *Orchestrator {
	return &Orchestrator{backend: be, stub: stub, log: log}
}

// Explain generates one explanation per element. It never returns an
// error: backend failures degrade to per-element calls and finally to
// stub text, so callers always get a complete result set.
func (o *Orchestrator) Explain(ctx context.Context, elements []mark.Element) []mark.Explanation {
	if len(elements) == 0 {
		return nil
	}

	o.log.Info("generating explanations", "backend", o.backend.Name(), "elements", len(elements))
	texts := o.explainTexts(ctx, buildRequests(elements))
	return Assemble(elements, texts)
}

// explainTexts runs the tiered calls and returns one text per request.
func (o *Orchestrator) explainTexts(ctx context.Context, reqs []backend.Request) []string {
	texts, err := o.backend.ExplainBatch(ctx, reqs)
	if err == nil {
		return normalize(texts, len(reqs))
	}
	o.log.Warn("batch explanation failed, retrying per element", "backend", o.backend.Name(), "error", err)

	out := make([]string, len(reqs))
	for i, req := range reqs {
		text, err := o.backend.ExplainOne(ctx, req)
		if err != nil {
			o.log.Warn("element explanation failed, using stub", "element", i+1, "signature", req.Signature, "error", err)
			text, _ = o.stub.ExplainOne(ctx, req)
		}
		out[i] = text
	}
	return out
}

// buildRequests projects elements onto backend requests, preserving order.
func buildRequests(elements []mark.Element) []backend.Request {
	reqs := make([]backend.Request, len(elements))
	for i, el := range elements {
		reqs[i] = backend.Request{
			Signature:    el.Signature,
			Body:         el.Body,
			CustomPrompt: el.CustomPrompt,
		}
	}
	return reqs
}

// normalize forces a successful batch result to cover exactly n elements:
// missing or blank entries become placeholders and extras are dropped.
func normalize(texts []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(texts) && strings.TrimSpace(texts[i]) != "" {
			out[i] = texts[i]
		} else {
			out[i] = backend.NoExplanation(i)
		}
	}
	return out
}

// Assemble pairs each element with its explanation text. texts shorter
// than elements is padded with placeholders; extra texts are ignored.
func Assemble(elements []mark.Element, texts []string) []mark.Explanation {
	out := make([]mark.Explanation, len(elements))
	for i, el := range elements {
		text := backend.NoExplanation(i)
		if i < len(texts) && texts[i] != "" {
			text = texts[i]
		}
		out[i] = mark.Explanation{
			ElementName:  el.Name,
			ElementKind:  el.Kind,
			Signature:    el.Signature,
			Body:         el.Body,
			Text:         text,
			CustomPrompt: el.CustomPrompt,
			File:         el.File,
		}
	}
	return out
}
