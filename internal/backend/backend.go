package backend

import (
	"context"
	"fmt"
)

// Request carries one element's text to a backend. It is a read-only
// projection of a scanned element; Body and CustomPrompt may be empty.
type Request struct {
	Signature    string
	Body         string
	CustomPrompt string
}

// Explainer is the pluggable explanation capability. Implementations:
// OpenAI and Gemini (remote), Stub (local, never fails).
type Explainer interface {
	// ExplainOne generates an explanation for a single request. Remote
	// variants fail with a TransportError on network faults, timeouts,
	// and non-2xx responses; there is no retry.
	ExplainOne(ctx context.Context, req Request) (string, error)

	// ExplainBatch generates explanations for all requests in one
	// backend invocation. On a nil error the returned slice has exactly
	// one entry per request, in request order.
	ExplainBatch(ctx context.Context, reqs []Request) ([]string, error)

	// Available reports whether the backend can be used at all. Remote
	// variants are available iff a credential is configured; the check
	// never does I/O.
	Available() bool

	Name() string
}

// SequentialBatch implements ExplainBatch as one ExplainOne call per
// request, in order. Per-item failures become inline error strings so
// the length contract holds without aborting the rest.
func SequentialBatch(ctx context.Context, e Explainer, reqs []Request) ([]string, error) {
	out := make([]string, len(reqs))
	for i, req := range reqs {
		text, err := e.ExplainOne(ctx, req)
		if err != nil {
			out[i] = "Error generating explanation: " + err.Error()
			continue
		}
		out[i] = text
	}
	return out, nil
}

// TransportError reports a failed remote call: a transport-level fault
// or a non-2xx response. Status is zero when no response was received.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend status %d: %s", e.Status, truncate(e.Body, 200))
	}
	return fmt.Sprintf("backend call failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
