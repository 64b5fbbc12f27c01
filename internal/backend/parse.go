package backend

import (
	"fmt"
	"strings"
)

// NoExplanation is the placeholder recorded for element i (0-based) when
// a batch response holds no usable segment at its position.
func NoExplanation(i int) string {
	return fmt.Sprintf("Explanation not generated for element %d", i+1)
}

// ParseBatchResponse reconciles a raw batch completion into exactly n
// per-element explanations. It is pure and total: segments are taken
// positionally after splitting on Delimiter, blank or missing positions
// get the NoExplanation placeholder, and segments beyond n are dropped.
// A malformed response can only degrade results, never fail the parse.
func ParseBatchResponse(body string, n int) []string {
	if n <= 0 {
		return nil
	}
	parts := strings.Split(body, Delimiter)
	out := make([]string, n)
	for i := range out {
		if i < len(parts) {
			if seg := strings.TrimSpace(parts[i]); seg != "" {
				out[i] = seg
				continue
			}
		}
		out[i] = NoExplanation(i)
	}
	return out
}
