package backend

import (
	"context"
	"log/slog"
	"strings"

	"eli5/internal/config"
)

// Select picks the backend for a run: the first available remote in
// preference order OpenAI, Gemini, falling through to the stub. A remote
// whose construction fails is treated the same as an unavailable one.
// The stub is returned alongside the choice so the fallback tiers reuse
// a single instance. stats may be nil; when set it is attached to the
// chosen remote.
func Select(ctx context.Context, cfg config.Config, log *slog.Logger, stats *CallStats) (Explainer, Stub) {
	stub := Stub{}

	openai := NewOpenAI(cfg.OpenAI, cfg.Timeout, log)
	if openai.Available() {
		openai.Stats = stats
		return openai, stub
	}

	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		gemini, err := NewGemini(ctx, cfg.Gemini, cfg.Timeout, log)
		if err != nil {
			log.Warn("gemini backend unavailable", "error", err)
		} else if gemini.Available() {
			gemini.Stats = stats
			return gemini, stub
		}
	}

	return stub, stub
}
