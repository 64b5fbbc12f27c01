package backend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"eli5/internal/config"
)

// Gemini generates explanations through the official genai SDK. Batch
// semantics mirror the OpenAI variant: one call, output-token budget and
// deadline scaled by the element count, no retry.
type Gemini struct {
	cfg     config.GeminiConfig
	timeout time.Duration
	cli     *genai.Client
	log     *slog.Logger

	// Stats, when set, records every SDK call, failed ones included.
	Stats *CallStats
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration, log *slog.Logger) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{cfg: cfg, timeout: timeout, cli: cli, log: log}, nil
}

func (g *Gemini) ExplainOne(ctx context.Context, req Request) (string, error) {
	return g.generate(ctx, SinglePrompt(req), g.cfg.MaxTokens, g.timeout)
}

func (g *Gemini) ExplainBatch(ctx context.Context, reqs []Request) ([]string, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	prompt := BatchPrompt(reqs)
	g.log.Debug("sending batch request",
		"backend", g.Name(),
		"elements", len(reqs),
		"prompt_tokens_est", EstimateTokens(prompt),
	)

	body, err := g.generate(ctx, prompt, g.cfg.MaxTokens*len(reqs), 2*g.timeout)
	if err != nil {
		return nil, err
	}
	return ParseBatchResponse(body, len(reqs)), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string, maxTokens int, timeout time.Duration) (text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// One sample per SDK attempt, whatever stage it fails at.
	start := time.Now()
	defer func() {
		if g.Stats != nil {
			g.Stats.Record(time.Since(start), err)
		}
	}()

	resp, err := g.cli.Models.GenerateContent(ctx, g.cfg.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
			MaxOutputTokens: int32(maxTokens),
		},
	)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", g.cfg.Model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *Gemini) Available() bool {
	return strings.TrimSpace(g.cfg.APIKey) != ""
}

func (g *Gemini) Name() string { return "Gemini" }
