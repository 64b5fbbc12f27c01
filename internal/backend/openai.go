package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eli5/internal/config"
)

// OpenAI calls an OpenAI-compatible chat completions endpoint. A batch
// is one call whose token budget and deadline scale with the element
// count; failed calls are reported, never retried.
type OpenAI struct {
	cfg        config.OpenAIConfig
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger

	// Stats, when set, records every HTTP call, failed ones included.
	Stats *CallStats
}

func NewOpenAI(cfg config.OpenAIConfig, timeout time.Duration, log *slog.Logger) *OpenAI {
	return &OpenAI{
		cfg:        cfg,
		timeout:    timeout,
		httpClient: &http.Client{},
		log:        log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *OpenAI) ExplainOne(ctx context.Context, req Request) (string, error) {
	return c.complete(ctx, SinglePrompt(req), c.cfg.MaxTokens, c.timeout)
}

func (c *OpenAI) ExplainBatch(ctx context.Context, reqs []Request) ([]string, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	prompt := BatchPrompt(reqs)
	c.log.Debug("sending batch request",
		"backend", c.Name(),
		"elements", len(reqs),
		"prompt_tokens_est", EstimateTokens(prompt),
	)

	// Token budget and deadline scale with the batch size.
	body, err := c.complete(ctx, prompt, c.cfg.MaxTokens*len(reqs), 2*c.timeout)
	if err != nil {
		return nil, err
	}
	return ParseBatchResponse(body, len(reqs)), nil
}

func (c *OpenAI) complete(ctx context.Context, prompt string, maxTokens int, timeout time.Duration) (text string, err error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	// One sample per network attempt, whatever stage it fails at.
	start := time.Now()
	defer func() {
		if c.Stats != nil {
			c.Stats.Record(time.Since(start), err)
		}
	}()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("openai error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.cfg.Model)
	}
	return apiResp.Choices[0].Message.Content, nil
}

func (c *OpenAI) Available() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *OpenAI) Name() string { return "OpenAI" }

// Close releases idle connections.
func (c *OpenAI) Close() {
	c.httpClient.CloseIdleConnections()
}
