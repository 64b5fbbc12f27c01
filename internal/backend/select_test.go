package backend

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eli5/internal/config"
)

func selectBackend(t *testing.T, cfg config.Config) Explainer {
	t.Helper()
	be, stub := Select(context.Background(), cfg, slog.New(slog.DiscardHandler), NewCallStats())
	require.NotNil(t, be)
	require.True(t, stub.Available())
	return be
}

func TestSelect_NoCredentialsFallsBackToStub(t *testing.T) {
	be := selectBackend(t, config.Config{Timeout: time.Second})
	require.Equal(t, "Stub", be.Name())
	require.True(t, be.Available())
}

func TestSelect_PrefersOpenAI(t *testing.T) {
	cfg := config.Config{Timeout: time.Second}
	cfg.OpenAI.APIKey = "sk-test"
	cfg.Gemini.APIKey = "gm-test"
	be := selectBackend(t, cfg)
	require.Equal(t, "OpenAI", be.Name())

	cli, ok := be.(*OpenAI)
	require.True(t, ok)
	require.NotNil(t, cli.Stats)
}

func TestSelect_GeminiWhenOnlyGeminiConfigured(t *testing.T) {
	cfg := config.Config{Timeout: time.Second}
	cfg.Gemini.APIKey = "gm-test"
	be := selectBackend(t, cfg)
	require.Equal(t, "Gemini", be.Name())
}

func TestSelect_BlankKeysIgnored(t *testing.T) {
	cfg := config.Config{Timeout: time.Second}
	cfg.OpenAI.APIKey = "  "
	be := selectBackend(t, cfg)
	require.Equal(t, "Stub", be.Name())
}
