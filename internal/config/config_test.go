package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults so host settings cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ELI5_MARKER", "ELI5_EXTENSIONS", "ELI5_TIMEOUT",
		"ELI5_OUTPUT_FORMAT", "ELI5_OUTPUT_DIR",
		"ELI5_OPENAI_APIKEY", "ELI5_OPENAI_BASEURL", "ELI5_OPENAI_MODEL",
		"ELI5_OPENAI_MAXTOKENS", "ELI5_OPENAI_TEMPERATURE",
		"ELI5_GEMINI_APIKEY", "ELI5_GEMINI_MODEL",
		"ELI5_GEMINI_MAXTOKENS", "ELI5_GEMINI_TEMPERATURE",
		"ELI5_HTTP_ADDR",
		"OPENAI_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "@ExplainLikeImFive", cfg.Marker)
	require.Equal(t, []string{".java"}, cfg.Extensions)
	require.Equal(t, "markdown", cfg.Output.Format)
	require.Equal(t, "eli5-docs", cfg.Output.Dir)
	require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	require.Equal(t, "gpt-4.1-nano", cfg.OpenAI.Model)
	require.Equal(t, 500, cfg.OpenAI.MaxTokens)
	require.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)
	require.Empty(t, cfg.OpenAI.APIKey)
	require.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	require.Empty(t, cfg.Gemini.APIKey)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, ":8457", cfg.HTTP.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("ELI5_OPENAI_APIKEY", "sk-env")
	t.Setenv("ELI5_OPENAI_MAXTOKENS", "900")
	t.Setenv("ELI5_OUTPUT_FORMAT", "html")
	t.Setenv("ELI5_TIMEOUT", "5s")
	t.Setenv("ELI5_MARKER", "@Eli5")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	require.Equal(t, 900, cfg.OpenAI.MaxTokens)
	require.Equal(t, "html", cfg.Output.Format)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "@Eli5", cfg.Marker)
}

func TestLoad_BareCredentialFallbacks(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-bare")
	t.Setenv("GEMINI_API_KEY", "gm-bare")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sk-bare", cfg.OpenAI.APIKey)
	require.Equal(t, "gm-bare", cfg.Gemini.APIKey)
}

func TestLoad_PrefixedCredentialWinsOverBare(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("ELI5_OPENAI_APIKEY", "sk-prefixed")
	t.Setenv("OPENAI_API_KEY", "sk-bare")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "sk-prefixed", cfg.OpenAI.APIKey)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "eli5.yaml")
	contents := `marker: "@Explain"
extensions: [".go", ".java"]
output:
  format: docx
  dir: out
openai:
  apiKey: sk-file
  maxTokens: 800
timeout: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "@Explain", cfg.Marker)
	require.Equal(t, []string{".go", ".java"}, cfg.Extensions)
	require.Equal(t, "docx", cfg.Output.Format)
	require.Equal(t, "out", cfg.Output.Dir)
	require.Equal(t, "sk-file", cfg.OpenAI.APIKey)
	require.Equal(t, 800, cfg.OpenAI.MaxTokens)
	require.Equal(t, 45*time.Second, cfg.Timeout)

	// Keys absent from the file keep their defaults.
	require.Equal(t, "gpt-4.1-nano", cfg.OpenAI.Model)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	contents := "marker: \"@Doc\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eli5.yaml"), []byte(contents), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "@Doc", cfg.Marker)
}

func TestLoad_FileBeatsEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	contents := "openai:\n  model: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eli5.yaml"), []byte(contents), 0o644))
	t.Chdir(dir)
	t.Setenv("ELI5_OPENAI_MODEL", "from-env")
	t.Setenv("ELI5_OUTPUT_DIR", "env-docs")

	cfg, err := Load("")
	require.NoError(t, err)

	// The file wins the contested key; the environment still beats the
	// built-in default where the file is silent.
	require.Equal(t, "from-file", cfg.OpenAI.Model)
	require.Equal(t, "env-docs", cfg.Output.Dir)
}

func TestLoad_EmptyEnvTreatedAsUnset(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("ELI5_MARKER", "")
	t.Setenv("ELI5_OPENAI_APIKEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-bare")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "@ExplainLikeImFive", cfg.Marker)
	require.Equal(t, "sk-bare", cfg.OpenAI.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}
	clearEnv(t)
	t.Chdir(t.TempDir())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(c *Config) {}, ""},
		{"empty marker", func(c *Config) { c.Marker = "  " }, "marker"},
		{"no extensions", func(c *Config) { c.Extensions = nil }, "extension"},
		{"unknown format", func(c *Config) { c.Output.Format = "pdf" }, "output.format"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"zero max tokens", func(c *Config) { c.OpenAI.MaxTokens = 0 }, "maxTokens"},
		{"temperature too high", func(c *Config) { c.OpenAI.Temperature = 2.5 }, "temperature"},
		{"negative temperature", func(c *Config) { c.Gemini.Temperature = -0.1 }, "temperature"},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, "addr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
