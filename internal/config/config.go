package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable settings snapshot for one invocation. It is
// loaded once at startup and handed to components at construction.
type Config struct {
	// Marker is the token that selects a declaration for explanation.
	Marker string `mapstructure:"marker"`
	// Extensions lists the source file extensions the scanner reads.
	Extensions []string `mapstructure:"extensions"`

	Output OutputConfig `mapstructure:"output"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	HTTP   HTTPConfig   `mapstructure:"http"`

	// Timeout bounds a single backend call; batch calls get twice this.
	Timeout time.Duration `mapstructure:"timeout"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"apikey"`
	BaseURL     string  `mapstructure:"baseurl"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"maxtokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type GeminiConfig struct {
	APIKey      string  `mapstructure:"apikey"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"maxtokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load builds the configuration snapshot. Lookup order per key: the config
// file (an explicit path, or an eli5.{yaml,toml,json} in the working
// directory), then the environment (ELI5_ prefix, dots become underscores:
// openai.apiKey -> ELI5_OPENAI_APIKEY), then the built-in default.
// Credentials also honor the conventional OPENAI_API_KEY and GEMINI_API_KEY
// variables. Empty environment variables count as unset.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	applyEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("eli5")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("marker", "@ExplainLikeImFive")
	v.SetDefault("extensions", []string{".java"})

	v.SetDefault("output.format", "markdown")
	v.SetDefault("output.dir", "eli5-docs")

	v.SetDefault("openai.apikey", "")
	v.SetDefault("openai.baseurl", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4.1-nano")
	v.SetDefault("openai.maxtokens", 500)
	v.SetDefault("openai.temperature", 0.7)

	v.SetDefault("gemini.apikey", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.maxtokens", 500)
	v.SetDefault("gemini.temperature", 0.7)

	v.SetDefault("http.addr", ":8457")
	v.SetDefault("timeout", "30s")
}

// envAliases lists conventional variables consulted when the ELI5_-prefixed
// form is unset.
var envAliases = map[string][]string{
	"openai.apikey": {"OPENAI_API_KEY"},
	"gemini.apikey": {"GEMINI_API_KEY"},
}

// applyEnv overlays environment values onto the defaulted keys. They land as
// viper defaults, below any config file layer: the file wins a contested key.
// Must run after setDefaults, which declares the key set.
func applyEnv(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		names := append([]string{envName(key)}, envAliases[key]...)
		for _, name := range names {
			if val := os.Getenv(name); val != "" {
				v.SetDefault(key, val)
				break
			}
		}
	}
}

func envName(key string) string {
	return "ELI5_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Marker) == "" {
		return fmt.Errorf("marker must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one source extension is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Output.Format)) {
	case "markdown", "md", "html", "docx":
	default:
		return fmt.Errorf("output.format must be one of markdown, html, docx; got %q", c.Output.Format)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("openai.maxTokens must be positive, got %d", c.OpenAI.MaxTokens)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("openai.temperature must be in [0, 2], got %g", c.OpenAI.Temperature)
	}
	if c.Gemini.MaxTokens <= 0 {
		return fmt.Errorf("gemini.maxTokens must be positive, got %d", c.Gemini.MaxTokens)
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be in [0, 2], got %g", c.Gemini.Temperature)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	return nil
}
