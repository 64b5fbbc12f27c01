package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"eli5/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	appConfig config.Config
	log       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eli5",
	Short: "ELI5 documentation generator",
	Long: `eli5 scans source trees for @ExplainLikeImFive markers and generates
plain-language documentation for the marked code elements. Explanations
come from an OpenAI-compatible or Gemini backend when credentials are
configured, and from built-in stub text otherwise.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; real environment wins either way.
		_ = godotenv.Load()

		log = newLogger(verbose, logFormat)
		slog.SetDefault(log)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("eli5 version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: eli5.{yaml,toml,json} in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

func newLogger(verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
