package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"eli5/internal/backend"
	"eli5/internal/output"
	"eli5/internal/pipeline"
)

var (
	generateOutput string
	generateFormat string
	generateDryRun bool

	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

var generateCmd = &cobra.Command{
	Use:   "generate [source-dir]",
	Short: "Generate ELI5 documentation for marked code",
	Long: `generate scans a source directory for marker annotations, asks the
configured backend to explain every marked element, and writes the
result as a single document.

Examples:
  eli5 generate src/main/java
  eli5 generate --format html --output docs/eli5.html .
  eli5 generate --dry-run src`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: <output.dir>/<format default name>)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "output format: markdown, html, or docx (default from config)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "list marked elements without calling a backend or writing output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	cfg := appConfig

	format := cfg.Output.Format
	if generateFormat != "" {
		format = generateFormat
	}
	writer, err := output.ForFormat(format)
	if err != nil {
		return err
	}

	outPath := generateOutput
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, writer.DefaultFilename())
	}

	elements, err := scanAndList(root)
	if err != nil || len(elements) == 0 {
		return err
	}

	if generateDryRun {
		return nil
	}

	ctx := cmd.Context()
	stats := backend.NewCallStats()
	be, stub := backend.Select(ctx, cfg, log, stats)
	if c, ok := be.(*backend.OpenAI); ok {
		defer c.Close()
	}
	if _, isStub := be.(backend.Stub); isStub {
		fmt.Println(yellow("No AI credentials configured, using stub explanations."))
	} else {
		fmt.Println(cyan("Using " + be.Name() + " service"))
	}

	fmt.Println("Generating explanations...")
	explanations := pipeline.NewOrchestrator(be, stub, log).Explain(ctx, elements)

	if snap := stats.Snapshot(); verbose && snap.Count > 0 {
		fmt.Printf("Backend calls: %d (%d failed), avg %.0f ms, slowest %d ms\n",
			snap.Count, snap.Failures, snap.AvgMs, snap.MaxMs)
	}

	fmt.Printf("Writing documentation to: %s\n", outPath)
	if err := writer.Write(explanations, outPath); err != nil {
		return fmt.Errorf("write documentation: %w", err)
	}
	fmt.Println(green("Documentation generated successfully!"))
	return nil
}
