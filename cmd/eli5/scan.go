package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eli5/internal/mark"
	"eli5/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan [source-dir]",
	Short: "List code elements marked for explanation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		_, err := scanAndList(root)
		return err
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// scanAndList runs the scanner and prints the found elements. Shared by
// scan and generate.
func scanAndList(root string) ([]mark.Element, error) {
	cfg := appConfig
	fmt.Printf("Scanning for %s annotations in: %s\n", cfg.Marker, root)

	elements, err := scanner.New(cfg.Marker, cfg.Extensions, log).Scan(root)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		fmt.Println(yellow("No " + cfg.Marker + " annotations found."))
		return nil, nil
	}

	fmt.Println(green(fmt.Sprintf("Found %d annotated elements:", len(elements))))
	for _, el := range elements {
		fmt.Printf("  - %s: %s (%s:%d)\n", el.Kind, el.Name, el.File, el.Line)
	}
	return elements, nil
}
