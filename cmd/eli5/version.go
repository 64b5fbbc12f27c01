package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the eli5 version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("eli5 version " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
