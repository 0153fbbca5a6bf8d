package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Задается при сборке: -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appName, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
