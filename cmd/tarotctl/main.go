// Package main implements tarotctl, the operator tool for checking the
// reading content before a deploy.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tarotctl",
	Short: "Operator tool for the daily tarot service",
	Long: `tarotctl inspects the content the daily tarot service runs on: the
concatenated-JSON meanings document and the card artwork directory.`,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
