package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "proofread",
	Short: "Proofread Indonesian audit documents with an LLM",
	Long: `Proofread checks PDF and DOCX documents against KBBI/PUEBI language
rules using an LLM and writes revised, highlighted and report artifacts.

Configuration comes from REDLINE_* environment variables; at minimum
REDLINE_LLM_PRIMARY_API_KEY must be set.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
}
