// Package main provides the entry point for the Glints auto-apply CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoapply",
	Short: "Automated job application agent for Glints",
	Long:  "Autoapply walks Glints search results, classifies each vacancy with Gemini, generates a tailored CV PDF and submits the application, recording every submission in PostgreSQL so no posting is ever applied to twice.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
