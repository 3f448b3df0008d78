package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bugdrill",
	Short: "Rule-based debugging exercises",
	Long:  `bugdrill analyzes code snippets with injected defects and serves interactive debugging exercises.`,
}

func main() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
