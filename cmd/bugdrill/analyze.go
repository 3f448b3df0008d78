package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/practicelabs/bugdrill/pkg/bugdrill"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/diff"
)

var (
	analyzeLang   string
	analyzeFixed  string
	analyzeAsJSON bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLang, "lang", "", "pin the language instead of detecting it (python|javascript|java|cpp|go)")
	analyzeCmd.Flags().StringVar(&analyzeFixed, "fixed", "", "path to a fixed version; prints a unified diff against it")
	analyzeCmd.Flags().BoolVar(&analyzeAsJSON, "json", false, "emit the analysis result as JSON")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the rulesets over a snippet file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading snippet: %w", err)
		}
		snippet := string(data)

		lang := bugdrill.Language(analyzeLang)
		if lang == "" {
			lang = bugdrill.Detect(snippet)
		}

		engine := bugdrill.NewEngine()
		result := engine.Analyze(snippet, lang)

		if analyzeAsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(args[0], lang, result)

		if analyzeFixed != "" {
			fixed, err := os.ReadFile(analyzeFixed)
			if err != nil {
				return fmt.Errorf("reading fixed snippet: %w", err)
			}
			if patch := diff.Unified(snippet, string(fixed)); patch != "" {
				fmt.Println()
				fmt.Print(patch)
			}
		}
		return nil
	},
}

func printResult(path string, lang bugdrill.Language, result bugdrill.AnalysisResult) {
	fmt.Printf("%s (%s)\n", path, lang)
	if !result.HasDefects {
		color.Green("  %s", result.SuccessMessage)
		return
	}
	color.Red("  %s", result.SummaryMessage)
	for _, d := range result.Defects {
		fmt.Printf("  %s %s\n", color.YellowString("line %d:", d.Line), d.Message)
	}
}
