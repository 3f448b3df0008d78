package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/practicelabs/bugdrill/pkg/bugdrill/exercises"
)

var exercisesDir string

func init() {
	exercisesCmd.Flags().StringVar(&exercisesDir, "dir", "", "directory of extra exercise YAML files")
}

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := exercises.NewCatalog()
		if exercisesDir != "" {
			if err := catalog.LoadDir(exercisesDir); err != nil {
				return err
			}
		}

		for _, ex := range catalog.List() {
			fmt.Printf("%s  %s %s\n", color.CyanString("%-24s", ex.ID), ex.Title, color.New(color.Faint).Sprintf("(%s)", ex.Language))
		}
		return nil
	},
}
