package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/suggestions"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Print career suggestions",
	RunE:  runSuggestions,
}

var suggestionsSelect string

func init() {
	suggestionsCmd.Flags().StringVar(&suggestionsSelect, "select", "", "Mark the suggestion with this id")
	rootCmd.AddCommand(suggestionsCmd)
}

func runSuggestions(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	view := suggestions.New(cat.Suggestions())

	if suggestionsSelect != "" {
		if _, ok := view.Get(suggestionsSelect); !ok {
			return fmt.Errorf("unknown suggestion %q", suggestionsSelect)
		}
		view.Toggle(suggestionsSelect)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSuggestions(view.List(), view.Selected())
	return nil
}
