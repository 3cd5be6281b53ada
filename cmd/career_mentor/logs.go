package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/admin"
	"github.com/jonathan/career-mentor/internal/catalog"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/types"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the admin dashboard and filtered activity logs",
	Long:  "Prints the dashboard counters followed by the activity log entries matching --query and --status.",
	RunE:  runLogs,
}

var (
	logsQuery  string
	logsStatus string
)

func init() {
	logsCmd.Flags().StringVarP(&logsQuery, "query", "q", "", "Case-insensitive text to match against user, action and details")
	logsCmd.Flags().StringVarP(&logsStatus, "status", "s", "all", "Status filter: all, success, error or pending")
	rootCmd.AddCommand(logsCmd)
}

// newAdminView builds a dashboard view from the embedded dataset and the
// given filter.
func newAdminView(query, status string) (*admin.View, error) {
	sel, err := types.ParseStatusSelector(status)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	view := admin.New(cat.Logs(), cat.Stats())
	view.SetQuery(query)
	view.SetStatus(sel)
	return view, nil
}

func runLogs(cmd *cobra.Command, _ []string) error {
	view, err := newAdminView(logsQuery, logsStatus)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintStats(view.Stats())
	printer.PrintLogs(view.Visible(), view.Total())
	return nil
}
