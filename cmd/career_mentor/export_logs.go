package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/activity"
	"github.com/jonathan/career-mentor/internal/admin"
)

var exportLogsCmd = &cobra.Command{
	Use:   "export-logs",
	Short: "Export activity logs as CSV",
	Long:  "Writes the activity log as CSV. The whole log is exported unless --filtered is set, in which case --query and --status narrow it.",
	RunE:  runExportLogs,
}

var (
	exportOutFile  string
	exportQuery    string
	exportStatus   string
	exportFiltered bool
)

func init() {
	exportLogsCmd.Flags().StringVarP(&exportOutFile, "out", "o", activity.ExportFilename, "Output CSV path, or - for stdout")
	exportLogsCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Text filter, applied with --filtered")
	exportLogsCmd.Flags().StringVarP(&exportStatus, "status", "s", "all", "Status filter, applied with --filtered")
	exportLogsCmd.Flags().BoolVar(&exportFiltered, "filtered", false, "Export only the entries matching the filter")
	rootCmd.AddCommand(exportLogsCmd)
}

func runExportLogs(cmd *cobra.Command, _ []string) error {
	view, err := newAdminView(exportQuery, exportStatus)
	if err != nil {
		return err
	}

	scope := admin.ScopeAll
	count := view.Total()
	if exportFiltered {
		scope = admin.ScopeFiltered
		count = len(view.Visible())
	}

	if exportOutFile == "-" {
		return view.WriteExport(cmd.OutOrStdout(), scope)
	}

	data, err := view.Export(scope)
	if err != nil {
		return fmt.Errorf("failed to export logs: %w", err)
	}

	if dir := filepath.Dir(exportOutFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries (%s)\n", count, scope)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", exportOutFile)
	return nil
}
