package activity

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/career-mentor/internal/types"
)

// ExportFilename is the download name for exported logs.
const ExportFilename = "admin_logs.csv"

// ExportContentType is the MIME type of the export.
const ExportContentType = "text/csv; charset=utf-8"

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

var exportHeader = [...]string{"User", "Action", "Timestamp", "Details", "Status"}

// EncodeCSV renders entries as CSV text: a fixed header row followed by one
// row per entry.
func EncodeCSV(entries []types.ActivityLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV streams the CSV export of entries to w.
//
// Data fields are always quoted and embedded quotes are doubled, so the
// output parses with encoding/csv regardless of commas, quotes or newlines
// in free text. The header row is left bare.
func WriteCSV(w io.Writer, entries []types.ActivityLogEntry) error {
	if _, err := io.WriteString(w, strings.Join(exportHeader[:], ",")+"\n"); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	var line strings.Builder
	for _, entry := range entries {
		line.Reset()
		fields := [...]string{
			entry.Actor,
			entry.Action,
			FormatTimestamp(entry.Timestamp),
			entry.Details,
			string(entry.Status),
		}
		for i, field := range fields {
			if i > 0 {
				line.WriteByte(',')
			}
			writeQuoted(&line, field)
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", entry.ID, err)
		}
	}
	return nil
}

// FormatTimestamp renders t the way the export does.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func writeQuoted(sb *strings.Builder, field string) {
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
	sb.WriteByte('"')
}
