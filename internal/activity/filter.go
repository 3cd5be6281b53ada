// Package activity filters and exports the admin dashboard's activity log.
package activity

import (
	"strings"

	"github.com/jonathan/career-mentor/internal/types"
	"golang.org/x/text/cases"
)

// Filter returns the entries that pass both the status selector and the
// free-text query, in their original order.
//
// The query matches when its case-folded form is a substring of the
// case-folded actor, action or details. An empty query matches everything.
// The result is never nil.
func Filter(entries []types.ActivityLogEntry, query string, status types.StatusSelector) []types.ActivityLogEntry {
	if status == "" {
		status = types.SelectAll
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]types.ActivityLogEntry, 0, len(entries))
	for _, entry := range entries {
		if !status.Matches(entry.Status) {
			continue
		}
		if needle != "" && !matchesQuery(fold, entry, needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func matchesQuery(fold cases.Caser, entry types.ActivityLogEntry, needle string) bool {
	for _, field := range [...]string{entry.Actor, entry.Action, entry.Details} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
