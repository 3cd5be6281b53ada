// Package admin implements the dashboard view: headline stats plus a
// searchable, exportable activity log.
package admin

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/career-mentor/internal/activity"
	"github.com/jonathan/career-mentor/internal/observability"
	"github.com/jonathan/career-mentor/internal/types"
)

// Scope selects which entries an export contains.
type Scope string

// Export scopes
const (
	ScopeAll      Scope = "all"
	ScopeFiltered Scope = "filtered"
)

// ParseScope parses an export scope. Empty input means ScopeAll.
func ParseScope(raw string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeFiltered:
		return ScopeFiltered, nil
	}
	return "", fmt.Errorf("unknown export scope %q (want all or filtered)", raw)
}

// State is the filter input of the view.
type State struct {
	Query  string
	Status types.StatusSelector
}

// View holds the dashboard data and the current filter. The visible list is
// recomputed from the full log on every read.
type View struct {
	logs  []types.ActivityLogEntry
	stats types.DashboardStats

	mu    sync.RWMutex
	state State
}

// New creates a view over logs with an empty filter.
func New(logs []types.ActivityLogEntry, stats types.DashboardStats) *View {
	return &View{
		logs:  slices.Clone(logs),
		stats: stats,
		state: State{Status: types.SelectAll},
	}
}

// SetQuery replaces the free-text query.
func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Query = q
}

// SetStatus replaces the status selector. Empty means all.
func (v *View) SetStatus(s types.StatusSelector) {
	if s == "" {
		s = types.SelectAll
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Status = s
}

// State returns the current filter.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Visible returns the entries passing the current filter.
func (v *View) Visible() []types.ActivityLogEntry {
	state := v.State()
	observability.LogQueries.Inc()
	return activity.Filter(v.logs, state.Query, state.Status)
}

// All returns every entry regardless of the filter.
func (v *View) All() []types.ActivityLogEntry {
	return slices.Clone(v.logs)
}

// Total returns the size of the unfiltered log.
func (v *View) Total() int {
	return len(v.logs)
}

// Stats returns the headline counters.
func (v *View) Stats() types.DashboardStats {
	return v.stats
}

// Export encodes the chosen scope as CSV.
func (v *View) Export(scope Scope) ([]byte, error) {
	data, err := activity.EncodeCSV(v.scoped(scope))
	if err != nil {
		return nil, fmt.Errorf("failed to export logs: %w", err)
	}
	observability.LogExports.WithLabelValues(string(scope)).Inc()
	return data, nil
}

// WriteExport streams the chosen scope as CSV to w.
func (v *View) WriteExport(w io.Writer, scope Scope) error {
	if err := activity.WriteCSV(w, v.scoped(scope)); err != nil {
		return fmt.Errorf("failed to export logs: %w", err)
	}
	observability.LogExports.WithLabelValues(string(scope)).Inc()
	return nil
}

func (v *View) scoped(scope Scope) []types.ActivityLogEntry {
	if scope == ScopeFiltered {
		return v.Visible()
	}
	return v.logs
}
