package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/career-mentor/internal/activity"
	"github.com/jonathan/career-mentor/internal/admin"
	"github.com/jonathan/career-mentor/internal/types"
)

// LogsResponse represents the response for GET /admin/logs
type LogsResponse struct {
	Query  string                   `json:"query"`
	Status types.StatusSelector     `json:"status"`
	Count  int                      `json:"count"`
	Total  int                      `json:"total"`
	Logs   []types.ActivityLogEntry `json:"logs"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.catalog.Stats())
}

// adminView builds a dashboard view from the query string. It writes the
// 400 response itself and returns nil when the query is invalid.
func (s *Server) adminView(w http.ResponseWriter, r *http.Request) (*admin.View, types.LogQuery) {
	values := r.URL.Query()
	q := types.LogQuery{
		Query:  values.Get("q"),
		Status: strings.ToLower(strings.TrimSpace(values.Get("status"))),
		Scope:  strings.ToLower(strings.TrimSpace(values.Get("scope"))),
	}
	if err := q.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return nil, q
	}
	sel, err := types.ParseStatusSelector(q.Status)
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "status", Message: err.Error()})
		return nil, q
	}

	view := admin.New(s.catalog.Logs(), s.catalog.Stats())
	view.SetQuery(q.Query)
	view.SetStatus(sel)
	return view, q
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	view, _ := s.adminView(w, r)
	if view == nil {
		return
	}

	visible := view.Visible()
	state := view.State()
	s.jsonResponse(w, http.StatusOK, LogsResponse{
		Query:  state.Query,
		Status: state.Status,
		Count:  len(visible),
		Total:  view.Total(),
		Logs:   visible,
	})
}

// handleAdminExport streams the CSV export as a download. The whole log is
// exported unless scope=filtered.
func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	view, q := s.adminView(w, r)
	if view == nil {
		return
	}
	scope, err := admin.ParseScope(q.Scope)
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "scope", Message: err.Error()})
		return
	}

	body, err := view.Export(scope)
	if err != nil {
		s.errResponse(w, fmt.Errorf("failed to export logs: %w", err))
		return
	}

	w.Header().Set("Content-Type", activity.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", activity.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write export", "error", err)
	}
}
