package server

import (
	"net/http"

	"github.com/jonathan/career-mentor/internal/types"
)

// IndexResponse represents the response for GET /
type IndexResponse struct {
	types.AppInfo
	Routes []string `json:"routes"`
}

var routes = []string{
	"GET /health",
	"GET /metrics",
	"GET /admin/stats",
	"GET /admin/logs?q=&status=",
	"GET /admin/logs/export?q=&status=&scope=",
	"GET /suggestions?selected=",
	"GET /suggestions/{id}",
	"GET /chat/quick-questions",
	"POST /chat/sessions",
	"GET /chat/sessions/{id}",
	"DELETE /chat/sessions/{id}",
	"POST /chat/sessions/{id}/messages",
	"POST /chat/sessions/{id}/messages/stream",
	"POST /uploads",
	"GET /uploads/{id}",
	"DELETE /uploads/{id}",
	"POST /uploads/{id}/file",
	"POST /uploads/{id}/submit",
	"POST /uploads/{id}/reset",
	"POST /auth/signup",
	"POST /auth/login",
}

// handleIndex returns app info and the route map
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, IndexResponse{AppInfo: s.catalog.App(), Routes: routes})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNotFound answers every unknown route
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "Not found")
}
