package server

import (
	"net/http"

	"github.com/jonathan/career-mentor/internal/suggestions"
	"github.com/jonathan/career-mentor/internal/types"
)

// SuggestionsResponse represents the response for GET /suggestions
type SuggestionsResponse struct {
	Count       int                      `json:"count"`
	Suggestions []types.CareerSuggestion `json:"suggestions"`
	Selected    string                   `json:"selected"`
}

// handleListSuggestions lists the catalog. ?selected=<id> marks one
// suggestion as expanded; an unknown id is a 404.
func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	view := suggestions.New(s.catalog.Suggestions())
	if id := r.URL.Query().Get("selected"); id != "" {
		if _, ok := view.Get(id); !ok {
			s.errorResponse(w, http.StatusNotFound, "Suggestion not found")
			return
		}
		view.Toggle(id)
	}

	list := view.List()
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{
		Count:       len(list),
		Suggestions: list,
		Selected:    view.Selected(),
	})
}

func (s *Server) handleGetSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestion, ok := s.catalog.Suggestion(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Suggestion not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, suggestion)
}
