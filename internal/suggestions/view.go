// Package suggestions implements the career suggestions view with a single
// expandable selection.
package suggestions

import (
	"slices"
	"sync"

	"github.com/jonathan/career-mentor/internal/types"
)

// View lists suggestions and tracks which one is expanded.
type View struct {
	items []types.CareerSuggestion

	mu       sync.Mutex
	selected string
}

// New creates a view with nothing selected.
func New(items []types.CareerSuggestion) *View {
	return &View{items: slices.Clone(items)}
}

// List returns the suggestions in catalog order.
func (v *View) List() []types.CareerSuggestion {
	return slices.Clone(v.items)
}

// Get returns the suggestion with the given id.
func (v *View) Get(id string) (types.CareerSuggestion, bool) {
	i := slices.IndexFunc(v.items, func(s types.CareerSuggestion) bool { return s.ID == id })
	if i < 0 {
		return types.CareerSuggestion{}, false
	}
	return v.items[i], true
}

// Toggle selects id, or clears the selection when id is already selected.
// Unknown ids are ignored. Returns the resulting selection.
func (v *View) Toggle(id string) string {
	if _, ok := v.Get(id); !ok {
		return v.Selected()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == id {
		v.selected = ""
	} else {
		v.selected = id
	}
	return v.selected
}

// Selected returns the selected id, or "" when none is.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}
