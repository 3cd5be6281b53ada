// Package catalog provides the static sample datasets served by the career mentor.
// Datasets are embedded at compile time and checked against JSON Schemas on load.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jonathan/career-mentor/internal/types"
)

//go:embed data/*.json data/*.txt
var dataFiles embed.FS

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// Catalog is an immutable snapshot of every sample dataset.
// Accessors return copies so callers cannot mutate shared state.
type Catalog struct {
	app            types.AppInfo
	stats          types.DashboardStats
	logs           []types.ActivityLogEntry
	suggestions    []types.CareerSuggestion
	greeting       string
	quickQuestions []string
	replies        []string
	resumePreview  string
}

type adminDataset struct {
	Stats types.DashboardStats     `json:"stats"`
	Logs  []types.ActivityLogEntry `json:"logs"`
}

type mentorDataset struct {
	Greeting       string   `json:"greeting"`
	QuickQuestions []string `json:"quick_questions"`
	Replies        []string `json:"replies"`
}

var loadDefault = sync.OnceValues(Load)

// Default returns the process-wide catalog, loading it on first use.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads and validates every embedded dataset.
func Load() (*Catalog, error) {
	c := &Catalog{}

	if err := loadDataset("app", &c.app); err != nil {
		return nil, err
	}

	var admin adminDataset
	if err := loadDataset("admin", &admin); err != nil {
		return nil, err
	}
	c.stats = admin.Stats
	c.logs = admin.Logs

	if err := loadDataset("suggestions", &c.suggestions); err != nil {
		return nil, err
	}

	var mentor mentorDataset
	if err := loadDataset("mentor", &mentor); err != nil {
		return nil, err
	}
	c.greeting = mentor.Greeting
	c.quickQuestions = mentor.QuickQuestions
	c.replies = mentor.Replies

	preview, err := dataFiles.ReadFile("data/resume_preview.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to read resume preview: %w", err)
	}
	c.resumePreview = strings.TrimSpace(string(preview))

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadDataset validates data/<name>.json against schemas/<name>.schema.json
// and decodes it into out.
func loadDataset(name string, out any) error {
	schema, err := schemaFiles.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return fmt.Errorf("failed to read schema for %s: %w", name, err)
	}
	doc, err := dataFiles.ReadFile("data/" + name + ".json")
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", name, err)
	}
	if err := validateDocument(name, schema, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", name, err)
	}
	return nil
}

// check enforces invariants the schemas cannot express.
func (c *Catalog) check() error {
	seen := make(map[string]bool, len(c.logs))
	for _, entry := range c.logs {
		if seen[entry.ID] {
			return fmt.Errorf("duplicate activity log id %q", entry.ID)
		}
		seen[entry.ID] = true
	}

	seen = make(map[string]bool, len(c.suggestions))
	for i := range c.suggestions {
		s := &c.suggestions[i]
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate suggestion id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// App returns the product description.
func (c *Catalog) App() types.AppInfo { return c.app }

// Stats returns the admin dashboard counters.
func (c *Catalog) Stats() types.DashboardStats { return c.stats }

// Logs returns the activity log sample in display order.
func (c *Catalog) Logs() []types.ActivityLogEntry {
	return slices.Clone(c.logs)
}

// Suggestions returns every career suggestion in display order.
func (c *Catalog) Suggestions() []types.CareerSuggestion {
	out := make([]types.CareerSuggestion, len(c.suggestions))
	for i, s := range c.suggestions {
		s.Skills = slices.Clone(s.Skills)
		out[i] = s
	}
	return out
}

// Suggestion looks up one career suggestion by id.
func (c *Catalog) Suggestion(id string) (types.CareerSuggestion, bool) {
	for _, s := range c.suggestions {
		if s.ID == id {
			s.Skills = slices.Clone(s.Skills)
			return s, true
		}
	}
	return types.CareerSuggestion{}, false
}

// Greeting returns the mentor's opening message.
func (c *Catalog) Greeting() string { return c.greeting }

// QuickQuestions returns the suggested prompts shown beside the chat.
func (c *Catalog) QuickQuestions() []string { return slices.Clone(c.quickQuestions) }

// Replies returns the scripted mentor reply pool.
func (c *Catalog) Replies() []string { return slices.Clone(c.replies) }

// ResumePreview returns the sample text shown as an uploaded resume's preview.
func (c *Catalog) ResumePreview() string { return c.resumePreview }
