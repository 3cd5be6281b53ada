package types

import "fmt"

// Difficulty is the entry level of a career path.
type Difficulty string

// Difficulty levels
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// CareerSuggestion is a read-only career path recommendation.
// MatchScore is a precomputed suitability percentage in [0, 100].
type CareerSuggestion struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MatchScore  int        `json:"match_score"`
	Skills      []string   `json:"skills"`
	SalaryRange string     `json:"salary_range"`
	GrowthRate  string     `json:"growth_rate"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Validate checks the invariants of a suggestion.
func (c *CareerSuggestion) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("suggestion id is required")
	}
	if c.MatchScore < 0 || c.MatchScore > 100 {
		return fmt.Errorf("suggestion %s: match score %d out of range [0,100]", c.ID, c.MatchScore)
	}
	if !c.Difficulty.Valid() {
		return fmt.Errorf("suggestion %s: unknown difficulty %q", c.ID, c.Difficulty)
	}
	return nil
}

// AppInfo describes the product for the landing route.
type AppInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}
