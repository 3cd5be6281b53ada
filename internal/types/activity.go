// Package types provides type definitions for structured data used throughout the career mentor.
package types

import (
	"fmt"
	"strings"
	"time"
)

// LogStatus is the outcome recorded on an activity log entry.
type LogStatus string

// Log statuses
const (
	StatusSuccess LogStatus = "success"
	StatusError   LogStatus = "error"
	StatusPending LogStatus = "pending"
)

// Valid reports whether s is one of the known log statuses.
func (s LogStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusError, StatusPending:
		return true
	}
	return false
}

// ActivityLogEntry is a record of one user action shown in the admin dashboard.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"user"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
	Status    LogStatus `json:"status"`
}

// StatusSelector narrows the admin log view to one status, or to all of them.
type StatusSelector string

// SelectAll matches every entry regardless of status.
const SelectAll StatusSelector = "all"

// Matches reports whether an entry with the given status passes the selector.
func (s StatusSelector) Matches(status LogStatus) bool {
	return s == SelectAll || LogStatus(s) == status
}

// ParseStatusSelector parses a selector from user input.
// An empty string selects all entries.
func ParseStatusSelector(raw string) (StatusSelector, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == string(SelectAll) {
		return SelectAll, nil
	}
	if !LogStatus(v).Valid() {
		return "", fmt.Errorf("unknown status %q (want all, success, error or pending)", raw)
	}
	return StatusSelector(v), nil
}

// DashboardStats holds the headline counters shown above the admin log table.
type DashboardStats struct {
	TotalUsers           int `json:"total_users"`
	ResumesUploaded      int `json:"resumes_uploaded"`
	ChatSessions         int `json:"chat_sessions"`
	SuggestionsGenerated int `json:"suggestions_generated"`
}

// LogQuery is the query-string form of an admin log request.
type LogQuery struct {
	Query  string `json:"q" validate:"max=200"`
	Status string `json:"status" validate:"omitempty,oneof=all success error pending"`
	Scope  string `json:"scope" validate:"omitempty,oneof=all filtered"`
}

// Validate validates the LogQuery using the validator.
func (q *LogQuery) Validate() error {
	return validate.Struct(q)
}
