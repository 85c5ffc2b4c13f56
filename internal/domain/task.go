package domain

import (
	"strings"
	"time"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is assigned when input omits priority or carries an
// unrecognized value.
const DefaultPriority = PriorityMedium

// ParsePriority maps a raw string onto the closed set, case-insensitively.
// Anything else falls back to DefaultPriority rather than erroring.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	default:
		return DefaultPriority
	}
}

// Task is the domain entity for a unit of work owned by one user.
// It does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
