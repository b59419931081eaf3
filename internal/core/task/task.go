// Package task defines the task domain model and persistence contract.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority parses a user-supplied priority, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority %q: must be low, medium or high", s)
	}
}

// Status represents the lifecycle state of a task.
// The transition is one-way: active tasks complete and never reopen.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Task is a single unit of work owned by one user.
//
// ID is an opaque random identifier assigned at creation and is the
// addressing key for store mutations and reminder handles. The 1-based
// position users see in listings is computed at render time, never stored.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ScheduledAt *time.Time `json:"time,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
}

// Scheduled reports whether the task carries a scheduled time.
func (t Task) Scheduled() bool {
	return t.ScheduledAt != nil
}

// MarkCompleted transitions the task to the completed state.
func (t *Task) MarkCompleted() {
	t.Status = StatusCompleted
}
