// Package convo implements the per-user conversation state machine that
// walks a user through task creation and index-based task selection.
package convo

import (
	"fmt"

	"github.com/colonyops/taskloop/internal/core/task"
)

// Step identifies which reply a conversation is waiting for.
type Step string

const (
	StepName          Step = "awaiting_name"
	StepTime          Step = "awaiting_time"
	StepPriority      Step = "awaiting_priority"
	StepCompleteIndex Step = "awaiting_complete_index"
	StepDeleteIndex   Step = "awaiting_delete_index"
)

// State is the transient per-user conversation record. It is created by a
// command, mutated by each free-text reply, and destroyed when the flow
// completes, a new command arrives, or validation permanently aborts it.
// It is never persisted: a restart drops all in-progress conversations.
type State struct {
	Step    Step
	Draft   task.Task
	Retries int
}

// SkipMode controls what replying "skip" to the time prompt means.
type SkipMode string

const (
	// SkipNone leaves the task unscheduled. No reminder is registered.
	SkipNone SkipMode = "none"
	// SkipPlusHour schedules the task one hour from now.
	SkipPlusHour SkipMode = "plus-hour"
)

// ParseSkipMode validates a configured skip mode. The empty string maps
// to SkipNone so an absent config key gets the default.
func ParseSkipMode(s string) (SkipMode, error) {
	switch m := SkipMode(s); m {
	case "":
		return SkipNone, nil
	case SkipNone, SkipPlusHour:
		return m, nil
	default:
		return "", fmt.Errorf("invalid skip mode %q: must be %q or %q", s, SkipNone, SkipPlusHour)
	}
}

// Options tunes engine behavior.
type Options struct {
	// SkipSchedule selects the "skip" behavior in the time step.
	SkipSchedule SkipMode

	// MaxRetries bounds consecutive validation failures within one
	// creation conversation before it is abandoned. Zero means unlimited.
	MaxRetries int
}
