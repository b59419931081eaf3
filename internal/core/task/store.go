package task

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a task does not exist for the given user.
var ErrNotFound = errors.New("task not found")

// Store defines task persistence scoped by user identity.
//
// All operations are synchronous and persist before returning. List
// returns tasks in insertion order; a task's 1-based position in that
// order is what users reference in selection flows, so callers must
// re-fetch the list before resolving another selection.
type Store interface {
	// List returns all tasks for a user, oldest first. Users with no
	// tasks get an empty slice, not an error.
	List(ctx context.Context, userID int64) ([]Task, error)

	// Append adds a task to the end of the user's sequence.
	Append(ctx context.Context, userID int64, t Task) error

	// Update replaces the stored task with the same ID.
	// Returns ErrNotFound if no such task exists.
	Update(ctx context.Context, userID int64, t Task) error

	// Delete removes the task with the given ID, shifting later
	// positions down by one. Returns ErrNotFound if no such task exists.
	Delete(ctx context.Context, userID int64, id string) error
}
