// Package remind schedules one-shot task reminders.
//
// Reminders live only in memory: a process restart drops all pending
// timers. Delivery failures are logged and swallowed, never retried.
package remind

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskloop/internal/core/chat"
	"github.com/colonyops/taskloop/pkg/kv"
)

// sendTimeout bounds the outbound send when a timer fires.
const sendTimeout = 10 * time.Second

// Key identifies one pending reminder. Keying by task ID rather than list
// position keeps handles valid across deletions that shift positions.
type Key struct {
	UserID int64
	TaskID string
}

type handle struct {
	timer *time.Timer
}

// Scheduler holds at most one pending timer per (user, task) pair.
type Scheduler struct {
	sender  chat.Sender
	handles *kv.Store[Key, *handle]
	log     zerolog.Logger
}

// NewScheduler creates a scheduler that delivers reminders via sender.
func NewScheduler(sender chat.Sender, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		sender:  sender,
		handles: kv.New[Key, *handle](),
		log:     log.With().Str("cmp", "remind").Logger(),
	}
}

// Register arranges for message to be sent to userID at the given instant.
//
// Absent or non-future instants are silently skipped: past-due and
// unscheduled tasks never produce reminders. An existing reminder under
// the same key is replaced and its timer stopped.
func (s *Scheduler) Register(userID int64, taskID string, at *time.Time, message string) {
	if at == nil || !at.After(time.Now()) {
		return
	}

	key := Key{UserID: userID, TaskID: taskID}
	h := &handle{}
	h.timer = time.AfterFunc(time.Until(*at), func() {
		s.fire(key, h, message)
	})

	if prev, ok := s.handles.Swap(key, h); ok {
		prev.timer.Stop()
	}

	s.log.Debug().
		Int64("user", userID).
		Str("task", taskID).
		Time("at", *at).
		Msg("reminder registered")
}

// Cancel stops the pending reminder for the key, if any. Cancelling a
// missing or already-fired reminder is a no-op.
func (s *Scheduler) Cancel(userID int64, taskID string) {
	h, ok := s.handles.GetAndDelete(Key{UserID: userID, TaskID: taskID})
	if !ok {
		return
	}
	h.timer.Stop()

	s.log.Debug().Int64("user", userID).Str("task", taskID).Msg("reminder cancelled")
}

// Pending returns the number of outstanding reminders.
func (s *Scheduler) Pending() int {
	return s.handles.Len()
}

// Stop cancels all outstanding reminders. Used on shutdown.
func (s *Scheduler) Stop() {
	for _, h := range s.handles.Drain() {
		h.timer.Stop()
	}
}

// fire runs on the timer goroutine, concurrently with message handling.
// It only touches the outbound sender, never conversation or task state.
func (s *Scheduler) fire(key Key, h *handle, message string) {
	// The handle may have been replaced by a newer registration between
	// the timer firing and this running; only the current owner delivers.
	if !s.handles.CompareAndDelete(key, h) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := s.sender.Send(ctx, key.UserID, message); err != nil {
		s.log.Error().Err(err).Int64("user", key.UserID).Str("task", key.TaskID).Msg("reminder delivery failed")
	}
}
