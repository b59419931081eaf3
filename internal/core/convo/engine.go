package convo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskloop/internal/core/chat"
	"github.com/colonyops/taskloop/internal/core/task"
	"github.com/colonyops/taskloop/pkg/kv"
	"github.com/colonyops/taskloop/pkg/randid"
)

// Reminders is the scheduler surface the engine depends on. Registration
// and cancellation are fire-and-forget; neither returns an error.
type Reminders interface {
	Register(userID int64, taskID string, at *time.Time, message string)
	Cancel(userID int64, taskID string)
}

// Engine drives per-user conversations.
//
// Each user has at most one conversation at a time: any command silently
// discards an in-progress one (last command wins). The transport delivers
// each user's messages in order, one at a time, so State is only ever
// touched by the handler for that user's latest message; the state store
// itself is safe for cross-user concurrency.
type Engine struct {
	store     task.Store
	reminders Reminders
	sender    chat.Sender
	opts      Options
	states    *kv.Store[int64, *State]
	log       zerolog.Logger
}

// NewEngine creates a conversation engine.
func NewEngine(store task.Store, reminders Reminders, sender chat.Sender, opts Options, log zerolog.Logger) *Engine {
	if opts.SkipSchedule == "" {
		opts.SkipSchedule = SkipNone
	}
	return &Engine{
		store:     store,
		reminders: reminders,
		sender:    sender,
		opts:      opts,
		states:    kv.New[int64, *State](),
		log:       log.With().Str("cmp", "convo").Logger(),
	}
}

// HandleCommand processes a command event. Any command resets the user's
// in-progress conversation before acting.
func (e *Engine) HandleCommand(ctx context.Context, userID int64, name, args string) {
	e.states.Delete(userID)

	switch name {
	case "start":
		e.send(ctx, userID, msgWelcome)
	case "add":
		e.states.Set(userID, &State{Step: StepName})
		e.send(ctx, userID, msgPromptName)
	case "tasks":
		e.listTasks(ctx, userID)
	case "complete":
		e.beginSelection(ctx, userID, StepCompleteIndex, args)
	case "delete":
		e.beginSelection(ctx, userID, StepDeleteIndex, args)
	default:
		e.log.Debug().Str("command", name).Int64("user", userID).Msg("ignoring unknown command")
	}
}

// HandleText processes a free-text message. Users with no active
// conversation are ignored.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) {
	st, ok := e.states.Get(userID)
	if !ok {
		return
	}

	switch st.Step {
	case StepName:
		// Whatever the user sends becomes the name verbatim.
		st.Draft.Name = text
		st.Step = StepTime
		e.send(ctx, userID, msgPromptTime)

	case StepTime:
		e.handleTime(ctx, userID, st, text)

	case StepPriority:
		p, err := task.ParsePriority(text)
		if err != nil {
			e.retry(ctx, userID, st, msgBadPriority)
			return
		}
		st.Draft.Priority = p
		e.commit(ctx, userID, st.Draft)

	case StepCompleteIndex, StepDeleteIndex:
		// Selection replies resolve exactly once: valid or not, the
		// conversation ends here.
		e.states.Delete(userID)

		tasks, err := e.store.List(ctx, userID)
		if err != nil {
			e.log.Error().Err(err).Int64("user", userID).Msg("list tasks")
			return
		}
		e.resolveSelection(ctx, userID, st.Step, text, tasks)
	}
}

// Active reports whether the user has a conversation in progress.
func (e *Engine) Active(userID int64) bool {
	_, ok := e.states.Get(userID)
	return ok
}

func (e *Engine) handleTime(ctx context.Context, userID int64, st *State, text string) {
	if strings.EqualFold(strings.TrimSpace(text), "skip") {
		if e.opts.SkipSchedule == SkipPlusHour {
			at := time.Now().Add(time.Hour)
			st.Draft.ScheduledAt = &at
		}
		st.Step = StepPriority
		e.send(ctx, userID, msgPromptPriority)
		return
	}

	at, err := ParseDateTime(text)
	if err != nil {
		e.retry(ctx, userID, st, msgBadTime)
		return
	}

	st.Draft.ScheduledAt = &at
	st.Step = StepPriority
	e.send(ctx, userID, msgPromptPriority)
}

// retry re-prompts after a validation failure in a creation step,
// abandoning the conversation once the configured limit is exceeded.
func (e *Engine) retry(ctx context.Context, userID int64, st *State, prompt string) {
	st.Retries++
	if e.opts.MaxRetries > 0 && st.Retries > e.opts.MaxRetries {
		e.states.Delete(userID)
		e.send(ctx, userID, msgAborted)
		return
	}
	e.send(ctx, userID, prompt)
}

// commit finalizes a creation conversation: the draft becomes a stored
// active task and, if it has a future scheduled time, gets a reminder.
func (e *Engine) commit(ctx context.Context, userID int64, draft task.Task) {
	e.states.Delete(userID)

	draft.ID = randid.Generate(8)
	draft.Status = task.StatusActive

	if err := e.store.Append(ctx, userID, draft); err != nil {
		e.log.Error().Err(err).Int64("user", userID).Msg("append task")
		return
	}

	e.reminders.Register(userID, draft.ID, draft.ScheduledAt, fmt.Sprintf(msgReminderFmt, draft.Name))
	e.send(ctx, userID, msgAdded)
}

// beginSelection starts a complete/delete flow. An inline argument (the
// original `/complete 1` form) resolves immediately without creating
// conversation state; otherwise the tasks are listed and the engine waits
// for a numeric reply.
func (e *Engine) beginSelection(ctx context.Context, userID int64, step Step, args string) {
	tasks, err := e.store.List(ctx, userID)
	if err != nil {
		e.log.Error().Err(err).Int64("user", userID).Msg("list tasks")
		return
	}

	if len(tasks) == 0 {
		e.send(ctx, userID, msgNoTasks)
		return
	}

	if fields := strings.Fields(args); len(fields) > 0 {
		e.resolveSelection(ctx, userID, step, fields[0], tasks)
		return
	}

	for _, msg := range chat.FormatTaskList(tasks) {
		e.send(ctx, userID, msg)
	}

	prompt := msgPromptComplete
	if step == StepDeleteIndex {
		prompt = msgPromptDelete
	}
	e.send(ctx, userID, prompt)
	e.states.Set(userID, &State{Step: step})
}

// resolveSelection maps a 1-based reply onto the user's current task list
// and performs the completion or deletion. Out-of-range and non-numeric
// replies report an error without mutating anything.
func (e *Engine) resolveSelection(ctx context.Context, userID int64, step Step, raw string, tasks []task.Task) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > len(tasks) {
		e.send(ctx, userID, msgBadSelection)
		return
	}

	selected := tasks[n-1]

	switch step {
	case StepCompleteIndex:
		selected.MarkCompleted()
		if err := e.store.Update(ctx, userID, selected); err != nil {
			e.log.Error().Err(err).Int64("user", userID).Str("task", selected.ID).Msg("complete task")
			return
		}
		e.reminders.Cancel(userID, selected.ID)
		e.send(ctx, userID, fmt.Sprintf(msgCompletedFmt, selected.Name))

	case StepDeleteIndex:
		if err := e.store.Delete(ctx, userID, selected.ID); err != nil {
			e.log.Error().Err(err).Int64("user", userID).Str("task", selected.ID).Msg("delete task")
			return
		}
		e.reminders.Cancel(userID, selected.ID)
		e.send(ctx, userID, msgDeleted)
	}
}

func (e *Engine) listTasks(ctx context.Context, userID int64) {
	tasks, err := e.store.List(ctx, userID)
	if err != nil {
		e.log.Error().Err(err).Int64("user", userID).Msg("list tasks")
		return
	}

	if len(tasks) == 0 {
		e.send(ctx, userID, msgNoTasks)
		return
	}

	for _, msg := range chat.FormatTaskList(tasks) {
		e.send(ctx, userID, msg)
	}
}

// send delivers a reply best-effort; transport failures are logged only.
func (e *Engine) send(ctx context.Context, userID int64, text string) {
	if err := e.sender.Send(ctx, userID, text); err != nil {
		e.log.Error().Err(err).Int64("user", userID).Msg("send message")
	}
}
