// Package bot binds the transport's update stream to the conversation
// engine.
package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskloop/internal/core/chat"
	"github.com/colonyops/taskloop/internal/core/convo"
)

// commands the bot responds to; anything else is ignored.
var knownCommands = map[string]bool{
	"start":    true,
	"add":      true,
	"tasks":    true,
	"complete": true,
	"delete":   true,
}

// Service dispatches inbound updates.
type Service struct {
	engine *convo.Engine
	log    zerolog.Logger
}

// NewService creates the dispatch service.
func NewService(engine *convo.Engine, log zerolog.Logger) *Service {
	return &Service{
		engine: engine,
		log:    log.With().Str("cmp", "bot").Logger(),
	}
}

// HandleUpdate classifies one inbound event and routes it. Commands go to
// the engine's command entry point; free text goes to the active
// conversation, if any.
func (s *Service) HandleUpdate(ctx context.Context, upd chat.Update) {
	if upd.IsCommand() {
		if !knownCommands[upd.Command] {
			s.log.Debug().Str("command", upd.Command).Int64("user", upd.UserID).Msg("unknown command")
			return
		}
		s.engine.HandleCommand(ctx, upd.UserID, upd.Command, upd.Args)
		return
	}

	s.engine.HandleText(ctx, upd.UserID, upd.Text)
}

// Run consumes updates until the channel closes or ctx is cancelled.
// Updates are processed one at a time, which preserves per-user message
// ordering end to end.
func (s *Service) Run(ctx context.Context, updates <-chan chat.Update) {
	s.log.Info().Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("bot stopping")
			return
		case upd, ok := <-updates:
			if !ok {
				s.log.Info().Msg("update stream closed")
				return
			}
			s.HandleUpdate(ctx, upd)
		}
	}
}
