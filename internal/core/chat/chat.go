// Package chat defines the transport boundary for the bot.
//
// The conversation engine and reminder scheduler talk to the chat service
// only through these types; the concrete transport (Telegram) lives in its
// own adapter package and is never imported by the core.
package chat

import "context"

// Sender delivers an outbound message to a user. Delivery is best-effort:
// callers log failures and never retry or surface them to the user.
type Sender interface {
	Send(ctx context.Context, userID int64, text string) error
}

// Update is one inbound event from the transport. Exactly one of the
// command fields or Text is meaningful: a non-empty Command marks a
// command event, otherwise the update is free text.
type Update struct {
	UserID  int64
	Command string // command name without the leading slash
	Args    string // raw text after the command name
	Text    string
}

// IsCommand reports whether the update is a command event.
func (u Update) IsCommand() bool {
	return u.Command != ""
}
