// Package telegram adapts the Telegram Bot API to the chat boundary.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskloop/internal/core/chat"
)

// Client wraps a Telegram bot connection.
type Client struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	log         zerolog.Logger
}

var _ chat.Sender = (*Client)(nil)

// New connects to Telegram with the given bot token. pollTimeout is the
// long-poll timeout in seconds.
func New(token string, pollTimeout int, log zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	l := log.With().Str("cmp", "telegram").Logger()
	l.Info().Str("username", api.Self.UserName).Msg("connected to telegram")

	return &Client{api: api, pollTimeout: pollTimeout, log: l}, nil
}

// Send delivers text to the user's chat.
func (c *Client) Send(ctx context.Context, userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Updates returns a channel of inbound events, translated to the chat
// boundary types. The channel closes when ctx is cancelled.
func (c *Client) Updates(ctx context.Context) <-chan chat.Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = c.pollTimeout

	raw := c.api.GetUpdatesChan(cfg)
	out := make(chan chat.Update)

	go func() {
		defer close(out)
		defer c.api.StopReceivingUpdates()

		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-raw:
				if !ok {
					return
				}
				if upd.Message == nil {
					continue
				}

				ev := translate(upd.Message)
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

func translate(m *tgbotapi.Message) chat.Update {
	ev := chat.Update{UserID: m.Chat.ID}
	if m.IsCommand() {
		ev.Command = m.Command()
		ev.Args = m.CommandArguments()
		return ev
	}
	ev.Text = m.Text
	return ev
}
