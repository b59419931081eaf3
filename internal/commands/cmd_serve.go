package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskloop/internal/bot"
	"github.com/colonyops/taskloop/internal/chat/telegram"
	"github.com/colonyops/taskloop/internal/core/convo"
	"github.com/colonyops/taskloop/internal/core/remind"
	"github.com/colonyops/taskloop/internal/stores"
)

// ServeCmd runs the bot until interrupted.
type ServeCmd struct {
	flags *Flags
}

// NewServeCmd creates the serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "serve",
		Usage: "Run the bot",
		Description: `Connects to Telegram and processes messages until interrupted.

The bot token is read from the environment variable named by
telegram.token_env in the config file (default BOT_TOKEN); a .env file
next to the working directory is honored.`,
		Action: cmd.Run,
	})

	return app
}

// Run wires the stores, scheduler, engine, and transport together and
// processes updates until SIGINT/SIGTERM.
func (cmd *ServeCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	// Missing credential is fatal: the process must not start.
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("bot token not set: export %s or add it to your .env file", cfg.Telegram.TokenEnv)
	}

	client, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.PollTimeout, log.Logger)
	if err != nil {
		return fmt.Errorf("setup transport: %w", err)
	}

	taskStore := stores.NewTaskStore(cfg.TasksFile())
	scheduler := remind.NewScheduler(client, log.Logger)
	defer scheduler.Stop()

	engine := convo.NewEngine(taskStore, scheduler, client, cfg.ConversationOptions(), log.Logger)
	svc := bot.NewService(engine, log.Logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc.Run(ctx, client.Updates(ctx))
	return nil
}
