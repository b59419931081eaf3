package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskloop/internal/commands"
	"github.com/colonyops/taskloop/internal/core/config"
	"github.com/colonyops/taskloop/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit

	// When installed via `go install module@version`, ldflags aren't set,
	// so fall back to runtime/debug.BuildInfo.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}

	if len(c) > 7 {
		c = c[:7]
	}

	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskloop",
		Usage:     "Conversational task tracking over Telegram",
		UsageText: "taskloop [global options] command [command options]",
		Description: `Taskloop is a Telegram bot for tracking personal tasks. Users create
tasks through a short conversation (name, scheduled time, priority),
list them, and complete or delete them by number. Tasks with a future
scheduled time get a one-shot reminder.

Run 'taskloop serve' (or just 'taskloop') to start the bot.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKLOOP_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (empty logs to stderr)",
				Sources:     cli.EnvVars("TASKLOOP_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKLOOP_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKLOOP_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "path to .env file with the bot token",
				Sources:     cli.EnvVars("TASKLOOP_ENV_FILE"),
				Value:       ".env",
				Destination: &flags.EnvFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// A missing .env file is fine; the token may come from the
			// real environment.
			if _, err := os.Stat(flags.EnvFile); err == nil {
				if err := godotenv.Load(flags.EnvFile); err != nil {
					return ctx, fmt.Errorf("load env file: %w", err)
				}
			}

			logFile := flags.LogFile
			if logFile != "" && !filepath.IsAbs(logFile) {
				logFile = filepath.Join(flags.DataDir, logFile)
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	serveCmd := commands.NewServeCmd(flags)

	app = serveCmd.Register(app)
	app = commands.NewTasksCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	// Running with no subcommand starts the bot.
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskloop --help' for usage", c.Args().First())
		}
		return serveCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
