package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ConfigCmd groups configuration utilities.
type ConfigCmd struct {
	flags *Flags
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration utilities",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate the config file and report problems",
				Action: func(ctx context.Context, c *cli.Command) error {
					// Load already validated; reaching here means the
					// config parsed and passed all field checks.
					if err := cmd.flags.Config.Validate(); err != nil {
						return err
					}

					fmt.Println("configuration valid")
					return nil
				},
			},
		},
	})

	return app
}
