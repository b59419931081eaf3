package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskloop/internal/stores"
	"github.com/colonyops/taskloop/pkg/iojson"
)

// TasksCmd provides operator access to the task store.
type TasksCmd struct {
	flags *Flags

	lsUser int64
}

// NewTasksCmd creates the tasks command group.
func NewTasksCmd(flags *Flags) *TasksCmd {
	return &TasksCmd{flags: flags}
}

// Register adds the tasks command to the application.
func (cmd *TasksCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "tasks",
		Usage: "Inspect stored tasks",
		Commands: []*cli.Command{
			cmd.lsCmd(),
		},
	})

	return app
}

func (cmd *TasksCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List a user's tasks as JSON",
		UsageText: "taskloop tasks ls --user <id>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "user",
				Usage:       "user (chat) identifier",
				Required:    true,
				Destination: &cmd.lsUser,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			store := stores.NewTaskStore(cmd.flags.Config.TasksFile())

			tasks, err := store.List(ctx, cmd.lsUser)
			if err != nil {
				return err
			}

			return iojson.Write(tasks)
		},
	}
}
