package tasks

import (
	"context"
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
)

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	task, ok := ctx.Engine.Task(c.ID)
	if !ok {
		return fmt.Errorf("unknown task %q", c.ID)
	}

	if !ctx.Engine.Toggle(context.Background(), c.ID) {
		return fmt.Errorf("cannot complete %q while its timer is still running", task.Title)
	}

	if ctx.Engine.IsCompleted(c.ID) {
		fmt.Printf("Completed %q", task.Title)
		if s := ctx.Engine.CurrentStreak(); s > 0 {
			fmt.Printf(" (streak: %d days)", s)
		}
		fmt.Println()
	} else {
		fmt.Printf("Reopened %q\n", task.Title)
	}
	return nil
}
