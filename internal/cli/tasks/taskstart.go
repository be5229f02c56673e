package tasks

import (
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
)

type TaskStartCmd struct {
	ID       string `arg:"" help:"Task ID (see 'waypoint task list')."`
	Estimate string `help:"Override the task's time estimate, e.g. '25 min'."`
}

func (c *TaskStartCmd) Run(ctx *cli.Context) error {
	task, ok := ctx.Engine.Task(c.ID)
	if !ok {
		return fmt.Errorf("unknown task %q", c.ID)
	}

	estimate := c.Estimate
	if estimate == "" {
		estimate = task.EstimatedTime
	}

	if err := ctx.Engine.StartTimer(c.ID, estimate); err != nil {
		return err
	}

	tm, _ := ctx.Engine.Timer(c.ID)
	fmt.Printf("Timer started for %q: %d minutes\n", task.Title, tm.DurationMin)
	return nil
}
