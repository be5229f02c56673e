package tasks

import (
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
)

type TaskStopCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskStopCmd) Run(ctx *cli.Context) error {
	if err := ctx.Engine.StopTimer(c.ID); err != nil {
		return err
	}
	fmt.Println("Timer stopped")
	return nil
}
