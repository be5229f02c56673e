package system

import (
	"context"
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Print("This will erase your goal, plan, timers, and streak. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Engine.Reset(context.Background()); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	fmt.Println("All local state cleared")
	return nil
}
