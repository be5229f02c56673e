package cli

import (
	"context"
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/models"
)

type GenerateCmd struct {
	Goal       string   `arg:"" help:"The goal to build a plan for."`
	Timeline   string   `help:"Target timeline, e.g. '3 months'."`
	Commitment string   `help:"Time commitment, e.g. '30 minutes a day'."`
	Answer     []string `help:"Extra context answers, repeatable."`
}

func (c *GenerateCmd) Run(ctx *Context) error {
	in := models.GoalInput{
		Goal:           c.Goal,
		Timeline:       c.Timeline,
		TimeCommitment: c.Commitment,
		Answers:        c.Answer,
	}

	plan, err := ctx.Generator.Generate(context.Background(), in)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := ctx.Engine.SetGoalInput(in); err != nil {
		return err
	}
	if err := ctx.Engine.SetPlan(context.Background(), plan); err != nil {
		return err
	}

	fmt.Printf("Generated plan for %q: %d phases, %d tasks\n", plan.Goal, len(plan.Phases), plan.TaskCount())
	for _, phase := range plan.Phases {
		fmt.Printf("  %s\n", phase.Title)
	}
	fmt.Println("Run 'waypoint status' to see the full roadmap.")
	return nil
}
