package tasks

import (
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/cli"
)

type TaskListCmd struct {
	All     bool `help:"Include locked tasks."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	plan := ctx.Engine.Plan()
	if plan == nil {
		fmt.Println("No plan yet. Run 'waypoint generate \"<your goal>\"' first.")
		return nil
	}

	for p, phase := range plan.Phases {
		fmt.Printf("%s\n", phase.Title)
		for m, ms := range phase.Milestones {
			fmt.Printf("  %s\n", ms.Title)
			for t, task := range ms.Tasks {
				unlocked := ctx.Engine.IsTaskUnlocked(p, m, t)
				if !unlocked && !c.All {
					continue
				}

				marker := "[ ]"
				switch {
				case ctx.Engine.IsCompleted(task.ID):
					marker = "[x]"
				case !unlocked:
					marker = "[~]"
				}

				idStr := ""
				if c.ShowIDs {
					idStr = fmt.Sprintf(" (ID: %s)", task.ID)
				}

				line := fmt.Sprintf("    %s %s%s", marker, task.Title, idStr)
				if task.EstimatedTime != "" {
					line += fmt.Sprintf(" - %s", task.EstimatedTime)
				}
				if tm, ok := ctx.Engine.Timer(task.ID); ok && tm.Active {
					if prog, ok := ctx.Engine.TimerProgress(task.ID); ok {
						line += fmt.Sprintf(" (timer %.0f%%)", prog.Percentage)
					}
				}
				fmt.Println(line)
			}
		}
	}
	return nil
}
