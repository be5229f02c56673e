package cli

import (
	"fmt"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	in := ctx.Engine.GoalInput()
	plan := ctx.Engine.Plan()

	if in.IsEmpty() && plan == nil {
		fmt.Println("No goal yet. Run 'waypoint generate \"<your goal>\"' to get started.")
		return nil
	}

	fmt.Printf("Goal: %s\n", in.Goal)
	if in.Timeline != "" {
		fmt.Printf("Timeline: %s\n", in.Timeline)
	}
	if in.TimeCommitment != "" {
		fmt.Printf("Commitment: %s\n", in.TimeCommitment)
	}
	if s := ctx.Engine.CurrentStreak(); s > 0 {
		fmt.Printf("Streak: %d days\n", s)
	}

	if plan == nil {
		fmt.Println("No plan generated yet.")
		return nil
	}

	done := len(ctx.Engine.CompletedTasks())
	total := plan.TaskCount()
	fmt.Printf("Progress: %d/%d tasks\n\n", done, total)

	for p, phase := range plan.Phases {
		mark := " "
		if ctx.Engine.IsPhaseUnlocked(p) {
			mark = "*"
		}
		fmt.Printf("%s Phase %d: %s\n", mark, p+1, phase.Title)
		for m, ms := range phase.Milestones {
			msDone := 0
			for _, task := range ms.Tasks {
				if ctx.Engine.IsCompleted(task.ID) {
					msDone++
				}
			}
			lock := ""
			if !ctx.Engine.IsMilestoneUnlocked(p, m) {
				lock = " (locked)"
			}
			fmt.Printf("    %s: %d/%d%s\n", ms.Title, msDone, len(ms.Tasks), lock)
		}
	}
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	s := ctx.Engine.CurrentStreak()
	switch s {
	case 0:
		fmt.Println("No active streak. Complete a task today to start one.")
	case 1:
		fmt.Println("Streak: 1 day")
	default:
		fmt.Printf("Streak: %d days\n", s)
	}
	return nil
}
