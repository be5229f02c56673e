package planner

import (
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// fallbackPlan is the hand-authored plan substituted when generation or
// parsing fails. It is parameterized only by the goal text so the caller
// always receives something actionable.
func fallbackPlan(goal string) *models.Plan {
	if goal == "" {
		goal = "your goal"
	}
	return &models.Plan{
		Goal: goal,
		Phases: []models.Phase{
			{
				Title:       "Getting Started",
				Description: "Build the foundation and establish a routine.",
				Milestones: []models.Milestone{
					{
						Title:       "Set Up for Success",
						Description: "Prepare everything you need before diving in.",
						Tasks: []models.Task{
							{Title: "Define what success looks like", Description: "Write down specifically what achieving " + goal + " means to you.", EstimatedTime: "15 min"},
							{Title: "Gather your resources", Description: "Collect the tools, materials, or information you need to get started.", EstimatedTime: "30 min"},
							{Title: "Schedule your practice time", Description: "Block out recurring time in your calendar for working toward " + goal + ".", EstimatedTime: "10 min"},
						},
					},
					{
						Title:       "First Steps",
						Description: "Get early momentum with small wins.",
						Tasks: []models.Task{
							{Title: "Complete your first session", Description: "Do one focused session, however small. Starting matters more than scale.", EstimatedTime: "20 min"},
							{Title: "Note what worked and what didn't", Description: "Spend a few minutes reflecting on your first session.", EstimatedTime: "10 min"},
						},
					},
				},
			},
			{
				Title:       "Building Momentum",
				Description: "Turn early effort into a consistent habit.",
				Milestones: []models.Milestone{
					{
						Title:       "Establish Consistency",
						Description: "Show up regularly and track your progress.",
						Tasks: []models.Task{
							{Title: "Practice three times this week", Description: "Complete three focused sessions toward " + goal + ".", EstimatedTime: "20 min"},
							{Title: "Review your progress", Description: "Look back at what you have done so far and adjust your approach.", EstimatedTime: "15 min"},
							{Title: "Set your next milestone", Description: "Decide on the next concrete target on the way to " + goal + ".", EstimatedTime: "15 min"},
						},
					},
				},
			},
		},
	}
}
