package models

import "time"

// Task is a single unit of work inside a milestone. Tasks are immutable
// once a plan is created; progress is tracked separately by task id.
type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimated_time"` // free-form, e.g. "45 min", "1.5 hours"
}

type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tasks       []Task `json:"tasks"`
}

type Phase struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Milestones  []Milestone `json:"milestones"`
}

// Plan is the generated phases/milestones/tasks tree for one goal.
// A plan is replaced wholesale on regeneration, never partially mutated;
// replacing the plan invalidates all timers and completed-task state.
type Plan struct {
	ID             string    `json:"id"`
	Goal           string    `json:"goal"`
	Timeline       string    `json:"timeline,omitempty"`
	TimeCommitment string    `json:"time_commitment,omitempty"`
	Phases         []Phase   `json:"phases"`
	CreatedAt      time.Time `json:"created_at"`
}

// TaskCount returns the total number of tasks across all phases.
func (p *Plan) TaskCount() int {
	n := 0
	for _, ph := range p.Phases {
		for _, ms := range ph.Milestones {
			n += len(ms.Tasks)
		}
	}
	return n
}

// GoalInput is the sanitized user input a plan is generated from.
type GoalInput struct {
	Goal           string   `json:"goal"`
	Timeline       string   `json:"timeline,omitempty"`
	TimeCommitment string   `json:"time_commitment,omitempty"`
	Answers        []string `json:"answers,omitempty"`
}

// IsEmpty reports whether no goal has been captured yet.
func (g GoalInput) IsEmpty() bool {
	return g.Goal == "" && g.Timeline == "" && g.TimeCommitment == "" && len(g.Answers) == 0
}
