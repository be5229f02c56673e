// Package planner turns a sanitized goal into a phases/milestones/tasks
// plan, via an LLM completion with a hand-authored fallback.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/llm"
	"github.com/waypointhq/waypoint-cli/internal/logger"
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// CompletionClient is the transport the generator speaks through.
// *llm.Client satisfies it.
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Generator builds plans from goal input.
type Generator struct {
	client CompletionClient
	now    func() time.Time
}

func NewGenerator(client CompletionClient) *Generator {
	return &Generator{client: client, now: time.Now}
}

const systemPrompt = `You are a goal-planning coach. Given a personal goal, produce a structured plan as strict JSON with exactly this shape:
{"phases":[{"title":"...","description":"...","milestones":[{"title":"...","description":"...","tasks":[{"title":"...","description":"...","estimatedTime":"..."}]}]}]}
Rules: 2-4 phases, 1-3 milestones per phase, 2-5 tasks per milestone. estimatedTime is a short duration like "20 min" or "1 hour". Respond with the JSON object only, no prose and no code fences.`

// Sanitize trims and length-caps the raw goal input. Oversized values are
// truncated rather than rejected.
func Sanitize(in models.GoalInput) models.GoalInput {
	out := models.GoalInput{
		Goal:           truncate(strings.TrimSpace(in.Goal), constants.MaxGoalLen),
		Timeline:       truncate(strings.TrimSpace(in.Timeline), constants.MaxGoalLen),
		TimeCommitment: truncate(strings.TrimSpace(in.TimeCommitment), constants.MaxGoalLen),
	}
	for _, a := range in.Answers {
		a = truncate(strings.TrimSpace(a), constants.MaxAnswerLen)
		if a == "" {
			continue
		}
		out.Answers = append(out.Answers, a)
		if len(out.Answers) >= constants.MaxAnswerCount {
			break
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// Generate produces a plan for the given input. Request, parse, and
// validation failures all resolve to the fallback plan; the error return
// is reserved for the degenerate case of empty input.
func (g *Generator) Generate(ctx context.Context, in models.GoalInput) (*models.Plan, error) {
	in = Sanitize(in)
	if in.Goal == "" {
		return nil, fmt.Errorf("goal cannot be empty")
	}

	plan := g.requestPlan(ctx, in)
	if plan == nil {
		logger.Warn("Plan generation failed, using fallback plan", "goal", in.Goal)
		plan = fallbackPlan(in.Goal)
	}

	plan.ID = uuid.New().String()
	plan.Goal = in.Goal
	plan.Timeline = in.Timeline
	plan.TimeCommitment = in.TimeCommitment
	plan.CreatedAt = g.now()
	assignIDs(plan, planSeed(in))
	return plan, nil
}

// requestPlan runs the completion round-trip. Returns nil on any failure.
func (g *Generator) requestPlan(ctx context.Context, in models.GoalInput) *models.Plan {
	if g.client == nil {
		return nil
	}

	raw, err := g.client.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(in)},
	})
	if err != nil {
		logger.Warn("Completion request failed", "error", err)
		return nil
	}

	wp, err := parseWirePlan(raw)
	if err != nil {
		logger.Warn("Completion response unusable", "error", err)
		return nil
	}

	plan := &models.Plan{}
	for _, ph := range wp.Phases {
		phase := models.Phase{Title: ph.Title, Description: ph.Description}
		for _, ms := range ph.Milestones {
			milestone := models.Milestone{Title: ms.Title, Description: ms.Description}
			for _, t := range ms.Tasks {
				milestone.Tasks = append(milestone.Tasks, models.Task{
					Title:         t.Title,
					Description:   t.Description,
					EstimatedTime: t.estimate(),
				})
			}
			phase.Milestones = append(phase.Milestones, milestone)
		}
		plan.Phases = append(plan.Phases, phase)
	}
	return plan
}

func buildUserPrompt(in models.GoalInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", in.Goal)
	if in.Timeline != "" {
		fmt.Fprintf(&b, "Timeline: %s\n", in.Timeline)
	}
	if in.TimeCommitment != "" {
		fmt.Fprintf(&b, "Time commitment: %s\n", in.TimeCommitment)
	}
	fmt.Fprintf(&b, "Domain: %s\n", inferIndustry(in.Goal, in.Answers))
	for _, a := range in.Answers {
		fmt.Fprintf(&b, "Context: %s\n", a)
	}
	return b.String()
}
