package syncer

import (
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// BuildPayload projects local state into the partial upsert sent to the
// remote store. Empty fields are omitted entirely rather than sent as
// empty values, so a push made before local state has loaded can never
// erase previously synced data. Subscription metadata is always included.
func BuildPayload(in models.GoalInput, plan *models.Plan, completed []string, streak models.StreakRecord, sub models.Subscription) map[string]any {
	payload := map[string]any{
		"subscription": map[string]any{
			"premium": sub.Premium,
			"tier":    sub.Tier,
			"source":  sub.Source,
		},
	}

	if in.Goal != "" {
		payload["goal"] = in.Goal
	}
	if in.Timeline != "" {
		payload["timeline"] = in.Timeline
	}
	if in.TimeCommitment != "" {
		payload["time_commitment"] = in.TimeCommitment
	}
	if len(in.Answers) > 0 {
		payload["answers"] = in.Answers
	}
	if plan != nil && len(plan.Phases) > 0 {
		payload["plan"] = plan
	}
	if len(completed) > 0 {
		payload["completed_tasks"] = completed
	}
	if streak.Count > 0 && streak.LastCompletionDate != "" {
		payload["streak"] = streak
	}

	return payload
}
