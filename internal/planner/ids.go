package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/models"
)

// planSeed derives a short stable prefix from the generation inputs, so
// regenerating the same goal yields the same task ids while two different
// goals with identically shaped plans get distinct ids.
func planSeed(in models.GoalInput) string {
	sum := sha256.Sum256([]byte(in.Goal + "|" + in.Timeline + "|" + in.TimeCommitment))
	return hex.EncodeToString(sum[:])[:8]
}

// assignIDs stamps deterministic positional ids onto every phase,
// milestone, and task of the plan.
func assignIDs(plan *models.Plan, seed string) {
	for p := range plan.Phases {
		plan.Phases[p].ID = fmt.Sprintf("%s-%d", seed, p)
		for m := range plan.Phases[p].Milestones {
			plan.Phases[p].Milestones[m].ID = fmt.Sprintf("%s-%d-%d", seed, p, m)
			for t := range plan.Phases[p].Milestones[m].Tasks {
				plan.Phases[p].Milestones[m].Tasks[t].ID = fmt.Sprintf("%s-%d-%d-%d", seed, p, m, t)
			}
		}
	}
}
