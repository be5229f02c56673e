// Package progress answers unlock queries over a plan tree and the set of
// completed task ids. All functions are pure reads; timer state never
// influences unlock status.
package progress

import "github.com/waypointhq/waypoint-cli/internal/models"

// Triple is the (phase, milestone, task) position of a task in the plan.
type Triple struct {
	Phase     int
	Milestone int
	Task      int
}

// CompletedSet is the set of completed task ids.
type CompletedSet map[string]bool

// NewCompletedSet builds a set from a slice of task ids.
func NewCompletedSet(ids []string) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// IDs returns the set as a sorted-insertion-free slice for persistence.
func (s CompletedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id, ok := range s {
		if ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Index is a flat lookup over one plan: task id -> position triple and
// position triple -> task. Built once per plan load so unlock checks and
// title lookups avoid rescanning the tree.
type Index struct {
	plan     *models.Plan
	byID     map[string]Triple
	byTriple map[Triple]models.Task
}

// NewIndex builds the flat index for a plan. A nil plan yields a nil
// index, on which every unlock query answers locked.
func NewIndex(plan *models.Plan) *Index {
	if plan == nil {
		return nil
	}
	idx := &Index{
		plan:     plan,
		byID:     make(map[string]Triple),
		byTriple: make(map[Triple]models.Task),
	}
	for p, phase := range plan.Phases {
		for m, ms := range phase.Milestones {
			for t, task := range ms.Tasks {
				tr := Triple{Phase: p, Milestone: m, Task: t}
				idx.byID[task.ID] = tr
				idx.byTriple[tr] = task
			}
		}
	}
	return idx
}

// Plan returns the indexed plan, or nil.
func (x *Index) Plan() *models.Plan {
	if x == nil {
		return nil
	}
	return x.plan
}

// Lookup resolves a task id to its position triple.
func (x *Index) Lookup(id string) (Triple, bool) {
	if x == nil {
		return Triple{}, false
	}
	tr, ok := x.byID[id]
	return tr, ok
}

// Task resolves a task id to the task itself.
func (x *Index) Task(id string) (models.Task, bool) {
	tr, ok := x.Lookup(id)
	if !ok {
		return models.Task{}, false
	}
	return x.byTriple[tr], true
}

// TaskAt returns the task at a position triple.
func (x *Index) TaskAt(p, m, t int) (models.Task, bool) {
	if x == nil {
		return models.Task{}, false
	}
	task, ok := x.byTriple[Triple{Phase: p, Milestone: m, Task: t}]
	return task, ok
}

// IsPhaseUnlocked reports whether phase p is unlocked. The first phase is
// always unlocked; a later phase unlocks only once every task in every
// milestone of the immediately preceding phase is completed.
func IsPhaseUnlocked(x *Index, done CompletedSet, p int) bool {
	if x == nil || p < 0 || p >= len(x.plan.Phases) {
		return false
	}
	if p == 0 {
		return true
	}
	return milestoneRangeComplete(x.plan.Phases[p-1], done)
}

// IsMilestoneUnlocked reports whether milestone (p, m) is unlocked. The
// first milestone of a phase follows the phase's unlock state; a later
// milestone unlocks only once every task in the immediately preceding
// milestone of the same phase is completed.
func IsMilestoneUnlocked(x *Index, done CompletedSet, p, m int) bool {
	if x == nil || p < 0 || p >= len(x.plan.Phases) {
		return false
	}
	phase := x.plan.Phases[p]
	if m < 0 || m >= len(phase.Milestones) {
		return false
	}
	if m == 0 {
		return IsPhaseUnlocked(x, done, p)
	}
	return tasksComplete(phase.Milestones[m-1].Tasks, done)
}

// IsTaskUnlocked reports whether task (p, m, t) is unlocked. The first
// task of a milestone follows the milestone's unlock state; a later task
// unlocks only once the immediately preceding task in the same milestone
// is completed. Completing a task out of order never skips the gate.
func IsTaskUnlocked(x *Index, done CompletedSet, p, m, t int) bool {
	if x == nil || p < 0 || p >= len(x.plan.Phases) {
		return false
	}
	phase := x.plan.Phases[p]
	if m < 0 || m >= len(phase.Milestones) {
		return false
	}
	ms := phase.Milestones[m]
	if t < 0 || t >= len(ms.Tasks) {
		return false
	}
	if t == 0 {
		return IsMilestoneUnlocked(x, done, p, m)
	}
	return done[ms.Tasks[t-1].ID]
}

func milestoneRangeComplete(phase models.Phase, done CompletedSet) bool {
	for _, ms := range phase.Milestones {
		if !tasksComplete(ms.Tasks, done) {
			return false
		}
	}
	return true
}

func tasksComplete(tasks []models.Task, done CompletedSet) bool {
	for _, task := range tasks {
		if !done[task.ID] {
			return false
		}
	}
	return true
}
