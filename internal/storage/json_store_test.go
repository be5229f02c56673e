package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/models"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "waypoint.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return store
}

func TestJSONStoreGoalInputRoundtrip(t *testing.T) {
	store := setupJSONStore(t)

	in := models.GoalInput{
		Goal:           "Learn guitar",
		Timeline:       "3 months",
		TimeCommitment: "30 minutes a day",
		Answers:        []string{"acoustic", "complete beginner"},
	}
	if err := store.SaveGoalInput(in); err != nil {
		t.Fatalf("SaveGoalInput() failed: %v", err)
	}

	got, err := store.GetGoalInput()
	if err != nil {
		t.Fatalf("GetGoalInput() failed: %v", err)
	}
	if got.Goal != in.Goal || got.Timeline != in.Timeline || got.TimeCommitment != in.TimeCommitment {
		t.Errorf("GetGoalInput() = %+v, want %+v", got, in)
	}
	if len(got.Answers) != 2 || got.Answers[0] != "acoustic" {
		t.Errorf("Answers = %v, want %v", got.Answers, in.Answers)
	}
}

func TestJSONStorePlanRoundtrip(t *testing.T) {
	store := setupJSONStore(t)

	plan, err := store.GetPlan()
	if err != nil {
		t.Fatalf("GetPlan() failed: %v", err)
	}
	if plan != nil {
		t.Fatal("fresh store should have no plan")
	}

	saved := &models.Plan{
		ID:   "abc",
		Goal: "Learn guitar",
		Phases: []models.Phase{{
			ID:    "abc-0",
			Title: "Foundations",
			Milestones: []models.Milestone{{
				ID:    "abc-0-0",
				Tasks: []models.Task{{ID: "abc-0-0-0", Title: "Buy a guitar"}},
			}},
		}},
		CreatedAt: time.Now(),
	}
	if err := store.SavePlan(saved); err != nil {
		t.Fatalf("SavePlan() failed: %v", err)
	}

	plan, err = store.GetPlan()
	if err != nil {
		t.Fatalf("GetPlan() failed: %v", err)
	}
	if plan == nil || plan.ID != "abc" || len(plan.Phases) != 1 {
		t.Errorf("GetPlan() = %+v, want saved plan", plan)
	}

	// Clearing the plan reads back as nil.
	if err := store.SavePlan(nil); err != nil {
		t.Fatalf("SavePlan(nil) failed: %v", err)
	}
	plan, err = store.GetPlan()
	if err != nil {
		t.Fatalf("GetPlan() failed: %v", err)
	}
	if plan != nil {
		t.Error("cleared plan should read back as nil")
	}
}

func TestJSONStoreToleratesMalformedValues(t *testing.T) {
	store := setupJSONStore(t)

	// Corrupt individual entries directly.
	for _, key := range []string{KeyPlan, KeyCompletedTasks, KeyTimers, KeyStreak, KeyAnswers} {
		if err := store.set(key, "{not valid json"); err != nil {
			t.Fatalf("set(%s) failed: %v", key, err)
		}
	}

	if plan, err := store.GetPlan(); err != nil || plan != nil {
		t.Errorf("GetPlan() = %v, %v; want nil, nil", plan, err)
	}
	if ids, err := store.GetCompletedTasks(); err != nil || len(ids) != 0 {
		t.Errorf("GetCompletedTasks() = %v, %v; want empty, nil", ids, err)
	}
	if timers, err := store.GetTimers(); err != nil || len(timers) != 0 {
		t.Errorf("GetTimers() = %v, %v; want empty, nil", timers, err)
	}
	if rec, err := store.GetStreak(); err != nil || rec.Count != 0 {
		t.Errorf("GetStreak() = %+v, %v; want zero record, nil", rec, err)
	}
	if in, err := store.GetGoalInput(); err != nil || len(in.Answers) != 0 {
		t.Errorf("GetGoalInput() answers = %v, %v; want empty, nil", in.Answers, err)
	}
}

func TestJSONStoreLoadToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypoint.json")
	if err := os.WriteFile(path, []byte("~~ not json ~~"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() of corrupt file failed: %v", err)
	}
	if plan, err := store.GetPlan(); err != nil || plan != nil {
		t.Errorf("GetPlan() after corrupt load = %v, %v; want nil, nil", plan, err)
	}
}

func TestJSONStoreReset(t *testing.T) {
	store := setupJSONStore(t)

	if err := store.SaveCompletedTasks([]string{"a", "b"}); err != nil {
		t.Fatalf("SaveCompletedTasks() failed: %v", err)
	}
	if err := store.SaveStreak(models.StreakRecord{LastCompletionDate: "2025-03-10", Count: 4}); err != nil {
		t.Fatalf("SaveStreak() failed: %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	ids, err := store.GetCompletedTasks()
	if err != nil || len(ids) != 0 {
		t.Errorf("GetCompletedTasks() after reset = %v, %v", ids, err)
	}
	rec, err := store.GetStreak()
	if err != nil || rec.Count != 0 {
		t.Errorf("GetStreak() after reset = %+v, %v", rec, err)
	}
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() of missing file should fail with init hint")
	}
}
