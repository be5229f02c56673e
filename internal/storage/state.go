package storage

import (
	"encoding/json"
	"fmt"

	"github.com/waypointhq/waypoint-cli/internal/logger"
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// kvStore is the low-level contract each backend implements: string values
// by key, with a missing key reading as the empty string.
type kvStore interface {
	get(key string) (string, error)
	set(key, value string) error
	clear() error
}

// stateStore layers the typed Provider accessors over a kvStore so the
// JSON/SQLite/Postgres backends share one encoding discipline.
type stateStore struct {
	kv kvStore
}

// decode unmarshals raw into out, tolerating malformed payloads. On a
// decode failure the corruption is logged and out keeps whatever the
// caller initialized it to (the zero value).
func decode(key, raw string, out any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("Discarding malformed stored value", "key", key, "error", err)
	}
}

func (s stateStore) GetGoalInput() (models.GoalInput, error) {
	var in models.GoalInput
	var err error
	if in.Goal, err = s.kv.get(KeyGoal); err != nil {
		return models.GoalInput{}, err
	}
	if in.Timeline, err = s.kv.get(KeyTimeline); err != nil {
		return models.GoalInput{}, err
	}
	if in.TimeCommitment, err = s.kv.get(KeyTimeCommitment); err != nil {
		return models.GoalInput{}, err
	}
	raw, err := s.kv.get(KeyAnswers)
	if err != nil {
		return models.GoalInput{}, err
	}
	decode(KeyAnswers, raw, &in.Answers)
	return in, nil
}

func (s stateStore) SaveGoalInput(in models.GoalInput) error {
	if err := s.kv.set(KeyGoal, in.Goal); err != nil {
		return err
	}
	if err := s.kv.set(KeyTimeline, in.Timeline); err != nil {
		return err
	}
	if err := s.kv.set(KeyTimeCommitment, in.TimeCommitment); err != nil {
		return err
	}
	return s.setJSON(KeyAnswers, in.Answers)
}

// GetPlan returns the stored plan, or nil when none is stored (or the
// stored value is unreadable).
func (s stateStore) GetPlan() (*models.Plan, error) {
	raw, err := s.kv.get(KeyPlan)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var plan models.Plan
	decode(KeyPlan, raw, &plan)
	if len(plan.Phases) == 0 {
		return nil, nil
	}
	return &plan, nil
}

func (s stateStore) SavePlan(plan *models.Plan) error {
	if plan == nil {
		return s.kv.set(KeyPlan, "")
	}
	return s.setJSON(KeyPlan, plan)
}

func (s stateStore) GetCompletedTasks() ([]string, error) {
	raw, err := s.kv.get(KeyCompletedTasks)
	if err != nil {
		return nil, err
	}
	var ids []string
	decode(KeyCompletedTasks, raw, &ids)
	return ids, nil
}

func (s stateStore) SaveCompletedTasks(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.setJSON(KeyCompletedTasks, ids)
}

func (s stateStore) GetTimers() ([]models.TaskTimer, error) {
	raw, err := s.kv.get(KeyTimers)
	if err != nil {
		return nil, err
	}
	var timers []models.TaskTimer
	decode(KeyTimers, raw, &timers)
	return timers, nil
}

func (s stateStore) SaveTimers(timers []models.TaskTimer) error {
	if timers == nil {
		timers = []models.TaskTimer{}
	}
	return s.setJSON(KeyTimers, timers)
}

func (s stateStore) GetStreak() (models.StreakRecord, error) {
	raw, err := s.kv.get(KeyStreak)
	if err != nil {
		return models.StreakRecord{}, err
	}
	var rec models.StreakRecord
	decode(KeyStreak, raw, &rec)
	return rec, nil
}

func (s stateStore) SaveStreak(rec models.StreakRecord) error {
	return s.setJSON(KeyStreak, rec)
}

func (s stateStore) GetSubscription() (models.Subscription, error) {
	raw, err := s.kv.get(KeySubscription)
	if err != nil {
		return models.Subscription{}, err
	}
	var sub models.Subscription
	decode(KeySubscription, raw, &sub)
	return sub, nil
}

func (s stateStore) SaveSubscription(sub models.Subscription) error {
	return s.setJSON(KeySubscription, sub)
}

func (s stateStore) Reset() error {
	return s.kv.clear()
}

func (s stateStore) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return s.kv.set(key, string(data))
}
