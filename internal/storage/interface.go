package storage

import "github.com/waypointhq/waypoint-cli/internal/models"

// Provider is the durable-storage contract every backend satisfies. Each
// slice of engine state is persisted under its own key; reads tolerate
// malformed stored JSON by falling back to the zero value instead of
// failing, so a corrupt entry can never wedge startup.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Goal input
	GetGoalInput() (models.GoalInput, error)
	SaveGoalInput(models.GoalInput) error

	// Plan
	GetPlan() (*models.Plan, error)
	SavePlan(*models.Plan) error

	// Completed task ids
	GetCompletedTasks() ([]string, error)
	SaveCompletedTasks([]string) error

	// Timers
	GetTimers() ([]models.TaskTimer, error)
	SaveTimers([]models.TaskTimer) error

	// Streak
	GetStreak() (models.StreakRecord, error)
	SaveStreak(models.StreakRecord) error

	// Subscription metadata
	GetSubscription() (models.Subscription, error)
	SaveSubscription(models.Subscription) error

	// Reset clears every stored key (full-state reset).
	Reset() error

	// Utils
	GetConfigPath() string
}

// Stable key names for persisted state.
const (
	KeyGoal           = "goal"
	KeyTimeline       = "timeline"
	KeyTimeCommitment = "time_commitment"
	KeyAnswers        = "answers"
	KeyPlan           = "plan"
	KeyCompletedTasks = "completed_tasks"
	KeyStreak         = "streak"
	KeyTimers         = "timers"
	KeySubscription   = "subscription"
)
