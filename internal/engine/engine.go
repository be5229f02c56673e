// Package engine owns the progression state (plan, completed tasks,
// timers, streak) and coordinates every mutation with write-through
// persistence, notification scheduling, and sync triggers.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/duration"
	"github.com/waypointhq/waypoint-cli/internal/logger"
	"github.com/waypointhq/waypoint-cli/internal/models"
	"github.com/waypointhq/waypoint-cli/internal/notify"
	"github.com/waypointhq/waypoint-cli/internal/progress"
	"github.com/waypointhq/waypoint-cli/internal/storage"
	"github.com/waypointhq/waypoint-cli/internal/streak"
)

// SyncTrigger is the slice of the sync coordinator the engine drives.
// Low-importance mutations debounce; high-value ones force a push.
type SyncTrigger interface {
	Debounced()
	SyncNow(ctx context.Context, force bool)
}

// Progress is a snapshot of a running timer for display.
type Progress struct {
	ElapsedMs  int64
	TotalMs    int64
	Percentage float64
}

// Engine is the single owner of all mutable progression state. Every
// mutation persists before (or with) any sync attempt, so durable storage
// is always at least as fresh as the last completed operation.
type Engine struct {
	mu    sync.Mutex
	store storage.Provider
	sched notify.Scheduler
	sync  SyncTrigger
	now   func() time.Time

	input     models.GoalInput
	plan      *models.Plan
	index     *progress.Index
	completed progress.CompletedSet
	timers    map[string]models.TaskTimer

	streakRec models.StreakRecord

	// fallbackFired tracks which timer instances already received the
	// immediate fallback notification, keyed by InstanceKey.
	fallbackFired map[string]bool
}

// New wires an engine over a loaded storage provider. sched and syncer
// may be nil; the engine then runs without notifications or remote sync.
func New(store storage.Provider, sched notify.Scheduler, syncer SyncTrigger) *Engine {
	return &Engine{
		store:         store,
		sched:         sched,
		sync:          syncer,
		now:           time.Now,
		completed:     progress.CompletedSet{},
		timers:        map[string]models.TaskTimer{},
		fallbackFired: map[string]bool{},
	}
}

// Load hydrates the engine from durable storage.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	input, err := e.store.GetGoalInput()
	if err != nil {
		return err
	}
	plan, err := e.store.GetPlan()
	if err != nil {
		return err
	}
	completed, err := e.store.GetCompletedTasks()
	if err != nil {
		return err
	}
	timers, err := e.store.GetTimers()
	if err != nil {
		return err
	}
	rec, err := e.store.GetStreak()
	if err != nil {
		return err
	}

	e.input = input
	e.plan = plan
	e.index = progress.NewIndex(plan)
	e.completed = progress.NewCompletedSet(completed)
	e.timers = make(map[string]models.TaskTimer, len(timers))
	for _, t := range timers {
		e.timers[t.TaskID] = t
	}
	e.streakRec = rec
	return nil
}

// Plan returns the loaded plan, or nil.
func (e *Engine) Plan() *models.Plan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.plan
}

// GoalInput returns the stored goal input.
func (e *Engine) GoalInput() models.GoalInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input
}

// SetGoalInput persists new goal input.
func (e *Engine) SetGoalInput(in models.GoalInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.SaveGoalInput(in); err != nil {
		return err
	}
	e.input = in
	return nil
}

// SetPlan replaces the plan wholesale. Timers and completed tasks are
// invalidated: task identity does not survive regeneration. Plan creation
// is a high-value mutation, so it forces an immediate sync.
func (e *Engine) SetPlan(ctx context.Context, plan *models.Plan) error {
	e.mu.Lock()

	for _, t := range e.timers {
		e.cancelNotificationLocked(&t)
	}
	e.timers = map[string]models.TaskTimer{}
	e.completed = progress.CompletedSet{}
	e.fallbackFired = map[string]bool{}
	e.plan = plan
	e.index = progress.NewIndex(plan)

	if err := e.store.SavePlan(plan); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.persistTimersLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.store.SaveCompletedTasks(nil); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	if e.sync != nil {
		e.sync.SyncNow(ctx, true)
	}
	return nil
}

// Task resolves a task id against the loaded plan.
func (e *Engine) Task(taskID string) (models.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Task(taskID)
}

// IsTaskUnlocked reports unlock status for the task at (p, m, t).
func (e *Engine) IsTaskUnlocked(p, m, t int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return progress.IsTaskUnlocked(e.index, e.completed, p, m, t)
}

// IsMilestoneUnlocked reports unlock status for milestone (p, m).
func (e *Engine) IsMilestoneUnlocked(p, m int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return progress.IsMilestoneUnlocked(e.index, e.completed, p, m)
}

// IsPhaseUnlocked reports unlock status for phase p.
func (e *Engine) IsPhaseUnlocked(p int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return progress.IsPhaseUnlocked(e.index, e.completed, p)
}

// IsCompleted reports whether the task id is in the completed set.
func (e *Engine) IsCompleted(taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed[taskID]
}

// CompletedTasks returns the completed task ids.
func (e *Engine) CompletedTasks() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed.IDs()
}

// StartTimer starts a countdown for the task using its free-form time
// estimate. A task with an already active timer is a no-op. The prior
// timer record for the task, if any, is replaced, and its leftover
// notification cancelled.
func (e *Engine) StartTimer(taskID, estimateText string) error {
	e.mu.Lock()

	task, ok := e.index.Task(taskID)
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("unknown task %q", taskID)
	}

	if prior, ok := e.timers[taskID]; ok {
		if prior.Active {
			e.mu.Unlock()
			return nil
		}
		e.cancelNotificationLocked(&prior)
	}

	minutes := duration.ParseMinutes(estimateText)
	delay := time.Duration(minutes) * time.Minute

	handle := ""
	if e.sched != nil && delay >= constants.MinNotificationDelay {
		h, err := e.sched.Schedule("Time's up!", task.Title+" should be done", delay, taskID)
		if err != nil {
			// Scheduling failure degrades to the watch-loop fallback.
			logger.Warn("Failed to schedule completion notification", "task", taskID, "error", err)
		} else {
			handle = h
		}
	}

	e.timers[taskID] = models.TaskTimer{
		TaskID:             taskID,
		StartTime:          e.now(),
		DurationMin:        minutes,
		Active:             true,
		NotificationHandle: handle,
	}

	if err := e.persistTimersLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	if e.sync != nil {
		e.sync.Debounced()
	}
	return nil
}

// StopTimer marks the task's timer inactive and cancels its notification.
// The record is kept; a stopped timer can be restarted.
func (e *Engine) StopTimer(taskID string) error {
	e.mu.Lock()

	t, ok := e.timers[taskID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("no timer for task %q", taskID)
	}

	e.cancelNotificationLocked(&t)
	t.Active = false
	e.timers[taskID] = t

	if err := e.persistTimersLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	if e.sync != nil {
		e.sync.Debounced()
	}
	return nil
}

// TimerComplete reports whether the task's active timer has fully
// elapsed. No tolerance is applied. False when no active timer exists.
func (e *Engine) TimerComplete(taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.timers[taskID]
	if !ok || !t.Active {
		return false
	}
	return t.CompleteAt(e.now())
}

// TimerProgress returns elapsed/total/percentage for the task's timer.
func (e *Engine) TimerProgress(taskID string) (Progress, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.timers[taskID]
	if !ok {
		return Progress{}, false
	}

	elapsed := t.Elapsed(e.now()).Milliseconds()
	total := t.Duration().Milliseconds()
	pct := 0.0
	if total > 0 {
		pct = float64(elapsed) / float64(total) * 100
		if pct > 100 {
			pct = 100
		}
	}
	return Progress{ElapsedMs: elapsed, TotalMs: total, Percentage: pct}, true
}

// Timer returns the task's timer record, if one exists.
func (e *Engine) Timer(taskID string) (models.TaskTimer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.timers[taskID]
	return t, ok
}

// Toggle flips the task's completion state. A running, unfinished timer
// blocks completion and the toggle is refused. Completing a task marks
// its timer done, cancels the pending notification, updates the streak,
// and forces an immediate sync; un-completing only debounces.
func (e *Engine) Toggle(ctx context.Context, taskID string) bool {
	e.mu.Lock()

	if _, ok := e.index.Lookup(taskID); !ok {
		e.mu.Unlock()
		return false
	}

	if t, ok := e.timers[taskID]; ok && t.Active && !t.CompleteAt(e.now()) {
		e.mu.Unlock()
		return false
	}

	if e.completed[taskID] {
		delete(e.completed, taskID)
		if err := e.store.SaveCompletedTasks(e.completed.IDs()); err != nil {
			logger.Error("Failed to persist completed tasks", "error", err)
			e.mu.Unlock()
			return false
		}
		e.mu.Unlock()
		if e.sync != nil {
			e.sync.Debounced()
		}
		return true
	}

	e.completed[taskID] = true
	if err := e.store.SaveCompletedTasks(e.completed.IDs()); err != nil {
		logger.Error("Failed to persist completed tasks", "error", err)
		delete(e.completed, taskID)
		e.mu.Unlock()
		return false
	}

	if t, ok := e.timers[taskID]; ok {
		e.cancelNotificationLocked(&t)
		t.Active = false
		t.Completed = true
		e.timers[taskID] = t
		if err := e.persistTimersLocked(); err != nil {
			logger.Error("Failed to persist timers", "error", err)
		}
	}

	e.streakRec = streak.Record(e.streakRec, e.now())
	if err := e.store.SaveStreak(e.streakRec); err != nil {
		logger.Error("Failed to persist streak", "error", err)
	}
	e.mu.Unlock()

	if e.sync != nil {
		e.sync.SyncNow(ctx, true)
	}
	return true
}

// CurrentStreak returns the live streak count: 0 when the last completion
// is older than yesterday, without mutating the stored record.
func (e *Engine) CurrentStreak() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return streak.Current(e.streakRec, e.now())
}

// CheckTimers scans active timers for the incomplete-to-complete
// transition and fires an immediate fallback notification for timers
// whose scheduled notification failed at start time. At most one fallback
// fires per timer instance, and never before the strict completion
// condition holds.
func (e *Engine) CheckTimers() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sched == nil || e.plan == nil {
		return
	}

	now := e.now()
	for id, t := range e.timers {
		if !t.Active || t.Completed || !t.CompleteAt(now) {
			continue
		}
		if t.NotificationHandle != "" {
			continue
		}
		key := t.InstanceKey()
		if e.fallbackFired[key] {
			continue
		}
		e.fallbackFired[key] = true

		title := id
		if task, ok := e.index.Task(id); ok {
			title = task.Title
		}
		if _, err := e.sched.Schedule("Time's up!", title+" should be done", 0, id); err != nil {
			logger.Warn("Fallback notification failed", "task", id, "error", err)
		}
	}
}

// Reset clears all local state. High-value mutation: forces a sync so the
// remote record reflects at least the subscription metadata.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()

	for _, t := range e.timers {
		e.cancelNotificationLocked(&t)
	}
	if err := e.store.Reset(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.input = models.GoalInput{}
	e.plan = nil
	e.index = nil
	e.completed = progress.CompletedSet{}
	e.timers = map[string]models.TaskTimer{}
	e.streakRec = models.StreakRecord{}
	e.fallbackFired = map[string]bool{}
	e.mu.Unlock()

	if e.sync != nil {
		e.sync.SyncNow(ctx, true)
	}
	return nil
}

// cancelNotificationLocked best-effort cancels the timer's scheduled
// notification and clears the handle. Callers hold e.mu.
func (e *Engine) cancelNotificationLocked(t *models.TaskTimer) {
	if t.NotificationHandle == "" || e.sched == nil {
		return
	}
	if err := e.sched.Cancel(t.NotificationHandle); err != nil {
		logger.Warn("Failed to cancel notification", "task", t.TaskID, "error", err)
	}
	t.NotificationHandle = ""
}

func (e *Engine) persistTimersLocked() error {
	timers := make([]models.TaskTimer, 0, len(e.timers))
	for _, t := range e.timers {
		timers = append(timers, t)
	}
	return e.store.SaveTimers(timers)
}
