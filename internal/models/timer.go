package models

import "time"

// TaskTimer is the countdown state for a single task. At most one timer
// exists per task; starting a new timer replaces any prior record.
type TaskTimer struct {
	TaskID             string    `json:"task_id"`
	StartTime          time.Time `json:"start_time"`
	DurationMin        int       `json:"duration_min"`
	Active             bool      `json:"active"`
	Completed          bool      `json:"completed"`
	NotificationHandle string    `json:"notification_handle,omitempty"`
}

// Duration returns the timer's countdown duration.
func (t TaskTimer) Duration() time.Duration {
	return time.Duration(t.DurationMin) * time.Minute
}

// Elapsed returns the time elapsed since the timer started, clamped to >= 0.
func (t TaskTimer) Elapsed(now time.Time) time.Duration {
	d := now.Sub(t.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// CompleteAt reports whether the timer has fully elapsed at the given
// instant. The check is strict: a timer one millisecond short is not
// complete, regardless of polling jitter.
func (t TaskTimer) CompleteAt(now time.Time) bool {
	return now.Sub(t.StartTime) >= t.Duration()
}

// InstanceKey identifies this specific timer instance. Restarting a task's
// timer yields a new key, so per-instance tracking (e.g. the one-shot
// fallback notification) does not leak across restarts.
func (t TaskTimer) InstanceKey() string {
	return t.TaskID + "@" + t.StartTime.UTC().Format(time.RFC3339Nano)
}
