// Package streak implements the daily completion streak as pure date
// arithmetic over a (last-completion-date, count) record.
package streak

import (
	"time"

	"github.com/waypointhq/waypoint-cli/internal/constants"
	"github.com/waypointhq/waypoint-cli/internal/models"
)

// Record applies a completion event on the given day. Consecutive-day
// completions increment the count, repeat completions on the same day are
// no-ops, and anything else resets the streak to 1.
func Record(rec models.StreakRecord, today time.Time) models.StreakRecord {
	day := today.Format(constants.DateFormat)
	yesterday := today.AddDate(0, 0, -1).Format(constants.DateFormat)

	switch rec.LastCompletionDate {
	case day:
		return rec
	case yesterday:
		rec.Count++
	default:
		rec.Count = 1
	}
	rec.LastCompletionDate = day
	return rec
}

// Current returns the live streak count for the given day. A record whose
// last completion is older than yesterday has lapsed and reads as 0; the
// stored record is left untouched so the reset only materializes on the
// next real completion.
func Current(rec models.StreakRecord, today time.Time) int {
	if rec.LastCompletionDate == "" {
		return 0
	}
	day := today.Format(constants.DateFormat)
	yesterday := today.AddDate(0, 0, -1).Format(constants.DateFormat)
	if rec.LastCompletionDate == day || rec.LastCompletionDate == yesterday {
		return rec.Count
	}
	return 0
}
