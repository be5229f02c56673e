package streak

import (
	"testing"
	"time"

	"github.com/waypointhq/waypoint-cli/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestRecordConsecutiveDays(t *testing.T) {
	var rec models.StreakRecord

	rec = Record(rec, day(2025, time.March, 10))
	if rec.Count != 1 {
		t.Fatalf("first completion: count = %d, want 1", rec.Count)
	}

	rec = Record(rec, day(2025, time.March, 11))
	if rec.Count != 2 {
		t.Fatalf("next-day completion: count = %d, want 2", rec.Count)
	}
	if got := Current(rec, day(2025, time.March, 11)); got != 2 {
		t.Errorf("Current = %d, want 2", got)
	}
}

func TestRecordSameDayIsNoop(t *testing.T) {
	var rec models.StreakRecord
	d := day(2025, time.March, 10)

	rec = Record(rec, d)
	rec = Record(rec, d)
	rec = Record(rec, d)
	if rec.Count != 1 {
		t.Errorf("repeat completions same day: count = %d, want 1", rec.Count)
	}
}

func TestRecordGapResetsToOne(t *testing.T) {
	var rec models.StreakRecord

	rec = Record(rec, day(2025, time.March, 10))
	rec = Record(rec, day(2025, time.March, 11))
	// Skip the 12th entirely.
	rec = Record(rec, day(2025, time.March, 13))
	if rec.Count != 1 {
		t.Errorf("completion after a gap: count = %d, want 1", rec.Count)
	}
}

func TestCurrentLapsesWithoutMutating(t *testing.T) {
	rec := models.StreakRecord{LastCompletionDate: "2025-03-10", Count: 7}

	if got := Current(rec, day(2025, time.March, 11)); got != 7 {
		t.Errorf("streak still alive yesterday: Current = %d, want 7", got)
	}
	if got := Current(rec, day(2025, time.March, 13)); got != 0 {
		t.Errorf("lapsed streak: Current = %d, want 0", got)
	}
	// The lapse is a read-side view only.
	if rec.Count != 7 || rec.LastCompletionDate != "2025-03-10" {
		t.Errorf("stored record mutated by query: %+v", rec)
	}
}

func TestCurrentEmptyRecord(t *testing.T) {
	if got := Current(models.StreakRecord{}, day(2025, time.March, 10)); got != 0 {
		t.Errorf("empty record: Current = %d, want 0", got)
	}
}

func TestRecordAcrossMonthBoundary(t *testing.T) {
	var rec models.StreakRecord
	rec = Record(rec, day(2025, time.January, 31))
	rec = Record(rec, day(2025, time.February, 1))
	if rec.Count != 2 {
		t.Errorf("month boundary: count = %d, want 2", rec.Count)
	}
}
