package models

// StreakRecord tracks the daily completion streak. It is updated only on
// the first task completion of a given calendar day.
type StreakRecord struct {
	LastCompletionDate string `json:"last_completion_date,omitempty"` // YYYY-MM-DD, device-local
	Count              int    `json:"count"`
}
