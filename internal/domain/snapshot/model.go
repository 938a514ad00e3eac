package snapshot

import "time"

// Metrics is the cheap store summary a check cycle compares against the last
// persisted snapshot. CurrentGameweek is 0 and CurrentDeadline nil when no
// period is flagged current (a valid between-seasons state).
type Metrics struct {
	FinishedCount       int        `json:"finished_count"`
	CurrentGameweek     int64      `json:"current_gameweek"`
	CurrentDeadline     *time.Time `json:"current_deadline,omitempty"`
	LastDeadlineRefresh *time.Time `json:"last_deadline_refresh,omitempty"`
}

// Snapshot is the single local state document, fully overwritten each cycle.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Metrics   Metrics   `json:"metrics"`
}
