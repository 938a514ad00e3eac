package usecase

import (
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
)

// ChangeDecision is the detector's verdict for one cycle. ConsumedDeadline is
// set when the deadline trigger fired, so the persisted snapshot can record
// that deadline as spent.
type ChangeDecision struct {
	Refresh          bool
	Reasons          []string
	ConsumedDeadline *time.Time
}

// ChangeDetector decides whether a refresh is warranted. It is a pure
// function of (current, previous) metrics; the clock is injectable for tests.
type ChangeDetector struct {
	location *time.Location
	grace    time.Duration
	now      func() time.Time
}

func NewChangeDetector(location *time.Location, grace time.Duration) *ChangeDetector {
	if location == nil {
		location = time.UTC
	}
	return &ChangeDetector{
		location: location,
		grace:    grace,
		now:      time.Now,
	}
}

// Detect evaluates the two trigger conditions with OR semantics. previous is
// nil on the very first run; the finished-count trigger needs a baseline to
// compare against, the deadline trigger does not.
func (d *ChangeDetector) Detect(current snapshot.Metrics, previous *snapshot.Metrics) ChangeDecision {
	var decision ChangeDecision

	if previous != nil && current.FinishedCount > previous.FinishedCount {
		decision.Refresh = true
		decision.Reasons = append(decision.Reasons,
			fmt.Sprintf("finished gameweeks %d -> %d", previous.FinishedCount, current.FinishedCount))
	}

	if deadline := d.elapsedDeadline(current, previous); deadline != nil {
		decision.Refresh = true
		decision.ConsumedDeadline = deadline
		decision.Reasons = append(decision.Reasons,
			fmt.Sprintf("deadline %s elapsed past grace", deadline.UTC().Format(time.RFC3339)))
	}

	return decision
}

// elapsedDeadline fires when the current deadline, viewed in the configured
// zone plus the grace offset, is at or before now, and the snapshot has not
// already consumed this exact deadline. Each distinct deadline value triggers
// at most once.
func (d *ChangeDetector) elapsedDeadline(current snapshot.Metrics, previous *snapshot.Metrics) *time.Time {
	if current.CurrentDeadline == nil {
		return nil
	}

	now := d.now().In(d.location)
	threshold := current.CurrentDeadline.In(d.location).Add(d.grace)
	if threshold.After(now) {
		return nil
	}

	if previous != nil && previous.LastDeadlineRefresh != nil &&
		previous.LastDeadlineRefresh.Equal(*current.CurrentDeadline) {
		return nil
	}

	deadline := *current.CurrentDeadline
	return &deadline
}
