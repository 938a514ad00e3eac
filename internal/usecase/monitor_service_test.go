package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

type monitorFixture struct {
	refresh   *refreshFixture
	gameweeks *gameweekRepoStub
	snapshots *snapshotStoreStub
	detector  *ChangeDetector
	service   *MonitorService
}

func newMonitorFixture(now time.Time) *monitorFixture {
	refresh := newRefreshFixture()
	refresh.feed.bootstrapFn = func(context.Context) (UpstreamBootstrap, error) { return testBootstrap(3), nil }
	refresh.feed.liveFn = func(_ context.Context, gameweekID int64) (UpstreamLive, error) {
		return testLive(gameweekID), nil
	}

	gameweeks := &gameweekRepoStub{}
	snapshots := &snapshotStoreStub{}

	detector := NewChangeDetector(time.UTC, time.Hour)
	detector.now = func() time.Time { return now }

	service := NewMonitorService(
		NewMetricsService(gameweeks, logging.NewNop()),
		detector,
		refresh.service,
		snapshots,
		refresh.feed,
		refresh.store,
		refresh.aggregates,
		logging.NewNop(),
	)
	service.now = func() time.Time { return now }

	return &monitorFixture{
		refresh:   refresh,
		gameweeks: gameweeks,
		snapshots: snapshots,
		detector:  detector,
		service:   service,
	}
}

func TestCheckOnceFirstRunPersistsWithoutRefresh(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 19
	f.gameweeks.current = gameweek.Gameweek{ID: 20, Name: "Gameweek 20"}
	f.gameweeks.currentOK = true

	result, err := f.service.CheckOnce(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Refreshed {
		t.Fatalf("no baseline and no elapsed deadline, must not refresh")
	}
	if len(f.snapshots.saved) != 1 {
		t.Fatalf("a no-change cycle still persists, got %d saves", len(f.snapshots.saved))
	}
	if f.snapshots.saved[0].Metrics.FinishedCount != 19 {
		t.Fatalf("persisted snapshot carries the sampled metrics: %+v", f.snapshots.saved[0].Metrics)
	}
}

func TestCheckOnceSampleFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedErr = fmt.Errorf("store status=500")

	_, err := f.service.CheckOnce(context.Background())
	if err == nil {
		t.Fatalf("expected error when metrics sample fails")
	}
	if len(f.snapshots.saved) != 0 {
		t.Fatalf("a failed sample must not persist anything")
	}
}

func TestCheckOnceRefreshesOnFinishedIncrease(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 20
	f.gameweeks.current = gameweek.Gameweek{ID: 21, Name: "Gameweek 21"}
	f.gameweeks.currentOK = true
	f.snapshots.current = &snapshot.Snapshot{
		Timestamp: now.Add(-time.Hour),
		Metrics:   snapshot.Metrics{FinishedCount: 19, CurrentGameweek: 20},
	}

	result, err := f.service.CheckOnce(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Refreshed {
		t.Fatalf("expected a refresh when finished count grows")
	}
	if len(f.refresh.teams.upserted) == 0 {
		t.Fatalf("refresh pipeline did not run")
	}
	if f.snapshots.current.Metrics.FinishedCount != 20 {
		t.Fatalf("new baseline not persisted: %+v", f.snapshots.current.Metrics)
	}
}

func TestCheckOnceRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 20
	f.snapshots.current = &snapshot.Snapshot{
		Timestamp: now.Add(-time.Hour),
		Metrics:   snapshot.Metrics{FinishedCount: 19},
	}
	f.refresh.feed.pingFn = func(context.Context) error { return fmt.Errorf("connection refused") }

	_, err := f.service.CheckOnce(context.Background())
	if err == nil {
		t.Fatalf("expected error when the refresh aborts")
	}
	if f.snapshots.current.Metrics.FinishedCount != 19 {
		t.Fatalf("baseline must stay at the previous value, got %+v", f.snapshots.current.Metrics)
	}
}

func TestCheckOnceConsumesDeadline(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, time.January, 10, 18, 30, 0, 0, time.UTC)
	now := deadline.Add(2 * time.Hour)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 19
	f.gameweeks.current = gameweek.Gameweek{ID: 20, Name: "Gameweek 20", Deadline: &deadline}
	f.gameweeks.currentOK = true

	result, err := f.service.CheckOnce(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Refreshed {
		t.Fatalf("elapsed deadline must refresh even on the first run")
	}
	persisted := f.snapshots.current.Metrics
	if persisted.LastDeadlineRefresh == nil || !persisted.LastDeadlineRefresh.Equal(deadline) {
		t.Fatalf("consumed deadline not recorded: %+v", persisted)
	}

	// The next cycle sees the same deadline already spent.
	second, err := f.service.CheckOnce(context.Background())
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if second.Refreshed {
		t.Fatalf("the same deadline must not trigger twice")
	}
	if f.snapshots.current.Metrics.LastDeadlineRefresh == nil {
		t.Fatalf("consumed deadline must carry forward through no-change cycles")
	}
}

func TestTestModeDoesNotPersist(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 19

	report, err := f.service.Test(context.Background())
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if !report.FeedOK || !report.StoreOK {
		t.Fatalf("expected both probes to pass: %+v", report)
	}
	if len(f.snapshots.saved) != 0 {
		t.Fatalf("test mode must not persist a snapshot")
	}
	if len(f.refresh.teams.upserted) != 0 {
		t.Fatalf("test mode must not refresh")
	}
}

func TestForceRefreshPersists(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	f := newMonitorFixture(now)
	f.gameweeks.finishedCount = 19
	f.gameweeks.current = gameweek.Gameweek{ID: 3, Name: "Gameweek 3"}
	f.gameweeks.currentOK = true

	result, err := f.service.ForceRefresh(context.Background())
	if err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if !result.Refreshed {
		t.Fatalf("force refresh must run the pipeline")
	}
	if len(f.snapshots.saved) != 1 {
		t.Fatalf("force refresh persists on success, got %d saves", len(f.snapshots.saved))
	}
}
