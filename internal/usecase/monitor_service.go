package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

// MonitorService runs one full sample-detect-refresh-persist cycle. The
// scheduler invokes it on every tick; one-shot run modes invoke it directly.
type MonitorService struct {
	metrics    *MetricsService
	detector   *ChangeDetector
	refresh    *RefreshService
	snapshots  snapshot.Store
	feed       FeedProvider
	store      StoreProber
	aggregates AggregateRecomputer
	logger     *logging.Logger
	now        func() time.Time
}

func NewMonitorService(
	metrics *MetricsService,
	detector *ChangeDetector,
	refresh *RefreshService,
	snapshots snapshot.Store,
	feed FeedProvider,
	store StoreProber,
	aggregates AggregateRecomputer,
	logger *logging.Logger,
) *MonitorService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MonitorService{
		metrics:    metrics,
		detector:   detector,
		refresh:    refresh,
		snapshots:  snapshots,
		feed:       feed,
		store:      store,
		aggregates: aggregates,
		logger:     logger,
		now:        time.Now,
	}
}

// CheckResult reports what one cycle observed and did.
type CheckResult struct {
	Metrics   snapshot.Metrics `json:"metrics"`
	Decision  ChangeDecision   `json:"decision"`
	Refreshed bool             `json:"refreshed"`
	Refresh   RefreshResult    `json:"refresh,omitempty"`
}

// CheckOnce samples metrics, runs the detector, refreshes when triggered and
// persists the new snapshot. A failed sample or an aborted refresh leaves the
// prior snapshot untouched so the next cycle retries from the same baseline.
// A no-change cycle still persists, so metric drift below the trigger
// thresholds is remembered for the next comparison.
func (s *MonitorService) CheckOnce(ctx context.Context) (CheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.CheckOnce")
	defer span.End()

	current, err := s.metrics.Sample(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "metrics sample failed", "error", err)
		return CheckResult{}, err
	}

	previous := s.loadPrevious(ctx)
	decision := s.detector.Detect(current, previous)

	if decision.ConsumedDeadline != nil {
		current.LastDeadlineRefresh = decision.ConsumedDeadline
	} else if previous != nil {
		current.LastDeadlineRefresh = previous.LastDeadlineRefresh
	}

	result := CheckResult{Metrics: current, Decision: decision}

	if decision.Refresh {
		s.logger.InfoContext(ctx, "changes detected, refreshing", "reasons", decision.Reasons)

		refreshResult, err := s.refresh.Refresh(ctx, current)
		if err != nil {
			s.logger.ErrorContext(ctx, "refresh failed, keeping previous snapshot", "error", err)
			return result, err
		}
		result.Refreshed = true
		result.Refresh = refreshResult
	} else {
		s.logger.InfoContext(ctx, "no changes detected")
	}

	if err := s.persist(ctx, current); err != nil {
		return result, err
	}

	return result, nil
}

// ForceRefresh runs the pipeline regardless of the detector's verdict and
// persists the resulting metrics on success.
func (s *MonitorService) ForceRefresh(ctx context.Context) (CheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.ForceRefresh")
	defer span.End()

	current, err := s.metrics.Sample(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	if previous := s.loadPrevious(ctx); previous != nil {
		current.LastDeadlineRefresh = previous.LastDeadlineRefresh
	}

	result := CheckResult{Metrics: current}

	refreshResult, err := s.refresh.Refresh(ctx, current)
	if err != nil {
		return result, err
	}
	result.Refreshed = true
	result.Refresh = refreshResult

	if err := s.persist(ctx, current); err != nil {
		return result, err
	}

	return result, nil
}

// TestReport is the connectivity and detector dry-run output of test mode.
type TestReport struct {
	FeedOK   bool             `json:"feed_ok"`
	StoreOK  bool             `json:"store_ok"`
	Metrics  snapshot.Metrics `json:"metrics"`
	Decision ChangeDecision   `json:"decision"`
}

// Test probes both dependencies and dry-runs the detector without refreshing
// or persisting anything.
func (s *MonitorService) Test(ctx context.Context) (TestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.Test")
	defer span.End()

	var report TestReport

	if err := s.feed.Ping(ctx); err != nil {
		return report, fmt.Errorf("%w: feed unreachable: %v", ErrDependencyUnavailable, err)
	}
	report.FeedOK = true

	if err := s.store.Ping(ctx); err != nil {
		return report, fmt.Errorf("%w: store unreachable: %v", ErrDependencyUnavailable, err)
	}
	report.StoreOK = true

	current, err := s.metrics.Sample(ctx)
	if err != nil {
		return report, err
	}
	report.Metrics = current
	report.Decision = s.detector.Detect(current, s.loadPrevious(ctx))

	return report, nil
}

// RecomputeAggregates exercises the aggregate-recompute pathway alone, for
// the stats diagnostic mode.
func (s *MonitorService) RecomputeAggregates(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MonitorService.RecomputeAggregates")
	defer span.End()

	if err := s.aggregates.RecomputeTeamGameweekStats(ctx); err != nil {
		return fmt.Errorf("recompute aggregates: %w", err)
	}

	return nil
}

// LastSnapshot exposes the persisted snapshot for the status endpoint.
func (s *MonitorService) LastSnapshot(ctx context.Context) (snapshot.Snapshot, bool, error) {
	return s.snapshots.Load(ctx)
}

func (s *MonitorService) loadPrevious(ctx context.Context) *snapshot.Metrics {
	previous, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cannot load previous snapshot, starting fresh", "error", err)
		return nil
	}
	if !ok {
		s.logger.InfoContext(ctx, "no previous snapshot found, starting fresh")
		return nil
	}

	metrics := previous.Metrics
	return &metrics
}

func (s *MonitorService) persist(ctx context.Context, metrics snapshot.Metrics) error {
	snap := snapshot.Snapshot{
		Timestamp: s.now().UTC(),
		Metrics:   metrics,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist snapshot", "error", err)
		return fmt.Errorf("persist snapshot: %w", err)
	}

	return nil
}
