package usecase

import (
	"context"
	"fmt"

	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

// MetricsService samples the cheap store summary used for change detection.
type MetricsService struct {
	gameweeks gameweek.Repository
	logger    *logging.Logger
}

func NewMetricsService(gameweeks gameweek.Repository, logger *logging.Logger) *MetricsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MetricsService{
		gameweeks: gameweeks,
		logger:    logger,
	}
}

// Sample reads the finished-gameweek count and the current gameweek's id and
// deadline. A failed count fails the whole sample; a partial sample would
// make every later comparison look like a change. A missing current gameweek
// is a valid transient state and yields sentinel values instead.
func (s *MetricsService) Sample(ctx context.Context) (snapshot.Metrics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetricsService.Sample")
	defer span.End()

	finished, err := s.gameweeks.CountFinished(ctx)
	if err != nil {
		return snapshot.Metrics{}, fmt.Errorf("%w: count finished gameweeks: %v", ErrDependencyUnavailable, err)
	}

	metrics := snapshot.Metrics{FinishedCount: finished}

	current, ok, err := s.gameweeks.Current(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read current gameweek, using sentinel values", "error", err)
		return metrics, nil
	}
	if !ok {
		s.logger.WarnContext(ctx, "no current gameweek found")
		return metrics, nil
	}

	metrics.CurrentGameweek = current.ID
	metrics.CurrentDeadline = current.Deadline

	return metrics, nil
}
