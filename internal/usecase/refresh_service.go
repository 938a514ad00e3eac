package usecase

import (
	"context"
	"fmt"

	"github.com/atsilverman/fpl-research/internal/domain/entry"
	"github.com/atsilverman/fpl-research/internal/domain/fixture"
	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/domain/player"
	"github.com/atsilverman/fpl-research/internal/domain/playerstat"
	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/domain/team"
	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

// StoreProber is the cheap backing-store connectivity probe used by refresh
// preflight and the test mode.
type StoreProber interface {
	Ping(ctx context.Context) error
}

// AggregateRecomputer triggers the store-side recomputation of team-level
// gameweek aggregates. The call is idempotent.
type AggregateRecomputer interface {
	RecomputeTeamGameweekStats(ctx context.Context) error
}

// RefreshService runs the full reconciliation pipeline against the upstream
// feed and the backing store.
type RefreshService struct {
	feed       FeedProvider
	store      StoreProber
	teams      team.Repository
	players    player.Repository
	gameweeks  gameweek.Repository
	fixtures   fixture.Repository
	stats      playerstat.Repository
	entries    entry.Repository
	aggregates AggregateRecomputer
	logger     *logging.Logger
	workers    int
}

func NewRefreshService(
	feed FeedProvider,
	store StoreProber,
	teams team.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	fixtures fixture.Repository,
	stats playerstat.Repository,
	entries entry.Repository,
	aggregates AggregateRecomputer,
	workers int,
	logger *logging.Logger,
) *RefreshService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		feed:       feed,
		store:      store,
		teams:      teams,
		players:    players,
		gameweeks:  gameweeks,
		fixtures:   fixtures,
		stats:      stats,
		entries:    entries,
		aggregates: aggregates,
		logger:     logger,
		workers:    workers,
	}
}

// RefreshResult summarizes one pipeline run. A run with any failed record or
// skipped scope is partial, not failed; only a preflight or required-fetch
// error aborts the run entirely.
type RefreshResult struct {
	Teams     BatchResult `json:"teams"`
	Players   BatchResult `json:"players"`
	Gameweeks BatchResult `json:"gameweeks"`
	Fixtures  BatchResult `json:"fixtures"`
	Stats     BatchResult `json:"stats"`
	Entries   BatchResult `json:"entries"`
	Picks     BatchResult `json:"picks"`

	Window               []int64  `json:"window"`
	AggregatesRecomputed bool     `json:"aggregates_recomputed"`
	Warnings             []string `json:"warnings,omitempty"`
}

func (r RefreshResult) Partial() bool {
	for _, b := range []BatchResult{r.Teams, r.Players, r.Gameweeks, r.Fixtures, r.Stats, r.Entries, r.Picks} {
		if b.Failed > 0 {
			return true
		}
	}
	return len(r.Warnings) > 0 || !r.AggregatesRecomputed
}

// Refresh executes the nine pipeline steps in order. current carries the
// sampled metrics so the stat window can reuse the already-known current
// gameweek; a zero value falls back to the fetched bootstrap document.
func (s *RefreshService) Refresh(ctx context.Context, current snapshot.Metrics) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	var result RefreshResult

	// Step 1: fail fast before any side effects.
	if err := s.feed.Ping(ctx); err != nil {
		return result, fmt.Errorf("%w: feed unreachable: %v", ErrRefreshAborted, err)
	}
	if err := s.store.Ping(ctx); err != nil {
		return result, fmt.Errorf("%w: store unreachable: %v", ErrRefreshAborted, err)
	}

	// Step 2: both documents are required.
	bootstrap, err := s.feed.FetchBootstrap(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: fetch bootstrap: %v", ErrRefreshAborted, err)
	}
	fixtures, err := s.feed.FetchFixtures(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: fetch fixtures: %v", ErrRefreshAborted, err)
	}

	// Step 3: teams, players, gameweeks as independent batches.
	result.Teams = s.syncBatch(ctx, "teams", len(bootstrap.Teams), func(ctx context.Context, i int) error {
		return s.teams.Upsert(ctx, mapTeam(bootstrap.Teams[i]))
	})
	result.Players = s.syncBatch(ctx, "players", len(bootstrap.Players), func(ctx context.Context, i int) error {
		return s.players.Upsert(ctx, mapPlayer(bootstrap.Players[i]))
	})
	result.Gameweeks = s.syncBatch(ctx, "gameweeks", len(bootstrap.Gameweeks), func(ctx context.Context, i int) error {
		return s.gameweeks.Upsert(ctx, mapGameweek(bootstrap.Gameweeks[i]))
	})

	// Step 4: fixtures from the separate document.
	result.Fixtures = s.syncBatch(ctx, "fixtures", len(fixtures), func(ctx context.Context, i int) error {
		return s.fixtures.Upsert(ctx, mapFixture(fixtures[i]))
	})

	// Step 5: only the two most recent gameweeks can still be mutating;
	// older finished periods are immutable and never re-fetched.
	result.Window = refreshWindow(current, bootstrap.Gameweeks)
	if len(result.Window) == 0 {
		s.warnf(ctx, &result, "no current gameweek known, skipping stat and pick sync")
	}

	// Step 6: per-player live stats for every gameweek in the window.
	for _, gw := range result.Window {
		result.Stats = result.Stats.merge(s.syncLiveStats(ctx, &result, gw))
	}

	// Steps 7 and 8: registered manager entries and their squads.
	s.syncManagers(ctx, &result)

	// Step 9: one idempotent store-side recomputation.
	if err := s.aggregates.RecomputeTeamGameweekStats(ctx); err != nil {
		s.logger.WarnContext(ctx, "aggregate recompute failed", "error", err)
	} else {
		result.AggregatesRecomputed = true
	}

	s.logger.InfoContext(ctx, "refresh finished",
		"partial", result.Partial(),
		"window", result.Window,
		"teams", result.Teams,
		"players", result.Players,
		"gameweeks", result.Gameweeks,
		"fixtures", result.Fixtures,
		"stats", result.Stats,
		"entries", result.Entries,
		"picks", result.Picks,
	)

	return result, nil
}

func (s *RefreshService) syncBatch(ctx context.Context, name string, total int, apply func(ctx context.Context, i int) error) BatchResult {
	batch, err := runBatch(ctx, s.workers, total, apply)
	if err != nil {
		s.logger.ErrorContext(ctx, "batch execution failed", "batch", name, "error", err)
		batch.Failed = batch.Total - batch.Succeeded
		return batch
	}

	if batch.FailedEntirely() {
		s.logger.WarnContext(ctx, "batch failed entirely", "batch", name, "total", batch.Total)
	} else if batch.Failed > 0 {
		s.logger.WarnContext(ctx, "batch partially failed",
			"batch", name, "total", batch.Total, "succeeded", batch.Succeeded, "failed", batch.Failed)
	} else {
		s.logger.InfoContext(ctx, "batch synced", "batch", name, "total", batch.Total)
	}

	return batch
}

// syncLiveStats fetches one gameweek's live document and upserts a stat row
// for every player with nonzero minutes. Zero-minute players never produce
// rows.
func (s *RefreshService) syncLiveStats(ctx context.Context, result *RefreshResult, gameweekID int64) BatchResult {
	live, err := s.feed.FetchLive(ctx, gameweekID)
	if err != nil {
		s.warnf(ctx, result, "no live data for gameweek %d: %v", gameweekID, err)
		return BatchResult{}
	}

	played := make([]UpstreamLiveElement, 0, len(live.Elements))
	for _, element := range live.Elements {
		if element.Stats.Minutes > 0 {
			played = append(played, element)
		}
	}
	if len(played) == 0 {
		s.warnf(ctx, result, "no played minutes in gameweek %d live data", gameweekID)
		return BatchResult{}
	}

	name := fmt.Sprintf("player_gw_stats[gw=%d]", gameweekID)
	return s.syncBatch(ctx, name, len(played), func(ctx context.Context, i int) error {
		return s.stats.Upsert(ctx, mapStat(gameweekID, played[i]))
	})
}

func (s *RefreshService) syncManagers(ctx context.Context, result *RefreshResult) {
	registered, err := s.entries.ListRegistered(ctx)
	if err != nil {
		s.warnf(ctx, result, "cannot list registered managers: %v", err)
		return
	}
	if len(registered) == 0 {
		s.logger.InfoContext(ctx, "no registered managers to sync")
		return
	}

	// Step 7: summaries.
	result.Entries = s.syncBatch(ctx, "user_entries", len(registered), func(ctx context.Context, i int) error {
		upstream, err := s.feed.FetchEntry(ctx, registered[i].EntryID)
		if err != nil {
			return err
		}
		return s.entries.Upsert(ctx, mapEntry(registered[i].UserID, upstream))
	})

	// Step 8: squads, full replace per (user, gameweek). The delete only
	// happens after a successful fetch so a feed failure never strands a
	// manager with no ownership rows.
	for _, gw := range result.Window {
		gw := gw
		name := fmt.Sprintf("user_gw_picks[gw=%d]", gw)
		batch := s.syncBatch(ctx, name, len(registered), func(ctx context.Context, i int) error {
			upstream, err := s.feed.FetchEntryPicks(ctx, registered[i].EntryID, gw)
			if err != nil {
				return err
			}
			return s.entries.ReplacePicks(ctx, registered[i].UserID, gw, mapPicks(registered[i].UserID, upstream))
		})
		result.Picks = result.Picks.merge(batch)
	}
}

func (s *RefreshService) warnf(ctx context.Context, result *RefreshResult, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Warnings = append(result.Warnings, msg)
	s.logger.WarnContext(ctx, msg)
}

func (b BatchResult) merge(other BatchResult) BatchResult {
	return BatchResult{
		Total:     b.Total + other.Total,
		Succeeded: b.Succeeded + other.Succeeded,
		Failed:    b.Failed + other.Failed,
	}
}

// refreshWindow is the current gameweek and the immediately preceding one.
// The sampled metrics win when they carry a current gameweek; otherwise the
// bootstrap document's is_current flag decides.
func refreshWindow(current snapshot.Metrics, gameweeks []UpstreamGameweek) []int64 {
	id := current.CurrentGameweek
	if id <= 0 {
		for _, gw := range gameweeks {
			if gw.IsCurrent {
				id = gw.ID
				break
			}
		}
	}
	if id <= 0 {
		return nil
	}
	if id == 1 {
		return []int64{id}
	}
	return []int64{id - 1, id}
}
