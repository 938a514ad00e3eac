package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/atsilverman/fpl-research/internal/domain/entry"
	"github.com/atsilverman/fpl-research/internal/domain/fixture"
	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/domain/player"
	"github.com/atsilverman/fpl-research/internal/domain/playerstat"
	"github.com/atsilverman/fpl-research/internal/domain/snapshot"
	"github.com/atsilverman/fpl-research/internal/domain/team"
)

type feedStub struct {
	pingFn      func(ctx context.Context) error
	bootstrapFn func(ctx context.Context) (UpstreamBootstrap, error)
	fixturesFn  func(ctx context.Context) ([]UpstreamFixture, error)
	liveFn      func(ctx context.Context, gameweekID int64) (UpstreamLive, error)
	entryFn     func(ctx context.Context, entryID int64) (UpstreamEntry, error)
	picksFn     func(ctx context.Context, entryID, gameweekID int64) (UpstreamEntryPicks, error)
}

func (s *feedStub) Ping(ctx context.Context) error {
	if s.pingFn == nil {
		return nil
	}
	return s.pingFn(ctx)
}

func (s *feedStub) FetchBootstrap(ctx context.Context) (UpstreamBootstrap, error) {
	if s.bootstrapFn == nil {
		return UpstreamBootstrap{}, nil
	}
	return s.bootstrapFn(ctx)
}

func (s *feedStub) FetchFixtures(ctx context.Context) ([]UpstreamFixture, error) {
	if s.fixturesFn == nil {
		return nil, nil
	}
	return s.fixturesFn(ctx)
}

func (s *feedStub) FetchLive(ctx context.Context, gameweekID int64) (UpstreamLive, error) {
	if s.liveFn == nil {
		return UpstreamLive{GameweekID: gameweekID}, nil
	}
	return s.liveFn(ctx, gameweekID)
}

func (s *feedStub) FetchEntry(ctx context.Context, entryID int64) (UpstreamEntry, error) {
	if s.entryFn == nil {
		return UpstreamEntry{EntryID: entryID}, nil
	}
	return s.entryFn(ctx, entryID)
}

func (s *feedStub) FetchEntryPicks(ctx context.Context, entryID, gameweekID int64) (UpstreamEntryPicks, error) {
	if s.picksFn == nil {
		return UpstreamEntryPicks{EntryID: entryID, GameweekID: gameweekID}, nil
	}
	return s.picksFn(ctx, entryID, gameweekID)
}

type storeProberStub struct {
	pingFn func(ctx context.Context) error
}

func (s *storeProberStub) Ping(ctx context.Context) error {
	if s.pingFn == nil {
		return nil
	}
	return s.pingFn(ctx)
}

type teamRepoStub struct {
	mu       sync.Mutex
	upserted []team.Team
	upsertFn func(ctx context.Context, t team.Team) error
}

func (s *teamRepoStub) Upsert(ctx context.Context, t team.Team) error {
	if s.upsertFn != nil {
		if err := s.upsertFn(ctx, t); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, t)
	return nil
}

type playerRepoStub struct {
	mu       sync.Mutex
	upserted []player.Player
}

func (s *playerRepoStub) Upsert(_ context.Context, p player.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, p)
	return nil
}

type gameweekRepoStub struct {
	mu            sync.Mutex
	upserted      []gameweek.Gameweek
	finishedCount int
	finishedErr   error
	finishedFn    func(ctx context.Context) (int, error)
	current       gameweek.Gameweek
	currentOK     bool
	currentErr    error
}

func (s *gameweekRepoStub) Upsert(_ context.Context, g gameweek.Gameweek) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, g)
	return nil
}

func (s *gameweekRepoStub) CountFinished(ctx context.Context) (int, error) {
	if s.finishedFn != nil {
		return s.finishedFn(ctx)
	}
	return s.finishedCount, s.finishedErr
}

func (s *gameweekRepoStub) Current(context.Context) (gameweek.Gameweek, bool, error) {
	return s.current, s.currentOK, s.currentErr
}

type fixtureRepoStub struct {
	mu       sync.Mutex
	upserted []fixture.Fixture
}

func (s *fixtureRepoStub) Upsert(_ context.Context, f fixture.Fixture) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, f)
	return nil
}

type statRepoStub struct {
	mu       sync.Mutex
	upserted []playerstat.Stat
	upsertFn func(ctx context.Context, st playerstat.Stat) error
}

func (s *statRepoStub) Upsert(ctx context.Context, st playerstat.Stat) error {
	if s.upsertFn != nil {
		if err := s.upsertFn(ctx, st); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, st)
	return nil
}

type entryRepoStub struct {
	mu         sync.Mutex
	registered []entry.Registered
	listErr    error
	upserted   []entry.Entry
	replaced   map[string][]entry.Pick
}

func (s *entryRepoStub) ListRegistered(context.Context) ([]entry.Registered, error) {
	return s.registered, s.listErr
}

func (s *entryRepoStub) Upsert(_ context.Context, e entry.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserted = append(s.upserted, e)
	return nil
}

func (s *entryRepoStub) ReplacePicks(_ context.Context, userID string, gameweekID int64, picks []entry.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaced == nil {
		s.replaced = make(map[string][]entry.Pick)
	}
	s.replaced[fmt.Sprintf("%s/%d", userID, gameweekID)] = picks
	return nil
}

type aggregateStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *aggregateStub) RecomputeTeamGameweekStats(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

type snapshotStoreStub struct {
	mu      sync.Mutex
	saved   []snapshot.Snapshot
	current *snapshot.Snapshot
	loadErr error
	saveErr error
}

func (s *snapshotStoreStub) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func (s *snapshotStoreStub) Load(context.Context) (snapshot.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return snapshot.Snapshot{}, false, s.loadErr
	}
	if s.current == nil {
		return snapshot.Snapshot{}, false, nil
	}
	return *s.current, true, nil
}

func (s *snapshotStoreStub) Save(_ context.Context, snap snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snap)
	s.current = &snap
	return nil
}
