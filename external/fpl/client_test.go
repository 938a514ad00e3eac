package fpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atsilverman/fpl-research/internal/platform/logging"
	"github.com/atsilverman/fpl-research/internal/platform/resilience"
	"github.com/atsilverman/fpl-research/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, breaker resilience.BreakerConfig, maxRetries int) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestFetchBootstrapParsesDocument(t *testing.T) {
	t.Parallel()

	const payload = `{
		"events": [
			{"id": 1, "name": "Gameweek 1", "deadline_time": "2026-08-15T17:30:00Z", "is_current": true, "finished": false},
			{"id": 2, "name": "Gameweek 2", "deadline_time": null}
		],
		"teams": [
			{"id": 3, "name": "Arsenal", "short_name": "ARS", "code": 3, "points": 12, "strength": 5}
		],
		"elements": [
			{"id": 100, "first_name": "Bukayo", "second_name": "Saka", "web_name": "Saka",
			 "team": 3, "element_type": 3, "now_cost": 105, "status": "a",
			 "news_added": "2026-08-10T09:00:00Z", "can_select": true, "can_transact": true}
		]
	}`

	var path atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}), resilience.BreakerConfig{}, 0)

	bootstrap, err := client.FetchBootstrap(context.Background())
	if err != nil {
		t.Fatalf("fetch bootstrap: %v", err)
	}
	if got := path.Load(); got != "/bootstrap-static/" {
		t.Fatalf("unexpected path: %v", got)
	}

	if len(bootstrap.Teams) != 1 || bootstrap.Teams[0].Name != "Arsenal" {
		t.Fatalf("unexpected teams: %+v", bootstrap.Teams)
	}
	if bootstrap.Teams[0].Strength == nil || *bootstrap.Teams[0].Strength != 5 {
		t.Fatalf("strength not parsed: %+v", bootstrap.Teams[0])
	}

	if len(bootstrap.Players) != 1 {
		t.Fatalf("unexpected players: %+v", bootstrap.Players)
	}
	player := bootstrap.Players[0]
	if player.TeamID != 3 || player.WebName != "Saka" || !player.CanSelect {
		t.Fatalf("unexpected player mapping: %+v", player)
	}
	if player.NewsAdded == nil || !player.NewsAdded.Equal(time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("news_added not parsed: %v", player.NewsAdded)
	}

	if len(bootstrap.Gameweeks) != 2 {
		t.Fatalf("unexpected gameweeks: %+v", bootstrap.Gameweeks)
	}
	if !bootstrap.Gameweeks[0].IsCurrent || bootstrap.Gameweeks[0].Deadline == nil {
		t.Fatalf("gameweek 1 mapping wrong: %+v", bootstrap.Gameweeks[0])
	}
	if bootstrap.Gameweeks[1].Deadline != nil {
		t.Fatalf("null deadline must map to nil, got %v", bootstrap.Gameweeks[1].Deadline)
	}
}

func TestFetchLiveMapsElements(t *testing.T) {
	t.Parallel()

	const payload = `{"elements": [
		{"id": 100, "stats": {"minutes": 90, "goals_scored": 1, "bps": 32, "total_points": 9, "ict_index": "12.4",
			"expected_goals": "0.45", "expected_assists": "0.12",
			"expected_goal_involvements": "0.57", "expected_goals_conceded": "1.02",
			"defensive_contribution": 12, "clearances_blocks_interceptions": 7,
			"recoveries": 5, "tackles": 3}},
		{"id": 200, "stats": {"minutes": 0}}
	]}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/event/7/live/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(payload))
	}), resilience.BreakerConfig{}, 0)

	live, err := client.FetchLive(context.Background(), 7)
	if err != nil {
		t.Fatalf("fetch live: %v", err)
	}
	if live.GameweekID != 7 || len(live.Elements) != 2 {
		t.Fatalf("unexpected live document: %+v", live)
	}
	first := live.Elements[0]
	if first.PlayerID != 100 || first.Stats.Minutes != 90 || first.Stats.BPS != 32 {
		t.Fatalf("unexpected stats mapping: %+v", first)
	}
	if first.Stats.ICTIndex == nil || *first.Stats.ICTIndex != "12.4" {
		t.Fatalf("ict index not parsed: %+v", first.Stats)
	}
	if first.Stats.ExpectedGoals == nil || *first.Stats.ExpectedGoals != "0.45" {
		t.Fatalf("expected goals not parsed: %+v", first.Stats)
	}
	if first.Stats.ExpectedGoalsConceded == nil || *first.Stats.ExpectedGoalsConceded != "1.02" {
		t.Fatalf("expected goals conceded not parsed: %+v", first.Stats)
	}
	if first.Stats.DefensiveContribution != 12 || first.Stats.ClearancesBlocksInterceptions != 7 {
		t.Fatalf("defensive counters not parsed: %+v", first.Stats)
	}
	if first.Stats.Recoveries != 5 || first.Stats.Tackles != 3 {
		t.Fatalf("recoveries/tackles not parsed: %+v", first.Stats)
	}
}

func TestFetchEntryJoinsPlayerName(t *testing.T) {
	t.Parallel()

	const payload = `{"id": 777, "name": "Test FC", "player_first_name": "Pat", "player_last_name": "Tester",
		"summary_overall_points": 812, "summary_overall_rank": 120543, "last_deadline_value": 1012, "last_deadline_bank": 8}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}), resilience.BreakerConfig{}, 0)

	got, err := client.FetchEntry(context.Background(), 777)
	if err != nil {
		t.Fatalf("fetch entry: %v", err)
	}
	if got.PlayerName != "Pat Tester" {
		t.Fatalf("unexpected player name: %q", got.PlayerName)
	}
	if got.TeamValue == nil || *got.TeamValue != 1012 {
		t.Fatalf("team value not mapped: %+v", got)
	}
}

func TestFetchRejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for invalid input")
	}), resilience.BreakerConfig{}, 0)

	if _, err := client.FetchLive(context.Background(), 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := client.FetchEntry(context.Background(), -1); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := client.FetchEntryPicks(context.Background(), 777, 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClientHardFailureDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}), resilience.BreakerConfig{}, 3)

	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("4xx responses must not be retried, got %d calls", got)
	}
}

func TestClientHardFailureIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     logging.FromZap(zap.New(core)),
	})

	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
	if logs.FilterMessage("feed request failed").Len() != 1 {
		t.Fatalf("a hard feed failure must be logged before returning")
	}
}

func TestClientBreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), resilience.BreakerConfig{
		Enabled:           true,
		FailureThreshold:  2,
		OpenTimeout:       time.Minute,
		HalfOpenMaxProbes: 1,
	}, 0)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := client.Ping(ctx); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	before := calls.Load()
	err := client.Ping(ctx)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if calls.Load() != before {
		t.Fatalf("open breaker must short-circuit without a request")
	}
}
