package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atsilverman/fpl-research/internal/domain/player"
)

func TestMapPlayerDefaultsStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status string
		want   string
	}{
		{"empty defaults to available", "", player.StatusAvailable},
		{"available kept", "a", player.StatusAvailable},
		{"injured kept", "i", player.StatusInjured},
		{"unknown value kept verbatim", "x", "x"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapPlayer(UpstreamPlayer{ID: 100, WebName: "Saka", ElementType: 3, Status: tc.status})
			require.Equal(t, tc.want, got.Status)
		})
	}
}

func TestMapStatCarriesKey(t *testing.T) {
	t.Parallel()

	ict := "12.4"
	got := mapStat(20, UpstreamLiveElement{
		PlayerID: 100,
		Stats:    UpstreamLiveStats{Minutes: 90, GoalsScored: 1, BPS: 32, ICTIndex: &ict, TotalPoints: 9},
	})

	require.Equal(t, int64(100), got.PlayerID)
	require.Equal(t, int64(20), got.GameweekID)
	require.Equal(t, 90, got.Minutes)
	require.Equal(t, 32, got.BPS)
	require.NotNil(t, got.ICTIndex)
	require.NoError(t, got.Validate())
}

func TestMapStatCarriesExpectedAndDefensiveFields(t *testing.T) {
	t.Parallel()

	xg, xa, xgi, xgc := "0.45", "0.12", "0.57", "1.02"
	got := mapStat(20, UpstreamLiveElement{
		PlayerID: 100,
		Stats: UpstreamLiveStats{
			Minutes: 90,

			ExpectedGoals:            &xg,
			ExpectedAssists:          &xa,
			ExpectedGoalInvolvements: &xgi,
			ExpectedGoalsConceded:    &xgc,

			DefensiveContribution:         12,
			ClearancesBlocksInterceptions: 7,
			Recoveries:                    5,
			Tackles:                       3,
		},
	})

	require.Equal(t, &xg, got.ExpectedGoals)
	require.Equal(t, &xa, got.ExpectedAssists)
	require.Equal(t, &xgi, got.ExpectedGoalInvolvements)
	require.Equal(t, &xgc, got.ExpectedGoalsConceded)
	require.Equal(t, 12, got.DefensiveContribution)
	require.Equal(t, 7, got.ClearancesBlocksInterceptions)
	require.Equal(t, 5, got.Recoveries)
	require.Equal(t, 3, got.Tackles)
}

func TestMapPicksStampsUserAndGameweek(t *testing.T) {
	t.Parallel()

	picks := mapPicks("user-1", UpstreamEntryPicks{
		EntryID:    777,
		GameweekID: 20,
		Picks: []UpstreamPick{
			{PlayerID: 100, Position: 1, Multiplier: 2, IsCaptain: true},
			{PlayerID: 200, Position: 2, Multiplier: 1, IsViceCaptain: true},
		},
	})

	require.Len(t, picks, 2)
	for _, p := range picks {
		require.Equal(t, "user-1", p.UserID)
		require.Equal(t, int64(20), p.GameweekID)
		require.NoError(t, p.Validate())
	}
	require.True(t, picks[0].IsCaptain)
	require.True(t, picks[1].IsViceCaptain)
}

func TestMapGameweekPreservesDeadline(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, time.January, 10, 18, 30, 0, 0, time.UTC)
	got := mapGameweek(UpstreamGameweek{ID: 20, Name: "Gameweek 20", Deadline: &deadline, IsCurrent: true})

	require.Equal(t, int64(20), got.ID)
	require.True(t, got.IsCurrent)
	require.NotNil(t, got.Deadline)
	require.True(t, got.Deadline.Equal(deadline))
}
