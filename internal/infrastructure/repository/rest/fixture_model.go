package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/fixture"
)

type fixtureRecord struct {
	ID             int64      `json:"id"`
	GameweekID     *int64     `json:"gameweek_id"`
	HomeTeamID     int64      `json:"home_team_id"`
	AwayTeamID     int64      `json:"away_team_id"`
	HomeTeamScore  *int       `json:"home_team_score"`
	AwayTeamScore  *int       `json:"away_team_score"`
	Finished       bool       `json:"finished"`
	KickoffTime    *time.Time `json:"kickoff_time"`
	DifficultyHome *int       `json:"difficulty_home"`
	DifficultyAway *int       `json:"difficulty_away"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newFixtureRecord(f fixture.Fixture, now time.Time) fixtureRecord {
	return fixtureRecord{
		ID:             f.ID,
		GameweekID:     f.GameweekID,
		HomeTeamID:     f.HomeTeamID,
		AwayTeamID:     f.AwayTeamID,
		HomeTeamScore:  f.HomeTeamScore,
		AwayTeamScore:  f.AwayTeamScore,
		Finished:       f.Finished,
		KickoffTime:    f.KickoffTime,
		DifficultyHome: f.DifficultyHome,
		DifficultyAway: f.DifficultyAway,
		UpdatedAt:      now.UTC(),
	}
}
