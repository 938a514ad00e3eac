package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/playerstat"
)

type playerStatRecord struct {
	PlayerID   int64 `json:"player_id"`
	GameweekID int64 `json:"gameweek_id"`

	Minutes         int `json:"minutes"`
	GoalsScored     int `json:"goals_scored"`
	Assists         int `json:"assists"`
	CleanSheets     int `json:"clean_sheets"`
	GoalsConceded   int `json:"goals_conceded"`
	OwnGoals        int `json:"own_goals"`
	PenaltiesSaved  int `json:"penalties_saved"`
	PenaltiesMissed int `json:"penalties_missed"`
	YellowCards     int `json:"yellow_cards"`
	RedCards        int `json:"red_cards"`
	Saves           int `json:"saves"`
	Bonus           int `json:"bonus"`
	BPS             int `json:"bps"`

	Influence  *string `json:"influence"`
	Creativity *string `json:"creativity"`
	Threat     *string `json:"threat"`
	ICTIndex   *string `json:"ict_index"`

	ExpectedGoals            *string `json:"expected_goals"`
	ExpectedAssists          *string `json:"expected_assists"`
	ExpectedGoalInvolvements *string `json:"expected_goal_involvements"`
	ExpectedGoalsConceded    *string `json:"expected_goals_conceded"`

	DefensiveContribution         int `json:"defensive_contribution"`
	ClearancesBlocksInterceptions int `json:"clearances_blocks_interceptions"`
	Recoveries                    int `json:"recoveries"`
	Tackles                       int `json:"tackles"`

	TotalPoints       int       `json:"total_points"`
	Value             *int      `json:"value"`
	SelectedByPercent *string   `json:"selected_by_percent"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newPlayerStatRecord(s playerstat.Stat, now time.Time) playerStatRecord {
	return playerStatRecord{
		PlayerID:          s.PlayerID,
		GameweekID:        s.GameweekID,
		Minutes:           s.Minutes,
		GoalsScored:       s.GoalsScored,
		Assists:           s.Assists,
		CleanSheets:       s.CleanSheets,
		GoalsConceded:     s.GoalsConceded,
		OwnGoals:          s.OwnGoals,
		PenaltiesSaved:    s.PenaltiesSaved,
		PenaltiesMissed:   s.PenaltiesMissed,
		YellowCards:       s.YellowCards,
		RedCards:          s.RedCards,
		Saves:             s.Saves,
		Bonus:             s.Bonus,
		BPS:               s.BPS,
		Influence:         s.Influence,
		Creativity:        s.Creativity,
		Threat:            s.Threat,
		ICTIndex:          s.ICTIndex,

		ExpectedGoals:            s.ExpectedGoals,
		ExpectedAssists:          s.ExpectedAssists,
		ExpectedGoalInvolvements: s.ExpectedGoalInvolvements,
		ExpectedGoalsConceded:    s.ExpectedGoalsConceded,

		DefensiveContribution:         s.DefensiveContribution,
		ClearancesBlocksInterceptions: s.ClearancesBlocksInterceptions,
		Recoveries:                    s.Recoveries,
		Tackles:                       s.Tackles,

		TotalPoints:       s.TotalPoints,
		Value:             s.Value,
		SelectedByPercent: s.SelectedByPercent,
		UpdatedAt:         now.UTC(),
	}
}
