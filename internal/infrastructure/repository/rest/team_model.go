package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/team"
)

type teamRecord struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	Code           int64   `json:"code"`
	Form           *string `json:"form"`
	Points         int     `json:"points"`
	Position       *int    `json:"position"`
	Played         int     `json:"played"`
	Win            int     `json:"win"`
	Draw           int     `json:"draw"`
	Loss           int     `json:"loss"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`

	Strength            *int `json:"strength"`
	StrengthOverallHome *int `json:"strength_overall_home"`
	StrengthOverallAway *int `json:"strength_overall_away"`
	StrengthAttackHome  *int `json:"strength_attack_home"`
	StrengthAttackAway  *int `json:"strength_attack_away"`
	StrengthDefenceHome *int `json:"strength_defence_home"`
	StrengthDefenceAway *int `json:"strength_defence_away"`

	UpdatedAt time.Time `json:"updated_at"`
}

func newTeamRecord(t team.Team, now time.Time) teamRecord {
	return teamRecord{
		ID:             t.ID,
		Name:           t.Name,
		ShortName:      t.ShortName,
		Code:           t.Code,
		Form:           t.Form,
		Points:         t.Points,
		Position:       t.Position,
		Played:         t.Played,
		Win:            t.Win,
		Draw:           t.Draw,
		Loss:           t.Loss,
		GoalsFor:       t.GoalsFor,
		GoalsAgainst:   t.GoalsAgainst,
		GoalDifference: t.GoalDifference,

		Strength:            t.Strength,
		StrengthOverallHome: t.StrengthOverallHome,
		StrengthOverallAway: t.StrengthOverallAway,
		StrengthAttackHome:  t.StrengthAttackHome,
		StrengthAttackAway:  t.StrengthAttackAway,
		StrengthDefenceHome: t.StrengthDefenceHome,
		StrengthDefenceAway: t.StrengthDefenceAway,

		UpdatedAt: now.UTC(),
	}
}
