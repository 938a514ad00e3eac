package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/player"
)

type playerRecord struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	SecondName    string  `json:"second_name"`
	WebName       string  `json:"web_name"`
	TeamID        int64   `json:"team_id"`
	ElementType   int     `json:"element_type"`
	NowCost       int     `json:"now_cost"`
	TotalPoints   int     `json:"total_points"`
	Form          *string `json:"form"`
	PointsPerGame *string `json:"points_per_game"`
	ValueForm     *string `json:"value_form"`
	ValueSeason   *string `json:"value_season"`

	ChanceOfPlayingNextRound *int       `json:"chance_of_playing_next_round"`
	News                     string     `json:"news"`
	NewsAdded                *time.Time `json:"news_added"`
	Status                   string     `json:"status"`
	Special                  bool       `json:"special"`
	CanSelect                bool       `json:"can_select"`
	CanTransact              bool       `json:"can_transact"`
	InDreamteam              bool       `json:"in_dreamteam"`
	Removed                  bool       `json:"removed"`

	UpdatedAt time.Time `json:"updated_at"`
}

func newPlayerRecord(p player.Player, now time.Time) playerRecord {
	return playerRecord{
		ID:            p.ID,
		FirstName:     p.FirstName,
		SecondName:    p.SecondName,
		WebName:       p.WebName,
		TeamID:        p.TeamID,
		ElementType:   p.ElementType,
		NowCost:       p.NowCost,
		TotalPoints:   p.TotalPoints,
		Form:          p.Form,
		PointsPerGame: p.PointsPerGame,
		ValueForm:     p.ValueForm,
		ValueSeason:   p.ValueSeason,

		ChanceOfPlayingNextRound: p.ChanceOfPlayingNextRound,
		News:                     p.News,
		NewsAdded:                p.NewsAdded,
		Status:                   p.Status,
		Special:                  p.Special,
		CanSelect:                p.CanSelect,
		CanTransact:              p.CanTransact,
		InDreamteam:              p.InDreamteam,
		Removed:                  p.Removed,

		UpdatedAt: now.UTC(),
	}
}
