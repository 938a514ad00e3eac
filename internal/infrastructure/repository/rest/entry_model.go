package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/entry"
)

type entryRecord struct {
	EntryID    int64  `json:"entry_id"`
	UserID     string `json:"user_id"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`

	SummaryOverallPoints int       `json:"summary_overall_points"`
	SummaryOverallRank   *int64    `json:"summary_overall_rank"`
	SummaryEventPoints   int       `json:"summary_event_points"`
	SummaryEventRank     *int64    `json:"summary_event_rank"`
	TeamValue            *int      `json:"team_value"`
	Bank                 *int      `json:"bank"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newEntryRecord(e entry.Entry, now time.Time) entryRecord {
	return entryRecord{
		EntryID:              e.EntryID,
		UserID:               e.UserID,
		EntryName:            e.EntryName,
		PlayerName:           e.PlayerName,
		SummaryOverallPoints: e.SummaryOverallPoints,
		SummaryOverallRank:   e.SummaryOverallRank,
		SummaryEventPoints:   e.SummaryEventPoints,
		SummaryEventRank:     e.SummaryEventRank,
		TeamValue:            e.TeamValue,
		Bank:                 e.Bank,
		UpdatedAt:            now.UTC(),
	}
}

type registeredRecord struct {
	EntryID int64  `json:"entry_id"`
	UserID  string `json:"user_id"`
}

type pickRecord struct {
	UserID        string `json:"user_id"`
	GameweekID    int64  `json:"gameweek_id"`
	PlayerID      int64  `json:"player_id"`
	Position      int    `json:"position"`
	Multiplier    int    `json:"multiplier"`
	IsCaptain     bool   `json:"is_captain"`
	IsViceCaptain bool   `json:"is_vice_captain"`
}

func newPickRecord(p entry.Pick) pickRecord {
	return pickRecord{
		UserID:        p.UserID,
		GameweekID:    p.GameweekID,
		PlayerID:      p.PlayerID,
		Position:      p.Position,
		Multiplier:    p.Multiplier,
		IsCaptain:     p.IsCaptain,
		IsViceCaptain: p.IsViceCaptain,
	}
}
