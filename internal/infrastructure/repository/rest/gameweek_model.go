package rest

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
)

type gameweekRecord struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	DeadlineTime      *time.Time `json:"deadline_time"`
	IsCurrent         bool       `json:"is_current"`
	IsNext            bool       `json:"is_next"`
	IsPrevious        bool       `json:"is_previous"`
	Finished          bool       `json:"finished"`
	DataChecked       bool       `json:"data_checked"`
	HighestScore      *int       `json:"highest_score"`
	AverageEntryScore *int       `json:"average_entry_score"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func newGameweekRecord(g gameweek.Gameweek, now time.Time) gameweekRecord {
	return gameweekRecord{
		ID:                g.ID,
		Name:              g.Name,
		DeadlineTime:      g.Deadline,
		IsCurrent:         g.IsCurrent,
		IsNext:            g.IsNext,
		IsPrevious:        g.IsPrevious,
		Finished:          g.Finished,
		DataChecked:       g.DataChecked,
		HighestScore:      g.HighestScore,
		AverageEntryScore: g.AverageEntryScore,
		UpdatedAt:         now.UTC(),
	}
}

func (r gameweekRecord) toDomain() gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:                r.ID,
		Name:              r.Name,
		Deadline:          r.DeadlineTime,
		IsCurrent:         r.IsCurrent,
		IsNext:            r.IsNext,
		IsPrevious:        r.IsPrevious,
		Finished:          r.Finished,
		DataChecked:       r.DataChecked,
		HighestScore:      r.HighestScore,
		AverageEntryScore: r.AverageEntryScore,
	}
}
