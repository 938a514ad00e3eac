package gameweek

import (
	"fmt"
	"time"
)

// Gameweek is one scored period of the season. Deadline is the UTC instant
// after which squad changes lock for the period.
type Gameweek struct {
	ID                int64
	Name              string
	Deadline          *time.Time
	IsCurrent         bool
	IsNext            bool
	IsPrevious        bool
	Finished          bool
	DataChecked       bool
	HighestScore      *int
	AverageEntryScore *int
}

func (g Gameweek) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("gameweek id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("gameweek name is required")
	}

	return nil
}
