package fixture

import (
	"fmt"
	"time"
)

// Fixture is a scheduled match between two teams within a gameweek.
// GameweekID is nil for fixtures not yet assigned to a period.
type Fixture struct {
	ID             int64
	GameweekID     *int64
	HomeTeamID     int64
	AwayTeamID     int64
	HomeTeamScore  *int
	AwayTeamScore  *int
	Finished       bool
	KickoffTime    *time.Time
	DifficultyHome *int
	DifficultyAway *int
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture team ids are required")
	}

	return nil
}
