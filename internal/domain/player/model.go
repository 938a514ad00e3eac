package player

import (
	"fmt"
	"time"
)

// Availability status flags carried by the upstream feed.
const (
	StatusAvailable   = "a"
	StatusDoubtful    = "d"
	StatusInjured     = "i"
	StatusSuspended   = "s"
	StatusUnavailable = "u"
	StatusNotInSquad  = "n"
)

// Player is a selectable athlete mirrored from the upstream bootstrap
// document. ElementType encodes the position (1 GK, 2 DEF, 3 MID, 4 FWD).
type Player struct {
	ID            int64
	FirstName     string
	SecondName    string
	WebName       string
	TeamID        int64
	ElementType   int
	NowCost       int
	TotalPoints   int
	Form          *string
	PointsPerGame *string
	ValueForm     *string
	ValueSeason   *string

	ChanceOfPlayingNextRound *int
	News                     string
	NewsAdded                *time.Time
	Status                   string
	Special                  bool
	CanSelect                bool
	CanTransact              bool
	InDreamteam              bool
	Removed                  bool
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.WebName == "" {
		return fmt.Errorf("player web name is required")
	}
	if p.ElementType < 1 || p.ElementType > 4 {
		return fmt.Errorf("invalid player element type: %d", p.ElementType)
	}

	return nil
}
