package entry

import "fmt"

// Entry is a registered manager's fantasy team summary mirrored from the
// upstream per-manager endpoint. UserID ties the entry to a local account
// written by the registration surface; this service never creates it.
type Entry struct {
	EntryID    int64
	UserID     string
	EntryName  string
	PlayerName string

	SummaryOverallPoints int
	SummaryOverallRank   *int64
	SummaryEventPoints   int
	SummaryEventRank     *int64
	TeamValue            *int
	Bank                 *int
}

func (e Entry) Validate() error {
	if e.EntryID <= 0 {
		return fmt.Errorf("entry id is required")
	}
	if e.UserID == "" {
		return fmt.Errorf("entry user id is required")
	}

	return nil
}

// Registered identifies one manager whose entry and picks should be kept in
// sync.
type Registered struct {
	EntryID int64
	UserID  string
}

// Pick is one owned player slot in a manager's squad for a gameweek.
type Pick struct {
	UserID        string
	GameweekID    int64
	PlayerID      int64
	Position      int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

func (p Pick) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("pick user id is required")
	}
	if p.GameweekID <= 0 {
		return fmt.Errorf("pick gameweek id is required")
	}
	if p.PlayerID <= 0 {
		return fmt.Errorf("pick player id is required")
	}

	return nil
}
