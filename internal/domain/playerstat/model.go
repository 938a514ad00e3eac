package playerstat

import "fmt"

// Stat is one player's accumulated line for a single gameweek, keyed by
// (PlayerID, GameweekID). Rows only exist for players who saw the pitch.
type Stat struct {
	PlayerID   int64
	GameweekID int64

	Minutes         int
	GoalsScored     int
	Assists         int
	CleanSheets     int
	GoalsConceded   int
	OwnGoals        int
	PenaltiesSaved  int
	PenaltiesMissed int
	YellowCards     int
	RedCards        int
	Saves           int
	Bonus           int
	BPS             int

	Influence  *string
	Creativity *string
	Threat     *string
	ICTIndex   *string

	ExpectedGoals            *string
	ExpectedAssists          *string
	ExpectedGoalInvolvements *string
	ExpectedGoalsConceded    *string

	DefensiveContribution         int
	ClearancesBlocksInterceptions int
	Recoveries                    int
	Tackles                       int

	TotalPoints       int
	Value             *int
	SelectedByPercent *string
}

func (s Stat) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("stat player id is required")
	}
	if s.GameweekID <= 0 {
		return fmt.Errorf("stat gameweek id is required")
	}
	if s.Minutes <= 0 {
		return fmt.Errorf("stat requires nonzero minutes")
	}

	return nil
}
