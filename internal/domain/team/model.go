package team

import "fmt"

// Team is a real club mirrored from the upstream bootstrap document.
type Team struct {
	ID             int64
	Name           string
	ShortName      string
	Code           int64
	Form           *string
	Points         int
	Position       *int
	Played         int
	Win            int
	Draw           int
	Loss           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int

	Strength            *int
	StrengthOverallHome *int
	StrengthOverallAway *int
	StrengthAttackHome  *int
	StrengthAttackAway  *int
	StrengthDefenceHome *int
	StrengthDefenceAway *int
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
