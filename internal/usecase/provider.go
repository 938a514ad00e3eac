package usecase

import (
	"context"
	"time"
)

// FeedProvider is the read-only upstream feed this service mirrors. Ping is
// the cheap connectivity probe used by refresh preflight and the test mode.
type FeedProvider interface {
	Ping(ctx context.Context) error
	FetchBootstrap(ctx context.Context) (UpstreamBootstrap, error)
	FetchFixtures(ctx context.Context) ([]UpstreamFixture, error)
	FetchLive(ctx context.Context, gameweekID int64) (UpstreamLive, error)
	FetchEntry(ctx context.Context, entryID int64) (UpstreamEntry, error)
	FetchEntryPicks(ctx context.Context, entryID, gameweekID int64) (UpstreamEntryPicks, error)
}

// UpstreamBootstrap is the feed's combined teams/players/periods document.
type UpstreamBootstrap struct {
	Teams     []UpstreamTeam
	Players   []UpstreamPlayer
	Gameweeks []UpstreamGameweek
}

type UpstreamTeam struct {
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

type UpstreamPlayer struct {
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

type UpstreamGameweek struct {
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

type UpstreamFixture struct {
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

// UpstreamLive is one gameweek's per-player live stat document.
type UpstreamLive struct {
	GameweekID int64
	Elements   []UpstreamLiveElement
}

type UpstreamLiveElement struct {
	PlayerID int64
	Stats    UpstreamLiveStats
}

type UpstreamLiveStats struct {
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

// UpstreamEntry is one manager's summary document.
type UpstreamEntry struct {
	EntryID    int64
	EntryName  string
	PlayerName string

	SummaryOverallPoints int
	SummaryOverallRank   *int64
	SummaryEventPoints   int
	SummaryEventRank     *int64
	TeamValue            *int
	Bank                 *int
}

// UpstreamEntryPicks is one manager's squad for one gameweek.
type UpstreamEntryPicks struct {
	EntryID    int64
	GameweekID int64
	Picks      []UpstreamPick
}

type UpstreamPick struct {
	PlayerID      int64
	Position      int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}
