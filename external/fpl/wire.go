package fpl

import (
	"time"

	"github.com/atsilverman/fpl-research/internal/usecase"
)

// Wire shapes mirror the feed's JSON documents. Mapping into the upstream
// types happens here and nowhere else.

type eventStatusEnvelope struct {
	Status []struct {
		Event int64  `json:"event"`
		Date  string `json:"date"`
	} `json:"status"`
	Leagues string `json:"leagues"`
}

type bootstrapEnvelope struct {
	Events   []wireEvent   `json:"events"`
	Teams    []wireTeam    `json:"teams"`
	Elements []wireElement `json:"elements"`
}

type wireTeam struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	Code           int64   `json:"code"`
	Form           *string `json:"form"`
	Points         int     `json:"points"`
	Position       *int    `json:"position"`
	Played         int     `json:"played"`
	Win            int     `json:"win"`
	Draw           int     `json:"draw"`
	Loss           int     `json:"loss"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`

	Strength            *int `json:"strength"`
	StrengthOverallHome *int `json:"strength_overall_home"`
	StrengthOverallAway *int `json:"strength_overall_away"`
	StrengthAttackHome  *int `json:"strength_attack_home"`
	StrengthAttackAway  *int `json:"strength_attack_away"`
	StrengthDefenceHome *int `json:"strength_defence_home"`
	StrengthDefenceAway *int `json:"strength_defence_away"`
}

type wireElement struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	SecondName    string  `json:"second_name"`
	WebName       string  `json:"web_name"`
	Team          int64   `json:"team"`
	ElementType   int     `json:"element_type"`
	NowCost       int     `json:"now_cost"`
	TotalPoints   int     `json:"total_points"`
	Form          *string `json:"form"`
	PointsPerGame *string `json:"points_per_game"`
	ValueForm     *string `json:"value_form"`
	ValueSeason   *string `json:"value_season"`

	ChanceOfPlayingNextRound *int    `json:"chance_of_playing_next_round"`
	News                     string  `json:"news"`
	NewsAdded                *string `json:"news_added"`
	Status                   string  `json:"status"`
	Special                  bool    `json:"special"`
	CanSelect                bool    `json:"can_select"`
	CanTransact              bool    `json:"can_transact"`
	InDreamteam              bool    `json:"in_dreamteam"`
	Removed                  bool    `json:"removed"`
}

type wireEvent struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	DeadlineTime      *string `json:"deadline_time"`
	IsCurrent         bool    `json:"is_current"`
	IsNext            bool    `json:"is_next"`
	IsPrevious        bool    `json:"is_previous"`
	Finished          bool    `json:"finished"`
	DataChecked       bool    `json:"data_checked"`
	HighestScore      *int    `json:"highest_score"`
	AverageEntryScore *int    `json:"average_entry_score"`
}

type wireFixture struct {
	ID          int64   `json:"id"`
	Event       *int64  `json:"event"`
	TeamH       int64   `json:"team_h"`
	TeamA       int64   `json:"team_a"`
	TeamHScore  *int    `json:"team_h_score"`
	TeamAScore  *int    `json:"team_a_score"`
	Finished    bool    `json:"finished"`
	KickoffTime *string `json:"kickoff_time"`
	TeamHDiff   *int    `json:"team_h_difficulty"`
	TeamADiff   *int    `json:"team_a_difficulty"`
}

type liveEnvelope struct {
	Elements []wireLiveElement `json:"elements"`
}

type wireLiveElement struct {
	ID    int64         `json:"id"`
	Stats wireLiveStats `json:"stats"`
}

type wireLiveStats struct {
	Minutes         int `json:"minutes"`
	GoalsScored     int `json:"goals_scored"`
	Assists         int `json:"assists"`
	CleanSheets     int `json:"clean_sheets"`
	GoalsConceded   int `json:"goals_conceded"`
	OwnGoals        int `json:"own_goals"`
	PenaltiesSaved  int `json:"penalties_saved"`
	PenaltiesMissed int `json:"penalties_missed"`
	YellowCards     int `json:"yellow_cards"`
	RedCards        int `json:"red_cards"`
	Saves           int `json:"saves"`
	Bonus           int `json:"bonus"`
	BPS             int `json:"bps"`

	Influence  *string `json:"influence"`
	Creativity *string `json:"creativity"`
	Threat     *string `json:"threat"`
	ICTIndex   *string `json:"ict_index"`

	ExpectedGoals            *string `json:"expected_goals"`
	ExpectedAssists          *string `json:"expected_assists"`
	ExpectedGoalInvolvements *string `json:"expected_goal_involvements"`
	ExpectedGoalsConceded    *string `json:"expected_goals_conceded"`

	DefensiveContribution         int `json:"defensive_contribution"`
	ClearancesBlocksInterceptions int `json:"clearances_blocks_interceptions"`
	Recoveries                    int `json:"recoveries"`
	Tackles                       int `json:"tackles"`

	TotalPoints       int     `json:"total_points"`
	Value             *int    `json:"value"`
	SelectedByPercent *string `json:"selected_by_percent"`
}

type entryEnvelope struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PlayerFirstName string `json:"player_first_name"`
	PlayerLastName  string `json:"player_last_name"`

	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   *int64 `json:"summary_overall_rank"`
	SummaryEventPoints   int    `json:"summary_event_points"`
	SummaryEventRank     *int64 `json:"summary_event_rank"`
	LastDeadlineValue    *int   `json:"last_deadline_value"`
	LastDeadlineBank     *int   `json:"last_deadline_bank"`
}

type picksEnvelope struct {
	Picks []wirePick `json:"picks"`
}

type wirePick struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}

func mapBootstrap(in bootstrapEnvelope) usecase.UpstreamBootstrap {
	out := usecase.UpstreamBootstrap{
		Teams:     make([]usecase.UpstreamTeam, 0, len(in.Teams)),
		Players:   make([]usecase.UpstreamPlayer, 0, len(in.Elements)),
		Gameweeks: make([]usecase.UpstreamGameweek, 0, len(in.Events)),
	}

	for _, t := range in.Teams {
		out.Teams = append(out.Teams, usecase.UpstreamTeam{
			ID:             t.ID,
			Name:           t.Name,
			ShortName:      t.ShortName,
			Code:           t.Code,
			Form:           t.Form,
			Points:         t.Points,
			Position:       t.Position,
			Played:         t.Played,
			Win:            t.Win,
			Draw:           t.Draw,
			Loss:           t.Loss,
			GoalsFor:       t.GoalsFor,
			GoalsAgainst:   t.GoalsAgainst,
			GoalDifference: t.GoalDifference,

			Strength:            t.Strength,
			StrengthOverallHome: t.StrengthOverallHome,
			StrengthOverallAway: t.StrengthOverallAway,
			StrengthAttackHome:  t.StrengthAttackHome,
			StrengthAttackAway:  t.StrengthAttackAway,
			StrengthDefenceHome: t.StrengthDefenceHome,
			StrengthDefenceAway: t.StrengthDefenceAway,
		})
	}

	for _, e := range in.Elements {
		out.Players = append(out.Players, usecase.UpstreamPlayer{
			ID:            e.ID,
			FirstName:     e.FirstName,
			SecondName:    e.SecondName,
			WebName:       e.WebName,
			TeamID:        e.Team,
			ElementType:   e.ElementType,
			NowCost:       e.NowCost,
			TotalPoints:   e.TotalPoints,
			Form:          e.Form,
			PointsPerGame: e.PointsPerGame,
			ValueForm:     e.ValueForm,
			ValueSeason:   e.ValueSeason,

			ChanceOfPlayingNextRound: e.ChanceOfPlayingNextRound,
			News:                     e.News,
			NewsAdded:                parseFeedTime(e.NewsAdded),
			Status:                   e.Status,
			Special:                  e.Special,
			CanSelect:                e.CanSelect,
			CanTransact:              e.CanTransact,
			InDreamteam:              e.InDreamteam,
			Removed:                  e.Removed,
		})
	}

	for _, ev := range in.Events {
		out.Gameweeks = append(out.Gameweeks, usecase.UpstreamGameweek{
			ID:                ev.ID,
			Name:              ev.Name,
			Deadline:          parseFeedTime(ev.DeadlineTime),
			IsCurrent:         ev.IsCurrent,
			IsNext:            ev.IsNext,
			IsPrevious:        ev.IsPrevious,
			Finished:          ev.Finished,
			DataChecked:       ev.DataChecked,
			HighestScore:      ev.HighestScore,
			AverageEntryScore: ev.AverageEntryScore,
		})
	}

	return out
}

func mapWireFixture(in wireFixture) usecase.UpstreamFixture {
	return usecase.UpstreamFixture{
		ID:             in.ID,
		GameweekID:     in.Event,
		HomeTeamID:     in.TeamH,
		AwayTeamID:     in.TeamA,
		HomeTeamScore:  in.TeamHScore,
		AwayTeamScore:  in.TeamAScore,
		Finished:       in.Finished,
		KickoffTime:    parseFeedTime(in.KickoffTime),
		DifficultyHome: in.TeamHDiff,
		DifficultyAway: in.TeamADiff,
	}
}

func mapLive(gameweekID int64, in liveEnvelope) usecase.UpstreamLive {
	out := usecase.UpstreamLive{
		GameweekID: gameweekID,
		Elements:   make([]usecase.UpstreamLiveElement, 0, len(in.Elements)),
	}
	for _, element := range in.Elements {
		out.Elements = append(out.Elements, usecase.UpstreamLiveElement{
			PlayerID: element.ID,
			Stats: usecase.UpstreamLiveStats{
				Minutes:         element.Stats.Minutes,
				GoalsScored:     element.Stats.GoalsScored,
				Assists:         element.Stats.Assists,
				CleanSheets:     element.Stats.CleanSheets,
				GoalsConceded:   element.Stats.GoalsConceded,
				OwnGoals:        element.Stats.OwnGoals,
				PenaltiesSaved:  element.Stats.PenaltiesSaved,
				PenaltiesMissed: element.Stats.PenaltiesMissed,
				YellowCards:     element.Stats.YellowCards,
				RedCards:        element.Stats.RedCards,
				Saves:           element.Stats.Saves,
				Bonus:           element.Stats.Bonus,
				BPS:             element.Stats.BPS,

				Influence:  element.Stats.Influence,
				Creativity: element.Stats.Creativity,
				Threat:     element.Stats.Threat,
				ICTIndex:   element.Stats.ICTIndex,

				ExpectedGoals:            element.Stats.ExpectedGoals,
				ExpectedAssists:          element.Stats.ExpectedAssists,
				ExpectedGoalInvolvements: element.Stats.ExpectedGoalInvolvements,
				ExpectedGoalsConceded:    element.Stats.ExpectedGoalsConceded,

				DefensiveContribution:         element.Stats.DefensiveContribution,
				ClearancesBlocksInterceptions: element.Stats.ClearancesBlocksInterceptions,
				Recoveries:                    element.Stats.Recoveries,
				Tackles:                       element.Stats.Tackles,

				TotalPoints:       element.Stats.TotalPoints,
				Value:             element.Stats.Value,
				SelectedByPercent: element.Stats.SelectedByPercent,
			},
		})
	}

	return out
}

func mapEntry(in entryEnvelope) usecase.UpstreamEntry {
	playerName := in.PlayerFirstName
	if in.PlayerLastName != "" {
		if playerName != "" {
			playerName += " "
		}
		playerName += in.PlayerLastName
	}

	return usecase.UpstreamEntry{
		EntryID:    in.ID,
		EntryName:  in.Name,
		PlayerName: playerName,

		SummaryOverallPoints: in.SummaryOverallPoints,
		SummaryOverallRank:   in.SummaryOverallRank,
		SummaryEventPoints:   in.SummaryEventPoints,
		SummaryEventRank:     in.SummaryEventRank,
		TeamValue:            in.LastDeadlineValue,
		Bank:                 in.LastDeadlineBank,
	}
}

func mapEntryPicks(entryID, gameweekID int64, in picksEnvelope) usecase.UpstreamEntryPicks {
	out := usecase.UpstreamEntryPicks{
		EntryID:    entryID,
		GameweekID: gameweekID,
		Picks:      make([]usecase.UpstreamPick, 0, len(in.Picks)),
	}
	for _, pick := range in.Picks {
		out.Picks = append(out.Picks, usecase.UpstreamPick{
			PlayerID:      pick.Element,
			Position:      pick.Position,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	return out
}

func parseFeedTime(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	parsed = parsed.UTC()
	return &parsed
}
