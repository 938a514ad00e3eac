package usecase

import (
	"github.com/atsilverman/fpl-research/internal/domain/entry"
	"github.com/atsilverman/fpl-research/internal/domain/fixture"
	"github.com/atsilverman/fpl-research/internal/domain/gameweek"
	"github.com/atsilverman/fpl-research/internal/domain/player"
	"github.com/atsilverman/fpl-research/internal/domain/playerstat"
	"github.com/atsilverman/fpl-research/internal/domain/team"
)

// One mapping function per entity type. Every pipeline step that shapes an
// upstream record goes through these, so field handling lives in one place.

func mapTeam(in UpstreamTeam) team.Team {
	return team.Team{
		ID:             in.ID,
		Name:           in.Name,
		ShortName:      in.ShortName,
		Code:           in.Code,
		Form:           in.Form,
		Points:         in.Points,
		Position:       in.Position,
		Played:         in.Played,
		Win:            in.Win,
		Draw:           in.Draw,
		Loss:           in.Loss,
		GoalsFor:       in.GoalsFor,
		GoalsAgainst:   in.GoalsAgainst,
		GoalDifference: in.GoalDifference,

		Strength:            in.Strength,
		StrengthOverallHome: in.StrengthOverallHome,
		StrengthOverallAway: in.StrengthOverallAway,
		StrengthAttackHome:  in.StrengthAttackHome,
		StrengthAttackAway:  in.StrengthAttackAway,
		StrengthDefenceHome: in.StrengthDefenceHome,
		StrengthDefenceAway: in.StrengthDefenceAway,
	}
}

func mapPlayer(in UpstreamPlayer) player.Player {
	status := in.Status
	if status == "" {
		status = player.StatusAvailable
	}

	return player.Player{
		ID:            in.ID,
		FirstName:     in.FirstName,
		SecondName:    in.SecondName,
		WebName:       in.WebName,
		TeamID:        in.TeamID,
		ElementType:   in.ElementType,
		NowCost:       in.NowCost,
		TotalPoints:   in.TotalPoints,
		Form:          in.Form,
		PointsPerGame: in.PointsPerGame,
		ValueForm:     in.ValueForm,
		ValueSeason:   in.ValueSeason,

		ChanceOfPlayingNextRound: in.ChanceOfPlayingNextRound,
		News:                     in.News,
		NewsAdded:                in.NewsAdded,
		Status:                   status,
		Special:                  in.Special,
		CanSelect:                in.CanSelect,
		CanTransact:              in.CanTransact,
		InDreamteam:              in.InDreamteam,
		Removed:                  in.Removed,
	}
}

func mapGameweek(in UpstreamGameweek) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:                in.ID,
		Name:              in.Name,
		Deadline:          in.Deadline,
		IsCurrent:         in.IsCurrent,
		IsNext:            in.IsNext,
		IsPrevious:        in.IsPrevious,
		Finished:          in.Finished,
		DataChecked:       in.DataChecked,
		HighestScore:      in.HighestScore,
		AverageEntryScore: in.AverageEntryScore,
	}
}

func mapFixture(in UpstreamFixture) fixture.Fixture {
	return fixture.Fixture{
		ID:             in.ID,
		GameweekID:     in.GameweekID,
		HomeTeamID:     in.HomeTeamID,
		AwayTeamID:     in.AwayTeamID,
		HomeTeamScore:  in.HomeTeamScore,
		AwayTeamScore:  in.AwayTeamScore,
		Finished:       in.Finished,
		KickoffTime:    in.KickoffTime,
		DifficultyHome: in.DifficultyHome,
		DifficultyAway: in.DifficultyAway,
	}
}

func mapStat(gameweekID int64, in UpstreamLiveElement) playerstat.Stat {
	return playerstat.Stat{
		PlayerID:   in.PlayerID,
		GameweekID: gameweekID,

		Minutes:         in.Stats.Minutes,
		GoalsScored:     in.Stats.GoalsScored,
		Assists:         in.Stats.Assists,
		CleanSheets:     in.Stats.CleanSheets,
		GoalsConceded:   in.Stats.GoalsConceded,
		OwnGoals:        in.Stats.OwnGoals,
		PenaltiesSaved:  in.Stats.PenaltiesSaved,
		PenaltiesMissed: in.Stats.PenaltiesMissed,
		YellowCards:     in.Stats.YellowCards,
		RedCards:        in.Stats.RedCards,
		Saves:           in.Stats.Saves,
		Bonus:           in.Stats.Bonus,
		BPS:             in.Stats.BPS,

		Influence:  in.Stats.Influence,
		Creativity: in.Stats.Creativity,
		Threat:     in.Stats.Threat,
		ICTIndex:   in.Stats.ICTIndex,

		ExpectedGoals:            in.Stats.ExpectedGoals,
		ExpectedAssists:          in.Stats.ExpectedAssists,
		ExpectedGoalInvolvements: in.Stats.ExpectedGoalInvolvements,
		ExpectedGoalsConceded:    in.Stats.ExpectedGoalsConceded,

		DefensiveContribution:         in.Stats.DefensiveContribution,
		ClearancesBlocksInterceptions: in.Stats.ClearancesBlocksInterceptions,
		Recoveries:                    in.Stats.Recoveries,
		Tackles:                       in.Stats.Tackles,

		TotalPoints:       in.Stats.TotalPoints,
		Value:             in.Stats.Value,
		SelectedByPercent: in.Stats.SelectedByPercent,
	}
}

func mapEntry(userID string, in UpstreamEntry) entry.Entry {
	return entry.Entry{
		EntryID:    in.EntryID,
		UserID:     userID,
		EntryName:  in.EntryName,
		PlayerName: in.PlayerName,

		SummaryOverallPoints: in.SummaryOverallPoints,
		SummaryOverallRank:   in.SummaryOverallRank,
		SummaryEventPoints:   in.SummaryEventPoints,
		SummaryEventRank:     in.SummaryEventRank,
		TeamValue:            in.TeamValue,
		Bank:                 in.Bank,
	}
}

func mapPicks(userID string, in UpstreamEntryPicks) []entry.Pick {
	out := make([]entry.Pick, 0, len(in.Picks))
	for _, pick := range in.Picks {
		out = append(out, entry.Pick{
			UserID:        userID,
			GameweekID:    in.GameweekID,
			PlayerID:      pick.PlayerID,
			Position:      pick.Position,
			Multiplier:    pick.Multiplier,
			IsCaptain:     pick.IsCaptain,
			IsViceCaptain: pick.IsViceCaptain,
		})
	}

	return out
}
