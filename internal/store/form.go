package store

import "github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"

// FormFromResults folds a team's results into a form summary. Results
// must be ordered newest first; LastFive preserves that order and the
// unbeaten streak counts non-losses from the most recent match back.
func FormFromResults(teamID string, results []MatchResult) models.RecentFormSummary {
	summary := models.RecentFormSummary{TeamID: teamID}
	streakBroken := false

	for _, result := range results {
		var scored, conceded int
		switch teamID {
		case result.HomeTeamID:
			scored, conceded = result.HomeScore, result.AwayScore
		case result.AwayTeamID:
			scored, conceded = result.AwayScore, result.HomeScore
		default:
			continue
		}

		summary.Matches++
		summary.GoalsFor += scored
		summary.GoalsAgainst += conceded

		var outcome string
		switch {
		case scored > conceded:
			summary.Wins++
			outcome = "W"
		case scored < conceded:
			summary.Losses++
			outcome = "L"
		default:
			summary.Draws++
			outcome = "D"
		}

		if len(summary.LastFive) < 5 {
			summary.LastFive = append(summary.LastFive, outcome)
		}
		if outcome == "L" {
			streakBroken = true
		}
		if !streakBroken {
			summary.UnbeatenStreak++
		}
	}

	return summary
}
