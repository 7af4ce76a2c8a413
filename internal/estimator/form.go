// Package estimator computes three-way outcome probabilities from
// recent form, bookmaker odds and head-to-head history. The numeric
// functions are pure and deterministic; orchestration against the
// router lives in Service.
package estimator

import (
	"math"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

const (
	// BaseRating is the neutral Elo-like rating.
	BaseRating = 1500.0

	// HomeAdvantage is added to the home side before the diff.
	HomeAdvantage = 60.0

	formWeight = 0.3
	oddsWeight = 0.7
)

// RatingFromForm derives a single strength scalar from a recent-form
// summary: 1500 plus 80 per point-per-game above 1.5, plus 5 per goal
// of difference. Zero matches returns exactly 1500.
func RatingFromForm(form models.RecentFormSummary) float64 {
	if form.Matches == 0 {
		return BaseRating
	}
	points := float64(3*form.Wins + form.Draws)
	pointsPerMatch := points / float64(form.Matches)
	goalDiff := float64(form.GoalsFor - form.GoalsAgainst)
	return BaseRating + 80*(pointsPerMatch-1.5) + 5*goalDiff
}

// LogisticProb is the standard Elo curve: the win expectancy for a side
// rated eloDiff points above its opponent.
func LogisticProb(eloDiff float64) float64 {
	return 1 / (1 + math.Pow(10, -eloDiff/400))
}

// FormProbabilities estimates the outcome triple from both teams' form
// alone. The draw share is a closeness heuristic (evenly matched sides
// draw more), in the 0.2–0.4 band before renormalization.
func FormProbabilities(home, away models.RecentFormSummary) models.WinProbabilities {
	homeRating := RatingFromForm(home) + HomeAdvantage
	awayRating := RatingFromForm(away)

	pHome := LogisticProb(homeRating - awayRating)
	pAway := 1 - pHome

	closeness := 1 - math.Abs(pHome-pAway)
	pDraw := 0.2 + 0.2*closeness

	total := pHome + pDraw + pAway
	return models.WinProbabilities{
		Home:    pHome / total,
		Draw:    pDraw / total,
		Away:    pAway / total,
		Method:  "form_elo",
		Sources: []string{"recent_form"},
	}
}
