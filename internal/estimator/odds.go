package estimator

import (
	"fmt"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// ImpliedFromDecimalOdds inverts each decimal odd and normalizes by the
// sum, removing the bookmaker's built-in overround. Odds must exceed
// 1.0 (a decimal odd at or below even money for every outcome is not a
// valid book).
func ImpliedFromDecimalOdds(home, draw, away float64) (models.WinProbabilities, error) {
	for _, odd := range []float64{home, draw, away} {
		if odd <= 1.0 {
			return models.WinProbabilities{}, fmt.Errorf("invalid decimal odd %.3f: must be > 1.0", odd)
		}
	}

	rawHome := 1 / home
	rawDraw := 1 / draw
	rawAway := 1 / away
	total := rawHome + rawDraw + rawAway

	return models.WinProbabilities{
		Home:    rawHome / total,
		Draw:    rawDraw / total,
		Away:    rawAway / total,
		Method:  "odds_implied",
		Sources: []string{"bookmaker_odds"},
	}, nil
}

// Blend combines odds-implied and form-based probabilities with fixed
// 0.7/0.3 weights per outcome. Weights sum to 1, so the result does
// too.
func Blend(odds, form models.WinProbabilities) models.WinProbabilities {
	blended := models.WinProbabilities{
		Home:   oddsWeight*odds.Home + formWeight*form.Home,
		Draw:   oddsWeight*odds.Draw + formWeight*form.Draw,
		Away:   oddsWeight*odds.Away + formWeight*form.Away,
		Method: "odds_form_blend",
	}
	blended.Sources = append(blended.Sources, odds.Sources...)
	blended.Sources = append(blended.Sources, form.Sources...)
	return blended
}
