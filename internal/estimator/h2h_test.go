package estimator

import (
	"testing"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

func intPtr(v int) *int { return &v }

func meeting(homeID, awayID, date string, homeGoals, awayGoals int) models.Event {
	return models.Event{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Date:       date,
		HomeScore:  intPtr(homeGoals),
		AwayScore:  intPtr(awayGoals),
	}
}

func TestH2HProbabilities(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	opts := H2HOptions{HalfLifeDays: 365, VenueWeight: 1.25, Now: now}

	t.Run("empty history is uniform and strictly positive", func(t *testing.T) {
		probs := H2HProbabilities("10", "20", nil, opts)
		assertValidTriple(t, probs)
		if probs.Home != probs.Draw || probs.Draw != probs.Away {
			t.Errorf("pseudocounts alone should be uniform: %+v", probs)
		}
		if probs.Method != "h2h_dirichlet" {
			t.Errorf("Method = %q, want h2h_dirichlet", probs.Method)
		}
	})

	t.Run("one-sided history favors the winner but never hits 1", func(t *testing.T) {
		meetings := []models.Event{
			meeting("10", "20", "2025-05-01", 3, 0),
			meeting("10", "20", "2024-11-01", 2, 1),
			meeting("20", "10", "2024-05-01", 0, 2),
		}
		probs := H2HProbabilities("10", "20", meetings, opts)
		assertValidTriple(t, probs)
		if probs.Home <= probs.Away || probs.Home <= probs.Draw {
			t.Errorf("dominant side not favored: %+v", probs)
		}
	})

	t.Run("reversed orientation flips the scoreline", func(t *testing.T) {
		// Team 20 won every past meeting as host; for a match hosted
		// by 10 those count as away wins.
		meetings := []models.Event{
			meeting("20", "10", "2025-04-01", 3, 0),
			meeting("20", "10", "2024-10-01", 2, 0),
		}
		probs := H2HProbabilities("10", "20", meetings, opts)
		if probs.Away <= probs.Home {
			t.Errorf("reversed wins should favor the away side: %+v", probs)
		}
	})

	t.Run("recent results outweigh old ones", func(t *testing.T) {
		recentWin := []models.Event{
			meeting("10", "20", "2025-05-01", 1, 0),
			meeting("10", "20", "2018-05-01", 0, 1),
		}
		probs := H2HProbabilities("10", "20", recentWin, opts)
		if probs.Home <= probs.Away {
			t.Errorf("recency decay missing: %+v", probs)
		}
	})

	t.Run("same venue orientation counts for more", func(t *testing.T) {
		// One home win at the same orientation vs one away win at the
		// reversed orientation, same date: venue weight breaks the tie.
		meetings := []models.Event{
			meeting("10", "20", "2025-01-01", 1, 0),
			meeting("20", "10", "2025-01-01", 1, 0),
		}
		probs := H2HProbabilities("10", "20", meetings, opts)
		if probs.Home <= probs.Away {
			t.Errorf("venue weighting missing: %+v", probs)
		}
	})

	t.Run("skips unfinished and unrelated meetings", func(t *testing.T) {
		unrelated := meeting("10", "99", "2025-03-01", 4, 0)
		unfinished := models.Event{HomeTeamID: "10", AwayTeamID: "20", Date: "2025-09-01"}
		probs := H2HProbabilities("10", "20", []models.Event{unrelated, unfinished}, opts)
		if probs.Home != probs.Draw || probs.Draw != probs.Away {
			t.Errorf("only pseudocounts should remain: %+v", probs)
		}
	})
}
