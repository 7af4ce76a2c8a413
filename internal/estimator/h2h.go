package estimator

import (
	"math"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// H2HOptions tunes the head-to-head estimator.
type H2HOptions struct {
	// HalfLifeDays controls the exponential recency decay: a result
	// this old counts half as much as one played today.
	HalfLifeDays float64

	// VenueWeight up-weights results played at the same home/away
	// orientation as the upcoming match. Must be >= 1.
	VenueWeight float64

	// Now anchors the decay; zero means time.Now().
	Now time.Time
}

// DefaultH2HOptions returns the tuning used in production.
func DefaultH2HOptions() H2HOptions {
	return H2HOptions{
		HalfLifeDays: 365,
		VenueWeight:  1.25,
	}
}

// dateLayouts are the kickoff formats the providers emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// H2HProbabilities derives the outcome triple for an upcoming match
// between upHomeID (hosting) and upAwayID from their direct meetings.
// Each past result contributes a decayed, venue-weighted count to a
// Dirichlet-style tally seeded with one pseudocount per outcome, which
// keeps every probability strictly inside (0,1) even on one-sided or
// empty histories.
func H2HProbabilities(upHomeID, upAwayID string, meetings []models.Event, opts H2HOptions) models.WinProbabilities {
	if opts.HalfLifeDays <= 0 {
		opts.HalfLifeDays = DefaultH2HOptions().HalfLifeDays
	}
	if opts.VenueWeight < 1 {
		opts.VenueWeight = 1
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	alphaHome, alphaDraw, alphaAway := 1.0, 1.0, 1.0

	for _, meeting := range meetings {
		if meeting.HomeScore == nil || meeting.AwayScore == nil {
			continue
		}

		weight := 1.0
		if played, ok := parseKickoff(meeting.Date); ok {
			ageDays := now.Sub(played).Hours() / 24
			if ageDays < 0 {
				ageDays = 0
			}
			weight = math.Pow(0.5, ageDays/opts.HalfLifeDays)
		}

		// Same orientation as the upcoming match: the venue effect is
		// informative, so the result counts for more.
		sameOrientation := meeting.HomeTeamID == upHomeID && meeting.AwayTeamID == upAwayID
		if sameOrientation {
			weight *= opts.VenueWeight
		}

		// Scores are recorded from the past match's perspective; flip
		// them when the upcoming home side was visiting.
		upHomeGoals, upAwayGoals := *meeting.HomeScore, *meeting.AwayScore
		if !sameOrientation {
			if meeting.HomeTeamID != upAwayID || meeting.AwayTeamID != upHomeID {
				continue // not a meeting of these two teams
			}
			upHomeGoals, upAwayGoals = upAwayGoals, upHomeGoals
		}

		switch {
		case upHomeGoals > upAwayGoals:
			alphaHome += weight
		case upHomeGoals < upAwayGoals:
			alphaAway += weight
		default:
			alphaDraw += weight
		}
	}

	total := alphaHome + alphaDraw + alphaAway
	return models.WinProbabilities{
		Home:    alphaHome / total,
		Draw:    alphaDraw / total,
		Away:    alphaAway / total,
		Method:  "h2h_dirichlet",
		Sources: []string{"head_to_head"},
	}
}

func parseKickoff(date string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
