package aggregate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// CompositeKey correlates the same real-world match across providers:
// lowercase team names plus the date portion of the kickoff. It is a
// heuristic: spelling differences across providers cause false
// negatives, which are accepted and surface as distinct records.
func CompositeKey(event models.Event) string {
	return strings.ToLower(strings.TrimSpace(event.HomeTeamName)) +
		"__" + strings.ToLower(strings.TrimSpace(event.AwayTeamName)) +
		"__" + dateOnly(event.Date)
}

func dateOnly(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// MergeEvents collapses per-provider fixture lists into one. Lists must
// be given in provider-priority order: the first record seen for a
// composite key becomes the base, and later providers only fill fields
// the base left empty; a populated field is never overwritten. Within
// one provider, records deduplicate by the provider's own event ID.
// The result is ordered live first, then upcoming by kickoff ascending,
// then finished.
func MergeEvents(lists ...[]models.Event) []models.Event {
	merged := make([]models.Event, 0)
	byKey := make(map[string]int)

	for _, list := range lists {
		seenIDs := make(map[string]bool)
		for _, event := range list {
			if event.EventID != "" {
				if seenIDs[event.EventID] {
					continue
				}
				seenIDs[event.EventID] = true
			}

			key := CompositeKey(event)
			if idx, ok := byKey[key]; ok {
				merged[idx] = unionEvent(merged[idx], event)
				continue
			}
			byKey[key] = len(merged)
			merged = append(merged, event)
		}
	}

	sortEvents(merged)
	return merged
}

// unionEvent fills base's missing fields from other and records the
// extra contributing provider. Populated base fields always win.
func unionEvent(base, other models.Event) models.Event {
	if base.EventID == "" {
		base.EventID = other.EventID
	}
	if base.HomeTeamID == "" {
		base.HomeTeamID = other.HomeTeamID
	}
	if base.AwayTeamID == "" {
		base.AwayTeamID = other.AwayTeamID
	}
	if base.LeagueID == "" {
		base.LeagueID = other.LeagueID
	}
	if base.LeagueName == "" {
		base.LeagueName = other.LeagueName
	}
	if base.Date == "" {
		base.Date = other.Date
	}
	if base.Status == "" {
		base.Status = other.Status
	}
	if base.HomeScore == nil {
		base.HomeScore = other.HomeScore
	}
	if base.AwayScore == nil {
		base.AwayScore = other.AwayScore
	}
	if base.Venue == "" {
		base.Venue = other.Venue
	}
	if base.Referee == "" {
		base.Referee = other.Referee
	}

	for _, provider := range other.Providers {
		if !containsString(base.Providers, provider) {
			base.Providers = append(base.Providers, provider)
		}
	}
	return base
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Providers share no status vocabulary, so phase detection is a token
// heuristic over a small known set plus numeric minute-of-play strings.
var liveStatusTokens = map[string]bool{
	"live":        true,
	"in progress": true,
	"1h":          true,
	"2h":          true,
	"ht":          true,
	"halftime":    true,
	"half time":   true,
	"et":          true,
	"bt":          true,
	"p":           true,
	"playing":     true,
}

var finishedStatusTokens = map[string]bool{
	"finished":         true,
	"match finished":   true,
	"ft":               true,
	"aet":              true,
	"pen":              true,
	"full time":        true,
	"ended":            true,
	"after extra time": true,
}

var minutePattern = regexp.MustCompile(`^\d{1,3}(\+\d+)?'?$`)

// phase buckets a status string: 0 live, 1 upcoming, 2 finished.
func phase(status string) int {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.TrimSuffix(s, ".")
	switch {
	case liveStatusTokens[s] || minutePattern.MatchString(s):
		return 0
	case finishedStatusTokens[s]:
		return 2
	default:
		return 1
	}
}

// IsLive reports whether a status string looks in-play.
func IsLive(status string) bool {
	return phase(status) == 0
}

// IsFinished reports whether a status string looks final.
func IsFinished(status string) bool {
	return phase(status) == 2
}

func sortEvents(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		pi, pj := phase(events[i].Status), phase(events[j].Status)
		if pi != pj {
			return pi < pj
		}
		if pi == 1 {
			// Upcoming: kickoff ascending; ISO date strings order
			// lexicographically.
			return events[i].Date < events[j].Date
		}
		return false
	})
}
