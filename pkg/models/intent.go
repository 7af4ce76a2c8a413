package models

// Intent identifies an abstract operation the router dispatches on.
// The set is closed: adding an intent means adding a constant here, a
// policy entry, and the per-provider call branches.
type Intent string

const (
	IntentEventsList      Intent = "events.list"
	IntentEventGet        Intent = "event.get"
	IntentLivescores      Intent = "livescores"
	IntentTeamsList       Intent = "teams.list"
	IntentTeamGet         Intent = "team.get"
	IntentPlayersList     Intent = "players.list"
	IntentH2H             Intent = "h2h"
	IntentLeagueTable     Intent = "league.table"
	IntentLeaguesList     Intent = "leagues.list"
	IntentCountriesList   Intent = "countries.list"
	IntentOddsList        Intent = "odds.list"
	IntentVideoHighlights Intent = "video.highlights"
)

// knownIntents is the closed set the router accepts.
var knownIntents = map[Intent]bool{
	IntentEventsList:      true,
	IntentEventGet:        true,
	IntentLivescores:      true,
	IntentTeamsList:       true,
	IntentTeamGet:         true,
	IntentPlayersList:     true,
	IntentH2H:             true,
	IntentLeagueTable:     true,
	IntentLeaguesList:     true,
	IntentCountriesList:   true,
	IntentOddsList:        true,
	IntentVideoHighlights: true,
}

// KnownIntent reports whether the intent is part of the closed set.
func KnownIntent(i Intent) bool {
	return knownIntents[i]
}

// AllIntents returns every intent the router accepts.
func AllIntents() []Intent {
	intents := make([]Intent, 0, len(knownIntents))
	for i := range knownIntents {
		intents = append(intents, i)
	}
	return intents
}
