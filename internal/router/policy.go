package router

import (
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/allsports"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/apifootball"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/sportsdb"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// Policy names the primary provider for an intent and an optional
// fallback. An empty Fallback means the primary's answer is final,
// empty or not.
type Policy struct {
	Primary  string
	Fallback string
}

// DefaultPolicies is the static intent -> provider routing table.
// Intents with strong coverage on the raw AllSports-style feed (live
// scores, rosters, odds, head-to-head) route there first; metadata and
// historical lookups route to the TheSportsDB-style provider first.
func DefaultPolicies() map[models.Intent]Policy {
	return map[models.Intent]Policy{
		models.IntentEventsList:      {Primary: allsports.ProviderName, Fallback: sportsdb.ProviderName},
		models.IntentEventGet:        {Primary: sportsdb.ProviderName, Fallback: allsports.ProviderName},
		models.IntentLivescores:      {Primary: allsports.ProviderName, Fallback: apifootball.ProviderName},
		models.IntentTeamsList:       {Primary: allsports.ProviderName},
		models.IntentTeamGet:         {Primary: sportsdb.ProviderName, Fallback: apifootball.ProviderName},
		models.IntentPlayersList:     {Primary: allsports.ProviderName, Fallback: apifootball.ProviderName},
		models.IntentH2H:             {Primary: allsports.ProviderName, Fallback: apifootball.ProviderName},
		models.IntentLeagueTable:     {Primary: sportsdb.ProviderName, Fallback: apifootball.ProviderName},
		models.IntentLeaguesList:     {Primary: sportsdb.ProviderName, Fallback: allsports.ProviderName},
		models.IntentCountriesList:   {Primary: allsports.ProviderName, Fallback: sportsdb.ProviderName},
		models.IntentOddsList:        {Primary: allsports.ProviderName},
		models.IntentVideoHighlights: {Primary: sportsdb.ProviderName},
	}
}

// DefaultPolicy covers known intents missing from the policy table.
func DefaultPolicy() Policy {
	return Policy{Primary: allsports.ProviderName, Fallback: sportsdb.ProviderName}
}
