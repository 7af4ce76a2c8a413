package aggregate

import (
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/allsports"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/apifootball"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers/sportsdb"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/fields"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

// EventsFromPayload shapes one provider's raw fixture payload into the
// cross-provider Event record. Unknown providers yield nil.
func EventsFromPayload(provider string, data interface{}) []models.Event {
	payload, ok := data.(map[string]interface{})
	if !ok {
		return nil
	}

	var records []interface{}
	switch provider {
	case sportsdb.ProviderName:
		records, _ = payload["events"].([]interface{})
	case allsports.ProviderName:
		records, _ = payload["result"].([]interface{})
	case apifootball.ProviderName:
		records, _ = payload["response"].([]interface{})
	default:
		return nil
	}

	events := make([]models.Event, 0, len(records))
	for _, raw := range records {
		record, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if provider == apifootball.ProviderName {
			record = flattenFixture(record)
		}
		event, ok := eventFromRecord(provider, record)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events
}

// providerProbeOrder is the parse order when an envelope does not say
// which provider shaped it.
var providerProbeOrder = []string{sportsdb.ProviderName, allsports.ProviderName, apifootball.ProviderName}

// EventsFromEnvelope shapes events out of a routed envelope. The
// provider recorded in meta.source answered last, so its payload shape
// is tried first; envelopes without a source fall back to probing every
// known shape.
func EventsFromEnvelope(resp *models.Response) []models.Event {
	if resp == nil || !resp.OK {
		return nil
	}
	if hint := envelopeProvider(resp); hint != "" {
		if events := EventsFromPayload(hint, resp.Data); len(events) > 0 {
			return events
		}
	}
	for _, provider := range providerProbeOrder {
		if events := EventsFromPayload(provider, resp.Data); len(events) > 0 {
			return events
		}
	}
	return nil
}

func envelopeProvider(resp *models.Response) string {
	if resp.Meta.Source == nil {
		return ""
	}
	if resp.Meta.Source.Fallback != nil {
		return *resp.Meta.Source.Fallback
	}
	return resp.Meta.Source.Primary
}

// eventFromRecord maps one flat record through the field alias table.
// Records without both team names are dropped: they cannot participate
// in cross-provider correlation.
func eventFromRecord(provider string, record map[string]interface{}) (models.Event, bool) {
	home, okHome := fields.PickString(record, fields.AttrHomeTeamName)
	away, okAway := fields.PickString(record, fields.AttrAwayTeamName)
	if !okHome || !okAway {
		return models.Event{}, false
	}

	event := models.Event{
		HomeTeamName: home,
		AwayTeamName: away,
		Providers:    []string{provider},
	}
	event.EventID, _ = fields.PickString(record, fields.AttrEventID)
	event.HomeTeamID, _ = fields.PickString(record, fields.AttrHomeTeamID)
	event.AwayTeamID, _ = fields.PickString(record, fields.AttrAwayTeamID)
	event.LeagueID, _ = fields.PickString(record, fields.AttrLeagueID)
	event.LeagueName, _ = fields.PickString(record, fields.AttrLeagueName)
	event.Date, _ = fields.PickString(record, fields.AttrDate)
	event.Status, _ = fields.PickString(record, fields.AttrStatus)
	event.Venue, _ = fields.PickString(record, fields.AttrVenue)
	event.Referee, _ = fields.PickString(record, fields.AttrReferee)

	if t, ok := fields.PickString(record, fields.AttrTime); ok && len(event.Date) == 10 {
		event.Date = event.Date + "T" + t
	}
	if score, ok := fields.PickInt(record, fields.AttrHomeScore); ok {
		event.HomeScore = &score
	}
	if score, ok := fields.PickInt(record, fields.AttrAwayScore); ok {
		event.AwayScore = &score
	}
	return event, true
}

// flattenFixture lifts the API-Football nested sub-objects (fixture,
// league, teams, goals) into one flat record the alias table can see.
func flattenFixture(record map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})

	if fixture, ok := record["fixture"].(map[string]interface{}); ok {
		flat["fixture_id"] = fixture["id"]
		flat["fixture_date"] = fixture["date"]
		flat["referee"] = fixture["referee"]
		if venue, ok := fixture["venue"].(map[string]interface{}); ok {
			flat["venue"] = venue["name"]
		}
		if status, ok := fixture["status"].(map[string]interface{}); ok {
			flat["status_long"] = status["long"]
			if short, ok := status["short"].(string); ok && short != "" {
				flat["status"] = short
			}
		}
	}
	if league, ok := record["league"].(map[string]interface{}); ok {
		flat["league_id"] = league["id"]
		flat["league_name"] = league["name"]
	}
	if teams, ok := record["teams"].(map[string]interface{}); ok {
		if home, ok := teams["home"].(map[string]interface{}); ok {
			flat["home_team_id"] = home["id"]
			flat["home_team"] = home["name"]
		}
		if away, ok := teams["away"].(map[string]interface{}); ok {
			flat["away_team_id"] = away["id"]
			flat["away_team"] = away["name"]
		}
	}
	if goals, ok := record["goals"].(map[string]interface{}); ok {
		flat["goals_home"] = goals["home"]
		flat["goals_away"] = goals["away"]
	}
	return flat
}
