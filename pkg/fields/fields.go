// Package fields resolves logical event attributes against the wildly
// inconsistent field names used by the upstream providers. Each logical
// attribute maps to an ordered list of candidate keys; the first key that
// is present with a truthy value wins.
package fields

import (
	"fmt"
	"strconv"
)

// Attribute names the logical fields the aggregation layer cares about.
const (
	AttrEventID      = "event_id"
	AttrHomeTeamID   = "home_team_id"
	AttrAwayTeamID   = "away_team_id"
	AttrHomeTeamName = "home_team_name"
	AttrAwayTeamName = "away_team_name"
	AttrLeagueID     = "league_id"
	AttrLeagueName   = "league_name"
	AttrDate         = "date"
	AttrTime         = "time"
	AttrStatus       = "status"
	AttrHomeScore    = "home_score"
	AttrAwayScore    = "away_score"
	AttrVenue        = "venue"
	AttrReferee      = "referee"
)

// Aliases is the attribute -> ordered candidate key table, covering
// TheSportsDB-style, AllSports-style and API-Football-style payloads.
// Order matters: earlier keys win.
var Aliases = map[string][]string{
	AttrEventID:      {"event_id", "event_key", "idEvent", "fixture_id", "id", "match_id"},
	AttrHomeTeamID:   {"home_team_id", "home_team_key", "idHomeTeam", "event_home_team_id", "homeTeam_id"},
	AttrAwayTeamID:   {"away_team_id", "away_team_key", "idAwayTeam", "event_away_team_id", "awayTeam_id"},
	AttrHomeTeamName: {"home_team", "event_home_team", "strHomeTeam", "home_team_name", "homeTeam"},
	AttrAwayTeamName: {"away_team", "event_away_team", "strAwayTeam", "away_team_name", "awayTeam"},
	AttrLeagueID:     {"league_id", "league_key", "idLeague"},
	AttrLeagueName:   {"league_name", "strLeague", "league"},
	AttrDate:         {"event_date", "dateEvent", "date", "fixture_date", "commence_time"},
	AttrTime:         {"event_time", "strTime", "time"},
	AttrStatus:       {"event_status", "strStatus", "status", "status_long"},
	AttrHomeScore:    {"home_score", "intHomeScore", "event_home_final_result", "goals_home"},
	AttrAwayScore:    {"away_score", "intAwayScore", "event_away_final_result", "goals_away"},
	AttrVenue:        {"venue", "strVenue", "event_stadium", "stadium"},
	AttrReferee:      {"referee", "strReferee", "event_referee"},
}

// Pick returns the first present, truthy value for the logical attribute.
// Empty strings, nil and zero numbers do not count as present.
func Pick(record map[string]interface{}, attribute string) (interface{}, bool) {
	keys, ok := Aliases[attribute]
	if !ok {
		return nil, false
	}
	for _, key := range keys {
		value, present := record[key]
		if present && truthy(value) {
			return value, true
		}
	}
	return nil, false
}

// PickString is Pick with string coercion for numeric IDs and the like.
func PickString(record map[string]interface{}, attribute string) (string, bool) {
	value, ok := Pick(record, attribute)
	if !ok {
		return "", false
	}
	return AsString(value), true
}

// PickInt is Pick with integer coercion; scores arrive as numbers in some
// providers and strings in others. Unlike Pick, a numeric zero counts as
// present: 0 is a valid score, while nil and "" mean "not played yet".
func PickInt(record map[string]interface{}, attribute string) (int, bool) {
	keys, ok := Aliases[attribute]
	if !ok {
		return 0, false
	}
	for _, key := range keys {
		value, present := record[key]
		if !present || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

// AsString renders a scalar value the way providers print it: "42" for
// float64(42), not "42.000000".
func AsString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case bool:
		return v
	}
	return true
}
