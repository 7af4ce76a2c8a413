package models

// Event is the cross-provider fixture record. Fields are a superset;
// individual providers populate a subset and the merge step unions the
// rest. Providers records which upstream(s) contributed.
type Event struct {
	EventID      string   `json:"event_id"`
	HomeTeamID   string   `json:"home_team_id,omitempty"`
	AwayTeamID   string   `json:"away_team_id,omitempty"`
	HomeTeamName string   `json:"home_team_name"`
	AwayTeamName string   `json:"away_team_name"`
	LeagueID     string   `json:"league_id,omitempty"`
	LeagueName   string   `json:"league_name,omitempty"`
	Date         string   `json:"date"`
	Status       string   `json:"status,omitempty"`
	HomeScore    *int     `json:"home_score,omitempty"`
	AwayScore    *int     `json:"away_score,omitempty"`
	Venue        string   `json:"venue,omitempty"`
	Referee      string   `json:"referee,omitempty"`
	Providers    []string `json:"providers,omitempty"`
}
