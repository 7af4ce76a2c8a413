package models

// RecentFormSummary aggregates a team's last n results. Matches is the
// count actually used, which may be fewer than requested. LastFive is
// newest first. UnbeatenStreak counts consecutive non-losses ending at
// the most recent match.
type RecentFormSummary struct {
	TeamID         string   `json:"team_id"`
	Matches        int      `json:"matches"`
	Wins           int      `json:"wins"`
	Draws          int      `json:"draws"`
	Losses         int      `json:"losses"`
	GoalsFor       int      `json:"goals_for"`
	GoalsAgainst   int      `json:"goals_against"`
	LastFive       []string `json:"last_five"`
	UnbeatenStreak int      `json:"unbeaten_streak"`
}

// WinProbabilities is a three-way outcome estimate. Home, Draw and Away
// each lie strictly between 0 and 1 and sum to 1 within floating-point
// tolerance. Method tags the computation path; Sources lists the data
// categories that fed it.
type WinProbabilities struct {
	Home    float64  `json:"home"`
	Draw    float64  `json:"draw"`
	Away    float64  `json:"away"`
	Method  string   `json:"method"`
	Sources []string `json:"sources,omitempty"`
}
