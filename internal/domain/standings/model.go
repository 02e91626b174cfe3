package standings

// TeamRecord is one league-standings row. PointPct doubles as the "team
// strength" proxy used when weighing a player's remaining schedule.
type TeamRecord struct {
	TeamAbbrev   string  `json:"teamAbbrev"`
	TeamName     string  `json:"teamName"`
	GamesPlayed  int     `json:"gamesPlayed"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	OTLosses     int     `json:"otLosses"`
	Points       int     `json:"points"`
	PointPct     float64 `json:"pointPct"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
}

// Strength returns the team-strength proxy for schedule weighting.
func (r TeamRecord) Strength() float64 {
	return r.PointPct
}
