package stats

// GameLogEntry is one game's line for one player, most recent first as the
// provider returns them. Goalie fields stay zero for skaters and vice versa.
type GameLogEntry struct {
	GameID       int64   `json:"gameId"`
	GameDate     string  `json:"gameDate"`
	Opponent     string  `json:"opponent"`
	Home         bool    `json:"home"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	Points       int     `json:"points"`
	PlusMinus    int     `json:"plusMinus"`
	Shots        int     `json:"shots"`
	PIM          int     `json:"pim"`
	TOI          string  `json:"toi"`
	Decision     string  `json:"decision,omitempty"`
	ShotsAgainst int     `json:"shotsAgainst,omitempty"`
	GoalsAgainst int     `json:"goalsAgainst,omitempty"`
	SavePct      float64 `json:"savePct,omitempty"`
}
