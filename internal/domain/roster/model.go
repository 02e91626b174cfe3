package roster

// Entry is one (player name, fantasy team) pair as reported by a third-party
// league provider. Names are free text and may not match canonical spelling.
type Entry struct {
	PlayerName  string `json:"playerName"`
	FantasyTeam string `json:"fantasyTeam"`
}

// Identity is the canonical player identity attached by reconciliation.
type Identity struct {
	PlayerID int64  `json:"playerId"`
	Team     string `json:"team"`
}

// Resolved is an entry with its reconciliation outcome. Unresolvable entries
// keep the placeholder identity instead of being dropped; renderers must
// tolerate the missing identity (fallback headshot, no team badge).
type Resolved struct {
	Entry
	Identity
	Position string  `json:"position"`
	Matched  bool    `json:"matched"`
	Score    float64 `json:"matchScore"`
}

// PlaceholderIdentity marks an entry reconciliation could not resolve.
func PlaceholderIdentity() Identity {
	return Identity{PlayerID: 0, Team: "N/A"}
}

// TeamRoster groups resolved entries under one fantasy team.
type TeamRoster struct {
	TeamID   string     `json:"teamId"`
	TeamName string     `json:"teamName"`
	Players  []Resolved `json:"players"`
}
