package usecase

import "github.com/rinkside/fantasy-hockey/internal/domain/roster"

// ExternalFantasyLeague is the provider-agnostic shape a fantasy league
// client returns: team identities, win-loss records, and raw roster entries.
type ExternalFantasyLeague struct {
	ID    int64
	Name  string
	Size  int
	Teams []ExternalFantasyTeam
}

type ExternalFantasyTeam struct {
	ID      int64
	Name    string
	Abbrev  string
	Wins    int
	Losses  int
	Ties    int
	Entries []roster.Entry
}
