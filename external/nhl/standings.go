package nhl

import (
	"context"
	"fmt"

	"github.com/rinkside/fantasy-hockey/internal/domain/standings"
)

type standingsEnvelope struct {
	Standings []standingsRow `json:"standings"`
}

type standingsRow struct {
	TeamAbbrev   defaultLabel `json:"teamAbbrev"`
	TeamName     defaultLabel `json:"teamName"`
	GamesPlayed  int          `json:"gamesPlayed"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	OTLosses     int          `json:"otLosses"`
	Points       int          `json:"points"`
	PointPctg    float64      `json:"pointPctg"`
	GoalFor      int          `json:"goalFor"`
	GoalAgainst  int          `json:"goalAgainst"`
}

// Standings returns the current league table in provider order.
func (c *Client) Standings(ctx context.Context) ([]standings.TeamRecord, error) {
	var envelope standingsEnvelope
	if err := c.doJSON(ctx, c.webURL("/v1/standings/now"), &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	out := make([]standings.TeamRecord, 0, len(envelope.Standings))
	for _, row := range envelope.Standings {
		if row.TeamAbbrev.Default == "" {
			continue
		}
		out = append(out, standings.TeamRecord{
			TeamAbbrev:   row.TeamAbbrev.Default,
			TeamName:     row.TeamName.Default,
			GamesPlayed:  row.GamesPlayed,
			Wins:         row.Wins,
			Losses:       row.Losses,
			OTLosses:     row.OTLosses,
			Points:       row.Points,
			PointPct:     row.PointPctg,
			GoalsFor:     row.GoalFor,
			GoalsAgainst: row.GoalAgainst,
		})
	}
	return out, nil
}
