package nhl

import (
	"context"
	"fmt"
	"strings"

	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
)

type gameLogEnvelope struct {
	GameLog []gameLogRow `json:"gameLog"`
}

type gameLogRow struct {
	GameID       int64        `json:"gameId"`
	GameDate     string       `json:"gameDate"`
	OpponentAbbr defaultLabel `json:"opponentCommonName"`
	Opponent     string       `json:"opponentAbbrev"`
	HomeRoadFlag string       `json:"homeRoadFlag"`
	Goals        int          `json:"goals"`
	Assists      int          `json:"assists"`
	Points       int          `json:"points"`
	PlusMinus    int          `json:"plusMinus"`
	Shots        int          `json:"shots"`
	PIM          int          `json:"pim"`
	TOI          string       `json:"toi"`
	Decision     string       `json:"decision"`
	ShotsAgainst int          `json:"shotsAgainst"`
	GoalsAgainst int          `json:"goalsAgainst"`
	SavePctg     float64      `json:"savePctg"`
}

// GameLog returns one player's per-game lines for a season, most recent
// first. The season defaults to the client's configured season when blank.
func (c *Client) GameLog(ctx context.Context, playerID int64, season string) ([]stats.GameLogEntry, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("player id must be greater than zero")
	}
	season = strings.TrimSpace(season)
	if season == "" {
		season = c.season
	}

	path := fmt.Sprintf("/v1/player/%d/game-log/%s/%d", playerID, season, c.gameType)
	var envelope gameLogEnvelope
	if err := c.doJSON(ctx, c.webURL(path), &envelope); err != nil {
		return nil, fmt.Errorf("fetch game log player_id=%d: %w", playerID, err)
	}

	out := make([]stats.GameLogEntry, 0, len(envelope.GameLog))
	for _, row := range envelope.GameLog {
		opponent := row.Opponent
		if opponent == "" {
			opponent = row.OpponentAbbr.Default
		}
		out = append(out, stats.GameLogEntry{
			GameID:       row.GameID,
			GameDate:     row.GameDate,
			Opponent:     opponent,
			Home:         row.HomeRoadFlag == "H",
			Goals:        row.Goals,
			Assists:      row.Assists,
			Points:       row.Points,
			PlusMinus:    row.PlusMinus,
			Shots:        row.Shots,
			PIM:          row.PIM,
			TOI:          row.TOI,
			Decision:     row.Decision,
			ShotsAgainst: row.ShotsAgainst,
			GoalsAgainst: row.GoalsAgainst,
			SavePct:      row.SavePctg,
		})
	}
	return out, nil
}
