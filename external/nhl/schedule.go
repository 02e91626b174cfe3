package nhl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rinkside/fantasy-hockey/internal/domain/schedule"
)

type scoreEnvelope struct {
	CurrentDate string      `json:"currentDate"`
	Games       []scoreGame `json:"games"`
}

type scoreGame struct {
	ID           int64        `json:"id"`
	GameState    string       `json:"gameState"`
	StartTimeUTC string       `json:"startTimeUTC"`
	HomeTeam     scoreTeam    `json:"homeTeam"`
	AwayTeam     scoreTeam    `json:"awayTeam"`
	Period       int          `json:"period"`
	Venue        defaultLabel `json:"venue"`
}

type scoreTeam struct {
	Abbrev string `json:"abbrev"`
	Score  int    `json:"score"`
}

type defaultLabel struct {
	Default string `json:"default"`
}

// Scores returns the game slate for one calendar date (YYYY-MM-DD). Display
// times are stamped later; here start times stay UTC as the provider sends
// them.
func (c *Client) Scores(ctx context.Context, date string) (schedule.GameDay, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return schedule.GameDay{}, fmt.Errorf("date is required")
	}

	var envelope scoreEnvelope
	if err := c.doJSON(ctx, c.webURL("/v1/score/"+date), &envelope); err != nil {
		return schedule.GameDay{}, fmt.Errorf("fetch scores date=%s: %w", date, err)
	}

	day := schedule.GameDay{
		Date:  date,
		Games: make([]schedule.Game, 0, len(envelope.Games)),
	}
	for _, game := range envelope.Games {
		if game.ID <= 0 {
			continue
		}
		start, err := time.Parse(time.RFC3339, game.StartTimeUTC)
		if err != nil {
			start = time.Time{}
		}
		day.Games = append(day.Games, schedule.Game{
			ID:        game.ID,
			HomeTeam:  game.HomeTeam.Abbrev,
			AwayTeam:  game.AwayTeam.Abbrev,
			HomeScore: game.HomeTeam.Score,
			AwayScore: game.AwayTeam.Score,
			State:     game.GameState,
			Period:    game.Period,
			StartUTC:  start,
			Venue:     game.Venue.Default,
		})
	}
	return day, nil
}
