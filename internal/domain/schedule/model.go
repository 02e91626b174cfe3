package schedule

import "time"

// Game is one scheduled or in-progress matchup. Start times arrive in UTC
// from the provider and are converted once for display.
type Game struct {
	ID         int64     `json:"id"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
	State      string    `json:"state"`
	Period     int       `json:"period,omitempty"`
	StartUTC   time.Time `json:"startUtc"`
	StartLocal string    `json:"startLocal"`
	Venue      string    `json:"venue,omitempty"`
}

// GameDay groups the games of one calendar date.
type GameDay struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Localize stamps each game's display time in the given timezone.
func (d GameDay) Localize(loc *time.Location) GameDay {
	if loc == nil {
		loc = time.UTC
	}
	out := GameDay{Date: d.Date, Games: make([]Game, 0, len(d.Games))}
	for _, game := range d.Games {
		game.StartLocal = game.StartUTC.In(loc).Format("3:04 PM MST")
		out.Games = append(out.Games, game)
	}
	return out
}
