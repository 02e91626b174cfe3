package stats

import (
	"math"

	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
)

// FantasyPoints is the weighted linear combination of a record's raw stats,
// rounded to one decimal. Stats absent from the record contribute nothing, so
// the same formula serves skaters and goalies.
func FantasyPoints(rec Record, weights scoring.Weights) float64 {
	total := 0.0
	for stat, weight := range weights {
		total += rec.Stat(stat) * weight
	}
	return math.Round(total*10) / 10
}

// GamesRemaining assumes an 82-game season.
func GamesRemaining(gamesPlayed float64) float64 {
	remaining := SeasonGames - gamesPlayed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RestOfSeason extrapolates a counting stat linearly at its per-game rate over
// the remaining schedule. Zero games played projects to zero; there is no
// regression or opponent adjustment here.
func RestOfSeason(rec Record, stat string) float64 {
	gp := rec.GamesPlayed()
	if gp <= 0 {
		return 0
	}
	return (rec.Stat(stat) / gp) * GamesRemaining(gp)
}

// RestOfSeasonFantasyPoints projects the weighted score at the player's
// current per-game pace.
func RestOfSeasonFantasyPoints(rec Record, weights scoring.Weights) float64 {
	gp := rec.GamesPlayed()
	if gp <= 0 {
		return 0
	}
	fp := FantasyPoints(rec, weights)
	return math.Round((fp/gp)*GamesRemaining(gp)*10) / 10
}

// LeagueAverageSavePct is total saves over total shots against for the
// supplied goalie population. Callers must pass the full population; a
// filtered subset skews every GSAA derived from it.
func LeagueAverageSavePct(goalies []Record) float64 {
	var saves, shotsAgainst float64
	for _, rec := range goalies {
		if rec.Type != PositionGoalie {
			continue
		}
		saves += rec.Stat("saves")
		shotsAgainst += rec.Stat("shotsAgainst")
	}
	if shotsAgainst <= 0 {
		return 0
	}
	return saves / shotsAgainst
}

// GoalsSavedAboveAverage compares each goalie's saves against what the league
// average save percentage predicts for the same shot volume. Keyed by player
// id; computed in one pass over the full population.
func GoalsSavedAboveAverage(goalies []Record) map[int64]float64 {
	avg := LeagueAverageSavePct(goalies)
	out := make(map[int64]float64, len(goalies))
	for _, rec := range goalies {
		if rec.Type != PositionGoalie {
			continue
		}
		gsaa := rec.Stat("saves") - rec.Stat("shotsAgainst")*avg
		out[rec.ID] = math.Round(gsaa*10) / 10
	}
	return out
}

// Flatten produces the zero-filled serialization rows: every column from
// either population present on every row, plus the derived metrics under the
// supplied weights. GSAA is attached to goalie rows only and is computed over
// the full goalie population contained in records.
func Flatten(records []Record, weights scoring.Weights) []Row {
	columns := UnionStatKeys()

	goalies := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Type == PositionGoalie {
			goalies = append(goalies, rec)
		}
	}
	gsaaByID := GoalsSavedAboveAverage(goalies)

	out := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			PlayerID:     rec.ID,
			Name:         rec.Name,
			Team:         rec.Team,
			Position:     rec.Position,
			PositionType: rec.Type,
			Stats:        make(map[string]float64, len(columns)),
			RestOfSeason: make(map[string]float64, len(columns)),
		}
		for _, key := range columns {
			row.Stats[key] = rec.Stat(key)
			row.RestOfSeason[key] = math.Round(RestOfSeason(rec, key)*10) / 10
		}
		row.FantasyPoints = FantasyPoints(rec, weights)
		row.GamesRemain = GamesRemaining(rec.GamesPlayed())
		if rec.Type == PositionGoalie {
			if gsaa, ok := gsaaByID[rec.ID]; ok {
				value := gsaa
				row.GSAA = &value
			}
		}
		out = append(out, row)
	}
	return out
}
