package stats

// PositionType splits the player population into the two groups whose stat
// columns are semantically distinct.
type PositionType string

const (
	PositionSkater PositionType = "Skater"
	PositionGoalie PositionType = "Goalie"
)

const (
	// TeamUnknown is the sentinel for free agents and missing team values.
	TeamUnknown = "N/A"
	// NameUnknown is the sentinel for records missing a display name.
	NameUnknown = "Unknown"
	// PositionUnknown is the sentinel for records missing a position code.
	PositionUnknown = "N/A"

	// SeasonGames is the assumed regular-season length used for rest-of-season
	// extrapolation.
	SeasonGames = 82
)

// SkaterStatKeys is the canonical numeric column set for skaters, in display
// order. Every normalized skater record carries all of them, zero-filled.
var SkaterStatKeys = []string{
	"gamesPlayed",
	"goals",
	"assists",
	"points",
	"plusMinus",
	"penaltyMinutes",
	"ppPoints",
	"ppGoals",
	"shPoints",
	"gameWinningGoals",
	"shots",
	"shootingPct",
	"faceoffWinPct",
	"hits",
	"blockedShots",
	"satPct",
	"usatPct",
}

// GoalieStatKeys is the canonical numeric column set for goalies.
var GoalieStatKeys = []string{
	"gamesPlayed",
	"wins",
	"losses",
	"otLosses",
	"goalsAgainstAverage",
	"savePct",
	"shutouts",
	"saves",
	"shotsAgainst",
	"goalsAgainst",
	"goals",
	"assists",
	"points",
	"penaltyMinutes",
}

// Record is one player row for a single position type. Only the stat keys of
// its own position type are "real"; the flattened view fills the rest with
// zero at the serialization boundary.
type Record struct {
	ID       int64
	Name     string
	Team     string
	Position string
	Type     PositionType
	Stats    map[string]float64
}

func (r Record) Stat(key string) float64 {
	return r.Stats[key]
}

func (r Record) GamesPlayed() float64 {
	return r.Stats["gamesPlayed"]
}

// Row is the flattened, zero-filled table row exposed to consumers. Derived
// metrics live alongside the raw columns; GSAA is goalie-only and nil for
// skaters.
type Row struct {
	PlayerID      int64              `json:"playerId"`
	Name          string             `json:"name"`
	Team          string             `json:"team"`
	Position      string             `json:"position"`
	PositionType  PositionType       `json:"positionType"`
	Stats         map[string]float64 `json:"stats"`
	FantasyPoints float64            `json:"fantasyPoints"`
	GamesRemain   float64            `json:"gamesRemaining"`
	RestOfSeason  map[string]float64 `json:"restOfSeason"`
	GSAA          *float64           `json:"goalsSavedAboveAverage,omitempty"`
}

// UnionStatKeys is the full column set after the skater/goalie union: every
// key present in either population, skater keys first, without duplicates.
func UnionStatKeys() []string {
	seen := make(map[string]struct{}, len(SkaterStatKeys)+len(GoalieStatKeys))
	out := make([]string, 0, len(SkaterStatKeys)+len(GoalieStatKeys))
	for _, key := range SkaterStatKeys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	for _, key := range GoalieStatKeys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
