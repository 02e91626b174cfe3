package stats

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ReportSchema maps one upstream report onto the canonical column set.
// Rename maps upstream field names to canonical stat keys; every canonical
// key named in Rename is guaranteed present (zero-filled) in the output even
// when the upstream record omits it.
type ReportSchema struct {
	IDField    string
	NameFields []string
	TeamField  string
	PosField   string
	Rename     map[string]string
}

// StatKeys returns the canonical stat keys this report contributes.
func (s ReportSchema) StatKeys() []string {
	out := make([]string, 0, len(s.Rename))
	seen := make(map[string]struct{}, len(s.Rename))
	for _, canonical := range s.Rename {
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

func SkaterSummarySchema() ReportSchema {
	return ReportSchema{
		IDField:    "playerId",
		NameFields: []string{"skaterFullName", "lastName"},
		TeamField:  "teamAbbrevs",
		PosField:   "positionCode",
		Rename: map[string]string{
			"gamesPlayed":      "gamesPlayed",
			"goals":            "goals",
			"assists":          "assists",
			"points":           "points",
			"plusMinus":        "plusMinus",
			"penaltyMinutes":   "penaltyMinutes",
			"ppPoints":         "ppPoints",
			"ppGoals":          "ppGoals",
			"shPoints":         "shPoints",
			"gameWinningGoals": "gameWinningGoals",
			"shots":            "shots",
			"shootingPct":      "shootingPct",
			"faceoffWinPct":    "faceoffWinPct",
		},
	}
}

// SkaterRealtimeSchema covers the hit/block report joined onto the summary.
func SkaterRealtimeSchema() ReportSchema {
	return ReportSchema{
		IDField:    "playerId",
		NameFields: []string{"skaterFullName"},
		TeamField:  "teamAbbrevs",
		PosField:   "positionCode",
		Rename: map[string]string{
			"hits":         "hits",
			"blockedShots": "blockedShots",
		},
	}
}

// SkaterPossessionSchema covers the shot-attempt percentage report.
func SkaterPossessionSchema() ReportSchema {
	return ReportSchema{
		IDField:    "playerId",
		NameFields: []string{"skaterFullName"},
		TeamField:  "teamAbbrevs",
		PosField:   "positionCode",
		Rename: map[string]string{
			"satPct":  "satPct",
			"usatPct": "usatPct",
		},
	}
}

func GoalieSummarySchema() ReportSchema {
	return ReportSchema{
		IDField:    "playerId",
		NameFields: []string{"goalieFullName", "lastName"},
		TeamField:  "teamAbbrevs",
		PosField:   "",
		Rename: map[string]string{
			"gamesPlayed":         "gamesPlayed",
			"wins":                "wins",
			"losses":              "losses",
			"otLosses":            "otLosses",
			"goalsAgainstAverage": "goalsAgainstAverage",
			"savePct":             "savePct",
			"shutouts":            "shutouts",
			"saves":               "saves",
			"shotsAgainst":        "shotsAgainst",
			"goalsAgainst":        "goalsAgainst",
			"goals":               "goals",
			"assists":             "assists",
			"points":              "points",
			"penaltyMinutes":      "penaltyMinutes",
		},
	}
}

// Normalize reshapes one raw upstream report into canonical records. It never
// fails: malformed numeric values become 0, missing strings become their
// sentinel, and an empty input yields an empty output. Rows without a usable
// player id are dropped.
func Normalize(raw []map[string]any, schema ReportSchema, ptype PositionType) []Record {
	out := make([]Record, 0, len(raw))
	for _, row := range raw {
		id := coerceInt64(row[schema.IDField])
		if id <= 0 {
			continue
		}

		name := NameUnknown
		for _, field := range schema.NameFields {
			if v := strings.TrimSpace(coerceString(row[field])); v != "" {
				name = v
				break
			}
		}

		rec := Record{
			ID:       id,
			Name:     name,
			Team:     currentTeam(coerceString(row[schema.TeamField])),
			Position: PositionUnknown,
			Type:     ptype,
			Stats:    make(map[string]float64, len(schema.Rename)),
		}
		if ptype == PositionGoalie {
			rec.Position = "G"
		} else if schema.PosField != "" {
			if v := strings.TrimSpace(coerceString(row[schema.PosField])); v != "" {
				rec.Position = v
			}
		}

		for upstream, canonical := range schema.Rename {
			rec.Stats[canonical] = coerceFloat(row[upstream])
		}
		out = append(out, rec)
	}
	return out
}

// currentTeam resolves the upstream team abbreviation. Traded players arrive
// as a comma-joined list ("CGY, TOR"); only the last entry is current.
func currentTeam(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TeamUnknown
	}
	if idx := strings.LastIndex(raw, ","); idx >= 0 {
		raw = strings.TrimSpace(raw[idx+1:])
	}
	if raw == "" {
		return TeamUnknown
	}
	return raw
}

func coerceString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}

func coerceFloat(v any) float64 {
	switch typed := v.(type) {
	case nil:
		return 0
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	case bool:
		if typed {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceInt64(v any) int64 {
	switch typed := v.(type) {
	case int64:
		return typed
	case int:
		return int64(typed)
	case float64:
		return int64(typed)
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return int64(coerceFloat(v))
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
