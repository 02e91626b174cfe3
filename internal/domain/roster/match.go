package roster

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
)

// DefaultMatchThreshold is the empirical floor below which a fuzzy candidate
// is treated as a different player. It is a tunable, not a business rule:
// lower values start colliding distinct identities, higher ones drop
// legitimate spelling variants.
const DefaultMatchThreshold = 0.65

// Resolver reconciles free-text provider names against the canonical player
// table: exact match on the normalized name first, then best similarity ratio
// above the threshold, otherwise the placeholder identity.
type Resolver struct {
	threshold float64
	exact     map[string]stats.Record
	names     []string
	byName    map[string]stats.Record
}

func NewResolver(records []stats.Record, threshold float64) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}
	r := &Resolver{
		threshold: threshold,
		exact:     make(map[string]stats.Record, len(records)),
		byName:    make(map[string]stats.Record, len(records)),
		names:     make([]string, 0, len(records)),
	}
	for _, rec := range records {
		key := normalizeName(rec.Name)
		if key == "" {
			continue
		}
		if _, ok := r.exact[key]; ok {
			continue
		}
		r.exact[key] = rec
		r.byName[key] = rec
		r.names = append(r.names, key)
	}
	return r
}

func (r *Resolver) Resolve(entry Entry) Resolved {
	out := Resolved{
		Entry:    entry,
		Identity: PlaceholderIdentity(),
		Position: stats.PositionUnknown,
	}

	key := normalizeName(entry.PlayerName)
	if key == "" {
		return out
	}

	// Exact match always wins, even when a fuzzy candidate would score higher.
	if rec, ok := r.exact[key]; ok {
		out.Identity = Identity{PlayerID: rec.ID, Team: rec.Team}
		out.Position = rec.Position
		out.Matched = true
		out.Score = 1
		return out
	}

	bestScore := 0.0
	bestName := ""
	for _, candidate := range r.names {
		score := similarity(key, candidate)
		if score > bestScore {
			bestScore = score
			bestName = candidate
		}
	}
	if bestScore < r.threshold {
		return out
	}

	rec := r.byName[bestName]
	out.Identity = Identity{PlayerID: rec.ID, Team: rec.Team}
	out.Position = rec.Position
	out.Matched = true
	out.Score = bestScore
	return out
}

// normalizeName lowercases, strips punctuation, flips "Last, First" ordering,
// and collapses whitespace. Providers disagree on accents, suffixes, and name
// order far more often than on the letters themselves.
func normalizeName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if idx := strings.Index(raw, ","); idx >= 0 {
		raw = strings.TrimSpace(raw[idx+1:]) + " " + strings.TrimSpace(raw[:idx])
	}
	raw = strings.ToLower(raw)
	raw = strings.ReplaceAll(raw, "-", " ")
	raw = strings.ReplaceAll(raw, "'", "")
	raw = strings.ReplaceAll(raw, ".", "")
	return strings.Join(strings.Fields(raw), " ")
}

// similarity is a normalized edit-distance ratio in [0, 1]. The distance is
// rune-based, so the denominator must count runes too or accented names score
// low for their byte width alone.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
