package stats

// MergeSupplementary left-joins a supplementary report onto the primary one
// by player id. Every primary row survives in its original order; statKeys
// names the supplement's columns so absent players still get them, zero
// valued. Supplement rows with no anchor in the primary are discarded, and
// duplicate primary ids collapse onto the first occurrence.
func MergeSupplementary(primary, supplement []Record, statKeys []string) []Record {
	if len(primary) == 0 {
		return nil
	}

	byID := make(map[int64]Record, len(supplement))
	for _, rec := range supplement {
		if _, ok := byID[rec.ID]; !ok {
			byID[rec.ID] = rec
		}
	}

	out := make([]Record, 0, len(primary))
	seen := make(map[int64]struct{}, len(primary))
	for _, rec := range primary {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}

		merged := rec
		merged.Stats = cloneStats(rec.Stats, len(statKeys))
		supp, ok := byID[rec.ID]
		for _, key := range statKeys {
			if ok {
				merged.Stats[key] = supp.Stats[key]
			} else {
				merged.Stats[key] = 0
			}
		}
		out = append(out, merged)
	}
	return out
}

// Union concatenates the two disjoint populations, skaters first. The column
// sets stay position-typed here; Flatten zero-fills the cross-population gaps.
func Union(skaters, goalies []Record) []Record {
	out := make([]Record, 0, len(skaters)+len(goalies))
	out = append(out, skaters...)
	out = append(out, goalies...)
	return out
}

func cloneStats(src map[string]float64, extra int) map[string]float64 {
	out := make(map[string]float64, len(src)+extra)
	for key, value := range src {
		out[key] = value
	}
	return out
}
