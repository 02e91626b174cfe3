package scoring

import (
	"errors"
	"fmt"
)

var ErrUnknownStat = errors.New("unknown stat in scoring weights")

// Weights maps a canonical stat key to its fantasy point value per unit.
// Negative weights express penalty stats (goals against, overtime losses).
type Weights map[string]float64

// ScorableStats is the fixed set of stat keys a weight may reference.
var ScorableStats = map[string]struct{}{
	"goals":        {},
	"assists":      {},
	"ppPoints":     {},
	"shPoints":     {},
	"shots":        {},
	"hits":         {},
	"blockedShots": {},
	"wins":         {},
	"goalsAgainst": {},
	"saves":        {},
	"shutouts":     {},
	"otLosses":     {},
}

// DefaultWeights mirrors a common head-to-head points configuration.
func DefaultWeights() Weights {
	return Weights{
		"goals":        3,
		"assists":      2,
		"ppPoints":     0.5,
		"shPoints":     1,
		"shots":        0.2,
		"hits":         0.2,
		"blockedShots": 0.3,
		"wins":         4,
		"goalsAgainst": -1,
		"saves":        0.2,
		"shutouts":     3,
		"otLosses":     1,
	}
}

func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("scoring weights cannot be empty")
	}
	for stat := range w {
		if _, ok := ScorableStats[stat]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownStat, stat)
		}
	}
	return nil
}

func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for stat, weight := range w {
		out[stat] = weight
	}
	return out
}
