package stats

import (
	"math"
	"testing"

	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
)

func TestCompareTrade_SymmetricNegation(t *testing.T) {
	t.Parallel()

	records := []Record{
		skaterRecord(1, "Alpha Center", map[string]float64{"goals": 20, "assists": 30, "gamesPlayed": 41}),
		skaterRecord(2, "Beta Winger", map[string]float64{"goals": 28, "assists": 12, "gamesPlayed": 40}),
		skaterRecord(3, "Gamma Defense", map[string]float64{"goals": 6, "assists": 25, "gamesPlayed": 39}),
	}
	weights := scoring.DefaultWeights()

	forward := CompareTrade(records, weights, []string{"Alpha Center"}, []string{"Beta Winger", "Gamma Defense"})
	backward := CompareTrade(records, weights, []string{"Beta Winger", "Gamma Defense"}, []string{"Alpha Center"})

	if math.Abs(forward.Net+backward.Net) > 1e-9 {
		t.Fatalf("expected symmetric negation, forward=%v backward=%v", forward.Net, backward.Net)
	}
	for key, value := range forward.PerStatNet {
		if math.Abs(value+backward.PerStatNet[key]) > 1e-9 {
			t.Fatalf("expected per-stat symmetry for %s: %v vs %v", key, value, backward.PerStatNet[key])
		}
	}
}

func TestCompareTrade_UnmatchedNamesReportedNotFatal(t *testing.T) {
	t.Parallel()

	records := []Record{
		skaterRecord(1, "Known Player", map[string]float64{"goals": 20, "gamesPlayed": 41}),
	}

	out := CompareTrade(records, scoring.DefaultWeights(), []string{"Known Player", "Ghost Player"}, nil)
	if len(out.Unmatched) != 1 || out.Unmatched[0] != "Ghost Player" {
		t.Fatalf("expected Ghost Player reported unmatched, got=%v", out.Unmatched)
	}
	if out.SendingTotal <= 0 {
		t.Fatalf("expected known player to still contribute, got=%v", out.SendingTotal)
	}
}

func TestCompareTrade_NameLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	records := []Record{
		skaterRecord(1, "Connor McDavid", map[string]float64{"goals": 30, "gamesPlayed": 41}),
	}

	out := CompareTrade(records, scoring.Weights{"goals": 2}, []string{"connor mcdavid"}, nil)
	if len(out.Unmatched) != 0 {
		t.Fatalf("expected case-insensitive match, unmatched=%v", out.Unmatched)
	}
	if out.SendingTotal != 60 {
		t.Fatalf("expected ROS fantasy total 60 at half season, got=%v", out.SendingTotal)
	}
}
