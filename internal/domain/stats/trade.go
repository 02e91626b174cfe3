package stats

import (
	"math"
	"strings"

	"github.com/rinkside/fantasy-hockey/internal/domain/scoring"
)

// TradeComparison sums rest-of-season fantasy value per side. Net is sending
// minus receiving, so comparing B-vs-A yields the exact negation. PerStatNet
// breaks the same difference down for every tracked stat's ROS projection.
type TradeComparison struct {
	SendingTotal   float64            `json:"sendingTotal"`
	ReceivingTotal float64            `json:"receivingTotal"`
	Net            float64            `json:"net"`
	PerStatNet     map[string]float64 `json:"perStatNet"`
	Unmatched      []string           `json:"unmatched,omitempty"`
}

// CompareTrade evaluates two disjoint player-name sets against the current
// table. Names that match no record contribute nothing and are reported in
// Unmatched rather than failing the comparison.
func CompareTrade(records []Record, weights scoring.Weights, sending, receiving []string) TradeComparison {
	byName := make(map[string]Record, len(records))
	for _, rec := range records {
		key := strings.ToLower(strings.TrimSpace(rec.Name))
		if _, ok := byName[key]; !ok {
			byName[key] = rec
		}
	}

	out := TradeComparison{
		PerStatNet: make(map[string]float64, len(UnionStatKeys())),
	}

	sendTotal, sendStats, missedSend := sideTotals(byName, weights, sending)
	recvTotal, recvStats, missedRecv := sideTotals(byName, weights, receiving)

	out.SendingTotal = round1(sendTotal)
	out.ReceivingTotal = round1(recvTotal)
	out.Net = round1(sendTotal - recvTotal)
	for _, key := range UnionStatKeys() {
		out.PerStatNet[key] = round1(sendStats[key] - recvStats[key])
	}
	out.Unmatched = append(out.Unmatched, missedSend...)
	out.Unmatched = append(out.Unmatched, missedRecv...)
	return out
}

func sideTotals(byName map[string]Record, weights scoring.Weights, names []string) (float64, map[string]float64, []string) {
	total := 0.0
	perStat := make(map[string]float64)
	var unmatched []string
	for _, name := range names {
		rec, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		total += RestOfSeasonFantasyPoints(rec, weights)
		for _, key := range UnionStatKeys() {
			perStat[key] += RestOfSeason(rec, key)
		}
	}
	return total, perStat, unmatched
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
