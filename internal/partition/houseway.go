package partition

import (
	"errors"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
)

// ErrAllPartitionsFoul is returned when a hand admits no legal partition.
// No 7-distinct-card hand is known to trigger it; an occurrence means the
// enumerator or scorer broke an invariant.
var ErrAllPartitionsFoul = errors.New("every 4-2-1 partition is foul")

// HouseWay selects the dealer's split: the non-foul partition maximizing
// (high, mid, low) scores lexicographically, ties broken by enumeration
// order. This approximates commonly published rack-card behavior, which
// sets the strongest 4-card hand first. A jurisdiction-exact decision
// table can replace this function without touching any other component.
func HouseWay(cards []deck.Card, s *evaluator.Scorer) (RankedPartition, error) {
	var best RankedPartition
	found := false
	for _, p := range Enumerate(cards) {
		rp := Rank(p, s)
		if rp.Foul() {
			continue
		}
		if !found || lexGreater(rp, best) {
			best = rp
			found = true
		}
	}
	if !found {
		return RankedPartition{}, ErrAllPartitionsFoul
	}
	return best, nil
}

func lexGreater(a, b RankedPartition) bool {
	if a.HighScore != b.HighScore {
		return a.HighScore > b.HighScore
	}
	if a.MidScore != b.MidScore {
		return a.MidScore > b.MidScore
	}
	return a.LowScore > b.LowScore
}
