// Package partition enumerates the legal 4-2-1 splits of a seven-card
// hand and classifies fouls.
package partition

import (
	"fmt"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
)

// HandSize is the number of cards dealt to each side
const HandSize = 7

// Count is the number of distinct 4-2-1 partitions of 7 cards: C(7,4)*C(3,2)
const Count = 105

// Partition is one decomposition of 7 cards into the 4-card high group,
// 2-card mid group, and 1-card low group.
type Partition struct {
	High [4]deck.Card
	Mid  [2]deck.Card
	Low  deck.Card
}

// Enumerate generates all 105 partitions of a 7-card hand, in a fixed
// deterministic order. Panics if cards does not hold exactly 7 cards;
// callers validate hands before enumerating.
func Enumerate(cards []deck.Card) []Partition {
	if len(cards) != HandSize {
		panic(fmt.Sprintf("partition: expected %d cards, got %d", HandSize, len(cards)))
	}

	parts := make([]Partition, 0, Count)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 5; j++ {
			for k := j + 1; k < 6; k++ {
				for l := k + 1; l < 7; l++ {
					high := [4]deck.Card{cards[i], cards[j], cards[k], cards[l]}

					var rest [3]deck.Card
					n := 0
					for m := 0; m < HandSize; m++ {
						if m != i && m != j && m != k && m != l {
							rest[n] = cards[m]
							n++
						}
					}

					parts = append(parts,
						Partition{High: high, Mid: [2]deck.Card{rest[0], rest[1]}, Low: rest[2]},
						Partition{High: high, Mid: [2]deck.Card{rest[0], rest[2]}, Low: rest[1]},
						Partition{High: high, Mid: [2]deck.Card{rest[1], rest[2]}, Low: rest[0]},
					)
				}
			}
		}
	}
	return parts
}

// RankedPartition is a Partition with its three group scores computed
// once and carried alongside.
type RankedPartition struct {
	Partition
	HighScore evaluator.Score
	MidScore  evaluator.Score
	LowScore  evaluator.Score
}

// Rank scores a partition's three groups
func Rank(p Partition, s *evaluator.Scorer) RankedPartition {
	return RankedPartition{
		Partition: p,
		HighScore: s.Score4(p.High[:]),
		MidScore:  s.Score2(p.Mid[0], p.Mid[1]),
		LowScore:  s.Score1(p.Low),
	}
}

// Foul reports whether the partition is an invalid selection: the groups
// must satisfy high >= mid >= low in score order.
func (rp RankedPartition) Foul() bool {
	return rp.HighScore < rp.MidScore || rp.MidScore < rp.LowScore
}

// All returns every partition of the hand, ranked
func All(cards []deck.Card, s *evaluator.Scorer) []RankedPartition {
	parts := Enumerate(cards)
	ranked := make([]RankedPartition, len(parts))
	for i, p := range parts {
		ranked[i] = Rank(p, s)
	}
	return ranked
}

// NonFoul returns every non-foul partition of the hand, ranked, in
// enumeration order
func NonFoul(cards []deck.Card, s *evaluator.Scorer) []RankedPartition {
	ranked := make([]RankedPartition, 0, Count)
	for _, p := range Enumerate(cards) {
		rp := Rank(p, s)
		if !rp.Foul() {
			ranked = append(ranked, rp)
		}
	}
	return ranked
}
