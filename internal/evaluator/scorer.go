package evaluator

import "github.com/airamana21/asia-poker-computer/internal/deck"

// Scorer memoizes group scores keyed on the canonical order-independent
// CardSet of the group. The same 4- and 2-card sets recur across the 105
// partitions of a hand and across dealer samples, so the hit rate is high.
//
// A Scorer is not safe for concurrent use; give each worker its own.
// Correctness never depends on the cache, only speed.
type Scorer struct {
	four map[deck.CardSet]Score
	two  map[deck.CardSet]Score
}

// NewScorer creates an empty score cache
func NewScorer() *Scorer {
	return &Scorer{
		four: make(map[deck.CardSet]Score, 4096),
		two:  make(map[deck.CardSet]Score, 512),
	}
}

// Score4 returns the memoized score of a 4-card group
func (s *Scorer) Score4(cards []deck.Card) Score {
	key := deck.NewCardSet(cards)
	if sc, ok := s.four[key]; ok {
		return sc
	}
	sc := Score4(cards)
	s.four[key] = sc
	return sc
}

// Score2 returns the memoized score of a 2-card group
func (s *Scorer) Score2(a, b deck.Card) Score {
	key := deck.NewCardSet([]deck.Card{a, b})
	if sc, ok := s.two[key]; ok {
		return sc
	}
	sc := Score2(a, b)
	s.two[key] = sc
	return sc
}

// Score1 returns the score of a single card. Cheap enough to skip the cache.
func (s *Scorer) Score1(c deck.Card) Score {
	return Score1(c)
}
