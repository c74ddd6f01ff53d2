package deck

import "math/bits"

// CardSet represents a set of cards from the 53-card universe as a bitset.
// Ranked cards map to bits 0-51 (suit-major, matching full-deck order);
// the Joker is bit 52. The representation is order-independent, so a
// CardSet doubles as a canonical memo key for score caching.
type CardSet uint64

func cardIndex(c Card) int {
	if c.IsJoker() {
		return 52
	}
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// Len returns the number of cards in the set
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}
