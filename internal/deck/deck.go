package deck

import "sort"

// DeckSize is the size of the full universe: 52 ranked cards plus the Joker
const DeckSize = 53

// FullDeck returns the card universe in fixed enumeration order:
// suit-major (Spades, Hearts, Diamonds, Clubs), ranks ascending within a
// suit, with the Joker appended last when included.
func FullDeck(includeJoker bool) []Card {
	n := 52
	if includeJoker {
		n = DeckSize
	}
	cards := make([]Card, 0, n)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	if includeJoker {
		cards = append(cards, NewJoker())
	}
	return cards
}

// Remaining returns the full 53-card universe minus the given cards,
// preserving the full-deck enumeration order.
func Remaining(exclude []Card) []Card {
	used := NewCardSet(exclude)
	out := make([]Card, 0, DeckSize-len(exclude))
	for _, c := range FullDeck(true) {
		if !used.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// SortDesc returns a copy of cards sorted descending by (value, suit) for
// display. Among equal values the Joker sorts first, then suits in
// Spades, Hearts, Diamonds, Clubs order.
func SortDesc(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value() != out[j].Value() {
			return out[i].Value() > out[j].Value()
		}
		return suitOrder(out[i]) < suitOrder(out[j])
	})
	return out
}

func suitOrder(c Card) int {
	if c.IsJoker() {
		return -1
	}
	return int(c.Suit)
}
