package deck

import "testing"

func TestFullDeck(t *testing.T) {
	withJoker := FullDeck(true)
	if len(withJoker) != DeckSize {
		t.Fatalf("FullDeck(true) has %d cards, want %d", len(withJoker), DeckSize)
	}
	if !withJoker[52].IsJoker() {
		t.Errorf("last card = %v, want joker", withJoker[52])
	}
	if withJoker[0] != NewCard(Two, Spades) {
		t.Errorf("first card = %v, want 2S", withJoker[0])
	}

	withoutJoker := FullDeck(false)
	if len(withoutJoker) != 52 {
		t.Fatalf("FullDeck(false) has %d cards, want 52", len(withoutJoker))
	}
	for _, c := range withoutJoker {
		if c.IsJoker() {
			t.Fatal("FullDeck(false) contains the joker")
		}
	}

	// No duplicates
	if NewCardSet(withJoker).Len() != DeckSize {
		t.Error("FullDeck(true) contains duplicate cards")
	}
}

func TestRemaining(t *testing.T) {
	hand := MustParseCards("AS KH 10D 9H 9D 2C XJ")
	rest := Remaining(hand)

	if len(rest) != DeckSize-len(hand) {
		t.Fatalf("Remaining returned %d cards, want %d", len(rest), DeckSize-len(hand))
	}

	held := NewCardSet(hand)
	for _, c := range rest {
		if held.Contains(c) {
			t.Errorf("Remaining contains held card %v", c)
		}
	}

	// Union of hand and remainder must cover the universe
	all := NewCardSet(rest)
	for _, c := range hand {
		all.Add(c)
	}
	if all.Len() != DeckSize {
		t.Errorf("hand plus remainder covers %d cards, want %d", all.Len(), DeckSize)
	}
}

func TestSortDesc(t *testing.T) {
	cards := MustParseCards("2C AS XJ 10D AH")
	sorted := SortDesc(cards)

	want := []string{"XJ", "AS", "AH", "10D", "2C"}
	if len(sorted) != len(want) {
		t.Fatalf("SortDesc returned %d cards, want %d", len(sorted), len(want))
	}
	for i, id := range want {
		if sorted[i].String() != id {
			t.Errorf("position %d = %s, want %s", i, sorted[i], id)
		}
	}

	// Input must be untouched
	if cards[0].String() != "2C" {
		t.Error("SortDesc mutated its input")
	}
}

func TestCardSet(t *testing.T) {
	var cs CardSet
	as := NewCard(Ace, Spades)
	joker := NewJoker()

	if cs.Contains(as) {
		t.Error("empty set contains AS")
	}
	cs.Add(as)
	cs.Add(joker)
	cs.Add(as) // idempotent

	if !cs.Contains(as) || !cs.Contains(joker) {
		t.Error("set missing added cards")
	}
	if cs.Len() != 2 {
		t.Errorf("set length = %d, want 2", cs.Len())
	}

	// Order-independent construction
	a := NewCardSet(MustParseCards("AS KH 10D"))
	b := NewCardSet(MustParseCards("10D AS KH"))
	if a != b {
		t.Error("card sets built in different orders differ")
	}
}
