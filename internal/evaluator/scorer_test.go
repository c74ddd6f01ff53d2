package evaluator

import (
	"testing"

	"github.com/airamana21/asia-poker-computer/internal/deck"
)

func TestScorerMatchesDirectScoring(t *testing.T) {
	s := NewScorer()

	four := deck.MustParseCards("QS JS 10S 9S")
	if got, want := s.Score4(four), Score4(four); got != want {
		t.Errorf("cached Score4 = %v, want %v", got, want)
	}
	// Second lookup hits the cache and must agree
	if got, want := s.Score4(four), Score4(four); got != want {
		t.Errorf("memoized Score4 = %v, want %v", got, want)
	}

	two := deck.MustParseCards("KS KH")
	if got, want := s.Score2(two[0], two[1]), Score2(two[0], two[1]); got != want {
		t.Errorf("cached Score2 = %v, want %v", got, want)
	}
}

// The cache key is the card set, so group order must not matter.
func TestScorerOrderIndependence(t *testing.T) {
	s := NewScorer()

	a := deck.MustParseCards("QS JS 10S 9S")
	b := deck.MustParseCards("9S QS JS 10S")
	if s.Score4(a) != s.Score4(b) {
		t.Error("Score4 depends on card order")
	}

	x, y := deck.NewCard(deck.Four, deck.Diamonds), deck.NewCard(deck.Jack, deck.Clubs)
	if s.Score2(x, y) != s.Score2(y, x) {
		t.Error("Score2 depends on card order")
	}
}
