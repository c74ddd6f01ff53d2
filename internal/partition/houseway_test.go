package partition

import (
	"errors"
	"testing"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
)

func TestHouseWayFourAces(t *testing.T) {
	hand := deck.MustParseCards("AS AH AD AC KS KH KD")
	s := evaluator.NewScorer()

	rp, err := HouseWay(hand, s)
	if err != nil {
		t.Fatalf("HouseWay unexpected error: %v", err)
	}

	if rp.HighScore.Category() != evaluator.FourOfAKind {
		t.Errorf("high category = %v, want four of a kind", rp.HighScore.Category())
	}
	high := deck.NewCardSet(rp.High[:])
	for _, id := range []string{"AS", "AH", "AD", "AC"} {
		c, _ := deck.ParseCard(id)
		if !high.Contains(c) {
			t.Errorf("high group missing %s: %v", id, rp.High)
		}
	}

	if rp.MidScore.Category() != evaluator.OnePair {
		t.Errorf("mid category = %v, want pair", rp.MidScore.Category())
	}
	if rp.Mid[0].Rank != deck.King || rp.Mid[1].Rank != deck.King {
		t.Errorf("mid group = %v, want pair of kings", rp.Mid)
	}
	if rp.Low.Rank != deck.King {
		t.Errorf("low card = %v, want a king", rp.Low)
	}
	if rp.Foul() {
		t.Error("house-way split is foul")
	}
}

func TestHouseWayMaximizesHighFirst(t *testing.T) {
	// Straight flush available in spades; the house way must set it even
	// though keeping the pair of nines together would strengthen the mid.
	hand := deck.MustParseCards("9S 10S JS QS 9H 5D 2C")
	s := evaluator.NewScorer()

	rp, err := HouseWay(hand, s)
	if err != nil {
		t.Fatalf("HouseWay unexpected error: %v", err)
	}
	if rp.HighScore.Category() != evaluator.StraightFlush {
		t.Errorf("high category = %v, want straight flush", rp.HighScore.Category())
	}
}

func TestHouseWayDeterministic(t *testing.T) {
	hand := deck.MustParseCards("KD QC 10H 8S 7H 4D 2S")
	s := evaluator.NewScorer()

	first, err := HouseWay(hand, s)
	if err != nil {
		t.Fatalf("HouseWay unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := HouseWay(hand, s)
		if err != nil {
			t.Fatalf("HouseWay unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("HouseWay not deterministic: %v vs %v", again, first)
		}
	}
}

func TestHouseWayWithJoker(t *testing.T) {
	hand := deck.MustParseCards("JS 10S 9S XJ 6H 6D 2C")
	s := evaluator.NewScorer()

	rp, err := HouseWay(hand, s)
	if err != nil {
		t.Fatalf("HouseWay unexpected error: %v", err)
	}
	if rp.HighScore.Category() != evaluator.StraightFlush {
		t.Errorf("high category = %v, want straight flush", rp.HighScore.Category())
	}
	if rp.Foul() {
		t.Error("house-way split is foul")
	}
	if errors.Is(err, ErrAllPartitionsFoul) {
		t.Error("unexpected all-foul error")
	}
}
