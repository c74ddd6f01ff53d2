package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs

	// NoSuit is the suit carried by the Joker, which has none.
	NoSuit
)

// String returns the single-letter suit token used in card identifiers
func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return ""
	}
}

// Symbol returns the suit glyph for terminal display
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return ""
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace

	// Joker is the wildcard rank. It carries no suit and no intrinsic
	// value; scoring resolves it contextually.
	Joker
)

// String returns the rank token used in card identifiers ("2".."10","J","Q","K","A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return fmt.Sprintf("%d", int(r))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	case r == Joker:
		return JokerID
	default:
		return "?"
	}
}

// JokerID is the fixed identifier token for the Joker
const JokerID = "XJ"

// Card represents a playing card. Cards are cheap immutable values;
// two cards are equal iff rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new ranked card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// NewJoker creates the Joker card
func NewJoker() Card {
	return Card{Rank: Joker, Suit: NoSuit}
}

// IsJoker returns true if the card is the Joker
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// String returns the card identifier, e.g. "9H", "10D", "AS", or "XJ"
func (c Card) String() string {
	if c.IsJoker() {
		return JokerID
	}
	return c.Rank.String() + c.Suit.String()
}

// Label returns the pretty display form, e.g. "9♥", "A♠", or "Joker"
func (c Card) Label() string {
	if c.IsJoker() {
		return "Joker"
	}
	return c.Rank.String() + c.Suit.Symbol()
}

// Value returns the numeric comparison value of the card. The Joker
// defaults to Ace value; 4-card scoring resolves it contextually instead.
func (c Card) Value() int {
	if c.IsJoker() {
		return int(Ace)
	}
	return int(c.Rank)
}

// ParseCard parses an identifier like "AS", "10D", "9H", "2C", or "XJ"
func ParseCard(id string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(id))
	if s == JokerID {
		return NewJoker(), nil
	}
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card identifier %q", id)
	}

	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", id, err)
	}
	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", id, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a whitespace- or comma-separated list of card identifiers
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(tok string) (Rank, error) {
	switch tok {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return Rank(tok[0] - '0'), nil
	case "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", tok)
	}
}

func parseSuit(tok byte) (Suit, error) {
	switch tok {
	case 'S':
		return Spades, nil
	case 'H':
		return Hearts, nil
	case 'D':
		return Diamonds, nil
	case 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", string(tok))
	}
}
