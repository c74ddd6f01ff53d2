package evaluator

// Category is the hand category ordinal (higher = stronger)
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is a comparable hand score packed into a single integer: the
// category in the bits above 16, then up to four 4-bit tie-break rank
// nibbles, highest first. Packing preserves the (category, tie-break
// tuple) lexicographic order, so plain integer comparison is the total
// order and score slices can be compared in flat batch sweeps.
type Score uint32

const maxKeys = 4

// NewScore packs a category and tie-break rank values (high to low)
func NewScore(cat Category, keys ...int) Score {
	s := Score(cat) << 16
	shift := 12
	for _, k := range keys {
		s |= Score(k) << shift
		shift -= 4
	}
	return s
}

// Category returns the hand category of the score
func (s Score) Category() Category {
	return Category(s >> 16)
}

// Keys returns the tie-break rank values, high to low, zeros trimmed
func (s Score) Keys() []int {
	keys := make([]int, 0, maxKeys)
	for shift := 12; shift >= 0; shift -= 4 {
		k := int(s>>shift) & 0xF
		if k == 0 {
			break
		}
		keys = append(keys, k)
	}
	return keys
}

// Compare returns 1 if s is stronger than other, -1 if weaker, 0 if equal
func (s Score) Compare(other Score) int {
	if s > other {
		return 1
	} else if s < other {
		return -1
	}
	return 0
}

// String returns the category name of the score
func (s Score) String() string {
	return s.Category().String()
}
