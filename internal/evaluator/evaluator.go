package evaluator

import (
	"sort"

	"github.com/airamana21/asia-poker-computer/internal/deck"
)

// straightWindows are the only rank windows recognized as 4-card straights:
// the wheel A-2-3-4 first, then A-K-Q-J down to 5-4-3-2. A window matches
// only when all four card values are distinct and equal the window set.
// The window tuple doubles as the tie-break keys for straights and straight
// flushes, so the wheel outranks every straight below A-K-Q-J.
var straightWindows = [11][4]int{
	{14, 4, 3, 2},
	{14, 13, 12, 11},
	{13, 12, 11, 10},
	{12, 11, 10, 9},
	{11, 10, 9, 8},
	{10, 9, 8, 7},
	{9, 8, 7, 6},
	{8, 7, 6, 5},
	{7, 6, 5, 4},
	{6, 5, 4, 3},
	{5, 4, 3, 2},
}

// one bit per rank value 2..14
var windowMasks = func() [11]uint16 {
	var masks [11]uint16
	for i, w := range straightWindows {
		for _, v := range w {
			masks[i] |= 1 << v
		}
	}
	return masks
}()

func isStraight(vals [4]int) (bool, [4]int) {
	var mask uint16
	for _, v := range vals {
		mask |= 1 << v
	}
	if popcount16(mask) != 4 {
		return false, [4]int{}
	}
	for i, wm := range windowMasks {
		if mask == wm {
			return true, straightWindows[i]
		}
	}
	return false, [4]int{}
}

func popcount16(x uint16) int {
	n := 0
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// Score1 scores a single card: always high card, Joker counting as Ace
func Score1(c deck.Card) Score {
	return NewScore(HighCard, c.Value())
}

// Score2 scores a 2-card group. A Joker resolves to an Ace: pair of Aces
// alongside another Ace, otherwise Ace high.
func Score2(a, b deck.Card) Score {
	if a.IsJoker() || b.IsJoker() {
		other := a
		if a.IsJoker() {
			other = b
		}
		if other.Value() == int(deck.Ace) {
			return NewScore(OnePair, int(deck.Ace))
		}
		return NewScore(HighCard, int(deck.Ace), other.Value())
	}
	hi, lo := a.Value(), b.Value()
	if hi < lo {
		hi, lo = lo, hi
	}
	if hi == lo {
		return NewScore(OnePair, hi)
	}
	return NewScore(HighCard, hi, lo)
}

// Score4 scores a 4-card group, resolving a Joker to the concrete
// replacement card that maximizes the result.
func Score4(cards []deck.Card) Score {
	for _, c := range cards {
		if c.IsJoker() {
			return score4WithJoker(cards)
		}
	}
	return score4NoJoker(cards[0], cards[1], cards[2], cards[3])
}

func score4NoJoker(c0, c1, c2, c3 deck.Card) Score {
	vals := [4]int{c0.Value(), c1.Value(), c2.Value(), c3.Value()}
	flush := c0.Suit == c1.Suit && c1.Suit == c2.Suit && c2.Suit == c3.Suit

	straight, window := isStraight(vals)
	if flush && straight {
		return NewScore(StraightFlush, window[0], window[1], window[2], window[3])
	}

	var cnt [15]int
	for _, v := range vals {
		cnt[v]++
	}
	quad, trip := 0, 0
	var pairs []int
	for v := 14; v >= 2; v-- {
		switch cnt[v] {
		case 4:
			quad = v
		case 3:
			trip = v
		case 2:
			pairs = append(pairs, v)
		}
	}

	if quad != 0 {
		return NewScore(FourOfAKind, quad)
	}
	if flush {
		desc := sortedDesc(vals)
		return NewScore(Flush, desc[0], desc[1], desc[2], desc[3])
	}
	if straight {
		return NewScore(Straight, window[0], window[1], window[2], window[3])
	}
	if trip != 0 {
		kicker := 0
		for _, v := range vals {
			if v != trip && v > kicker {
				kicker = v
			}
		}
		return NewScore(ThreeOfAKind, trip, kicker)
	}
	if len(pairs) == 2 {
		return NewScore(TwoPair, pairs[0], pairs[1])
	}
	if len(pairs) == 1 {
		pair := pairs[0]
		kickers := make([]int, 0, 2)
		for _, v := range sortedDesc(vals) {
			if v != pair {
				kickers = append(kickers, v)
			}
		}
		return NewScore(OnePair, pair, kickers[0], kickers[1])
	}
	desc := sortedDesc(vals)
	return NewScore(HighCard, desc[0], desc[1], desc[2], desc[3])
}

func sortedDesc(vals [4]int) [4]int {
	out := vals
	sort.Sort(sort.Reverse(sort.IntSlice(out[:])))
	return out
}

// score4WithJoker resolves the Joker over a bounded candidate set: every
// rank of a suit holding at least three of the real cards (flush and
// straight-flush completions), every rank completing a straight window
// with at least three values present, and otherwise an Ace in any suit.
// The Joker may duplicate a held card, so an ace-high three-flush
// resolves to a second ace rather than settling for the next rank down.
func score4WithJoker(cards []deck.Card) Score {
	var real [3]deck.Card
	n := 0
	for _, c := range cards {
		if !c.IsJoker() {
			real[n] = c
			n++
		}
	}

	var best Score

	// flush and straight-flush completions
	var suitCount [4]int
	for _, c := range real {
		suitCount[c.Suit]++
	}
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		if suitCount[suit] < 3 {
			continue
		}
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			repl := deck.NewCard(rank, suit)
			sc := score4NoJoker(real[0], real[1], real[2], repl)
			if cat := sc.Category(); cat == StraightFlush || cat == Flush {
				if sc > best {
					best = sc
				}
			}
		}
	}

	// straight completions: one candidate rank per missing window value,
	// first suit that yields a straight wins for that rank
	var valMask uint16
	for _, c := range real {
		valMask |= 1 << c.Value()
	}
	var candMask uint16
	for i, wm := range windowMasks {
		if popcount16(wm&valMask) < 3 {
			continue
		}
		for _, v := range straightWindows[i] {
			if valMask&(1<<v) == 0 {
				candMask |= 1 << v
			}
		}
	}
	for v := 2; v <= 14; v++ {
		if candMask&(1<<v) == 0 {
			continue
		}
		for suit := deck.Spades; suit <= deck.Clubs; suit++ {
			repl := deck.NewCard(deck.Rank(v), suit)
			sc := score4NoJoker(real[0], real[1], real[2], repl)
			if sc.Category() == Straight {
				if sc > best {
					best = sc
				}
				break
			}
		}
	}

	// Ace fallback, all four suits
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		if sc := score4NoJoker(real[0], real[1], real[2], deck.NewCard(deck.Ace, suit)); sc > best {
			best = sc
		}
	}

	return best
}
