package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
	"github.com/airamana21/asia-poker-computer/internal/partition"
)

// packedScores holds the player partitions' group scores as flat columns.
// Scores are single ordered integers, so one batch of dealer triples can
// be swept against every partition with plain integer comparisons.
type packedScores struct {
	high []evaluator.Score
	mid  []evaluator.Score
	low  []evaluator.Score
}

func packPartitions(parts []partition.RankedPartition) packedScores {
	cols := packedScores{
		high: make([]evaluator.Score, len(parts)),
		mid:  make([]evaluator.Score, len(parts)),
		low:  make([]evaluator.Score, len(parts)),
	}
	for i, rp := range parts {
		cols.high[i] = rp.HighScore
		cols.mid[i] = rp.MidScore
		cols.low[i] = rp.LowScore
	}
	return cols
}

// counters accumulates per-partition win/loss/push tallies
type counters struct {
	wins   []int
	losses []int
	pushes []int
}

func newCounters(n int) counters {
	return counters{
		wins:   make([]int, n),
		losses: make([]int, n),
		pushes: make([]int, n),
	}
}

func (c *counters) merge(o counters) {
	for i := range c.wins {
		c.wins[i] += o.wins[i]
		c.losses[i] += o.losses[i]
		c.pushes[i] += o.pushes[i]
	}
}

// run is the immutable description of one simulation: the player's packed
// partition scores, the 46-card remaining deck, and batching parameters.
// It is shared read-only across workers.
type run struct {
	cols         packedScores
	deckRem      []deck.Card
	batchSize    int
	disableBatch bool
}

// simulate draws up to n dealer hands, splits each by the house way, and
// tallies 2-of-3 outcomes for every player partition. Cancellation is
// polled between batches; the returned completed count reflects samples
// actually compared. onBatch, when set, receives the running completed
// count after each batch.
func (r *run) simulate(ctx context.Context, n int, rng *rand.Rand, scorer *evaluator.Scorer, onBatch func(completed int)) (counters, int, error) {
	if r.disableBatch {
		return r.simulateDirect(ctx, n, rng, scorer, onBatch)
	}

	cnt := newCounters(len(r.cols.high))
	scratch := make([]deck.Card, len(r.deckRem))
	dealer := make([]deck.Card, partition.HandSize)

	d4 := make([]evaluator.Score, r.batchSize)
	d2 := make([]evaluator.Score, r.batchSize)
	d1 := make([]evaluator.Score, r.batchSize)

	completed := 0
	for completed < n {
		if ctx.Err() != nil {
			break
		}
		b := r.batchSize
		if rest := n - completed; rest < b {
			b = rest
		}

		for j := 0; j < b; j++ {
			r.sampleDealer(rng, scratch, dealer)
			hw, err := partition.HouseWay(dealer, scorer)
			if err != nil {
				return cnt, completed, fmt.Errorf("dealer hand %v: %w", dealer, err)
			}
			d4[j] = hw.HighScore
			d2[j] = hw.MidScore
			d1[j] = hw.LowScore
		}

		r.sweep(&cnt, d4[:b], d2[:b], d1[:b])
		completed += b
		if onBatch != nil {
			onBatch(completed)
		}
	}
	return cnt, completed, nil
}

// simulateDirect is the debug path: each sample is compared against all
// partitions immediately instead of accumulating a batch first. Counts
// are identical to the batched path for the same rng stream.
func (r *run) simulateDirect(ctx context.Context, n int, rng *rand.Rand, scorer *evaluator.Scorer, onBatch func(completed int)) (counters, int, error) {
	cnt := newCounters(len(r.cols.high))
	scratch := make([]deck.Card, len(r.deckRem))
	dealer := make([]deck.Card, partition.HandSize)

	reportEvery := n / 100
	if reportEvery < 1 {
		reportEvery = 1
	}

	completed := 0
	for ; completed < n; completed++ {
		if ctx.Err() != nil {
			break
		}
		r.sampleDealer(rng, scratch, dealer)
		hw, err := partition.HouseWay(dealer, scorer)
		if err != nil {
			return cnt, completed, fmt.Errorf("dealer hand %v: %w", dealer, err)
		}
		r.sweep(&cnt,
			[]evaluator.Score{hw.HighScore},
			[]evaluator.Score{hw.MidScore},
			[]evaluator.Score{hw.LowScore})
		if onBatch != nil && (completed+1)%reportEvery == 0 {
			onBatch(completed + 1)
		}
	}
	return cnt, completed, nil
}

// sampleDealer draws 7 distinct cards uniformly without replacement via a
// partial Fisher-Yates shuffle over a scratch copy of the remaining deck
func (r *run) sampleDealer(rng *rand.Rand, scratch, dealer []deck.Card) {
	copy(scratch, r.deckRem)
	for i := 0; i < partition.HandSize; i++ {
		j := i + rng.IntN(len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
		dealer[i] = scratch[i]
	}
}

// sweep compares a batch of dealer score triples against every player
// partition. A partition wins a sample on a strict majority (2 of 3) of
// sub-hand comparisons, loses on a strict majority of losses, and pushes
// otherwise; equal sub-hand scores count toward neither side.
func (r *run) sweep(cnt *counters, d4, d2, d1 []evaluator.Score) {
	for pi := range r.cols.high {
		p4, p2, p1 := r.cols.high[pi], r.cols.mid[pi], r.cols.low[pi]
		wins, losses, pushes := 0, 0, 0
		for j := range d4 {
			subW, subL := 0, 0
			if p4 > d4[j] {
				subW++
			} else if p4 < d4[j] {
				subL++
			}
			if p2 > d2[j] {
				subW++
			} else if p2 < d2[j] {
				subL++
			}
			if p1 > d1[j] {
				subW++
			} else if p1 < d1[j] {
				subL++
			}
			if subW >= 2 {
				wins++
			} else if subL >= 2 {
				losses++
			} else {
				pushes++
			}
		}
		cnt.wins[pi] += wins
		cnt.losses[pi] += losses
		cnt.pushes[pi] += pushes
	}
}
