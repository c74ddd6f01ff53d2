// Package simulator estimates the best 4-2-1 split of a seven-card hand
// by Monte Carlo simulation against a house-way dealer.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/airamana21/asia-poker-computer/internal/deck"
	"github.com/airamana21/asia-poker-computer/internal/evaluator"
	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/randutil"
)

const (
	// DefaultParallelThreshold is the minimum sample count before the
	// estimator fans out across workers
	DefaultParallelThreshold = 2000

	// DefaultBatchSize is the number of dealer hands accumulated before
	// each comparison sweep
	DefaultBatchSize = 500

	defaultMaxWorkers = 8
)

// Input errors, surfaced before any sampling begins
var (
	ErrInvalidHand    = errors.New("hand must contain exactly 7 distinct cards")
	ErrInvalidSamples = errors.New("sample count must be at least 1")
)

// Config holds the estimator's tuning parameters. The zero value gets
// documented defaults; behavior is fully reproducible from these fields
// plus the caller's seed, and nothing is read from the environment.
type Config struct {
	// Workers is the number of simulation goroutines for large runs.
	// Defaults to min(NumCPU, 8); 1 forces single-threaded execution.
	Workers int

	// ParallelThreshold is the minimum sample count before workers are
	// used. Defaults to DefaultParallelThreshold.
	ParallelThreshold int

	// BatchSize is the number of dealer hands scored between comparison
	// sweeps and cancellation polls. Defaults to DefaultBatchSize.
	BatchSize int

	// DisableBatch switches to per-sample comparison (debug aid; output
	// is identical for a given seed)
	DisableBatch bool

	Logger *log.Logger

	// failChunk, when set, runs in each parallel worker before it starts
	// sampling. Test seam for driving the sequential retry; in-process
	// the only organic trigger is an invariant violation.
	failChunk func(worker int) error
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
		if c.Workers > defaultMaxWorkers {
			c.Workers = defaultMaxWorkers
		}
	}
	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = DefaultParallelThreshold
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

// Simulator is the decision engine's public entry point
type Simulator struct {
	cfg Config
}

// New creates a simulator with the given configuration
func New(cfg Config) *Simulator {
	return &Simulator{cfg: cfg.withDefaults()}
}

// HouseWay validates the hand and returns the deterministic house-way
// split without any sampling
func (s *Simulator) HouseWay(hand []deck.Card) (partition.RankedPartition, error) {
	if err := validateHand(hand); err != nil {
		return partition.RankedPartition{}, err
	}
	rp, err := partition.HouseWay(hand, evaluator.NewScorer())
	if err != nil {
		return partition.RankedPartition{}, fmt.Errorf("%w: %w", ErrInvalidHand, err)
	}
	return rp, nil
}

// Recommend estimates win/loss/push rates for every non-foul partition of
// hand over the given number of dealer samples and returns them ranked by
// (win rate, raw wins) descending.
//
// The same hand, samples, and seed yield identical counts on the
// single-threaded path. progress, when non-nil, receives monotonically
// non-decreasing fractions in [0,1] from the calling goroutine's side of
// the run; a retry after a parallel failure restarts reporting from zero.
// Cancellation via ctx is cooperative: in-flight batches finish,
// remaining work is skipped, and the partial result carries Canceled=true.
func (s *Simulator) Recommend(ctx context.Context, hand []deck.Card, samples int, seed int64, progress func(float64)) (*Recommendation, error) {
	if err := validateHand(hand); err != nil {
		return nil, err
	}
	if samples < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSamples, samples)
	}

	scorer := evaluator.NewScorer()
	parts := partition.NonFoul(hand, scorer)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHand, partition.ErrAllPartitionsFoul)
	}

	r := &run{
		cols:         packPartitions(parts),
		deckRem:      deck.Remaining(hand),
		batchSize:    s.cfg.BatchSize,
		disableBatch: s.cfg.DisableBatch,
	}

	if s.cfg.Workers > 1 && samples >= s.cfg.ParallelThreshold {
		rec, err := s.parallel(ctx, r, parts, samples, seed, progress)
		if err == nil {
			return rec, nil
		}
		// Recoverable per the engine contract: retry single-threaded
		// with identical parameters.
		s.cfg.Logger.Warn("parallel simulation failed, retrying single-threaded",
			"error", err, "samples", samples, "seed", seed)
	}

	return s.sequential(ctx, r, parts, samples, seed, progress, scorer)
}

func (s *Simulator) sequential(ctx context.Context, r *run, parts []partition.RankedPartition, samples int, seed int64, progress func(float64), scorer *evaluator.Scorer) (*Recommendation, error) {
	rng := randutil.New(seed)
	cnt, completed, err := r.simulate(ctx, samples, rng, scorer, func(done int) {
		if progress != nil {
			progress(float64(done) / float64(samples))
		}
	})
	if err != nil {
		return nil, err
	}

	canceled := completed < samples
	rec := buildRecommendation(parts, cnt, completed, canceled)
	if progress != nil && !canceled {
		progress(1.0)
	}
	return rec, nil
}

func (s *Simulator) parallel(ctx context.Context, r *run, parts []partition.RankedPartition, samples int, seed int64, progress func(float64)) (*Recommendation, error) {
	workers := s.cfg.Workers
	if maxChunks := samples / s.cfg.ParallelThreshold; workers > maxChunks {
		workers = maxChunks
	}

	// Disjoint chunk sizes differing by at most one, each with its own
	// deterministic stream derived from the caller's seed.
	parent := randutil.New(seed)
	base := samples / workers
	remainder := samples % workers

	type chunkResult struct {
		cnt       counters
		completed int
	}
	results := make(chan chunkResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := base
		if w < remainder {
			n++
		}
		chunkSeed := parent.Int64()
		worker := w

		g.Go(func() error {
			if s.cfg.failChunk != nil {
				if err := s.cfg.failChunk(worker); err != nil {
					return err
				}
			}
			rng := randutil.New(chunkSeed)
			scorer := evaluator.NewScorer()
			cnt, completed, err := r.simulate(gctx, n, rng, scorer, nil)
			if err != nil {
				return err
			}
			results <- chunkResult{cnt: cnt, completed: completed}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(results)
	}()

	// Additive reduction; chunk arrival order does not affect the totals.
	total := newCounters(len(parts))
	completed := 0
	for cr := range results {
		total.merge(cr.cnt)
		completed += cr.completed
		if progress != nil {
			progress(float64(completed) / float64(samples))
		}
	}
	if err := <-waitErr; err != nil {
		return nil, err
	}

	canceled := completed < samples
	rec := buildRecommendation(parts, total, completed, canceled)
	if progress != nil && !canceled {
		progress(1.0)
	}
	return rec, nil
}

func validateHand(hand []deck.Card) error {
	if len(hand) != partition.HandSize {
		return fmt.Errorf("%w: got %d cards", ErrInvalidHand, len(hand))
	}
	for _, c := range hand {
		if !legalCard(c) {
			return fmt.Errorf("%w: illegal card %v", ErrInvalidHand, c)
		}
	}
	if deck.NewCardSet(hand).Len() != partition.HandSize {
		return fmt.Errorf("%w: duplicate card in hand", ErrInvalidHand)
	}
	return nil
}

func legalCard(c deck.Card) bool {
	if c.IsJoker() {
		return c.Suit == deck.NoSuit
	}
	return c.Rank >= deck.Two && c.Rank <= deck.Ace && c.Suit >= deck.Spades && c.Suit <= deck.Clubs
}
