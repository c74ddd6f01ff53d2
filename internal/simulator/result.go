package simulator

import (
	"sort"

	"github.com/airamana21/asia-poker-computer/internal/partition"
	"github.com/airamana21/asia-poker-computer/internal/statistics"
)

// Result is one player partition with its accumulated head-to-head tallies
type Result struct {
	Partition partition.RankedPartition
	Wins      int
	Losses    int
	Pushes    int
}

// Samples returns the number of dealer hands this partition was compared against
func (r Result) Samples() int {
	return r.Wins + r.Losses + r.Pushes
}

// WinRate returns wins over total samples, 0 when no samples were taken
func (r Result) WinRate() float64 {
	n := r.Samples()
	if n == 0 {
		return 0
	}
	return float64(r.Wins) / float64(n)
}

// Proportion returns the win rate as a binomial estimate for error bars
func (r Result) Proportion() statistics.Proportion {
	return statistics.Proportion{Successes: r.Wins, Trials: r.Samples()}
}

// Recommendation is the estimator's answer: the best partition and the
// full ranked list. Canceled marks a run cut short by the caller; its
// counts cover only the samples completed before cancellation and should
// be treated as non-authoritative.
type Recommendation struct {
	Best     Result
	Ranked   []Result
	Samples  int
	Canceled bool
}

func buildRecommendation(parts []partition.RankedPartition, cnt counters, completed int, canceled bool) *Recommendation {
	results := make([]Result, len(parts))
	for i, rp := range parts {
		results[i] = Result{
			Partition: rp,
			Wins:      cnt.wins[i],
			Losses:    cnt.losses[i],
			Pushes:    cnt.pushes[i],
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].WinRate() != results[j].WinRate() {
			return results[i].WinRate() > results[j].WinRate()
		}
		return results[i].Wins > results[j].Wins
	})
	return &Recommendation{
		Best:     results[0],
		Ranked:   results,
		Samples:  completed,
		Canceled: canceled,
	}
}
