// Package statistics provides the binomial proportion estimate used to
// put error bars on simulated win rates.
package statistics

import "math"

// Proportion is a success rate estimated from repeated independent trials
type Proportion struct {
	Successes int
	Trials    int
}

// Rate returns the point estimate, 0 when no trials were run
func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// StdError returns the standard error of the rate under the normal
// approximation
func (p Proportion) StdError() float64 {
	if p.Trials == 0 {
		return 0
	}
	r := p.Rate()
	return math.Sqrt(r * (1 - r) / float64(p.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the rate,
// clamped to [0, 1]
func (p Proportion) ConfidenceInterval95() (float64, float64) {
	r := p.Rate()
	margin := 1.96 * p.StdError()
	return math.Max(0, r-margin), math.Min(1, r+margin)
}
