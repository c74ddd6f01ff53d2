// Package randutil centralises seed handling so every random stream in the
// engine is reproducible from the caller's seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided
// int64. The two 64-bit seeds required by rand/v2's PCG are derived with a
// splitmix-style mixer so nearby seeds produce unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ClockSeed returns a wall-clock seed for runs where the caller supplied
// none. Such runs are not reproducible.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
