package garden

import "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// RNG is a deterministic pseudo-random stream. Two RNGs constructed from
// equal seed words produce identical sequences forever; the stream depends
// only on the seeds and the order of calls, never on wall-clock time or
// external entropy.
type RNG struct {
	src *rand.Rand
}

// NewRNG creates a deterministic RNG from zero or more 32-bit seed words.
// The words are folded and avalanched into the two 64-bit seeds required by
// rand/v2's PCG source, so all call sites derive streams the same way.
// Calling NewRNG with no words yields a fixed default stream.
func NewRNG(seeds ...uint32) *RNG {
	r := &RNG{}
	r.Reseed(seeds...)
	return r
}

// Reseed replaces the entire stream with one derived only from the given
// seed words. The prior stream state has no influence on the new one.
func (r *RNG) Reseed(seeds ...uint32) {
	acc := uint64(goldenRatio64)
	for _, w := range seeds {
		acc = (acc ^ uint64(mix32(w))) * 0xbf58476d1ce4e5b9
	}
	r.src = rand.New(rand.NewPCG(mix64(acc), mix64(acc+goldenRatio64)))
}

// Float returns the next value in [0, 1).
func (r *RNG) Float() float64 {
	return r.src.Float64()
}

// FloatRange returns the next value in [lo, hi).
func (r *RNG) FloatRange(lo, hi float64) float64 {
	return lo + r.src.Float64()*(hi-lo)
}

// IntRange returns the next integer in [lo, hi], inclusive on both ends and
// uniform over the range. If hi < lo the bounds are swapped.
func (r *RNG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.src.IntN(hi-lo+1)
}

// mix64 is the splitmix64 finalizer. Decorrelates the two PCG seed halves.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
