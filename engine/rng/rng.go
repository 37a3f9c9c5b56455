// Package rng implements the deterministic seeded random number generator
// every procedural decision in the run engine derives from. Streams are a
// pure function of a uint32 seed: identical seeds produce identical
// sequences across process restarts and platforms.
package rng

// Rand is a mulberry32 stream.
type Rand struct {
	state uint32
}

// New creates a deterministic stream from a seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float returns the next float64 in [0, 1).
func (r *Rand) Float() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / 4294967296.0
}

// Intn returns an int in [0, n). n <= 0 returns 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float() * float64(n))
}

// Range returns an int in [min, max] inclusive.
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float() < p
}

// Shuffle performs an in-place Fisher-Yates shuffle.
func Shuffle[T any](r *Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// HashString is a 32-bit FNV-1a hash with unsigned wraparound. It must
// stay bit-for-bit stable: derived sub-seeds feed saved resume codes.
func HashString(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// SubSeed derives a scoped seed from the run seed and a context string,
// giving independent-but-reproducible randomness per (run, context).
func SubSeed(seed uint32, context string) uint32 {
	return seed ^ HashString(context)
}

// NewScoped is shorthand for New(SubSeed(seed, context)).
func NewScoped(seed uint32, context string) *Rand {
	return New(SubSeed(seed, context))
}
