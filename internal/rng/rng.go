// Package rng implements the deterministic pseudo-random source behind all
// combat rolls.
//
// # Determinism
//
// The generator is a Mulberry32 port operating on 32-bit state. Two
// instances created with the same seed and fed the same call sequence
// (Random/RandomInt/Chance/WeightedPick/Shuffle/Roll) produce bit-identical
// outputs. Saved seeds therefore replay fights exactly.
//
// # Concurrency
//
// An RNG is not safe for concurrent use. Each fight session owns its own
// instance; Default exists as the process-scoped convenience handle for
// callers outside combat (callers must tolerate an injected instance).
package rng

import "time"

// RNG is a reseedable Mulberry32 generator.
type RNG struct {
	state uint32
}

// New returns a generator seeded with the low 32 bits of seed.
func New(seed int64) *RNG {
	r := &RNG{}
	r.Reseed(seed)
	return r
}

// Reseed resets the generator state. The same seed always restarts the
// same sequence.
func (r *RNG) Reseed(seed int64) {
	r.state = uint32(seed)
}

// next advances the Mulberry32 state and returns the raw 32-bit draw.
func (r *RNG) next() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Random returns a uniform float64 in [0, 1).
func (r *RNG) Random() float64 {
	return float64(r.next()) / 4294967296.0
}

// RandomInt returns a uniform integer in [min, max], inclusive on both
// ends. Reversed bounds are swapped rather than treated as an error.
func (r *RNG) RandomInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(r.Random()*float64(max-min+1))
}

// Chance returns true iff a draw lands below p. p <= 0 is never true and
// p >= 1 is always true (modulo floating rounding, as documented by the
// source behavior).
func (r *RNG) Chance(p float64) bool {
	return r.Random() < p
}

// PickIndex returns a uniform index in [0, n). n <= 0 returns -1.
func (r *RNG) PickIndex(n int) int {
	if n <= 0 {
		return -1
	}
	return r.RandomInt(0, n-1)
}

// WeightedPick returns an index drawn proportionally to the non-negative
// weights. Ties are broken by list order (the first weight consuming the
// draw wins). A zero or fully non-positive total falls back to the LAST
// index: this is a documented quirk carried over from the original data
// files, kept because saved seeds depend on the draw sequence. Callers
// that consider an all-zero table a bug must validate before drawing.
// An empty slice returns -1.
func (r *RNG) WeightedPick(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	draw := r.Random() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if draw < w {
			return i
		}
		draw -= w
	}
	return len(weights) - 1
}

// Shuffle performs a Fisher-Yates shuffle over n elements using the
// provided swap function.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i >= 1; i-- {
		j := r.RandomInt(0, i)
		swap(i, j)
	}
}

// Pick returns a uniform element of items. Panics on an empty slice, which
// is a setup error on the caller's side.
func Pick[T any](r *RNG, items []T) T {
	return items[r.PickIndex(len(items))]
}

// Default is the process-scoped generator handle. The run layer reseeds it
// once at startup for session-wide reproducibility; tests and simulations
// inject their own instances instead.
var Default = New(time.Now().UnixNano())
