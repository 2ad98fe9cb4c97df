// Package random provides the seeded random source and the weighted
// selector used to draw phrases from content pools.
package random

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// #nosec G404 -- Using math/rand is acceptable for non-cryptographic randomness

// ErrInvalidInput is returned when a selection is requested from an empty
// pool or with weights that cannot describe a distribution.
var ErrInvalidInput = errors.New("invalid input")

// Random is a mutex guarded *rand.Rand so a single source can be shared by
// concurrent sessions.
type Random struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// New creates a seeded source. A zero seed is replaced by the current time.
func New(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		rng:  rand.New(rand.NewSource(seed)), // #nosec G404
		seed: seed,
	}
}

// Seed returns the effective seed, useful to reproduce a run.
func (r *Random) Seed() int64 {
	return r.seed
}

// Float64 returns a value in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Intn returns a value in [0, n). Panics if n <= 0.
func (r *Random) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Bool returns a random boolean value based on the provided weight
// Higher weight increases the chance of returning true
func (r *Random) Bool(weight float64) bool {
	if weight <= 0.0 {
		return false
	}
	if weight > 1.0 {
		weight = 1.0
	}
	return r.Float64() < weight
}

// Pick returns a uniformly drawn element of items.
func Pick[T any](r *Random, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: empty selection pool", ErrInvalidInput)
	}
	return items[r.Intn(len(items))], nil
}

// Weighted draws an element with probability proportional to its weight.
// Without weights the draw is uniform. Zero weights are never selected.
func Weighted[T any](r *Random, items []T, weights []float64) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: empty selection pool", ErrInvalidInput)
	}
	if len(weights) == 0 {
		return Pick(r, items)
	}
	if len(weights) != len(items) {
		return zero, fmt.Errorf("%w: %d weights for %d items", ErrInvalidInput, len(weights), len(items))
	}

	total, err := TotalWeight(weights)
	if err != nil {
		return zero, err
	}

	remainder := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		remainder -= w
		if remainder <= 0 {
			return items[i], nil
		}
	}
	// rounding residue
	return items[last], nil
}

// TotalWeight validates weights and returns their sum.
func TotalWeight(weights []float64) (float64, error) {
	var total float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("%w: weight %d is %v", ErrInvalidInput, i, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: weights sum to %v", ErrInvalidInput, total)
	}
	return total, nil
}
