// Package shuffle implements unbiased Fisher–Yates permutations over an
// injectable random source.
package shuffle

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// Source yields uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Engine draws permutations from a single Source.
// It is not safe for concurrent use unless the Source is.
type Engine struct {
	src Source
}

// New creates an Engine over src.
func New(src Source) *Engine {
	return &Engine{src: src}
}

// NewSeeded creates an Engine over a PCG source. Two engines built from the
// same seed produce the same sequence of permutations.
func NewSeeded(seed uint64) *Engine {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewRandom creates an Engine seeded from crypto/rand.
func NewRandom() (*Engine, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeeded(seed), nil
}

// NewSeed reads a high-entropy seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// swapAll runs Fisher–Yates over n positions, calling swap(i, j) for every
// draw: i walks from n-1 down to 1 and j is uniform in [0, i].
func (e *Engine) swapAll(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := e.src.IntN(i + 1)
		swap(i, j)
	}
}

// Permutation returns a uniformly random ordering of [0..n-1].
// A negative n yields an empty permutation.
func (e *Engine) Permutation(n int) []int {
	if n < 0 {
		n = 0
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	e.swapAll(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Shuffle permutes s in place.
func Shuffle[T any](e *Engine, s []T) {
	e.swapAll(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// ShuffledCopy returns a shuffled copy of s, leaving s untouched.
func ShuffledCopy[T any](e *Engine, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	Shuffle(e, out)
	return out
}

// RandomSubset returns count elements of s chosen uniformly without
// replacement, in random order. When count >= len(s) the result is a full
// shuffled copy. s is never mutated.
func RandomSubset[T any](e *Engine, s []T, count int) ([]T, error) {
	if count < 0 {
		return nil, gameerr.InvalidArgument("shuffle.RandomSubset", "count %d must not be negative", count)
	}
	out := ShuffledCopy(e, s)
	if count < len(out) {
		out = out[:count:count]
	}
	return out, nil
}

// Apply returns a new slice where out[k] = s[perm[k]].
// perm must be a permutation of [0..len(s)-1].
func Apply[T any](perm []int, s []T) ([]T, error) {
	if len(perm) != len(s) {
		return nil, gameerr.InvalidArgument("shuffle.Apply", "permutation length %d does not match sequence length %d", len(perm), len(s))
	}
	seen := make([]bool, len(s))
	out := make([]T, len(s))
	for k, idx := range perm {
		if idx < 0 || idx >= len(s) || seen[idx] {
			return nil, gameerr.InvalidArgument("shuffle.Apply", "index %d at position %d is not a valid permutation entry", idx, k)
		}
		seen[idx] = true
		out[k] = s[idx]
	}
	return out, nil
}

// ShuffleTogether reorders a and b in place with one shared permutation so
// that a[k] and b[k] stay paired (e.g. questions and their categories).
func ShuffleTogether[A, B any](e *Engine, a []A, b []B) error {
	if len(a) != len(b) {
		return gameerr.InvalidArgument("shuffle.ShuffleTogether", "length mismatch: %d vs %d", len(a), len(b))
	}
	perm := e.Permutation(len(a))
	na, err := Apply(perm, a)
	if err != nil {
		return err
	}
	nb, err := Apply(perm, b)
	if err != nil {
		return err
	}
	copy(a, na)
	copy(b, nb)
	return nil
}
