package seeder

import (
	"errors"
	"fmt"
)

var ErrInsufficientPopulation = errors.New("not enough distinct elements to sample from")

// SampleUnique draws k distinct elements of src without replacement. It never
// returns fewer than k elements.
func SampleUnique[T any](p ValueProvider, src []T, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("sample size %d is negative", k)
	}
	if k > len(src) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientPopulation, k, len(src))
	}

	idx := make([]int, len(src))
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates
	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := p.IntBetween(i, len(idx)-1)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = src[idx[i]]
	}
	return out, nil
}

// SampleRange draws the subset size from [lo, min(hi, len(src))] first. Only
// the upper end adapts to the population; lo larger than src is an error.
func SampleRange[T any](p ValueProvider, src []T, lo, hi int) ([]T, error) {
	if lo > len(src) {
		return nil, fmt.Errorf("%w: want at least %d, have %d", ErrInsufficientPopulation, lo, len(src))
	}
	if hi > len(src) {
		hi = len(src)
	}
	return SampleUnique(p, src, p.IntBetween(lo, hi))
}

// Pick returns one element of a non-empty slice.
func Pick[T any](p ValueProvider, src []T) T {
	return src[p.IntBetween(0, len(src)-1)]
}

// Sequence hands out IDs 1, 2, 3, ... for one entity type.
type Sequence struct {
	last int64
}

func (s *Sequence) Next() int64 {
	s.last++
	return s.last
}
