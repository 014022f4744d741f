package combo

import "iter"

// Enumerator yields every size-k subset of items, one at a time, in
// index-ascending lexicographic order: for [a b c d] and k=2 that is
// ab ac ad bc bd cd. The resumption state is the index vector of the
// last tuple produced. An Enumerator cannot be rewound.
type Enumerator[T any] struct {
	items   []T
	idx     []int
	started bool
	done    bool
}

// NewEnumerator prepares the enumeration of size-k subsets of items.
// It produces nothing when k <= 0 or k > len(items).
func NewEnumerator[T any](items []T, k int) *Enumerator[T] {
	if k <= 0 || k > len(items) {
		return &Enumerator[T]{done: true}
	}
	return &Enumerator[T]{items: items, idx: make([]int, k)}
}

// Next returns the next tuple as a fresh slice, or false when exhausted.
func (e *Enumerator[T]) Next() ([]T, bool) {
	if e.done {
		return nil, false
	}

	if !e.started {
		e.started = true
		for i := range e.idx {
			e.idx[i] = i
		}
		return e.tuple(), true
	}

	n, k := len(e.items), len(e.idx)
	// rightmost position that can still advance
	i := k - 1
	for i >= 0 && e.idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		e.done = true
		return nil, false
	}
	e.idx[i]++
	for j := i + 1; j < k; j++ {
		e.idx[j] = e.idx[j-1] + 1
	}
	return e.tuple(), true
}

func (e *Enumerator[T]) tuple() []T {
	out := make([]T, len(e.idx))
	for i, ix := range e.idx {
		out[i] = e.items[ix]
	}
	return out
}

// Combinations is the range-over-func form of NewEnumerator. Breaking out of
// the loop stops generation; no further tuples are computed.
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		e := NewEnumerator(items, k)
		for {
			t, ok := e.Next()
			if !ok || !yield(t) {
				return
			}
		}
	}
}
