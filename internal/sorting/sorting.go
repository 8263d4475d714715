// Package sorting provides step producers for six classic in-place sorts.
//
// Each producer runs its algorithm one observable operation at a time: every
// call to Next advances to the next comparison, swap or write and returns a
// snapshot of the sequence with the indices involved. Loop variables and
// recursion stacks are held in the producer, so nothing runs between calls.
//
//   - [Bubble], [Selection], [Insertion]
//   - [Merge] (stable), [Quick] (Lomuto), [Heap]
//
// Every producer finishes with a Step whose Active is empty and whose Sorted
// covers every index. Producers are single use.
package sorting

import "cmp"

// Step is one snapshot of a sequence under sort.
type Step[T any] struct {
	Values []T
	// Active holds the indices being compared or moved.
	Active []int
	// Sorted holds indices known to be in their final place, ascending.
	Sorted []int
}

// Final reports whether this is the terminating all-sorted step.
func (s Step[T]) Final() bool {
	return len(s.Active) == 0 && len(s.Sorted) == len(s.Values)
}

// IsActive reports whether i is in Active.
func (s Step[T]) IsActive(i int) bool {
	for _, a := range s.Active {
		if a == i {
			return true
		}
	}
	return false
}

// IsSorted reports whether i is in Sorted.
func (s Step[T]) IsSorted(i int) bool {
	for _, v := range s.Sorted {
		if v == i {
			return true
		}
	}
	return false
}

// Producer yields steps until it returns false.
type Producer[T any] interface {
	Next() (Step[T], bool)
}

// Func builds a producer over values ordered by cmp. values is sorted in place.
type Func[T any] func(values []T, cmp func(a, b T) int) Producer[T]

// Ordered adapts f to a naturally ordered element type.
func Ordered[T cmp.Ordered](f Func[T]) func(values []T) Producer[T] {
	return func(values []T) Producer[T] { return f(values, cmp.Compare[T]) }
}

// Drain pulls every remaining step from p.
func Drain[T any](p Producer[T]) []Step[T] {
	var steps []Step[T]
	for {
		s, ok := p.Next()
		if !ok {
			return steps
		}
		steps = append(steps, s)
	}
}

// base holds what every producer shares: the sequence, the comparison and the
// monotonic set of sorted indices.
type base[T any] struct {
	values   []T
	cmp      func(a, b T) int
	sorted   []bool
	finished bool
}

func newBase[T any](values []T, cmp func(a, b T) int) base[T] {
	return base[T]{values: values, cmp: cmp, sorted: make([]bool, len(values))}
}

func (b *base[T]) less(i, j int) bool { return b.cmp(b.values[i], b.values[j]) < 0 }

func (b *base[T]) swap(i, j int) { b.values[i], b.values[j] = b.values[j], b.values[i] }

func (b *base[T]) mark(i int) { b.sorted[i] = true }

func (b *base[T]) snapshot(active ...int) Step[T] {
	values := make([]T, len(b.values))
	copy(values, b.values)

	sorted := make([]int, 0, len(b.sorted))
	for i, ok := range b.sorted {
		if ok {
			sorted = append(sorted, i)
		}
	}

	act := make([]int, len(active))
	copy(act, active)

	return Step[T]{Values: values, Active: act, Sorted: sorted}
}

// finish returns the all-sorted step once and then reports exhaustion.
func (b *base[T]) finish() (Step[T], bool) {
	if b.finished {
		return Step[T]{}, false
	}
	b.finished = true
	for i := range b.sorted {
		b.sorted[i] = true
	}
	return b.snapshot(), true
}
