package sorting

type bubble[T any] struct {
	base[T]
	i, j    int
	compare bool
}

// Bubble yields before each comparison of (j, j+1). After pass i, index
// n-1-i is sorted.
func Bubble[T any](values []T, cmp func(a, b T) int) Producer[T] {
	return &bubble[T]{base: newBase(values, cmp)}
}

func (b *bubble[T]) Next() (Step[T], bool) {
	n := len(b.values)
	if b.compare {
		if b.less(b.j+1, b.j) {
			b.swap(b.j, b.j+1)
		}
		b.compare = false
		b.j++
	}
	for b.i < n-1 {
		if b.j < n-b.i-1 {
			b.compare = true
			return b.snapshot(b.j, b.j+1), true
		}
		b.mark(n - 1 - b.i)
		b.i++
		b.j = 0
	}
	return b.finish()
}

type selection[T any] struct {
	base[T]
	i, j, minIdx int
	compare      bool
}

// Selection yields before each comparison of (minIdx, j) while scanning the
// unsorted suffix, then swaps the minimum into position i.
func Selection[T any](values []T, cmp func(a, b T) int) Producer[T] {
	return &selection[T]{base: newBase(values, cmp), j: 1}
}

func (s *selection[T]) Next() (Step[T], bool) {
	n := len(s.values)
	if s.compare {
		if s.less(s.j, s.minIdx) {
			s.minIdx = s.j
		}
		s.compare = false
		s.j++
	}
	for s.i < n-1 {
		if s.j < n {
			s.compare = true
			return s.snapshot(s.minIdx, s.j), true
		}
		s.swap(s.i, s.minIdx)
		s.mark(s.i)
		s.i++
		s.minIdx = s.i
		s.j = s.i + 1
	}
	return s.finish()
}

type insertion[T any] struct {
	base[T]
	i, j    int
	key     T
	placing bool
	shifted bool
}

// Insertion shifts elements greater than the key one slot right, yielding
// after each shift with (j, j+1). Index i is marked once the key is placed.
func Insertion[T any](values []T, cmp func(a, b T) int) Producer[T] {
	return &insertion[T]{base: newBase(values, cmp), i: 1}
}

func (s *insertion[T]) Next() (Step[T], bool) {
	n := len(s.values)
	if s.shifted {
		s.shifted = false
		s.j--
	}
	for {
		if !s.placing {
			if s.i >= n {
				break
			}
			s.key = s.values[s.i]
			s.j = s.i - 1
			s.placing = true
		}
		if s.j >= 0 && s.cmp(s.values[s.j], s.key) > 0 {
			s.values[s.j+1] = s.values[s.j]
			s.shifted = true
			return s.snapshot(s.j, s.j+1), true
		}
		s.values[s.j+1] = s.key
		s.mark(s.i)
		s.i++
		s.placing = false
	}
	return s.finish()
}
