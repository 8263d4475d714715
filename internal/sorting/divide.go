package sorting

type span struct {
	lo, hi int
	split  bool // children already scheduled; merge next
}

type merge[T any] struct {
	base[T]
	stack       []span
	left, right []T
	i, j, k     int
	merging     bool
}

// Merge is top-down merge sort splitting at the midpoint, left half first.
// The merge phase yields once per element written, with the written index
// active. Equal elements keep their input order.
func Merge[T any](values []T, cmp func(a, b T) int) Producer[T] {
	m := &merge[T]{base: newBase(values, cmp)}
	if len(values) > 1 {
		m.stack = append(m.stack, span{lo: 0, hi: len(values) - 1})
	}
	return m
}

func (m *merge[T]) Next() (Step[T], bool) {
	for {
		if m.merging {
			if m.i < len(m.left) && m.j < len(m.right) {
				if m.cmp(m.left[m.i], m.right[m.j]) <= 0 {
					m.write(m.left[m.i])
					m.i++
				} else {
					m.write(m.right[m.j])
					m.j++
				}
				return m.snapshot(m.k - 1), true
			}
			if m.i < len(m.left) {
				m.write(m.left[m.i])
				m.i++
				return m.snapshot(m.k - 1), true
			}
			if m.j < len(m.right) {
				m.write(m.right[m.j])
				m.j++
				return m.snapshot(m.k - 1), true
			}
			m.merging = false
		}

		if len(m.stack) == 0 {
			return m.finish()
		}
		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		if top.lo >= top.hi {
			continue
		}
		mid := (top.lo + top.hi) / 2
		if !top.split {
			// Post-order: the merge of this span runs after both halves.
			m.stack = append(m.stack,
				span{lo: top.lo, hi: top.hi, split: true},
				span{lo: mid + 1, hi: top.hi},
				span{lo: top.lo, hi: mid},
			)
			continue
		}
		m.left = append(m.left[:0], m.values[top.lo:mid+1]...)
		m.right = append(m.right[:0], m.values[mid+1:top.hi+1]...)
		m.i, m.j, m.k = 0, 0, top.lo
		m.merging = true
	}
}

func (m *merge[T]) write(v T) {
	m.values[m.k] = v
	m.k++
}

type quick[T any] struct {
	base[T]
	stack        []span
	lo, hi, i, j int
	pivot        T
	partitioning bool
	compare      bool
}

// Quick is quicksort with a Lomuto partition around the last element. It
// yields before each comparison (j, hi), once more with the pivot at its
// final index, then sorts the left part before the right.
func Quick[T any](values []T, cmp func(a, b T) int) Producer[T] {
	q := &quick[T]{base: newBase(values, cmp)}
	if len(values) > 1 {
		q.stack = append(q.stack, span{lo: 0, hi: len(values) - 1})
	}
	return q
}

func (q *quick[T]) Next() (Step[T], bool) {
	if q.compare {
		if q.cmp(q.values[q.j], q.pivot) < 0 {
			q.swap(q.i, q.j)
			q.i++
		}
		q.compare = false
		q.j++
	}
	for {
		if q.partitioning {
			if q.j < q.hi {
				q.compare = true
				return q.snapshot(q.j, q.hi), true
			}
			q.swap(q.i, q.hi)
			q.partitioning = false
			q.stack = append(q.stack,
				span{lo: q.i + 1, hi: q.hi},
				span{lo: q.lo, hi: q.i - 1},
			)
			return q.snapshot(q.i), true
		}

		if len(q.stack) == 0 {
			return q.finish()
		}
		top := q.stack[len(q.stack)-1]
		q.stack = q.stack[:len(q.stack)-1]
		if top.lo >= top.hi {
			continue
		}
		q.lo, q.hi = top.lo, top.hi
		q.pivot = q.values[q.hi]
		q.i, q.j = q.lo, q.lo
		q.partitioning = true
	}
}

const (
	heapBuild = iota
	heapExtract
	heapDone
)

type heapSort[T any] struct {
	base[T]
	phase   int
	k       int
	size    int
	pos     int
	sifting bool
}

// Heap builds a max-heap by sifting down from the last parent, then
// repeatedly swaps the root with the last unsorted element. Every sift swap
// yields the swapped pair; every extraction yields (0, i) with i now sorted.
func Heap[T any](values []T, cmp func(a, b T) int) Producer[T] {
	n := len(values)
	return &heapSort[T]{base: newBase(values, cmp), k: n/2 - 1, size: n}
}

func (h *heapSort[T]) Next() (Step[T], bool) {
	for {
		if h.sifting {
			largest := h.pos
			l, r := 2*h.pos+1, 2*h.pos+2
			if l < h.size && h.less(largest, l) {
				largest = l
			}
			if r < h.size && h.less(largest, r) {
				largest = r
			}
			if largest != h.pos {
				from := h.pos
				h.swap(from, largest)
				h.pos = largest
				return h.snapshot(from, largest), true
			}
			h.sifting = false
		}

		switch h.phase {
		case heapBuild:
			if h.k >= 0 {
				h.pos = h.k
				h.k--
				h.sifting = true
				continue
			}
			h.phase = heapExtract
			h.k = len(h.values) - 1
		case heapExtract:
			if h.k > 0 {
				i := h.k
				h.swap(0, i)
				h.mark(i)
				h.size = i
				h.pos = 0
				h.sifting = true
				h.k--
				return h.snapshot(0, i), true
			}
			h.phase = heapDone
		default:
			return h.finish()
		}
	}
}
