package interpolate

import (
	"fmt"
)

// searcher finds the interval containing a point in a monotonic sequence.
type searcher struct {
	xs   []float64
	incr bool

	unif   bool
	x0, dx float64
	n      int
}

func (s *searcher) init(xs []float64) {
	if len(xs) < 2 {
		panic(fmt.Sprintf("Interpolation table has length %d.", len(xs)))
	}

	s.xs = xs
	s.n = len(xs)
	s.incr = xs[1] > xs[0]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] > xs[i]) != s.incr || xs[i+1] == xs[i] {
			panic("Interpolation table is not strictly monotonic.")
		}
	}
	// Guess under the assumption of uniform spacing.
	s.x0 = xs[0]
	s.dx = (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	if n < 2 {
		panic(fmt.Sprintf("Interpolation table has length %d.", n))
	} else if dx == 0 {
		panic("Uniform interpolation table has zero spacing.")
	}
	s.unif = true
	s.x0, s.dx, s.n = x0, dx, n
	s.incr = dx > 0
}

func (s *searcher) val(i int) float64 {
	if s.unif {
		return s.x0 + float64(i)*s.dx
	}
	return s.xs[i]
}

func (s *searcher) bounds() (lo, hi float64) {
	lo, hi = s.val(0), s.val(s.n-1)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// search returns the index i such that x lies in [val(i), val(i+1)]. It
// panics if x is outside the table.
func (s *searcher) search(x float64) int {
	lo, hi := s.bounds()
	if x < lo || x > hi || x != x {
		panic(fmt.Sprintf(
			"Point %g is outside the interpolation range [%g, %g].", x, lo, hi,
		))
	}

	guess := int((x - s.x0) / s.dx)
	if guess >= s.n-1 {
		guess = s.n - 2
	}
	if s.unif {
		return guess
	}

	if guess >= 0 && (s.xs[guess] <= x) == s.incr &&
		(s.xs[guess+1] >= x) == s.incr {
		return guess
	}

	// Binary search.
	l, h := 0, s.n-1
	for h-l > 1 {
		mid := (l + h) / 2
		if s.incr == (x >= s.xs[mid]) {
			l = mid
		} else {
			h = mid
		}
	}
	return l
}
