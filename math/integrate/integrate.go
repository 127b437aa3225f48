/*package integrate contains adaptive Gauss-Kronrod quadrature routines in the
style of QUADPACK: integration over finite intervals (QAG), finite intervals
with known break points or endpoint singularities (QAGP), and semi-infinite
or infinite intervals (QAGIU, QAGIL, QAGI).

None of the routines panic or return errors for numerical trouble. Instead
every Result carries a Status, and the best available estimate is returned
even when the requested accuracy couldn't be reached.
*/
package integrate

import (
	"container/heap"
	"math"
)

// Func is a one dimensional integrand.
type Func func(x float64) float64

// Status describes how an integration terminated.
type Status int

const (
	Success Status = iota
	// MaxSubdivisions means the interval limit was reached before the
	// tolerance was met.
	MaxSubdivisions
	// Roundoff means round off error prevented the tolerance from being met.
	Roundoff
	// Singular means an interval became too small to subdivide, which
	// usually indicates a non-integrable singularity.
	Singular
	// InvalidTolerance means the requested tolerances can't be reached in
	// double precision.
	InvalidTolerance
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case MaxSubdivisions:
		return "MaxSubdivisions"
	case Roundoff:
		return "Roundoff"
	case Singular:
		return "Singular"
	case InvalidTolerance:
		return "InvalidTolerance"
	}
	return "UnknownStatus"
}

// Result is the outcome of an integration.
type Result struct {
	Value, AbsErr float64
	// Intervals is the number of subintervals used in the final estimate.
	Intervals int
	Status    Status
}

const (
	DefaultLimit  = 1000
	DefaultEpsRel = 1e-4
	DefaultEpsAbs = 0.0
)

// Integrator holds the accuracy settings used by the quadrature routines and
// counts integrand evaluations. An Integrator carries no state between
// integrations other than that count, so integrands may themselves call
// other Integrators.
type Integrator struct {
	epsAbs, epsRel float64
	limit          int
	rule           Rule
	nCalls         int
}

// Option configures an Integrator.
type Option func(*Integrator)

// EpsAbs sets the absolute error goal. The default is 0.
func EpsAbs(eps float64) Option {
	return func(in *Integrator) { in.epsAbs = eps }
}

// EpsRel sets the relative error goal. The default is 1e-4.
func EpsRel(eps float64) Option {
	return func(in *Integrator) { in.epsRel = eps }
}

// Limit sets the maximum number of subintervals. The default is 1000.
func Limit(n int) Option {
	return func(in *Integrator) {
		if n < 1 {
			n = 1
		}
		in.limit = n
	}
}

// WithRule sets the rule used by QAG. The default is GK15. QAGP always
// uses GK21 and the infinite interval routines always use GK15.
func WithRule(r Rule) Option {
	return func(in *Integrator) { in.rule = r }
}

// New creates an Integrator.
func New(opts ...Option) *Integrator {
	in := &Integrator{
		epsAbs: DefaultEpsAbs, epsRel: DefaultEpsRel,
		limit: DefaultLimit, rule: GK15,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// NCalls returns the number of integrand evaluations since the Integrator was
// created or since the last call to ResetNCalls.
func (in *Integrator) NCalls() int  { return in.nCalls }
func (in *Integrator) ResetNCalls() { in.nCalls = 0 }

func (in *Integrator) counted(f Func) Func {
	return func(x float64) float64 {
		in.nCalls++
		return f(x)
	}
}

// QAG integrates f over [a, b].
func (in *Integrator) QAG(f Func, a, b float64) Result {
	return in.adapt(in.counted(f), in.rule.kronrod(), []float64{a, b})
}

// QAGP integrates f over [pts[0], pts[len(pts)-1]], where the interior
// points are known locations of singularities or discontinuities. The
// integrand is never evaluated at any of the points, so integrable
// singularities at the endpoints are allowed.
func (in *Integrator) QAGP(f Func, pts ...float64) Result {
	if len(pts) < 2 {
		return Result{Status: InvalidTolerance}
	}
	return in.adapt(in.counted(f), &kronrod21, pts)
}

// QAGIU integrates f over [a, +infinity) using the substitution
// x = a + (1 - t)/t.
func (in *Integrator) QAGIU(f Func, a float64) Result {
	f = in.counted(f)
	g := func(t float64) float64 {
		x := a + (1-t)/t
		return f(x) / (t * t)
	}
	return in.adapt(g, &kronrod15, []float64{0, 1})
}

// QAGIL integrates f over (-infinity, b] using the substitution
// x = b - (1 - t)/t.
func (in *Integrator) QAGIL(f Func, b float64) Result {
	f = in.counted(f)
	g := func(t float64) float64 {
		x := b - (1-t)/t
		return f(x) / (t * t)
	}
	return in.adapt(g, &kronrod15, []float64{0, 1})
}

// QAGI integrates f over (-infinity, +infinity) using the substitution
// x = (1 - t)/t on both halves of the real line.
func (in *Integrator) QAGI(f Func) Result {
	f = in.counted(f)
	g := func(t float64) float64 {
		x := (1 - t) / t
		return (f(x) + f(-x)) / (t * t)
	}
	return in.adapt(g, &kronrod15, []float64{0, 1})
}

// segmentHeap orders segments by decreasing error.
type segmentHeap []segment

func (h segmentHeap) Len() int            { return len(h) }
func (h segmentHeap) Less(i, j int) bool  { return h[i].err > h[j].err }
func (h segmentHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *segmentHeap) Push(x interface{}) { *h = append(*h, x.(segment)) }
func (h *segmentHeap) Pop() interface{} {
	old := *h
	n := len(old)
	seg := old[n-1]
	*h = old[:n-1]
	return seg
}

func (h segmentHeap) totals() (result, err float64) {
	for i := range h {
		result += h[i].result
		err += h[i].err
	}
	return result, err
}

// adapt is the globally adaptive bisection driver shared by every routine:
// the segment with the largest error estimate is repeatedly halved until
// the total error meets the tolerance or a limit is hit.
func (in *Integrator) adapt(f Func, rule *kronrod, pts []float64) Result {
	segs := make(segmentHeap, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, rule.apply(f, pts[i], pts[i+1]))
	}
	heap.Init(&segs)
	result, err := segs.totals()

	if in.epsAbs <= 0 && (in.epsRel < 50*dblEpsilon || in.epsRel < 0.5e-28) {
		return Result{result, err, len(segs), InvalidTolerance}
	}

	tolerance := func(result float64) float64 {
		return math.Max(in.epsAbs, in.epsRel*math.Abs(result))
	}

	if len(segs) == 1 {
		s := segs[0]
		roundoff := 50 * dblEpsilon * s.resabs
		if s.err <= roundoff && s.err > tolerance(result) {
			return Result{result, err, 1, Roundoff}
		} else if (s.err <= tolerance(result) && s.err != s.resasc) ||
			s.err == 0 {
			return Result{result, err, 1, Success}
		}
	}

	roundoffCount := 0
	for err > tolerance(result) {
		if len(segs) >= in.limit {
			return Result{result, err, len(segs), MaxSubdivisions}
		}

		worst := heap.Pop(&segs).(segment)
		mid := 0.5 * (worst.a + worst.b)

		if tooSmall(worst.a, mid, worst.b) {
			heap.Push(&segs, worst)
			return Result{result, err, len(segs), Singular}
		}

		left := rule.apply(f, worst.a, mid)
		right := rule.apply(f, mid, worst.b)

		area12 := left.result + right.result
		err12 := left.err + right.err
		if left.resasc != left.err && right.resasc != right.err {
			delta := worst.result - area12
			if math.Abs(delta) <= 1e-5*math.Abs(area12) &&
				err12 >= 0.99*worst.err {
				roundoffCount++
			}
		}

		result += area12 - worst.result
		err += err12 - worst.err

		heap.Push(&segs, left)
		heap.Push(&segs, right)

		if roundoffCount >= 6 {
			result, err = segs.totals()
			return Result{result, err, len(segs), Roundoff}
		}
	}

	result, err = segs.totals()
	return Result{result, err, len(segs), Success}
}

// tooSmall returns true if [a, b] can't be split at mid without the new
// intervals being lost in round off.
func tooSmall(a, mid, b float64) bool {
	tmp := (1 + 100*dblEpsilon) * (math.Abs(mid) + 1000*dblMin)
	return math.Abs(a) <= tmp && math.Abs(b) <= tmp
}
