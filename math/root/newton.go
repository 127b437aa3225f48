/*package root finds roots of one dimensional functions with Newton's method.
*/
package root

import (
	"math"
)

// FDF returns the value of a function and its derivative at x.
type FDF func(x float64) (f, df float64)

// Status describes how a root search terminated.
type Status int

const (
	Success Status = iota
	// MaxIterations means the step size never fell below the tolerance.
	MaxIterations
	// ZeroDerivative means the derivative vanished at an iterate.
	ZeroDerivative
	// NotFinite means an iterate was infinite or NaN.
	NotFinite
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case MaxIterations:
		return "MaxIterations"
	case ZeroDerivative:
		return "ZeroDerivative"
	case NotFinite:
		return "NotFinite"
	}
	return "UnknownStatus"
}

// Result is the outcome of a root search. Root is the last iterate, even on
// failure.
type Result struct {
	Root       float64
	Iterations int
	Status     Status
}

const (
	DefaultRelErr        = 1e-8
	DefaultAbsErr        = 0.0
	DefaultMaxIterations = 100
)

type newtonParams struct {
	relErr, absErr float64
	maxIter        int
}

// Option configures Newton.
type Option func(*newtonParams)

// RelErr sets the relative step tolerance.
func RelErr(eps float64) Option {
	return func(p *newtonParams) { p.relErr = eps }
}

// AbsErr sets the absolute step tolerance.
func AbsErr(eps float64) Option {
	return func(p *newtonParams) { p.absErr = eps }
}

// MaxIter sets the maximum number of Newton steps.
func MaxIter(n int) Option {
	return func(p *newtonParams) { p.maxIter = n }
}

// Newton iterates x -> x - f(x)/f'(x) starting from guess until successive
// iterates satisfy |x1 - x0| < absErr + relErr*|x1|.
func Newton(fdf FDF, guess float64, opts ...Option) Result {
	p := newtonParams{DefaultRelErr, DefaultAbsErr, DefaultMaxIterations}
	for _, opt := range opts {
		opt(&p)
	}

	x := guess
	for i := 1; i <= p.maxIter; i++ {
		f, df := fdf(x)
		if df == 0 {
			return Result{x, i, ZeroDerivative}
		}
		next := x - f/df
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return Result{x, i, NotFinite}
		}

		last := x
		x = next
		if math.Abs(x-last) < p.absErr+p.relErr*math.Abs(x) || x == last {
			return Result{x, i, Success}
		}
	}
	return Result{x, p.maxIter, MaxIterations}
}
