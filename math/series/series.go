/*package series sums convergent series which are used to evaluate closed
form expressions near their removable singularities.
*/
package series

import (
	"fmt"
	"math"
)

const (
	// DefaultTolerance is the relative size of the last term at which a
	// series is considered converged.
	DefaultTolerance = 1e-12
	// MaxTolerance is the loosest tolerance Sum will accept.
	MaxTolerance = 0.1
	// DefaultMaxTerms caps the number of terms summed.
	DefaultMaxTerms = 1000
)

// Term returns the nth term of a series. Sum calls it with n = 0, 1, 2, ...
// in order, so a Term may carry running state (e.g. a power of x) between
// calls.
type Term func(n int) float64

// NotConvergedError is returned by Sum when a series has not reached the
// requested tolerance after the maximum number of terms.
type NotConvergedError struct {
	Terms       int
	Sum, RelErr float64
}

func (err *NotConvergedError) Error() string {
	return fmt.Sprintf(
		"Series did not converge after %d terms (sum = %g, last relative "+
			"term = %g).", err.Terms, err.Sum, err.RelErr,
	)
}

// Sum adds terms of a series until the magnitude of the last term relative
// to the running sum is at or below tol. Tolerances which are negative or
// larger than MaxTolerance are replaced by MaxTolerance. If maxTerms terms
// have been added without convergence, the partial sum is returned along
// with a *NotConvergedError.
func Sum(term Term, tol float64, maxTerms int) (float64, error) {
	if tol > MaxTolerance || tol < 0 {
		tol = MaxTolerance
	}

	sum := term(0)
	for n := 1; ; n++ {
		t := term(n)
		sum += t
		relErr := math.Abs(t / sum)
		if !(relErr > tol) {
			return sum, nil
		}
		if n+1 >= maxTerms {
			return sum, &NotConvergedError{n + 1, sum, relErr}
		}
	}
}
