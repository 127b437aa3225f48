/*package wind contains the kinematic and geometric backbone shared by every
other part of windprof: the beta velocity law, the (p, z) ray coordinates
and the occultation predicate.

All lengths are in units of the stellar radius and all velocities are in
units of the terminal velocity.
*/
package wind

import (
	"math"
)

// Epsilon is the relative tolerance used by Compare.
const Epsilon = 2.220446049250313e-16

// CompareEps compares a and b to within a relative tolerance eps. It returns
// 0 if they are approximately equal, -1 if a < b and 1 if a > b.
//
// The tolerance is scaled by the binary exponent of the larger of |a| and
// |b|, so CompareEps(x, 0, eps) is 0 only for x == 0.
func CompareEps(a, b, eps float64) int {
	max := b
	if math.Abs(a) > math.Abs(b) {
		max = a
	}
	_, exp := math.Frexp(max)
	delta := math.Ldexp(eps, exp)

	diff := a - b
	if diff > delta {
		return 1
	} else if diff < -delta {
		return -1
	}
	return 0
}

// Compare is CompareEps with a tolerance of machine epsilon. It's used for
// every branch decision in the package tree so that branch boundaries agree
// between components.
func Compare(a, b float64) int {
	return CompareEps(a, b, Epsilon)
}
