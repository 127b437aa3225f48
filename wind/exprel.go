package wind

import (
	"math"
)

// Exprel returns (e^x - 1) / x, evaluated without cancellation near x = 0.
// Exprel(-t) is the escape fraction (1 - e^-t) / t of a slab with optical
// depth t.
func Exprel(x float64) float64 {
	if x == 0 {
		return 1
	} else if math.Abs(x) < 1e-3 {
		return 1 + x*(1./2+x*(1./6+x*(1./24+x/120)))
	}
	return math.Expm1(x) / x
}
