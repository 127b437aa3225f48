/*package interpolate contains one and two dimensional interpolators for
tabulated functions, such as opacity curves and transmission tables.
*/
package interpolate

// Interpolator is a tabulated function of one variable.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
	// Range returns the smallest and largest x values that can be evaluated.
	Range() (lo, hi float64)
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)

// BiInterpolator is a tabulated function of two variables.
type BiInterpolator interface {
	Eval(x, y float64) float64
	EvalAll(xs, ys []float64, out ...[]float64) []float64
	Range() (xLo, xHi, yLo, yHi float64)
}

var (
	_ BiInterpolator = &BiLinear{}
)
