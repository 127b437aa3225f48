package profile

import (
	"math"

	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/wind"
)

// FluxIntegral integrates Lx over bins in x.
type FluxIntegral struct {
	lx    *Lx
	integ *integrate.Integrator
}

func NewFluxIntegral(lx *Lx) *FluxIntegral {
	return &FluxIntegral{lx: lx, integ: integrate.New()}
}

// Flux integrates Lx over the bin between x and y, which may be given in
// either order. The bin is clipped to [-1, 1] and split at the kinks of the
// profile.
func (fi *FluxIntegral) Flux(x, y float64) (float64, integrate.Status) {
	if y > x {
		x, y = y, x
	}
	xIn := wind.Compare(math.Abs(x), 1) == -1
	yIn := wind.Compare(math.Abs(y), 1) == -1
	if !xIn && !yIn {
		// Both edges outside the profile, but the bin might still span it.
		if !(x >= 1 && y <= -1) {
			return 0, integrate.Success
		}
	}
	x, y = math.Min(x, 1), math.Max(y, -1)

	xKink, xOcc := fi.lx.XKink(), fi.lx.XOcc()
	switch {
	case y < xKink && xKink < x:
		return fi.sum(y, xKink, x)
	case y < xOcc && xOcc < x:
		return fi.sum(y, xOcc, x)
	}
	return fi.sum(y, x)
}

// Total integrates Lx over the entire profile.
func (fi *FluxIntegral) Total() (float64, integrate.Status) {
	return fi.sum(-1, fi.lx.XKink(), fi.lx.XOcc(), 1)
}

// sum integrates Lx over each consecutive pair of edges separately.
func (fi *FluxIntegral) sum(edges ...float64) (float64, integrate.Status) {
	status := integrate.Success
	f := func(x float64) float64 {
		val, s := fi.lx.Lx(x)
		if s != integrate.Success {
			status = s
		}
		return val
	}

	total := 0.0
	for i := 0; i < len(edges)-1; i++ {
		res := fi.integ.QAG(f, edges[i], edges[i+1])
		total += res.Value
		status = worstStatus(status, res.Status)
	}
	return total, status
}
