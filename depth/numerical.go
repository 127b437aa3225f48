package depth

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/wind"
)

const (
	// mu0 is the direction cosine above which the optical depth is
	// integrated over u instead of z. The u integral converges faster far
	// from the star but does poorly for small mu.
	mu0 = 0.6
	// largeP is the impact parameter above which the wind is treated as
	// having a constant velocity along the ray.
	largeP = 1e4

	// Butterworth filter used to turn He+ opacity off close to the star.
	butterworthOrder = 3
	butterworthU     = 0.2
)

// numerical integrates the opacity along a ray. Results are in units of
// TauStar.
type numerical struct {
	vel         *wind.Velocity
	por         *porosity.Porosity
	heII        bool
	transparent bool
	integ       *integrate.Integrator
}

func newNumerical(
	vel *wind.Velocity, por *porosity.Porosity, heII bool,
) *numerical {
	n := &numerical{
		vel: vel, por: por, heII: heII, integ: integrate.New(),
	}
	if wind.Compare(vel.MinimumVelocity(), 0) != 1 {
		log.WithFields(log.Fields{"wMin": vel.MinimumVelocity()}).
			Warn("OpticalDepth: velocity floor not set; the wind will be " +
				"transparent.")
		n.transparent = true
	}
	return n
}

func (n *numerical) setTauClump0(tauClump0 float64) {
	n.por.SetTauClump0(tauClump0)
}

// heIIFilter approximates the fraction of He which is singly ionized.
func (n *numerical) heIIFilter(u float64) float64 {
	if !n.heII {
		return 1
	}
	u2n := math.Pow(u, 2*butterworthOrder)
	ub2n := math.Pow(butterworthU, 2*butterworthOrder)
	return 1 - math.Sqrt(u2n/(u2n+ub2n))
}

func (n *numerical) tau(p, z float64) float64 {
	if n.transparent {
		return 0
	}

	// The two halves of the ray are mirror images.
	if wind.Compare(z, 0) == -1 {
		return 2*n.tau(p, 0) - n.tau(p, math.Abs(z))
	}

	var res integrate.Result
	if wind.Compare(wind.MuPZ(p, z), mu0) == 1 {
		res = n.integ.QAG(n.uIntegrand(p), 0, wind.UPZ(p, z))
	} else if wind.Compare(p, largeP) == 1 {
		return (math.Pi/2 + math.Atan(z/p)) / p
	} else {
		res = n.integ.QAGIU(n.zIntegrand(p), z)
	}

	if res.Status != integrate.Success {
		log.WithFields(log.Fields{
			"p": p, "z": z, "status": res.Status, "abserr": res.AbsErr,
		}).Warn("OpticalDepth: integration did not converge.")
	}
	return res.Value
}

// zIntegrand is the opacity per unit z along the ray with impact
// parameter p.
func (n *numerical) zIntegrand(p float64) integrate.Func {
	return func(z float64) float64 {
		u := wind.UPZ(p, z)
		mu := z * u
		f := n.heIIFilter(u) * u * u / n.vel.W(u)
		if !n.por.Porous() {
			return f
		}
		return f * n.por.Factor(u, mu)
	}
}

// uIntegrand is the opacity per unit u along the ray with impact
// parameter p. It's only valid on the near side of the star.
func (n *numerical) uIntegrand(p float64) integrate.Func {
	return func(u float64) float64 {
		nu := p * u
		mu := math.Sqrt(1 - nu*nu)
		f := n.heIIFilter(u) / (n.vel.W(u) * mu)
		if !n.por.Porous() {
			return f
		}
		return f * n.por.Factor(u, mu)
	}
}
