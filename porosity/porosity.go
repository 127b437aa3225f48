/*package porosity computes the factor by which clumping reduces the effective
opacity of the wind, kappa_eff / kappa.
*/
package porosity

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/wind"
)

// Law is a bridging law which maps the clump optical depth onto an effective
// opacity reduction.
type Law int

const (
	// None turns porosity off.
	None Law = iota
	RosselandIsotropic
	RosselandAnisotropic
	ExponentialIsotropic
	ExponentialAnisotropic
)

// NewLaw returns the bridging law with the given structure.
func NewLaw(anisotropic, rosseland bool) Law {
	switch {
	case rosseland && anisotropic:
		return RosselandAnisotropic
	case rosseland:
		return RosselandIsotropic
	case anisotropic:
		return ExponentialAnisotropic
	default:
		return ExponentialIsotropic
	}
}

func (law Law) Anisotropic() bool {
	return law == RosselandAnisotropic || law == ExponentialAnisotropic
}

func (law Law) Rosseland() bool {
	return law == RosselandIsotropic || law == RosselandAnisotropic
}

func (law Law) String() string {
	switch law {
	case None:
		return "None"
	case RosselandIsotropic:
		return "RosselandIsotropic"
	case RosselandAnisotropic:
		return "RosselandAnisotropic"
	case ExponentialIsotropic:
		return "ExponentialIsotropic"
	case ExponentialAnisotropic:
		return "ExponentialAnisotropic"
	}
	return "UnknownLaw"
}

// anisotropicFloor is the value of |mu| / tauClump below which the
// anisotropic exponential law is replaced by its linear limit.
const anisotropicFloor = 1e-10

// Porosity is the porosity model of a wind with clump optical depth
// tauClump(u) = tauClump0 * u^2.
type Porosity struct {
	law       Law
	tauClump0 float64
	porous    bool
}

// New creates a porosity model. A negative tauClump0 is replaced by 0 and
// logged, which also turns the bridging law off.
func New(tauClump0 float64, law Law) *Porosity {
	por := &Porosity{law: law}
	por.SetTauClump0(tauClump0)
	return por
}

// SetTauClump0 changes the clump optical depth at the stellar surface.
func (por *Porosity) SetTauClump0(tauClump0 float64) {
	por.tauClump0 = tauClump0
	switch wind.Compare(tauClump0, 0) {
	case 1:
		por.porous = por.law != None
	case 0:
		por.porous = false
	default:
		log.WithFields(log.Fields{"TauClump0": tauClump0}).
			Warn("Porosity: invalid clump optical depth; setting to 0.")
		por.tauClump0 = 0
		por.porous = false
		por.law = None
	}
}

func (por *Porosity) TauClump0() float64 { return por.tauClump0 }
func (por *Porosity) Law() Law           { return por.law }

// Porous returns true if the factor can differ from 1.
func (por *Porosity) Porous() bool { return por.porous }

// TauClump returns the clump optical depth at inverse radius u.
func (por *Porosity) TauClump(u float64) float64 {
	return por.tauClump0 * u * u
}

// Factor returns kappa_eff / kappa at inverse radius u along a ray with
// direction cosine mu. The result is in (0, 1].
func (por *Porosity) Factor(u, mu float64) float64 {
	if !por.porous {
		return 1
	}
	mu = math.Abs(mu)
	tau := por.TauClump(u)

	switch por.law {
	case RosselandIsotropic:
		return 1 / (1 + tau)
	case RosselandAnisotropic:
		return mu / (mu + tau)
	case ExponentialAnisotropic:
		if wind.Compare(mu/tau, anisotropicFloor) != 1 {
			return mu / tau
		}
		tau /= mu
	}
	return wind.Exprel(-tau)
}
