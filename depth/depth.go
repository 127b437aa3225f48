/*package depth computes the continuum optical depth along a ray through a
spherically symmetric wind. Rays are labeled by the impact parameter p and
start at the line of sight coordinate z, which increases towards the
observer.

Two evaluators are available. The analytic evaluator uses closed form
solutions which only exist for a beta = 1 velocity law. The numerical
evaluator integrates the opacity along the ray for any velocity law and can
also model the partial ionization of He+ near the star.
*/
package depth

import (
	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/wind"
)

// DefaultMinimumVelocity is the velocity floor used by the numerical
// evaluator at the stellar surface.
const DefaultMinimumVelocity = 0.001

// Config sets up an OpticalDepth. Only TauStar and H can be changed after
// construction.
type Config struct {
	// TauStar is the characteristic optical depth of the wind.
	TauStar float64
	// H is the ratio of the clump optical depth to TauStar.
	H    float64
	Beta float64

	Numerical bool
	// Porosity is the bridging law for clumped winds. The analytic
	// evaluator uses the Rosseland form for isotropic clumps and a step
	// function for anisotropic clumps regardless of the law given here.
	Porosity porosity.Law
	// Expansion selects expansion bridging, where the clump optical depth
	// scales as u / w(u), instead of the default stretch bridging, where it
	// scales as u^2. It only applies to isotropic clumps in the analytic
	// evaluator.
	Expansion bool
	// HeII turns on the suppression of He+ opacity close to the star. It is
	// ignored by the analytic evaluator.
	HeII bool

	// MinimumVelocity overrides DefaultMinimumVelocity if positive.
	MinimumVelocity float64
}

type evaluator interface {
	// tau returns the optical depth in units of TauStar at a point which
	// isn't occulted.
	tau(p, z float64) float64
	setTauClump0(tauClump0 float64)
}

var (
	_ evaluator = &analytic{}
	_ evaluator = &numerical{}
)

// OpticalDepth is the optical depth model of a single wind. It isn't safe
// to call SetParameters concurrently with anything else.
type OpticalDepth struct {
	cfg         Config
	tauStar     float64
	tauClump0   float64
	transparent bool
	eval        evaluator
}

// New creates an OpticalDepth. The evaluator, velocity law and bridging
// law are fixed for the lifetime of the returned object.
func New(cfg Config) *OpticalDepth {
	od := &OpticalDepth{cfg: cfg}

	if cfg.Numerical {
		wMin := cfg.MinimumVelocity
		if wMin <= 0 {
			wMin = DefaultMinimumVelocity
		}
		od.eval = newNumerical(
			wind.NewVelocity(cfg.Beta, wMin),
			porosity.New(0, cfg.Porosity), cfg.HeII,
		)
	} else {
		if cfg.HeII {
			log.Warn("OpticalDepth: HeII is set, but the analytic " +
				"evaluator has no He+ partial ionization.")
		}
		if wind.Compare(cfg.Beta, 1) != 0 {
			log.WithFields(log.Fields{"beta": cfg.Beta}).
				Debug("OpticalDepth: analytic evaluator assumes beta = 1.")
		}
		od.eval = newAnalytic(cfg.Porosity, cfg.Expansion)
	}

	od.SetParameters(cfg.TauStar, cfg.H)
	return od
}

// SetParameters changes the characteristic optical depth and the clump
// optical depth ratio. Negative optical depths are replaced by 0 and logged.
func (od *OpticalDepth) SetParameters(tauStar, h float64) {
	od.tauStar, od.tauClump0 = tauStar, tauStar*h
	od.transparent = false

	switch wind.Compare(od.tauStar, 0) {
	case 0:
		od.transparent = true
	case -1:
		log.WithFields(log.Fields{"TauStar": tauStar}).
			Warn("OpticalDepth: invalid TauStar; the wind will be transparent.")
		od.tauStar, od.transparent = 0, true
	}

	if wind.Compare(od.tauClump0, 0) == -1 {
		log.WithFields(log.Fields{"TauClump0": od.tauClump0}).
			Warn("OpticalDepth: invalid clump optical depth; the wind " +
				"will be smooth.")
		od.tauClump0 = 0
	}

	od.eval.setTauClump0(od.tauClump0)
}

// Tau returns the optical depth from (p, z) to the observer. It returns
// wind.LargeOpticalDepth if the point is occulted or p is negative.
func (od *OpticalDepth) Tau(p, z float64) float64 {
	if wind.BadCoordinates(p, z) {
		return wind.LargeOpticalDepth
	} else if od.transparent {
		return 0
	}
	return od.tauStar * od.eval.tau(p, z)
}

func (od *OpticalDepth) TauStar() float64   { return od.tauStar }
func (od *OpticalDepth) TauClump0() float64 { return od.tauClump0 }
func (od *OpticalDepth) Transparent() bool  { return od.transparent }

// Config returns the configuration od was created with.
func (od *OpticalDepth) Config() Config { return od.cfg }
