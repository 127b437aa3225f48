package profile

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/wind"
)

// occultationHeight is the height in stellar radii below which the wind is
// treated as occulted by AngleAveragedTransmission, which keeps the average
// away from the surface where the velocity goes to zero.
const occultationHeight = 1e-2

// AngleAveragedTransmission is the fraction of the light emitted at a
// radius which escapes the wind, averaged over all directions.
type AngleAveragedTransmission struct {
	tau, tauHeII Depth
	kappaRatio   float64
	integ        *integrate.Integrator
}

// NewAngleAveragedTransmission creates an AngleAveragedTransmission.
// tauHeII may be nil, in which case there is no He+ opacity.
func NewAngleAveragedTransmission(
	tau, tauHeII Depth, kappaRatio float64, opts ...integrate.Option,
) *AngleAveragedTransmission {
	t := &AngleAveragedTransmission{
		tau: tau, tauHeII: tauHeII, integ: integrate.New(opts...),
	}
	t.SetKappaRatio(kappaRatio)
	return t
}

// SetKappaRatio changes the He+ opacity ratio. Negative values are replaced
// by 0 and logged.
func (t *AngleAveragedTransmission) SetKappaRatio(kappaRatio float64) {
	if wind.Compare(kappaRatio, 0) == -1 {
		log.WithFields(log.Fields{"KappaRatio": kappaRatio}).
			Warn("AngleAveragedTransmission: invalid kappa ratio; " +
				"setting to 0.")
		kappaRatio = 0
	}
	t.kappaRatio = kappaRatio
}

// Transmission returns the average of exp(-tau) over the directions which
// aren't blocked by the star at inverse radius u.
func (t *AngleAveragedTransmission) Transmission(
	u float64,
) (float64, integrate.Status) {
	pStar := 1 + occultationHeight
	muOcc := -math.Sqrt(math.Max(0, 1-pStar*pStar*u*u))

	f := func(mu float64) float64 {
		z := mu / u
		p := math.Sqrt(1-mu*mu) / u
		tau := t.tau.Tau(p, z)
		if t.tauHeII != nil && t.kappaRatio > 0 {
			tau += t.kappaRatio * t.tauHeII.Tau(p, z)
		}
		return math.Exp(-tau)
	}

	res := t.integ.QAG(f, muOcc, 1)
	return res.Value / 2, res.Status
}

// IntegratedLuminosity is the luminosity of the whole wind after
// absorption, in units where the unabsorbed emissivity is u^q / w^2.
type IntegratedLuminosity struct {
	q, u0, uMin     float64
	vel             *wind.Velocity
	aat             *AngleAveragedTransmission
	transparentCore bool
	integ           *integrate.Integrator
}

// NewIntegratedLuminosity creates an IntegratedLuminosity which emits
// between the inverse radii uMin and u0.
func NewIntegratedLuminosity(
	q, u0, uMin float64, vel *wind.Velocity,
	aat *AngleAveragedTransmission, opts ...integrate.Option,
) *IntegratedLuminosity {
	return &IntegratedLuminosity{
		q: q, u0: u0, uMin: uMin, vel: vel, aat: aat,
		integ: integrate.New(opts...),
	}
}

// SetTransparentCore makes every point of the wind fully visible, including
// points behind the star. This gives the intrinsic luminosity.
func (l *IntegratedLuminosity) SetTransparentCore(transparent bool) {
	l.transparentCore = transparent
}

// Luminosity integrates the transmitted emission over the wind.
func (l *IntegratedLuminosity) Luminosity() (float64, integrate.Status) {
	f := func(u float64) float64 {
		w := l.vel.W(u)
		T := 1.0
		if !l.transparentCore {
			var status integrate.Status
			T, status = l.aat.Transmission(u)
			if status != integrate.Success {
				log.WithFields(log.Fields{
					"u": u, "KappaRatio": l.aat.kappaRatio, "status": status,
				}).Warn("IntegratedLuminosity: angle averaged " +
					"transmission did not converge.")
			}
		}
		return math.Pow(u, l.q) * T / (w * w)
	}

	res := l.integ.QAG(f, l.uMin, l.u0)
	return res.Value, res.Status
}

// WindTransmission returns the fraction of the intrinsic luminosity of the
// wind which is transmitted.
func (l *IntegratedLuminosity) WindTransmission() (float64, integrate.Status) {
	core := l.transparentCore
	defer l.SetTransparentCore(core)

	l.SetTransparentCore(true)
	intrinsic, s1 := l.Luminosity()
	l.SetTransparentCore(false)
	observed, s2 := l.Luminosity()

	if intrinsic == 0 {
		return 0, worstStatus(s1, s2)
	}
	return observed / intrinsic, worstStatus(s1, s2)
}
