/*package profile computes the line profiles of X-ray emission lines formed
in a spherically symmetric, expanding stellar wind.

The central quantity is Lx(x), the power emitted by the wind at the scaled
line of sight velocity x = -v_los / v_infinity. Lx is integrated over bins
in x by FluxIntegral and evaluated on an energy grid by Model. The wind
averaged transmission used by tabulated absorption models is computed by
IntegratedLuminosity.
*/
package profile

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/helike"
	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/math/root"
	"github.com/phil-mansfield/windprof/scatter"
	"github.com/phil-mansfield/windprof/wind"
)

// Depth is an optical depth model. *depth.OpticalDepth implements it.
type Depth interface {
	Tau(p, z float64) float64
}

// Components are the physical models combined by Lx. Velocity and Tau are
// required. TauHeII is only used if the kappa ratio is positive, Ratio is
// only given for He-like lines, and a nil Scattering means the line is
// optically thin.
type Components struct {
	Velocity   *wind.Velocity
	Tau        Depth
	TauHeII    Depth
	Ratio      *helike.Ratio
	Scattering *scatter.Scattering
}

// LxConfig sets up an Lx.
type LxConfig struct {
	// Q is the power law index of the emissivity, which scales as u^Q
	// relative to the density squared.
	Q float64
	// U0 is the inverse of the radius where emission turns on.
	U0 float64
	// UMin is the inverse of the radius where emission turns off.
	UMin float64
	Beta float64
	// KappaRatio is the ratio of He+ opacity to the rest of the opacity.
	KappaRatio float64
	Type       helike.Type
}

// Lx computes the emitted power of a line at a single scaled velocity. An
// Lx isn't safe for concurrent use if SetTransparent or SetType are called.
type Lx struct {
	cfg         LxConfig
	c           Components
	heII        bool
	transparent bool
	integ       *integrate.Integrator
}

// NewLx creates an Lx. Invalid configuration values are replaced and
// logged.
func NewLx(cfg LxConfig, c Components) *Lx {
	lx := &Lx{cfg: cfg, c: c, integ: integrate.New()}
	lx.checkInput()
	return lx
}

func (lx *Lx) checkInput() {
	if wind.Compare(lx.cfg.Q, -1) != 1 {
		log.WithFields(log.Fields{"q": lx.cfg.Q}).
			Warn("Lx: invalid q; setting to 0.")
		lx.cfg.Q = 0
	}
	if wind.Compare(lx.cfg.U0, 0) != 1 {
		log.WithFields(log.Fields{"U0": lx.cfg.U0}).
			Warn("Lx: invalid U0; setting to 0.5.")
		lx.cfg.U0 = 0.5
	}
	if wind.Compare(lx.cfg.Beta, 0) == -1 {
		log.WithFields(log.Fields{"beta": lx.cfg.Beta}).
			Warn("Lx: invalid beta; setting to 1.")
		lx.cfg.Beta = 1
	}

	lx.heII = wind.Compare(lx.cfg.KappaRatio, 0) == 1
	if lx.heII && lx.c.TauHeII == nil {
		log.WithFields(log.Fields{"KappaRatio": lx.cfg.KappaRatio}).
			Warn("Lx: kappa ratio is set without a He+ optical depth; " +
				"ignoring it.")
		lx.heII = false
	}
}

// SetTransparent turns continuum absorption off (or back on).
func (lx *Lx) SetTransparent(transparent bool) { lx.transparent = transparent }

// SetType changes the line of the He-like triplet which is computed.
func (lx *Lx) SetType(typ helike.Type) { lx.cfg.Type = typ }

func (lx *Lx) Type() helike.Type { return lx.cfg.Type }
func (lx *Lx) Config() LxConfig  { return lx.cfg }

// XKink is the velocity where the blue edge of the emitting region starts
// to cut into the profile.
func (lx *Lx) XKink() float64 {
	return -math.Pow(1-lx.cfg.U0, lx.cfg.Beta)
}

// XOcc is the velocity above which the stellar disk occults part of the
// emitting region.
func (lx *Lx) XOcc() float64 {
	u0 := lx.cfg.U0
	return lx.c.Velocity.W(u0) * math.Sqrt(1-u0*u0)
}

// Lx returns the emitted power at x. It is 0 for |x| >= 1. The status of
// the last non-successful integration is returned along with the value.
func (lx *Lx) Lx(x float64) (float64, integrate.Status) {
	if wind.Compare(math.Abs(x), 1) != -1 {
		return 0, integrate.Success
	}

	ux := math.Min(1-math.Pow(math.Abs(x), 1/lx.cfg.Beta), lx.cfg.U0)
	if wind.Compare(x, lx.XOcc()) != -1 {
		res := UxRoot(lx.c.Velocity, x)
		if res.Status != root.Success {
			log.WithFields(log.Fields{
				"x": x, "root": res.Root, "status": res.Status,
			}).Warn("Lx: occultation root finder failed.")
		}
		// Start the integral at p = 1 on the red side.
		ux = math.Min(ux, res.Root)
	}

	uMin := lx.cfg.UMin
	if wind.Compare(ux, uMin) != 1 {
		return 0, integrate.Success
	}

	f := lx.integrand(x)
	if wind.Compare(uMin, 0) == 1 {
		res := lx.integ.QAGP(f, uMin, ux)
		return res.Value, res.Status
	}

	// For q < -0.5 the u -> 0 end converges poorly, so it gets its own
	// integral.
	if wind.Compare(lx.cfg.Q, -0.5) == -1 {
		hi := lx.integ.QAGP(f, ux/10, ux)
		lo := lx.integ.QAGP(f, 0, ux/10)
		return hi.Value + lo.Value, worstStatus(hi.Status, lo.Status)
	}
	res := lx.integ.QAGP(f, 0, ux)
	return res.Value, res.Status
}

// integrand returns the emission from the shell at u which lies on the
// constant velocity surface of x.
func (lx *Lx) integrand(x float64) integrate.Func {
	return func(u float64) float64 {
		if u == 0 {
			return lx.integrand0()
		}

		w := lx.c.Velocity.W(u)
		mu := -x / w
		p := math.Sqrt(math.Max(0, 1-mu*mu)) / u
		z := mu / u
		if wind.IsOcculted(p, z) {
			return 0
		}

		transmission := 1.0
		if !lx.transparent {
			tau := lx.c.Tau.Tau(p, z)
			if lx.heII {
				tau += lx.cfg.KappaRatio * lx.c.TauHeII.Tau(p, z)
			}
			transmission = math.Exp(-tau)
		}

		heLike, escape := 1.0, 1.0
		if lx.c.Ratio != nil && lx.cfg.Type != helike.Resonance {
			heLike = lx.c.Ratio.Factor(u, lx.cfg.Type)
		} else if lx.c.Scattering != nil {
			escape = lx.c.Scattering.EscapeProbability(u, mu)
		}

		return math.Pow(u, lx.cfg.Q) / (w * w * w) *
			transmission * heLike * escape
	}
}

// integrand0 is the integrand at u = 0, where tau = 0 and w = 1.
func (lx *Lx) integrand0() float64 {
	switch wind.Compare(lx.cfg.Q, 0) {
	case 1:
		return 0
	case 0:
		return 1
	}
	log.WithFields(log.Fields{"q": lx.cfg.Q}).
		Error("Lx: integrand evaluated at u = 0 with q < 0.")
	return 0
}

// occultationP is the impact parameter used to find the edge of the
// occulted region. It is slightly larger than 1 so that the integrand is
// never evaluated inside the occulted region.
const occultationP = 1 + 1e-5

// UxRoot finds the inverse radius where the constant velocity surface of
// x > 0 passes behind the stellar disk.
func UxRoot(vel *wind.Velocity, x float64) root.Result {
	beta := vel.Beta()
	x2, p2 := x*x, occultationP*occultationP

	fdf := func(u float64) (f, df float64) {
		w := vel.W(u)
		w2, u2 := w*w, u*u
		f = w2*(1-p2*u2) - x2
		df = -2 * w2 * (beta + p2*u - (1+beta)*u2*p2) / (1 - u)
		return f, df
	}

	guess := 1 - math.Pow(math.Abs(x), 1/beta)
	return root.Newton(fdf, guess, root.RelErr(1e-3), root.AbsErr(0))
}

func worstStatus(statuses ...integrate.Status) integrate.Status {
	for _, s := range statuses {
		if s != integrate.Success {
			return s
		}
	}
	return integrate.Success
}
