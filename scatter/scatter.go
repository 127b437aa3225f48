/*package scatter computes the probability that resonance line photons escape
the wind in the Sobolev approximation, normalized by its angle average.
*/
package scatter

import (
	"math/cmplx"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/wind"
)

// These constants give a one point complex quadrature for the angle average
// of the escape probability (Castor, Radiation Hydrodynamics, pp. 128-129).
var (
	castorZ   = complex(-0.97515, -1.193464)
	castorRbz = complex(-0.5, 0.01193391)
)

// Scattering is the resonance scattering model of a single line.
type Scattering struct {
	tau0Star, betaSobolev float64
	thick, thin           bool
	vel                   *wind.Velocity
}

// New creates a resonance scattering model. tau0Star is the Sobolev optical
// depth scale and betaSobolev sets the ratio of radial to transverse
// velocity gradients. If thick is true the optically thick limit is used.
func New(
	tau0Star, betaSobolev float64, thick bool, vel *wind.Velocity,
) *Scattering {
	s := &Scattering{vel: vel}
	s.SetParameters(tau0Star, betaSobolev, thick)
	return s
}

// SetParameters changes the parameters of the model. Negative values are
// replaced by 0 and logged.
func (s *Scattering) SetParameters(tau0Star, betaSobolev float64, thick bool) {
	s.tau0Star, s.betaSobolev, s.thick = tau0Star, betaSobolev, thick

	if wind.Compare(s.tau0Star, 0) == -1 {
		log.WithFields(log.Fields{"Tau0Star": tau0Star}).
			Warn("ResonanceScattering: invalid Tau0Star; setting to 0.")
		s.tau0Star = 0
	}
	if wind.Compare(s.betaSobolev, 0) == -1 {
		log.WithFields(log.Fields{"BetaSobolev": betaSobolev}).
			Warn("ResonanceScattering: invalid BetaSobolev; setting to 0.")
		s.betaSobolev = 0
	}
	s.thin = wind.Compare(s.tau0Star, 0) == 0
}

// Thin returns true if photons always escape, which is the case whenever
// Tau0Star is 0, even in the optically thick limit.
func (s *Scattering) Thin() bool { return s.thin }

// Sigma returns the anisotropy of the velocity gradient at u.
func (s *Scattering) Sigma(u float64) float64 {
	return s.betaSobolev*u/(1-u) - 1
}

// EscapeProbability returns p(u, mu) / <p>(u), the escape probability along
// a direction with cosine mu relative to its average over directions. It is
// 1 for an optically thin line and 0 when the Sobolev optical depth along
// mu is infinite.
func (s *Scattering) EscapeProbability(u, mu float64) float64 {
	if s.thin {
		return 1
	}

	sigma := s.Sigma(u)
	angle := 1 + sigma*mu*mu
	if s.thick {
		return angle / (1 + sigma/3)
	}

	w := s.vel.W(u)
	tau0 := s.tau0Star * u / (w * w)
	if wind.Compare(angle, 0) != 1 {
		return 0
	}

	p := wind.Exprel(-tau0 / angle)
	return p / AverageEscapeProbability(tau0, sigma)
}

// AverageEscapeProbability approximates the average of
// (1 - exp(-tau)) / tau over directions, where tau = tau0 / (1 + sigma mu^2).
func AverageEscapeProbability(tau0, sigma float64) float64 {
	t0 := complex(tau0, 0)
	if wind.Compare(sigma, 0) == 0 {
		return 2 * real(castorRbz/(t0/castorZ-1))
	}

	sig := complex(sigma, 0)
	t := cmplx.Sqrt((t0/castorZ - 1) / sig)
	tlog := t0 * cmplx.Log((t-1)/(t+1))
	return -2 * real(castorRbz*(tlog/(t*castorZ*2*sig)+1))
}

// ThickLimit returns true if the optically thick limit is used.
func (s *Scattering) ThickLimit() bool { return s.thick }

func (s *Scattering) Tau0Star() float64 { return s.tau0Star }
