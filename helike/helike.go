/*package helike models the branching of He-like triplet emission between the
intercombination and forbidden lines, which depends on the strength of the
photospheric UV field and, optionally, the density at the emitting radius.
*/
package helike

import (
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/wind"
)

// Type is a line of the He-like triplet.
type Type int

const (
	// Resonance is the w line.
	Resonance Type = iota
	// IntercombinationX is the x line.
	IntercombinationX
	// IntercombinationY is the y line.
	IntercombinationY
	// Forbidden is the z line.
	Forbidden
)

func (typ Type) String() string {
	switch typ {
	case Resonance:
		return "w"
	case IntercombinationX:
		return "x"
	case IntercombinationY:
		return "y"
	case Forbidden:
		return "z"
	}
	return "?"
}

// ParseType converts a line name (w, x, y, z, r, i, f, resonance,
// intercombination or forbidden) into a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "r", "resonance":
		return Resonance, nil
	case "x":
		return IntercombinationX, nil
	case "y", "i", "intercombination":
		return IntercombinationY, nil
	case "z", "f", "forbidden":
		return Forbidden, nil
	}
	return Resonance, fmt.Errorf("'%s' is not a He-like line name.", s)
}

// Intercombination returns true for the x and y lines.
func (typ Type) Intercombination() bool {
	return typ == IntercombinationX || typ == IntercombinationY
}

// Ratio is the ratio R = f / i as a function of radius.
type Ratio struct {
	r0, p float64

	n0  float64
	vel *wind.Velocity
}

// New creates a Ratio with zero density ratio r0 and photoexcitation
// parameter p = phi_* / phi_c. A negative r0 is replaced by 1 and a negative
// p is replaced by 0. Both replacements are logged.
func New(r0, p float64) *Ratio {
	ratio := &Ratio{}
	ratio.SetParameters(r0, p)
	return ratio
}

// SetParameters changes r0 and p.
func (ratio *Ratio) SetParameters(r0, p float64) {
	ratio.r0, ratio.p = r0, p
	if wind.Compare(ratio.r0, 0) == -1 {
		log.WithFields(log.Fields{"R0": r0}).
			Warn("HeLikeRatio: invalid R0; setting to 1.")
		ratio.r0 = 1
	}
	if wind.Compare(ratio.p, 0) == -1 {
		log.WithFields(log.Fields{"P": p}).
			Warn("HeLikeRatio: invalid P; setting to 0.")
		ratio.p = 0
	}
}

// SetDensity adds collisional depopulation of the forbidden line. n0 is
// the density at the stellar surface in units of the critical density, for
// a wind with velocity law vel. An n0 of 0 turns the density term off.
func (ratio *Ratio) SetDensity(n0 float64, vel *wind.Velocity) {
	if wind.Compare(n0, 0) == -1 {
		log.WithFields(log.Fields{"N0": n0}).
			Warn("HeLikeRatio: invalid N0; setting to 0.")
		n0 = 0
	}
	ratio.n0, ratio.vel = n0, vel
}

func (ratio *Ratio) R0() float64 { return ratio.r0 }
func (ratio *Ratio) P() float64  { return ratio.p }

// R returns f / i at inverse radius u.
func (ratio *Ratio) R(u float64) float64 {
	dilution := 1 - math.Sqrt(1-u*u)
	density := 0.0
	if ratio.n0 > 0 && ratio.vel != nil {
		density = ratio.n0 * u * u / ratio.vel.W(u)
	}
	return ratio.r0 / (1 + ratio.p*dilution + density)
}

// Factor returns the fraction of the intercombination plus forbidden flux
// that is emitted in the given line at inverse radius u. The resonance
// line isn't affected and always has a factor of 1.
func (ratio *Ratio) Factor(u float64, typ Type) float64 {
	switch {
	case typ == Resonance:
		return 1
	case typ.Intercombination():
		return 1 / (1 + ratio.R(u))
	case typ == Forbidden:
		r := ratio.R(u)
		return r / (1 + r)
	}
	log.WithFields(log.Fields{"type": int(typ)}).
		Error("HeLikeRatio: unknown line type.")
	return 0
}
