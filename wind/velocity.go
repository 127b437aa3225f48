package wind

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Velocity is the beta velocity law
//
//     w(u) = wMin + (1 - wMin) * (1 - u)^beta
//
// where u = 1/r. w(0) is 1 and w(1) is wMin.
type Velocity struct {
	beta, wMin float64
}

// NewVelocity creates a velocity law. A negative beta is replaced by 1 and
// a negative minimum velocity is replaced by 0. Both replacements are logged.
func NewVelocity(beta, wMin float64) *Velocity {
	v := &Velocity{beta: beta, wMin: wMin}
	v.checkInput()
	return v
}

func (v *Velocity) checkInput() {
	if Compare(v.beta, 0) == -1 {
		log.WithFields(log.Fields{"beta": v.beta}).
			Warn("Velocity: invalid beta; setting to 1.")
		v.beta = 1
	}
	if Compare(v.wMin, 0) == -1 {
		log.WithFields(log.Fields{"wMin": v.wMin}).
			Warn("Velocity: invalid minimum velocity; setting to 0.")
		v.wMin = 0
	}
}

// SetMinimumVelocity changes the velocity floor at the stellar surface.
func (v *Velocity) SetMinimumVelocity(wMin float64) {
	v.wMin = wMin
	v.checkInput()
}

// W returns the velocity at inverse radius u. u is not range checked.
func (v *Velocity) W(u float64) float64 {
	return v.wMin + (1-v.wMin)*math.Pow(1-u, v.beta)
}

func (v *Velocity) Beta() float64            { return v.beta }
func (v *Velocity) MinimumVelocity() float64 { return v.wMin }
