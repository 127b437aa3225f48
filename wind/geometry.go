package wind

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// LargeOpticalDepth is returned by optical depth calculations for rays which
// start behind or inside the star.
const LargeOpticalDepth = 1e6

// MuPZ returns the cosine of the angle between the radius vector and the line
// of sight at the point (p, z).
func MuPZ(p, z float64) float64 {
	return z / math.Hypot(z, p)
}

// UPZ returns the inverse radius of the point (p, z).
func UPZ(p, z float64) float64 {
	return 1 / math.Hypot(p, z)
}

// IsOcculted returns true if the point (p, z) can't be seen by the observer
// because the star is in the way (or because the point is inside the star).
func IsOcculted(p, z float64) bool {
	r := math.Hypot(p, z)
	impact := Compare(p, 1) != 1
	behind := Compare(z, 0) != 1
	inside := Compare(r, 1) != 1
	return impact && (behind || inside)
}

// BadCoordinates returns true if (p, z) is occulted or if p is negative.
func BadCoordinates(p, z float64) bool {
	if Compare(p, 0) == -1 {
		log.WithFields(log.Fields{"p": p}).
			Debug("Negative impact parameter not supported.")
		return true
	}
	return IsOcculted(p, z)
}
