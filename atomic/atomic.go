/*package atomic contains rest wavelengths and line ratios of the H-like and
He-like ions of the abundant elements between C and Fe. Wavelengths are in
Angstroms.
*/
package atomic

import (
	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/helike"
)

// DefaultAtomicNumber is used in place of unsupported atomic numbers.
const DefaultAtomicNumber = 8

type hLikeLines struct {
	lyAlpha1, lyAlpha2 float64
}

type heLikeLines struct {
	w, x, y, z float64
	r0         float64
	xFraction  float64
}

var symbols = map[int]string{
	6: "C", 7: "N", 8: "O", 10: "Ne", 11: "Na", 12: "Mg", 13: "Al", 14: "Si",
	16: "S", 18: "Ar", 20: "Ca", 26: "Fe",
}

var hLikeTable = map[int]hLikeLines{
	6:  {33.7342, 33.7396},
	7:  {24.7792, 24.7846},
	8:  {18.9671, 18.9725},
	10: {12.1321, 12.1375},
	11: {10.0232, 10.0286},
	12: {8.41920, 8.42461},
	13: {7.17091, 7.17632},
	14: {6.18043, 6.18584},
	16: {4.72735, 4.73276},
	18: {3.73119, 3.73652},
	20: {3.01848, 3.02390},
	26: {1.77802, 1.78344},
}

// R0 values are from Porquet et al. (2001), except S, which is from
// Blumenthal, Drake & Tucker (1972). Na and Al are interpolated from Porquet
// et al. and Ar from Blumenthal et al. The x fractions are from Blumenthal
// et al., with Ar interpolated between S and Ca.
var heLikeTable = map[int]heLikeLines{
	6:  {40.2674, 40.7280, 40.7302, 41.4718, 11.0, 0},
	7:  {28.7870, 29.0819, 29.0843, 29.5346, 5.3, 0},
	8:  {21.6015, 21.8010, 21.8036, 22.0974, 3.7, 0},
	10: {13.4473, 13.5503, 13.5531, 13.6984, 3.1, 0},
	11: {11.0029, 11.0802, 11.0832, 11.1918, 2.9, 0},
	12: {9.16875, 9.22817, 9.23121, 9.31362, 2.7, 0.100},
	13: {7.75730, 7.80384, 7.80696, 7.87212, 2.5, 0.148},
	14: {6.64795, 6.68499, 6.68819, 6.73949, 2.3, 0.216},
	16: {5.03873, 5.06314, 5.06649, 5.10067, 2.04, 0.342},
	18: {3.94907, 3.96587, 3.96936, 3.99415, 1.69, 0.425},
	20: {3.17715, 3.18910, 3.19275, 3.21103, 1.33, 0.507},
	26: {1.85040, 1.85541, 1.85952, 1.86819, 1.02, 0.584},
}

// Supported returns true if there are atomic parameters for the element
// with atomic number z.
func Supported(z int) bool {
	_, ok := symbols[z]
	return ok
}

// Symbol returns the chemical symbol of a supported element.
func Symbol(z int) string { return symbols[checkAtomicNumber(z)] }

func checkAtomicNumber(z int) int {
	if !Supported(z) {
		log.WithFields(log.Fields{"Z": z}).
			Warn("AtomicParameters: atomic number not supported; setting to 8.")
		return DefaultAtomicNumber
	}
	return z
}

// HLike holds the Lyman alpha doublet of an H-like ion.
type HLike struct {
	AtomicNumber       int
	LyAlpha1, LyAlpha2 float64
}

// NewHLike returns the parameters of the H-like ion of element z.
// Unsupported elements are replaced by O and logged.
func NewHLike(z int) HLike {
	z = checkAtomicNumber(z)
	lines := hLikeTable[z]
	return HLike{z, lines.lyAlpha1, lines.lyAlpha2}
}

// Wavelength returns the statistically weighted mean of the doublet.
func (h HLike) Wavelength() float64 {
	return (2*h.LyAlpha1 + h.LyAlpha2) / 3
}

// HeLike holds the triplet of a He-like ion.
type HeLike struct {
	AtomicNumber int
	W, X, Y, Z   float64
	// R0 is the low density, weak UV field limit of f / i.
	R0 float64
	// XFraction is x / (x + y).
	XFraction float64
}

// NewHeLike returns the parameters of the He-like ion of element z.
// Unsupported elements are replaced by O and logged.
func NewHeLike(z int) HeLike {
	z = checkAtomicNumber(z)
	l := heLikeTable[z]
	return HeLike{z, l.w, l.x, l.y, l.z, l.r0, l.xFraction}
}

// Wavelength returns the wavelength of one line of the triplet.
func (h HeLike) Wavelength(typ helike.Type) float64 {
	switch typ {
	case helike.Resonance:
		return h.W
	case helike.IntercombinationX:
		return h.X
	case helike.IntercombinationY:
		return h.Y
	case helike.Forbidden:
		return h.Z
	}
	log.WithFields(log.Fields{"type": int(typ)}).
		Error("HeLikeParameters: unrecognized line type.")
	return 15.0
}

// Wavelengths returns the w, x, y and z wavelengths.
func (h HeLike) Wavelengths() []float64 {
	return []float64{h.W, h.X, h.Y, h.Z}
}
