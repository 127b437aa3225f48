package profile

import (
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/atomic"
	"github.com/phil-mansfield/windprof/helike"
	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/wind"
)

// ModelType selects how the line wavelengths are found and how the profile
// is combined.
type ModelType int

const (
	// General is a single line at an arbitrary wavelength.
	General ModelType = iota
	// HLike is the Lyman alpha doublet of an H-like ion, treated as a
	// single line.
	HLike
	// HeLike is the r, i and f lines of a He-like triplet.
	HeLike
	// Absorption is a wind absorption trough.
	Absorption
)

var modelTypeNames = []string{"general", "hlike", "helike", "absorption"}

func (typ ModelType) String() string {
	if typ < 0 || int(typ) >= len(modelTypeNames) {
		return "unknown"
	}
	return modelTypeNames[typ]
}

// ParseModelType converts a model name to a ModelType. It accepts the
// names returned by String and the names of the equivalent XSPEC models.
func ParseModelType(s string) (ModelType, error) {
	switch strings.ToLower(s) {
	case "general", "windprof":
		return General, nil
	case "hlike", "hwind":
		return HLike, nil
	case "helike", "hewind":
		return HeLike, nil
	case "absorption", "abswind":
		return Absorption, nil
	}
	return General, fmt.Errorf("Unrecognized model type '%s'.", s)
}

// Parameters holds everything needed to compute a model line profile.
type Parameters struct {
	Type ModelType

	Q       float64
	TauStar float64
	U0      float64
	UMin    float64
	// H is the clump optical depth in units of TauStar.
	H           float64
	Tau0Star    float64
	Beta        float64
	BetaSobolev float64
	// G is (f + i) / r for He-like models.
	G          float64
	KappaRatio float64

	Numerical bool
	// Anisotropy is 0 for isotropic clumps, 1 for oblate clumps and 2 for
	// prolate clumps.
	Anisotropy     int
	Rosseland      bool
	Expansion      bool
	OpticallyThick bool

	// Wavelength is only used by General and Absorption models, in
	// Angstroms.
	Wavelength float64
	// AtomicNumber is only used by HLike and HeLike models.
	AtomicNumber int
	// Shift is a wavelength shift in mA.
	Shift float64
	// Velocity is the terminal velocity in km/s.
	Velocity float64
	// P is the photoexcitation rate in units of the f -> i decay rate.
	P float64
	// N0 is the density at the stellar surface in units of the critical
	// density of the f line.
	N0 float64

	Verbose bool
}

// DefaultParameters returns the parameters of an unabsorbed, optically
// thin O VIII line.
func DefaultParameters() Parameters {
	return Parameters{
		U0: 0.5, Beta: 1, Wavelength: 20,
		AtomicNumber: atomic.DefaultAtomicNumber,
		Velocity:     0.001 * wind.SpeedOfLight / 1e5,
	}
}

// Check replaces invalid parameters and logs each replacement.
func (p *Parameters) Check() {
	warn := func(name string, val, replacement interface{}) {
		log.WithFields(log.Fields{name: val, "replacement": replacement}).
			Warn("Parameter check: invalid value.")
	}

	if wind.Compare(p.Q, -1) != 1 {
		warn("q", p.Q, 0)
		p.Q = 0
	}
	if wind.Compare(p.TauStar, 0) == -1 {
		warn("TauStar", p.TauStar, 0)
		p.TauStar = 0
	}
	if wind.Compare(p.U0, 0.01) == -1 || wind.Compare(p.U0, 0.99) == 1 {
		warn("U0", p.U0, 0.5)
		p.U0 = 0.5
	}
	if wind.Compare(p.UMin, 0) == -1 {
		warn("Umin", p.UMin, 0)
		p.UMin = 0
	}
	if wind.Compare(p.H, 0) == -1 {
		warn("h", p.H, 0)
		p.H = 0
	}
	if wind.Compare(p.Tau0Star, 0) == -1 {
		warn("Tau0Star", p.Tau0Star, 0)
		p.Tau0Star = 0
	}
	if wind.Compare(p.Beta, 0) == -1 {
		warn("beta", p.Beta, 0)
		p.Beta = 0
	}
	if wind.Compare(p.BetaSobolev, 0) == -1 {
		warn("betaSobolev", p.BetaSobolev, 0)
		p.BetaSobolev = 0
	}
	if wind.Compare(p.KappaRatio, 0) == -1 {
		warn("kappaRatio", p.KappaRatio, 0)
		p.KappaRatio = 0
	}
	if wind.Compare(p.G, 0) == -1 {
		warn("G", p.G, 0)
		p.G = 0
	}
	if p.Anisotropy < 0 || p.Anisotropy > 2 {
		warn("anisotropy", p.Anisotropy, 0)
		p.Anisotropy = 0
	}
	if wind.Compare(p.Wavelength, 1) == -1 {
		warn("wavelength", p.Wavelength, 20)
		p.Wavelength = 20
	}
	if !atomic.Supported(p.AtomicNumber) {
		warn("Z", p.AtomicNumber, atomic.DefaultAtomicNumber)
		p.AtomicNumber = atomic.DefaultAtomicNumber
	}
	if wind.Compare(math.Abs(p.Shift), 100) == 1 {
		warn("shift", p.Shift, 0)
		p.Shift = 0
	}
	if wind.Compare(wind.KMSToC(p.Velocity), 1e-4) == -1 {
		v := 0.001 * wind.SpeedOfLight / 1e5
		warn("velocity", p.Velocity, v)
		p.Velocity = v
	}
	if wind.Compare(p.P, 0) == -1 {
		warn("P", p.P, 0)
		p.P = 0
	}
	if wind.Compare(p.N0, 0) == -1 {
		warn("N0", p.N0, 0)
		p.N0 = 0
	}
}

// HeII returns true if He+ opacity is included.
func (p *Parameters) HeII() bool {
	return wind.Compare(p.KappaRatio, 0) == 1
}

// PorosityLaw returns the bridging law described by the anisotropy and
// Rosseland flags. Prolate clumps are treated as anisotropic.
func (p *Parameters) PorosityLaw() porosity.Law {
	return porosity.NewLaw(p.Anisotropy > 0, p.Rosseland)
}

// LineWavelength returns the shifted rest wavelength of a line in
// Angstroms. typ is only used by HeLike models.
func (p *Parameters) LineWavelength(typ helike.Type) float64 {
	shift := p.Shift / 1000
	switch p.Type {
	case HLike:
		return atomic.NewHLike(p.AtomicNumber).Wavelength() + shift
	case HeLike:
		return atomic.NewHeLike(p.AtomicNumber).Wavelength(typ) + shift
	}
	return p.Wavelength + shift
}

// VelocityC returns the terminal velocity as a fraction of c.
func (p *Parameters) VelocityC() float64 { return wind.KMSToC(p.Velocity) }
