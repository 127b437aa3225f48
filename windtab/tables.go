package windtab

import (
	"fmt"

	"github.com/phil-mansfield/windprof/math/interpolate"
)

// KappaTable is the continuum opacity of the wind as a function of
// wavelength.
type KappaTable interface {
	Kappa(lambda float64) float64
}

// TransmissionTable is the wind averaged transmission as a function of
// TauStar.
type TransmissionTable interface {
	Transmission(tauStar float64) float64
}

// TransmissionTable2D is the wind averaged transmission as a function of
// TauStar and the ratio of He+ opacity to the rest of the opacity.
type TransmissionTable2D interface {
	Transmission(tauStar, kappaRatio float64) float64
}

var (
	_ KappaTable          = &Kappa{}
	_ TransmissionTable   = &Transmission{}
	_ TransmissionTable2D = &Transmission2D{}
)

// curve is a tabulated function which is clamped to its end values outside
// of the table.
type curve struct {
	in     interpolate.Interpolator
	xs, ys []float64
}

func newCurve(name string, xs, ys []float64, spline bool) (*curve, error) {
	if err := checkTable(name, xs); err != nil {
		return nil, err
	} else if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"The %s table has %d abscissas but %d values.",
			name, len(xs), len(ys),
		)
	}

	c := &curve{xs: xs, ys: ys}
	if spline {
		c.in = interpolate.NewSpline(xs, ys)
	} else {
		c.in = interpolate.NewLinear(xs, ys)
	}
	return c, nil
}

func (c *curve) eval(x float64) float64 {
	lo, hi := c.in.Range()
	return c.in.Eval(clamp(x, lo, hi))
}

// checkTable returns an error if xs can't be used as the abscissas of an
// interpolation table.
func checkTable(name string, xs []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf(
			"The %s table has %d rows, but at least 2 are needed.",
			name, len(xs),
		)
	}
	incr := xs[1] > xs[0]
	for i := 0; i < len(xs)-1; i++ {
		if (xs[i+1] > xs[i]) != incr || xs[i+1] == xs[i] || xs[i] != xs[i] {
			return fmt.Errorf(
				"The %s table is not strictly monotonic at row %d.", name, i+1,
			)
		}
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}
	return x
}

// Kappa is a tabulated opacity in cm^2/g.
type Kappa struct {
	c  *curve
	mu float64
}

// NewKappa creates an opacity table from the wavelengths, in Angstroms, and
// opacities of each row.
func NewKappa(lambda, kappa []float64) (*Kappa, error) {
	c, err := newCurve("kappa", lambda, kappa, false)
	if err != nil {
		return nil, err
	}
	return &Kappa{c, 1}, nil
}

func (k *Kappa) Kappa(lambda float64) float64 { return k.c.eval(lambda) }

// SetMu sets the mean mass per hydrogen atom, in proton masses, of the
// material the opacities were computed for. It is 1 by default.
func (k *Kappa) SetMu(mu float64) { k.mu = mu }

// Mu returns the mean mass per hydrogen atom in proton masses.
func (k *Kappa) Mu() float64 { return k.mu }

// Transmission is a tabulated transmission curve.
type Transmission struct {
	c *curve
}

// NewTransmission creates a transmission table. If spline is true, the
// table is interpolated with a cubic spline instead of linearly.
func NewTransmission(tauStar, trans []float64, spline bool) (*Transmission, error) {
	c, err := newCurve("transmission", tauStar, trans, spline)
	if err != nil {
		return nil, err
	}
	return &Transmission{c}, nil
}

func (t *Transmission) Transmission(tauStar float64) float64 {
	return t.c.eval(tauStar)
}

// TauStar returns the TauStar values of the table rows.
func (t *Transmission) TauStar() []float64 { return t.c.xs }

// Transmission2D is a tabulated transmission surface.
type Transmission2D struct {
	bi                  *interpolate.BiLinear
	tauStar, kappaRatio []float64
}

// NewTransmission2D creates a transmission table. The transmission at
// (tauStar[i], kappaRatio[j]) is trans[i*len(kappaRatio) + j].
func NewTransmission2D(
	tauStar, kappaRatio, trans []float64,
) (*Transmission2D, error) {
	if err := checkTable("TauStar", tauStar); err != nil {
		return nil, err
	} else if err := checkTable("kappa ratio", kappaRatio); err != nil {
		return nil, err
	} else if len(tauStar)*len(kappaRatio) != len(trans) {
		return nil, fmt.Errorf(
			"The 2D transmission table has %d values, but its axes have "+
				"%d and %d values.", len(trans), len(tauStar), len(kappaRatio),
		)
	}

	return &Transmission2D{
		interpolate.NewBiLinear(tauStar, kappaRatio, trans),
		tauStar, kappaRatio,
	}, nil
}

func (t *Transmission2D) Transmission(tauStar, kappaRatio float64) float64 {
	xLo, xHi, yLo, yHi := t.bi.Range()
	return t.bi.Eval(clamp(tauStar, xLo, xHi), clamp(kappaRatio, yLo, yHi))
}
