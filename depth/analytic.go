package depth

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/math/series"
	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/wind"
)

const (
	// tangentThreshold is the value of sqrt|1 - p^2| / mu below which the
	// smooth optical depth is found by series expansion.
	tangentThreshold = 1e-4
	// isotropicThreshold is the value of zh / z below which the isotropic
	// stretch term is found by series expansion.
	isotropicThreshold = 1e-4
)

// analytic evaluates closed form optical depths for a beta = 1 wind. All
// forms are in units of TauStar.
type analytic struct {
	law       porosity.Law
	expansion bool
	tauClump0 float64
	// form is chosen in setTauClump0 so that Tau doesn't need to branch on
	// the configuration.
	form func(p, z float64) float64
}

func newAnalytic(law porosity.Law, expansion bool) *analytic {
	a := &analytic{law: law, expansion: expansion}
	a.setTauClump0(0)
	return a
}

func (a *analytic) setTauClump0(tauClump0 float64) {
	a.tauClump0 = tauClump0

	switch {
	case a.law == porosity.None || wind.Compare(tauClump0, 0) != 1:
		a.form = smooth
	case a.law.Anisotropic():
		a.form = a.anisotropic
	case a.expansion:
		switch wind.Compare(tauClump0, 1) {
		case 1:
			a.form = a.expansionG1
		case 0:
			a.form = expansion1
		default:
			a.form = a.expansionL1
		}
	default:
		a.form = a.isotropic
	}
}

func (a *analytic) tau(p, z float64) float64 { return a.form(p, z) }

//////////////////
// Smooth winds //
//////////////////

// smooth is the optical depth of an unclumped wind.
func smooth(p, z float64) float64 {
	mu := wind.MuPZ(p, z)
	zStar := math.Sqrt(math.Abs(1 - p*p))

	if math.Abs(zStar/mu) < tangentThreshold && wind.Compare(z, 0) == 1 {
		return smoothTangent(p, z)
	} else if wind.Compare(p, 1) == 1 {
		return (math.Pi/2 + math.Atan(1/zStar) - math.Atan(z/zStar) -
			math.Atan(mu/zStar)) / zStar
	}

	r := math.Hypot(p, z)
	a := r / (r*r - 1)
	return math.Log((mu+zStar)*(z+zStar)*a/(1+zStar)) / zStar
}

// smoothTangent expands smooth in powers of 1 - p^2 for rays which almost
// graze the stellar surface, where both closed forms lose precision.
func smoothTangent(p, z float64) float64 {
	zStar2 := 1 - p*p
	if wind.Compare(math.Abs(p-1), 0.1) != -1 {
		log.WithFields(log.Fields{"p": p}).
			Warn("OpticalDepth: tangent series used far from p = 1.")
		p = 1
	}

	mu := wind.MuPZ(p, z)
	zStarTerm, zTerm, muTerm := 1.0, 1/z, 1/mu
	term := func(n int) float64 {
		if n > 0 {
			zStarTerm *= zStar2
			zTerm /= z * z
			muTerm /= mu * mu
		}
		return zStarTerm / float64(2*n+1) * (zTerm + muTerm - 1)
	}

	sum, err := series.Sum(term, series.DefaultTolerance, series.DefaultMaxTerms)
	if err != nil {
		log.WithFields(log.Fields{"p": p, "z": z}).
			Warn("OpticalDepth: " + err.Error())
	}
	return sum
}

////////////////////////
// Expansion bridging //
////////////////////////

// expansionG1 is the optical depth of a very porous wind, tauClump0 > 1.
func (a *analytic) expansionG1(p, z float64) float64 {
	s := a.tauClump0 - 1
	if wind.Compare(p, 0) == 0 {
		return math.Log1p(s/z) / s
	}

	mu := wind.MuPZ(p, z)
	switch wind.Compare(p, s) {
	case 1:
		zh := math.Sqrt(p*p - s*s)
		return (math.Pi/2 + math.Atan(-s/zh) - math.Atan(-s*mu/zh) -
			math.Atan(z/zh)) / zh
	case 0:
		return (mu-1)/(s*mu) + 1/z
	}

	zh := math.Sqrt(s*s - p*p)
	if wind.Compare(z, zh) == 0 {
		return math.Log1p(zh/s) / zh
	}

	// This is log(a*b*c) with a = (s + zh)/(s - zh),
	// b = (s*mu - zh)/(s*mu + zh) and c = (z + zh)/(z - zh), rearranged so
	// that neither z -> zh nor p -> 0 cancels catastrophically.
	r := math.Hypot(p, z)
	num := (s + zh) * (s + zh) * (z + zh) * (z + zh)
	den := r * (s*z + zh*r) * (s*mu + zh)
	return math.Log(num/den) / (2 * zh)
}

// expansion1 is the optical depth of a marginally porous wind,
// tauClump0 = 1.
func expansion1(p, z float64) float64 {
	if wind.Compare(p, 0) == 0 {
		return 1 / z
	}
	return (math.Pi/2 - math.Atan(z/p)) / p
}

// expansionL1 is the optical depth of a weakly porous wind, tauClump0 < 1.
func (a *analytic) expansionL1(p, z float64) float64 {
	s := 1 - a.tauClump0
	if wind.Compare(p, 0) == 0 {
		return math.Log1p(s/(z-s)) / s
	}

	mu := wind.MuPZ(p, z)
	switch wind.Compare(p, s) {
	case 1:
		zh := math.Sqrt(p*p - s*s)
		return (math.Pi/2 + math.Atan(s/zh) - math.Atan(s*mu/zh) -
			math.Atan(z/zh)) / zh
	case 0:
		return (1-mu)/(mu*s) + 1/z
	}

	// log(a*b*c) with a = (s - zh)/(s + zh), b = (s*mu + zh)/(s*mu - zh)
	// and c = (z + zh)/(z - zh). r > 1 > s, so z > zh.
	zh := math.Sqrt(s*s - p*p)
	r := math.Hypot(p, z)
	zMinus := (r*r - s*s) / (z + zh)
	num := (s*mu + zh) * r * (s*z + zh*r)
	den := (s + zh) * (s + zh) * zMinus * zMinus
	return math.Log(num/den) / (2 * zh)
}

//////////////////////
// Stretch bridging //
//////////////////////

// isotropic is the optical depth of a wind with isotropic clumps and a
// Rosseland bridging law.
func (a *analytic) isotropic(p, z float64) float64 {
	return (smooth(p, z) + a.isotropic1(p, z)) / (1 + a.tauClump0)
}

func (a *analytic) isotropic1(p, z float64) float64 {
	s2 := a.tauClump0
	s := math.Sqrt(s2)
	zh := math.Hypot(p, s)
	r2 := p*p + z*z
	mu := wind.MuPZ(p, z)

	var first float64
	if wind.Compare(z, 0) == 1 && zh/z < isotropicThreshold {
		first = s2 / z * atanSeries(zh/z)
	} else {
		first = s2 / zh * (math.Pi/2 - math.Atan(z/zh))
	}

	var y float64
	if wind.Compare(p, s) == -1 {
		y = 1 / math.Hypot(1, p/s)
	} else {
		y = s / zh
	}
	return first + y*math.Atanh(zh*s/(s2+r2*(1+mu)))
}

// atanSeries returns atan(x)/x for |x| < 1.
func atanSeries(x float64) float64 {
	x2 := x * x
	if wind.Compare(x2, 1) != -1 {
		log.WithFields(log.Fields{"x": x}).
			Warn("OpticalDepth: isotropic series argument too large.")
		x2 = 0
	}

	xTerm := 1.0
	term := func(n int) float64 {
		if n > 0 {
			xTerm *= -x2
		}
		return xTerm / float64(2*n+1)
	}

	sum, err := series.Sum(term, series.DefaultTolerance, series.DefaultMaxTerms)
	if err != nil {
		log.WithFields(log.Fields{"x": x}).Warn("OpticalDepth: " + err.Error())
	}
	return sum
}

// anisotropic is the optical depth of a wind with flattened clumps and a
// step function bridging law. Below the height z1 the clumps are optically
// thick.
func (a *analytic) anisotropic(p, z float64) float64 {
	tc := a.tauClump0
	r1Sqr := (p*p + math.Hypot(p*p, 2*tc)) / 2
	r1 := math.Sqrt(r1Sqr)
	z1 := math.Sqrt(r1Sqr - p*p)
	r := math.Hypot(p, z)

	switch {
	case wind.Compare(z, z1) == 1:
		return smooth(p, z)
	case wind.Compare(z, 0) >= 0:
		return smooth(p, z1) + anisotropic1(r, r1)/tc
	case wind.Compare(z, -z1) >= 0:
		return smooth(p, z1) + (2*anisotropic1(p, r1)-anisotropic1(r, r1))/tc
	default:
		return 2*(smooth(p, z1)+anisotropic1(p, r1)/tc) - smooth(p, math.Abs(z))
	}
}

func anisotropic1(ra, rb float64) float64 {
	return rb - ra + math.Log((rb-1)/(ra-1))
}
