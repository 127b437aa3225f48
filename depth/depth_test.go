package depth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/wind"
)

type point struct{ p, z float64 }

// visibleGrid is a grid of points which aren't occulted and which avoid the
// band of nearly tangent rays.
func visibleGrid() []point {
	ps := []float64{0.2, 0.5, 0.8, 1.5, 2, 5, 20}
	zs := []float64{-3, -1, 0, 0.5, 1, 3, 10}

	pts := []point{}
	for _, p := range ps {
		for _, z := range zs {
			if !wind.IsOcculted(p, z) {
				pts = append(pts, point{p, z})
			}
		}
	}
	return pts
}

func relDiff(x, y float64) float64 {
	return math.Abs(x-y) / math.Abs(y)
}

func allConfigs() []Config {
	return []Config{
		{TauStar: 2, Beta: 1},
		{TauStar: 2, H: 0.5, Beta: 1, Porosity: porosity.RosselandIsotropic},
		{TauStar: 2, H: 0.5, Beta: 1, Porosity: porosity.RosselandIsotropic,
			Expansion: true},
		{TauStar: 2, H: 0.5, Beta: 1, Porosity: porosity.RosselandAnisotropic},
		{TauStar: 2, Beta: 2, Numerical: true},
		{TauStar: 2, H: 1, Beta: 1, Numerical: true,
			Porosity: porosity.ExponentialAnisotropic},
		{TauStar: 2, Beta: 1, Numerical: true, HeII: true},
	}
}

func TestOcculted(t *testing.T) {
	occulted := []point{
		{0, 0}, {0, -1}, {0.5, 0.5}, {0.5, -3}, {1, 0}, {1, -1e-3},
		{0.999, -10}, {0, 1}, {0.6, 0.8},
	}
	visible := []point{
		{0, 1.001}, {0.5, 1}, {1.001, 0}, {1.001, -10}, {3, -3}, {1, 1e-3},
	}

	for i, cfg := range allConfigs() {
		od := New(cfg)
		for _, pt := range occulted {
			if tau := od.Tau(pt.p, pt.z); tau != wind.LargeOpticalDepth {
				t.Errorf("%d) Tau(%g, %g) = %g, expected sentinel.",
					i+1, pt.p, pt.z, tau)
			}
		}
		for _, pt := range visible {
			tau := od.Tau(pt.p, pt.z)
			if tau == wind.LargeOpticalDepth || math.IsNaN(tau) ||
				math.IsInf(tau, 0) || tau < 0 {
				t.Errorf("%d) Tau(%g, %g) = %g, expected a finite value.",
					i+1, pt.p, pt.z, tau)
			}
		}

		assert.Equal(t, wind.LargeOpticalDepth, od.Tau(-1, 3))
	}
}

func TestTransparent(t *testing.T) {
	for i, cfg := range allConfigs() {
		cfg.TauStar = 0
		od := New(cfg)
		for _, pt := range visibleGrid() {
			if tau := od.Tau(pt.p, pt.z); tau != 0 {
				t.Errorf("%d) Tau(%g, %g) = %g for a transparent wind.",
					i+1, pt.p, pt.z, tau)
			}
		}
		assert.True(t, od.Transparent())
	}

	od := New(Config{TauStar: -3, H: 1, Beta: 1})
	assert.True(t, od.Transparent())
	assert.Equal(t, 0.0, od.TauStar())
	assert.Equal(t, 0.0, od.Tau(2, 2))

	od = New(Config{TauStar: 3, H: -1, Beta: 1,
		Porosity: porosity.RosselandIsotropic})
	assert.Equal(t, 0.0, od.TauClump0())
	assert.InDelta(t, 3*smooth(2, 2), od.Tau(2, 2), 1e-14)
}

func TestAnalyticMatchesNumerical(t *testing.T) {
	table := []struct {
		law porosity.Law
		h   float64
	}{
		{porosity.None, 0},
		{porosity.RosselandIsotropic, 0.25},
		{porosity.RosselandIsotropic, 1},
		{porosity.RosselandIsotropic, 2.5},
	}

	for i, test := range table {
		an := New(Config{TauStar: 2, H: test.h, Beta: 1, Porosity: test.law})
		num := New(Config{
			TauStar: 2, H: test.h, Beta: 1, Porosity: test.law,
			Numerical: true, MinimumVelocity: 1e-10,
		})

		for _, pt := range visibleGrid() {
			tAn, tNum := an.Tau(pt.p, pt.z), num.Tau(pt.p, pt.z)
			if relDiff(tAn, tNum) > 1e-6 {
				t.Errorf("%d) analytic Tau(%g, %g) = %g, numerical = %g.",
					i+1, pt.p, pt.z, tAn, tNum)
			}
		}
	}
}

// zIntegral integrates the beta = 1 opacity with porosity factor por from z
// to infinity.
func zIntegral(p, z float64, por func(u float64) float64) float64 {
	in := integrate.New(integrate.EpsRel(1e-10))
	f := func(z float64) float64 {
		u := wind.UPZ(p, z)
		return u * u * por(u) / (1 - u)
	}
	if z < 0 {
		return 2*in.QAGIU(f, 0).Value - in.QAGIU(f, -z).Value
	}
	return in.QAGIU(f, z).Value
}

func TestExpansionIntegral(t *testing.T) {
	pts := append(visibleGrid(), point{0, 2}, point{0, 1.5})

	for i, h := range []float64{0.25, 0.5, 1, 2.5} {
		tc := 2 * h
		od := New(Config{TauStar: 2, H: h, Beta: 1,
			Porosity: porosity.RosselandIsotropic, Expansion: true})
		por := func(u float64) float64 { return 1 / (1 + tc*u/(1-u)) }

		for _, pt := range pts {
			tau := od.Tau(pt.p, pt.z) / 2
			exp := zIntegral(pt.p, pt.z, por)
			if relDiff(tau, exp) > 1e-8 {
				t.Errorf("%d) Tau(%g, %g) = %g at tauClump0 = %g, "+
					"expected %g.", i+1, pt.p, pt.z, tau, tc, exp)
			}
		}
	}
}

// checkContinuity checks that f is continuous at x0 from both sides,
// allowing f to change by slope * dx.
func checkContinuity(
	t *testing.T, name string, f func(x float64) float64,
	x0, slope float64,
) {
	f0 := f(x0)
	for _, d := range []float64{1e-12, 1e-10, 1e-8, 1e-6} {
		dx := d * math.Max(1, math.Abs(x0))
		for _, x := range []float64{x0 - dx, x0 + dx} {
			fx := f(x)
			if math.Abs(fx-f0) > slope*dx+1e-9*math.Abs(f0) {
				t.Errorf("%s: f(%.17g) = %.17g, f(%.17g) = %.17g.",
					name, x, fx, x0, f0)
			}
		}
	}
}

func TestSmoothContinuity(t *testing.T) {
	// p = 1 and the tangent series.
	for _, z := range []float64{0.5, 1, 3} {
		checkContinuity(t, "smooth p = 1",
			func(p float64) float64 { return smooth(p, z) }, 1, 100)
	}

	// The switch onto the tangent series happens at a finite distance
	// from p = 1.
	for _, z := range []float64{0.5, 1, 3} {
		mu := wind.MuPZ(1, z)
		dp := (tangentThreshold * mu) * (tangentThreshold * mu) / 2
		checkContinuity(t, "smooth tangent threshold",
			func(p float64) float64 { return smooth(p, z) }, 1+dp, 100)
		checkContinuity(t, "smooth tangent threshold",
			func(p float64) float64 { return smooth(p, z) }, 1-dp, 100)
	}
}

func TestExpansionContinuity(t *testing.T) {
	pts := []point{{0.5, 1}, {1.5, 0.5}, {1.5, -1}, {0, 2}, {3, 3}}

	// tauClump0 = 1.
	for _, pt := range pts {
		f := func(tc float64) float64 {
			a := newAnalytic(porosity.RosselandIsotropic, true)
			a.setTauClump0(tc)
			return a.tau(pt.p, pt.z)
		}
		checkContinuity(t, "expansion tauClump0 = 1", f, 1, 100)
	}

	// p = s.
	for _, tc := range []float64{0.3, 2.5, 4} {
		a := newAnalytic(porosity.RosselandIsotropic, true)
		a.setTauClump0(tc)
		s := math.Abs(tc - 1)
		for _, z := range []float64{0.5, 1, 2, 4} {
			if wind.IsOcculted(s, z) {
				continue
			}
			f := func(p float64) float64 { return a.tau(p, z) }
			checkContinuity(t, "expansion p = s", f, s, 100)
		}
	}

	// z = zh.
	for _, test := range []struct{ tc, p float64 }{{4, 0.5}, {4, 2}, {5, 1.5}} {
		a := newAnalytic(porosity.RosselandIsotropic, true)
		a.setTauClump0(test.tc)
		s := test.tc - 1
		zh := math.Sqrt(s*s - test.p*test.p)
		f := func(z float64) float64 { return a.tau(test.p, z) }
		checkContinuity(t, "expansion z = zh", f, zh, 100)
	}
}

func TestStretchContinuity(t *testing.T) {
	for _, tc := range []float64{0.5, 3} {
		a := newAnalytic(porosity.RosselandAnisotropic, false)
		a.setTauClump0(tc)

		for _, p := range []float64{1.5, 3} {
			r1Sqr := (p*p + math.Hypot(p*p, 2*tc)) / 2
			z1 := math.Sqrt(r1Sqr - p*p)
			f := func(z float64) float64 { return a.tau(p, z) }
			for _, z := range []float64{z1, 0, -z1} {
				checkContinuity(t, "anisotropic z boundaries", f, z, 100)
			}
		}
	}

	// The isotropic series switches on at zh / z = 1e-4.
	a := newAnalytic(porosity.RosselandIsotropic, false)
	a.setTauClump0(1e-10)
	zh := math.Hypot(1e-6, 1e-5)
	f := func(z float64) float64 { return a.isotropic1(1e-6, z) }
	checkContinuity(t, "isotropic series", f, zh/isotropicThreshold, 1e-6)
}

func TestSetParameters(t *testing.T) {
	for i, cfg := range allConfigs() {
		od := New(cfg)
		pts := visibleGrid()

		od.SetParameters(3, 0.7)
		first := make([]float64, len(pts))
		for j, pt := range pts {
			first[j] = od.Tau(pt.p, pt.z)
		}

		od.SetParameters(1, 2)
		od.SetParameters(3, 0.7)
		od.SetParameters(3, 0.7)
		for j, pt := range pts {
			if tau := od.Tau(pt.p, pt.z); tau != first[j] {
				t.Errorf("%d) Tau(%g, %g) = %g after SetParameters, "+
					"expected %g.", i+1, pt.p, pt.z, tau, first[j])
			}
		}
		assert.Equal(t, 3.0, od.TauStar())
		assert.InDelta(t, 2.1, od.TauClump0(), 1e-14)
	}
}

func TestTauStarScaling(t *testing.T) {
	od := New(Config{TauStar: 1, Beta: 1})
	tau1 := od.Tau(2, 0.5)
	od.SetParameters(10, 0)
	assert.InDelta(t, 10*tau1, od.Tau(2, 0.5), 1e-12)
}

func TestHeIIFilter(t *testing.T) {
	plain := New(Config{TauStar: 1, Beta: 1, Numerical: true})
	heII := New(Config{TauStar: 1, Beta: 1, Numerical: true, HeII: true})

	for _, pt := range visibleGrid() {
		t0, t1 := plain.Tau(pt.p, pt.z), heII.Tau(pt.p, pt.z)
		if !(t1 < t0) || t1 <= 0 {
			t.Errorf("HeII Tau(%g, %g) = %g, without filter = %g.",
				pt.p, pt.z, t1, t0)
		}
	}

	n := newNumerical(wind.NewVelocity(1, 0.001), porosity.New(0, porosity.None), true)
	assert.InDelta(t, 1-math.Sqrt(0.5), n.heIIFilter(butterworthU), 1e-14)
	assert.InDelta(t, 1.0, n.heIIFilter(0), 1e-14)
}

func TestPorosityReducesDepth(t *testing.T) {
	for i, law := range []porosity.Law{
		porosity.RosselandIsotropic, porosity.RosselandAnisotropic,
		porosity.ExponentialIsotropic, porosity.ExponentialAnisotropic,
	} {
		plain := New(Config{TauStar: 5, Beta: 1, Numerical: true})
		porous := New(Config{TauStar: 5, H: 1, Beta: 1, Numerical: true,
			Porosity: law})
		for _, pt := range visibleGrid() {
			t0, t1 := plain.Tau(pt.p, pt.z), porous.Tau(pt.p, pt.z)
			if !(t1 < t0) {
				t.Errorf("%d) %s: porous Tau(%g, %g) = %g, smooth = %g.",
					i+1, law, pt.p, pt.z, t1, t0)
			}
		}
	}
}

func BenchmarkNumericalTau(b *testing.B) {
	od := New(Config{TauStar: 1, Beta: 1, Numerical: true})
	for i := 0; i < b.N; i++ {
		od.Tau(1.5, 0.5)
	}
}

func BenchmarkAnalyticTau(b *testing.B) {
	od := New(Config{TauStar: 1, Beta: 1})
	for i := 0; i < b.N; i++ {
		od.Tau(1.5, 0.5)
	}
}
