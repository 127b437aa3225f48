package porosity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var laws = []Law{
	RosselandIsotropic, RosselandAnisotropic,
	ExponentialIsotropic, ExponentialAnisotropic,
}

func TestFactorNotPorous(t *testing.T) {
	for i, law := range laws {
		por := New(0, law)
		for _, u := range []float64{0, 0.1, 0.5, 1} {
			for _, mu := range []float64{-1, -0.3, 0, 0.2, 1} {
				if f := por.Factor(u, mu); f != 1 {
					t.Errorf("%d) %s: Factor(%g, %g) = %g, expected 1.",
						i+1, law, u, mu, f)
				}
			}
		}
	}

	por := New(10, None)
	assert.False(t, por.Porous())
	assert.Equal(t, 1.0, por.Factor(0.5, 0.5))
}

func TestFactorMonotonic(t *testing.T) {
	tauClumps := []float64{0, 1e-6, 0.01, 0.1, 0.5, 1, 2, 10, 100, 1e4}

	for i, law := range laws {
		for _, u := range []float64{0.05, 0.3, 0.7, 1} {
			for _, mu := range []float64{-0.9, -0.1, 0.01, 0.5, 1} {
				prev := 1.0
				for _, tc := range tauClumps {
					f := New(tc, law).Factor(u, mu)
					if f > prev || f <= 0 || f > 1 {
						t.Errorf("%d) %s: Factor(%g, %g) = %g at tauClump0 = %g "+
							"(previous %g).", i+1, law, u, mu, f, tc, prev)
					}
					prev = f
				}
			}
		}
	}
}

func TestFactorValues(t *testing.T) {
	table := []struct {
		law       Law
		tc, u, mu float64
		f         float64
	}{
		{RosselandIsotropic, 4, 0.5, 0.3, 0.5},
		{RosselandAnisotropic, 4, 0.5, -0.5, 1.0 / 3},
		{ExponentialIsotropic, 4, 0.5, 0.3, 1 - math.Exp(-1)},
		{ExponentialAnisotropic, 2, 0.5, 0.5, 1 - math.Exp(-1)},
		{ExponentialAnisotropic, 1, 1, 1e-12, 1e-12},
	}

	for i, test := range table {
		f := New(test.tc, test.law).Factor(test.u, test.mu)
		if math.Abs(f-test.f) > 1e-12*test.f {
			t.Errorf("%d) %s: Factor(%g, %g) = %g, expected %g.",
				i+1, test.law, test.u, test.mu, f, test.f)
		}
	}
}

func TestNegativeTauClump(t *testing.T) {
	por := New(-1, RosselandIsotropic)
	assert.Equal(t, 0.0, por.TauClump0())
	assert.Equal(t, None, por.Law())
	assert.False(t, por.Porous())

	por = New(2, ExponentialIsotropic)
	assert.True(t, por.Porous())
	por.SetTauClump0(0)
	assert.False(t, por.Porous())
	por.SetTauClump0(2)
	assert.True(t, por.Porous())
}

func TestNewLaw(t *testing.T) {
	assert.Equal(t, RosselandAnisotropic, NewLaw(true, true))
	assert.Equal(t, RosselandIsotropic, NewLaw(false, true))
	assert.Equal(t, ExponentialAnisotropic, NewLaw(true, false))
	assert.Equal(t, ExponentialIsotropic, NewLaw(false, false))
	assert.True(t, ExponentialAnisotropic.Anisotropic())
	assert.False(t, ExponentialAnisotropic.Rosseland())
}
