package windtab

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/windprof/depth"
	"github.com/phil-mansfield/windprof/profile"
	"github.com/phil-mansfield/windprof/wind"
)

type kappaFunc func(lambda float64) float64

func (f kappaFunc) Kappa(lambda float64) float64 { return f(lambda) }

type transFunc func(tauStar float64) float64

func (f transFunc) Transmission(tauStar float64) float64 { return f(tauStar) }

type trans2DFunc func(tauStar, kappaRatio float64) float64

func (f trans2DFunc) Transmission(tauStar, kappaRatio float64) float64 {
	return f(tauStar, kappaRatio)
}

func TestKappaTable(t *testing.T) {
	k, err := NewKappa([]float64{10, 20, 30}, []float64{100, 300, 400})
	require.NoError(t, err)

	table := []struct {
		lambda, kappa float64
	}{
		{10, 100}, {15, 200}, {20, 300}, {27.5, 375}, {30, 400},
		{5, 100}, {100, 400},
	}
	for i, test := range table {
		if kappa := k.Kappa(test.lambda); math.Abs(kappa-test.kappa) > 1e-12 {
			t.Errorf("%d) Expected Kappa(%g) = %g, got %g.",
				i+1, test.lambda, test.kappa, kappa)
		}
	}

	// Decreasing wavelengths are allowed.
	k, err = NewKappa([]float64{30, 20, 10}, []float64{400, 300, 100})
	require.NoError(t, err)
	assert.InDelta(t, 200, k.Kappa(15), 1e-12)
}

func TestTableErrors(t *testing.T) {
	table := []struct {
		xs, ys []float64
	}{
		{[]float64{1}, []float64{1}},
		{[]float64{1, 2, 2}, []float64{1, 2, 3}},
		{[]float64{1, 3, 2}, []float64{1, 2, 3}},
		{[]float64{1, 2, 3}, []float64{1, 2}},
		{[]float64{1, math.NaN(), 3}, []float64{1, 2, 3}},
	}
	for i, test := range table {
		if _, err := NewKappa(test.xs, test.ys); err == nil {
			t.Errorf("%d) Expected an error from NewKappa.", i+1)
		}
		if _, err := NewTransmission(test.xs, test.ys, true); err == nil {
			t.Errorf("%d) Expected an error from NewTransmission.", i+1)
		}
	}

	_, err := NewTransmission2D(
		[]float64{0, 1}, []float64{0, 1, 2}, []float64{1, 1, 1, 1, 1},
	)
	assert.Error(t, err)
	_, err = NewTransmission2D([]float64{0}, []float64{0, 1}, []float64{1, 1})
	assert.Error(t, err)
}

func TestTransmissionTable(t *testing.T) {
	tau := make([]float64, 101)
	trans := make([]float64, len(tau))
	for i := range tau {
		tau[i] = 0.05 * float64(i)
		trans[i] = math.Exp(-tau[i])
	}

	lin, err := NewTransmission(tau, trans, false)
	require.NoError(t, err)
	spline, err := NewTransmission(tau, trans, true)
	require.NoError(t, err)

	for i, x := range []float64{0.01, 0.33, 1.7, 4.99} {
		exact := math.Exp(-x)
		if relDiff(lin.Transmission(x), exact) > 1e-3 {
			t.Errorf("%d) Linear Transmission(%g) = %g, not %g.",
				i+1, x, lin.Transmission(x), exact)
		}
	}
	// The natural boundary conditions are only accurate away from the ends.
	for i, x := range []float64{0.33, 1.7, 2.5} {
		exact := math.Exp(-x)
		if relDiff(spline.Transmission(x), exact) > 1e-5 {
			t.Errorf("%d) Spline Transmission(%g) = %g, not %g.",
				i+1, x, spline.Transmission(x), exact)
		}
	}
	assert.InDelta(t, 1.0, lin.Transmission(-1), 1e-15)
	assert.InDelta(t, trans[100], lin.Transmission(10), 1e-15)
	assert.Equal(t, tau, lin.TauStar())
}

func TestTransmission2D(t *testing.T) {
	tau := []float64{0, 1, 2}
	ratio := []float64{0, 10}
	// T = 1 - tau/4 - ratio/40
	trans := []float64{1, 0.75, 0.75, 0.5, 0.5, 0.25}
	tr, err := NewTransmission2D(tau, ratio, trans)
	require.NoError(t, err)

	table := []struct {
		tau, ratio, T float64
	}{
		{0, 0, 1}, {1, 10, 0.5}, {0.5, 5, 0.75}, {1.5, 2, 0.575},
		{-1, 0, 1}, {5, 20, 0.25}, {1, -3, 0.75},
	}
	for i, test := range table {
		if T := tr.Transmission(test.tau, test.ratio); math.Abs(T-test.T) > 1e-12 {
			t.Errorf("%d) Expected Transmission(%g, %g) = %g, got %g.",
				i+1, test.tau, test.ratio, test.T, T)
		}
	}
}

func TestModel(t *testing.T) {
	kappa := kappaFunc(func(lambda float64) float64 { return 10 * lambda })
	trans := transFunc(func(tauStar float64) float64 { return 1 / (1 + tauStar) })
	m := New(kappa, trans)
	assert.False(t, m.HeII())

	energy := []float64{0.5, 0.6, 0.8, 1.2}
	flux, err := m.Transmission(energy, 0.02)
	require.NoError(t, err)
	require.Equal(t, 3, len(flux))
	for i := range flux {
		lambda := 2 * wind.HC / (energy[i] + energy[i+1])
		expected := 1 / (1 + 0.02*10*lambda)
		if relDiff(flux[i], expected) > 1e-12 {
			t.Errorf("%d) Expected transmission %g, got %g.",
				i+1, expected, flux[i])
		}
	}

	flux, err = m.Transmission(energy, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, flux)

	_, err = m.Transmission([]float64{1}, 1)
	assert.Error(t, err)
	_, err = m.Transmission([]float64{1, -2}, 1)
	assert.Error(t, err)
}

func TestModelHeII(t *testing.T) {
	kappa := kappaFunc(func(lambda float64) float64 { return 50 })
	kappaHeII := kappaFunc(func(lambda float64) float64 { return lambda })
	trans := trans2DFunc(func(tauStar, ratio float64) float64 {
		return math.Exp(-tauStar * (1 + ratio))
	})
	m := NewHeII(kappa, kappaHeII, trans)
	assert.True(t, m.HeII())

	energy := []float64{0.5, 1, 2}
	flux, err := m.Transmission(energy, 0.01)
	require.NoError(t, err)
	for i := range flux {
		lambda := CentralWavelength(energy[i], energy[i+1])
		expected := math.Exp(-0.5 * (1 + lambda/50))
		if relDiff(flux[i], expected) > 1e-12 {
			t.Errorf("%d) Expected transmission %g, got %g.",
				i+1, expected, flux[i])
		}
	}
}

func TestDefaultTauStarGrid(t *testing.T) {
	grid := DefaultTauStarGrid()
	require.Equal(t, 4000, len(grid))
	assert.Equal(t, 0.0, grid[0])
	assert.InDelta(t, 0.999, grid[999], 1e-15)
	assert.Equal(t, 1.0, grid[1000])
	assert.InDelta(t, math.Pow(10, 3*2999.0/3000), grid[3999], 1e-9)
	assert.NoError(t, checkTable("TauStar", grid))
}

func TestGenerateTransmission(t *testing.T) {
	cfg := WindConfig{Q: 0, U0: 0.5, Beta: 1, Workers: 3}
	tauStar := []float64{0, 0.5, 1, 3, 10}
	trans := GenerateTransmission(cfg, tauStar)

	require.Equal(t, len(tauStar), len(trans))
	// At TauStar = 0 only occultation removes light.
	assert.InEpsilon(t, 0.9696232251171085, trans[0], 1e-4)
	for i := 1; i < len(trans); i++ {
		if !(trans[i] < trans[i-1]) || trans[i] <= 0 {
			t.Errorf("%d) T(%g) = %g after T(%g) = %g.",
				i+1, tauStar[i], trans[i], tauStar[i-1], trans[i-1])
		}
	}

	cfg.Workers = 1
	assert.Equal(t, trans, GenerateTransmission(cfg, tauStar))
	assert.Equal(t, []float64{}, GenerateTransmission(cfg, []float64{}))
}

func TestGenerateTransmissionUMin(t *testing.T) {
	tauStar := []float64{0.5, 2}
	full := GenerateTransmission(WindConfig{Q: 0, U0: 0.5, Beta: 1}, tauStar)
	cfg := WindConfig{Q: 0, U0: 0.5, UMin: 0.3, Beta: 1}
	trans := GenerateTransmission(cfg, tauStar)

	vel := wind.NewVelocity(1, 0)
	for i := range tauStar {
		// The outer wind is the least absorbed part.
		if !(trans[i] < full[i]) {
			t.Errorf("%d) T(%g) = %g with UMin = 0.3, but %g with UMin = 0.",
				i+1, tauStar[i], trans[i], full[i])
		}

		tau := depth.New(depth.Config{TauStar: tauStar[i], Beta: 1})
		aat := profile.NewAngleAveragedTransmission(tau, nil, 0)
		l := profile.NewIntegratedLuminosity(0, 0.5, 0.3, vel, aat)
		expected, _ := l.WindTransmission()
		if relDiff(trans[i], expected) > 1e-9 {
			t.Errorf("%d) T(%g) = %g, but IntegratedLuminosity gives %g.",
				i+1, tauStar[i], trans[i], expected)
		}
	}
}

func TestGenerateTransmission2D(t *testing.T) {
	cfg := WindConfig{Q: 0, U0: 0.5, Beta: 1, Workers: 2}
	tauStar := []float64{0.5, 2}
	kappaRatio := []float64{0, 0.5}

	trans := GenerateTransmission2D(cfg, tauStar, kappaRatio)
	require.Equal(t, 4, len(trans))
	trans1D := GenerateTransmission(cfg, tauStar)

	for i := range tauStar {
		if trans[2*i] != trans1D[i] {
			t.Errorf("%d) T(%g, 0) = %g, but T(%g) = %g.",
				i+1, tauStar[i], trans[2*i], tauStar[i], trans1D[i])
		}
		if !(trans[2*i+1] < trans[2*i]) {
			t.Errorf("%d) He+ opacity didn't lower T(%g): %g vs. %g.",
				i+1, tauStar[i], trans[2*i+1], trans[2*i])
		}
	}
}

func TestComputed(t *testing.T) {
	cfg := WindConfig{Q: 0, U0: 0.5, Beta: 1}
	energy := []float64{0.5, 0.7, 1, 2}

	plain := NewComputed(cfg, kappaFunc(func(float64) float64 { return 0 }))
	flux, err := plain.Transmission(energy, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, flux)

	// Opacity falls with energy, so transmission rises.
	absorbed := NewComputed(cfg, kappaFunc(func(lambda float64) float64 {
		return lambda * lambda
	}))
	flux, err = absorbed.Transmission(energy, 0.01)
	require.NoError(t, err)
	for i := 1; i < len(flux); i++ {
		if !(flux[i] > flux[i-1]) || flux[i] > 1 {
			t.Errorf("%d) Transmission %g follows %g.", i+1, flux[i], flux[i-1])
		}
	}
}

func relDiff(x, y float64) float64 {
	return math.Abs(x-y) / math.Abs(y)
}

func TestSlab(t *testing.T) {
	kappa := kappaFunc(func(lambda float64) float64 { return 2 * lambda })
	slab := NewSlab(kappa, 1.3)

	assert.InEpsilon(t, 2*1.3*1e22*wind.MassProton, slab.MassColumn(2), 1e-12)

	energy := []float64{0.5, 0.6, 0.8, 1.2}
	sigma := slab.MassColumn(1.5)
	flux, err := slab.Transmission(energy, sigma)
	require.NoError(t, err)
	require.Equal(t, 3, len(flux))
	for i := range flux {
		lambda := 2 * wind.HC / (energy[i] + energy[i+1])
		expected := math.Exp(-1.5 * 1e22 * wind.MassProton * 1.3 * 2 * lambda)
		if relDiff(flux[i], expected) > 1e-12 {
			t.Errorf("%d) Expected transmission %g, got %g.",
				i+1, expected, flux[i])
		}
		if i > 0 && !(flux[i] > flux[i-1]) {
			t.Errorf("%d) Transmission %g follows %g.", i+1, flux[i], flux[i-1])
		}
	}

	flux, err = slab.Transmission(energy, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, flux)

	_, err = slab.Transmission([]float64{1}, 1)
	assert.Error(t, err)
}

func TestKappaMu(t *testing.T) {
	k, err := NewKappa([]float64{1, 2}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, k.Mu())
	k.SetMu(1.4)
	assert.Equal(t, 1.4, k.Mu())
}
