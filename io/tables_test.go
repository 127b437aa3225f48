package io

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, text string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadKappa(t *testing.T) {
	fname := writeFile(t, "kappa.txt", "5 100\n10 300\n20 500\n")
	k, err := ReadKappa(fname)
	require.NoError(t, err)
	assert.InDelta(t, 200, k.Kappa(7.5), 1e-12)
	assert.InDelta(t, 500, k.Kappa(30), 1e-12)
	assert.Equal(t, 1.0, k.Mu())

	fname = writeFile(t, "kappa_mu.txt",
		"# Solar abundances\n# mu = 1.35\n5 100\n10 300\n")
	k, err = ReadKappa(fname)
	require.NoError(t, err)
	assert.Equal(t, 1.35, k.Mu())
	assert.InDelta(t, 200, k.Kappa(7.5), 1e-12)

	fname = writeFile(t, "kappa_mu_space.txt", "#mu 1.2\n5 100\n10 300\n")
	k, err = ReadKappa(fname)
	require.NoError(t, err)
	assert.Equal(t, 1.2, k.Mu())

	bad := []string{"# mu = heavy\n5 1\n6 2\n", "# mu = -1\n5 1\n6 2\n"}
	for i, text := range bad {
		if _, err := ReadKappa(writeFile(t, "bad_mu.txt", text)); err == nil {
			t.Errorf("%d) Expected an error from kappa table:\n%s", i+1, text)
		}
	}

	fname = writeFile(t, "bad_kappa.txt", "5 100\n5 300\n")
	_, err = ReadKappa(fname)
	assert.Error(t, err)

	_, err = ReadKappa(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestReadTransmission(t *testing.T) {
	fname := writeFile(t, "trans.txt", "0 1\n1 0.5\n2 0.25\n4 0.0625\n")
	tr, err := ReadTransmission(fname, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.375, tr.Transmission(1.5), 1e-12)
	assert.Equal(t, []float64{0, 1, 2, 4}, tr.TauStar())

	spline, err := ReadTransmission(fname, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, spline.Transmission(2), 1e-12)
}

func TestReadTransmission2D(t *testing.T) {
	text := "0 0 1\n0 1 0.5\n1 0 0.5\n1 1 0.25\n2 0 0.25\n2 1 0.125\n"
	tr, err := ReadTransmission2D(writeFile(t, "trans2d.txt", text))
	require.NoError(t, err)
	assert.InDelta(t, 0.375, tr.Transmission(1, 0.5), 1e-12)
	assert.InDelta(t, 0.375, tr.Transmission(1.5, 0), 1e-12)

	text = "0 0 1\n0 1 0.5\n1 0 0.5\n"
	_, err = ReadTransmission2D(writeFile(t, "bad.txt", text))
	assert.Error(t, err)
}

func TestSplitGrid(t *testing.T) {
	table := []struct {
		xs, ys       []float64
		xAxis, yAxis []float64
		ok           bool
	}{
		{
			[]float64{0, 0, 0, 1, 1, 1}, []float64{0, 1, 2, 0, 1, 2},
			[]float64{0, 1}, []float64{0, 1, 2}, true,
		},
		{
			[]float64{0, 1, 2}, []float64{5, 5, 5},
			[]float64{0, 1, 2}, []float64{5}, true,
		},
		{
			[]float64{0, 0, 1, 1}, []float64{0, 1, 0, 2},
			nil, nil, false,
		},
		{
			[]float64{0, 0, 1, 2}, []float64{0, 1, 0, 1},
			nil, nil, false,
		},
		{[]float64{}, []float64{}, nil, nil, false},
	}

	for i, test := range table {
		xAxis, yAxis, err := splitGrid(test.xs, test.ys)
		if (err == nil) != test.ok {
			t.Errorf("%d) Expected ok = %v, got error %v.", i+1, test.ok, err)
			continue
		}
		if test.ok {
			assert.Equal(t, test.xAxis, xAxis)
			assert.Equal(t, test.yAxis, yAxis)
		}
	}

	// Flatten2D undoes splitGrid.
	xs, ys := Flatten2D([]float64{1, 2, 3}, []float64{0, 0.5})
	xAxis, yAxis, err := splitGrid(xs, ys)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, xAxis)
	assert.Equal(t, []float64{0, 0.5}, yAxis)
}

func TestReadGrid(t *testing.T) {
	energy, err := ReadEnergyGrid(writeFile(t, "e.txt", "0.5\n0.6\n0.8\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6, 0.8}, energy)

	table := []string{"0.5\n", "0.5\n0.5\n", "0.5\n0.4\n0.6\n"}
	for i, text := range table {
		if _, err := ReadTauStarGrid(writeFile(t, "g.txt", text)); err == nil {
			t.Errorf("%d) Expected error from grid %q.", i+1, text)
		}
	}
}

func TestWriteColumns(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteColumns(buf, []string{"x", "y"},
		[]float64{0, 0.5}, []float64{1, math.Exp(-1)})
	require.NoError(t, err)
	assert.Equal(t, "# x y\n0 1\n0.5 0.36787944\n", buf.String())

	buf.Reset()
	assert.Error(t, WriteColumns(buf, []string{"x"}, []float64{0}, []float64{1}))
	assert.Error(t, WriteColumns(buf, []string{"x", "y"},
		[]float64{0}, []float64{1, 2}))

	fname := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteColumnsFile(fname, []string{"x"}, []float64{2}))
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "# x\n2\n", string(data))
}

func TestBins(t *testing.T) {
	lo, hi := Bins([]float64{1, 2, 4})
	assert.Equal(t, []float64{1, 2}, lo)
	assert.Equal(t, []float64{2, 4}, hi)

	lo, hi = Bins([]float64{1})
	assert.Equal(t, 0, len(lo))
	assert.Equal(t, 0, len(hi))
}
