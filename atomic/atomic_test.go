package atomic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/windprof/helike"
)

func TestHLike(t *testing.T) {
	table := []struct {
		z                int
		lambda, lyAlpha1 float64
	}{
		{8, (2*18.9671 + 18.9725) / 3, 18.9671},
		{10, (2*12.1321 + 12.1375) / 3, 12.1321},
		{26, (2*1.77802 + 1.78344) / 3, 1.77802},
		// Unsupported elements fall back to O.
		{9, (2*18.9671 + 18.9725) / 3, 18.9671},
		{92, (2*18.9671 + 18.9725) / 3, 18.9671},
	}

	for i, test := range table {
		h := NewHLike(test.z)
		if math.Abs(h.Wavelength()-test.lambda) > 1e-12 ||
			h.LyAlpha1 != test.lyAlpha1 {

			t.Errorf("%d) NewHLike(%d) = %+v, expected wavelength %g.",
				i+1, test.z, h, test.lambda)
		}
	}
}

func TestHeLike(t *testing.T) {
	table := []struct {
		z          int
		typ        helike.Type
		lambda, r0 float64
	}{
		{8, helike.Resonance, 21.6015, 3.7},
		{8, helike.Forbidden, 22.0974, 3.7},
		{14, helike.IntercombinationX, 6.68499, 2.3},
		{14, helike.IntercombinationY, 6.68819, 2.3},
		{26, helike.Forbidden, 1.86819, 1.02},
		{7, helike.Resonance, 28.7870, 5.3},
		{1, helike.Resonance, 21.6015, 3.7},
	}

	for i, test := range table {
		h := NewHeLike(test.z)
		if h.Wavelength(test.typ) != test.lambda || h.R0 != test.r0 {
			t.Errorf("%d) NewHeLike(%d) = %+v, expected %s wavelength %g "+
				"and R0 %g.", i+1, test.z, h, test.typ, test.lambda, test.r0)
		}
	}
}

func TestOrdering(t *testing.T) {
	for z := range symbols {
		h := NewHeLike(z)
		assert.True(t, h.W < h.X && h.X < h.Y && h.Y < h.Z,
			"Triplet of Z = %d is out of order.", z)
		assert.True(t, h.XFraction >= 0 && h.XFraction < 1)

		ly := NewHLike(z)
		assert.True(t, ly.LyAlpha1 < ly.LyAlpha2)
		assert.True(t, ly.Wavelength() < h.W)
	}
}

func TestSupported(t *testing.T) {
	for _, z := range []int{6, 7, 8, 10, 11, 12, 13, 14, 16, 18, 20, 26} {
		assert.True(t, Supported(z))
	}
	for _, z := range []int{0, 1, 5, 9, 15, 17, 19, 21, 27} {
		assert.False(t, Supported(z))
	}
	assert.Equal(t, "Fe", Symbol(26))
	assert.Equal(t, "O", Symbol(9))
}
