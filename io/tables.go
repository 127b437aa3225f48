/*package io handles the configuration files, input tables and output columns
used by the windprof command.

Tables are whitespace separated text columns. Lines starting with '#' are
comments. Header comments of the form "# key = value" can carry keywords.
*/
package io

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"
	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/windtab"
)

// ReadKappa reads a two column table of wavelength (A) and opacity. The
// mean mass per hydrogen atom is read from the "mu" header keyword, if there
// is one.
func ReadKappa(fname string) (*windtab.Kappa, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}
	k, err := windtab.NewKappa(cols[0], cols[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}

	mu, ok, err := readKeyword(fname, "mu")
	if err != nil {
		return nil, err
	} else if !ok {
		log.WithFields(log.Fields{"file": fname}).
			Info("Kappa table has no 'mu' keyword; using mu = 1.")
		return k, nil
	} else if !(mu > 0) {
		return nil, fmt.Errorf("%s: 'mu' must be positive, but is %g.", fname, mu)
	}
	k.SetMu(mu)
	return k, nil
}

// readKeyword finds a "# key = value" line in the header of a table. The
// header ends at the first line which isn't blank or a comment.
func readKeyword(fname, key string) (val float64, ok bool, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		} else if line[0] != '#' {
			break
		}

		fields := strings.Fields(strings.Replace(line[1:], "=", " ", 1))
		if len(fields) != 2 || fields[0] != key {
			continue
		}
		val, err = strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, false, fmt.Errorf(
				"%s: Can't parse '%s' keyword value '%s'.",
				fname, key, fields[1],
			)
		}
		return val, true, nil
	}
	return 0, false, scanner.Err()
}

// ReadTransmission reads a two column table of TauStar and transmission.
func ReadTransmission(fname string, spline bool) (*windtab.Transmission, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, err
	}
	tr, err := windtab.NewTransmission(cols[0], cols[1], spline)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return tr, nil
}

// ReadTransmission2D reads a three column table of TauStar, kappa ratio and
// transmission. Rows are ordered by TauStar and then by kappa ratio, with
// the same kappa ratios used for every TauStar.
func ReadTransmission2D(fname string) (*windtab.Transmission2D, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, err
	}
	tauStar, kappaRatio, err := splitGrid(cols[0], cols[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	tr, err := windtab.NewTransmission2D(tauStar, kappaRatio, cols[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return tr, nil
}

// splitGrid finds the axes of a flattened 2D grid.
func splitGrid(xs, ys []float64) (xAxis, yAxis []float64, err error) {
	if len(xs) == 0 {
		return nil, nil, fmt.Errorf("The 2D table is empty.")
	}

	ny := 1
	for ny < len(xs) && xs[ny] == xs[0] {
		ny++
	}
	if len(xs)%ny != 0 {
		return nil, nil, fmt.Errorf(
			"The 2D table has %d rows, which isn't a multiple of the %d "+
				"kappa ratios.", len(xs), ny,
		)
	}

	nx := len(xs) / ny
	xAxis, yAxis = make([]float64, nx), ys[:ny]
	for i := 0; i < nx; i++ {
		xAxis[i] = xs[i*ny]
		for j := 0; j < ny; j++ {
			if xs[i*ny+j] != xAxis[i] || ys[i*ny+j] != yAxis[j] {
				return nil, nil, fmt.Errorf(
					"Row %d of the 2D table isn't on the grid.", i*ny+j+1,
				)
			}
		}
	}
	return xAxis, yAxis, nil
}

// ReadEnergyGrid reads energy grid edges, in keV, from the first column of a
// table.
func ReadEnergyGrid(fname string) ([]float64, error) {
	return readGrid(fname, "energy")
}

// ReadTauStarGrid reads TauStar values from the first column of a table.
func ReadTauStarGrid(fname string) ([]float64, error) {
	return readGrid(fname, "TauStar")
}

func readGrid(fname, name string) ([]float64, error) {
	cols, err := table.ReadTable(fname, []int{0}, nil)
	if err != nil {
		return nil, err
	}
	xs := cols[0]
	if len(xs) < 2 {
		return nil, fmt.Errorf(
			"%s: The %s grid has %d values, but at least 2 are needed.",
			fname, name, len(xs),
		)
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf(
				"%s: The %s grid must be increasing, but row %d is %g and "+
					"row %d is %g.", fname, name, i, xs[i-1], i+1, xs[i],
			)
		}
	}
	return xs, nil
}
