package io

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/windtab"
)

const ExampleSweepFile = `# Transmitted fractions are computed for every combination of q, h and
# tau_star below.

q = [0.0, 1.0]
h = [0.0, 1.0, 3.0]
tau_star = [0.1, 1.0, 3.0, 10.0]

# Defaults to the number of CPUs.
workers = 0

# If not set, results are written to stdout.
# output = "sweep.txt"

[wind]
u0 = 0.667
umin = 0.0
beta = 1.0
anisotropy = 0
rosseland = false
numerical = false`

// SweepWind is the part of the wind which is held fixed in a sweep.
type SweepWind struct {
	U0         float64 `toml:"u0"`
	UMin       float64 `toml:"umin"`
	Beta       float64 `toml:"beta"`
	Anisotropy int     `toml:"anisotropy"`
	Rosseland  bool    `toml:"rosseland"`
	Numerical  bool    `toml:"numerical"`
}

// SweepConfig describes a grid of winds whose transmitted fractions are
// computed together.
type SweepConfig struct {
	Q       []float64 `toml:"q"`
	H       []float64 `toml:"h"`
	TauStar []float64 `toml:"tau_star"`
	Workers int       `toml:"workers"`
	Output  string    `toml:"output"`

	Wind SweepWind `toml:"wind"`
}

// SweepPoint is a single wind in a sweep.
type SweepPoint struct {
	Q, H float64
	Wind windtab.WindConfig
}

func DefaultSweepConfig() *SweepConfig {
	wind := windtab.DefaultWindConfig()
	return &SweepConfig{
		Q: []float64{wind.Q}, H: []float64{wind.H},
		Wind: SweepWind{U0: wind.U0, Beta: wind.Beta},
	}
}

func (con *SweepConfig) CheckInit() error {
	if len(con.TauStar) == 0 {
		return fmt.Errorf("Need to specify at least one 'tau_star' value.")
	} else if len(con.Q) == 0 || len(con.H) == 0 {
		return fmt.Errorf("'q' and 'h' can't be empty.")
	} else if !validEmission(con.Wind.U0, con.Wind.UMin) {
		return fmt.Errorf(
			"Need 0 <= 'umin' < 'u0' < 1, but umin = %g and u0 = %g.",
			con.Wind.UMin, con.Wind.U0,
		)
	} else if con.Wind.Anisotropy < 0 || con.Wind.Anisotropy > 2 {
		return fmt.Errorf(
			"'anisotropy' must be one of [0 | 1 | 2], but is %d.",
			con.Wind.Anisotropy,
		)
	}

	for i, q := range con.Q {
		if q <= -1 {
			return fmt.Errorf("q[%d] = %g, but q must be larger than -1.", i, q)
		}
	}
	for i, h := range con.H {
		if h < 0 {
			return fmt.Errorf("h[%d] = %g, but h can't be negative.", i, h)
		}
	}
	for i, tauStar := range con.TauStar {
		if tauStar < 0 {
			return fmt.Errorf(
				"tau_star[%d] = %g, but tau_star can't be negative.",
				i, tauStar,
			)
		}
	}
	return nil
}

// Points returns every (q, h) combination of the sweep.
func (con *SweepConfig) Points() []SweepPoint {
	law := porosity.NewLaw(con.Wind.Anisotropy > 0, con.Wind.Rosseland)
	points := make([]SweepPoint, 0, len(con.Q)*len(con.H))
	for _, q := range con.Q {
		for _, h := range con.H {
			points = append(points, SweepPoint{q, h, windtab.WindConfig{
				Q: q, U0: con.Wind.U0, UMin: con.Wind.UMin,
				Beta: con.Wind.Beta, H: h,
				Numerical: con.Wind.Numerical, Porosity: law,
				Workers: con.Workers,
			}})
		}
	}
	return points
}

// ReadSweepConfig reads and checks a TOML sweep file.
func ReadSweepConfig(fname string) (*SweepConfig, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ParseSweepConfig(data, fname)
}

// ParseSweepConfig parses the contents of a TOML sweep file. name is only
// used in error messages.
func ParseSweepConfig(data []byte, name string) (*SweepConfig, error) {
	con := DefaultSweepConfig()
	if err := toml.Unmarshal(data, con); err != nil {
		return nil, fmt.Errorf("%s: %s", name, err.Error())
	}
	if err := con.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %s", name, err.Error())
	}
	return con, nil
}
