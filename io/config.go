package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/profile"
	"github.com/phil-mansfield/windprof/windtab"
)

const (
	ExampleModelFile = `[Model]

#######################
# Required Parameters #
#######################

# Type can be one of [ general | hlike | helike | absorption ]. The XSPEC
# names windprof, hwind, hewind and abswind are also accepted.
Type = general

# Rest wavelength of the line in Angstroms. Only used by general and
# absorption models.
Wavelength = 21.6
# Terminal velocity of the wind in km/s.
Velocity = 2000

#######################
# Optional Parameters #
#######################

# Radial power law index of the emissivity. Must be larger than -1.
# Q = 0
# Characteristic optical depth of the wind.
# TauStar = 0
# Emission starts at r = 1/U0 stellar radii.
# U0 = 0.5
# Emission stops at r = 1/UMin stellar radii.
# UMin = 0
# Velocity law exponent.
# Beta = 1

# Porosity: H is the clump optical depth in units of TauStar. Anisotropy is
# 0 for isotropic clumps, 1 for oblate clumps and 2 for prolate clumps.
# Rosseland switches from an exponential to a Rosseland porosity law and
# Expansion lets the clumps grow with radius.
# H = 0
# Anisotropy = 0
# Rosseland = false
# Expansion = false

# Integrate the optical depth numerically instead of using closed forms.
# Numerical = false

# Resonance scattering.
# Tau0Star = 0
# BetaSobolev = 0
# OpticallyThick = false

# He-like ions. AtomicNumber is also used by hlike models.
# AtomicNumber = 8
# G = 0
# P = 0
# N0 = 0

# He+ opacity in units of the rest of the opacity.
# KappaRatio = 0

# Wavelength shift in mA.
# Shift = 0

# Report the transmitted fraction (or f/i ratio for helike models).
# Verbose = false

# Columns are written here. If not set, they go to stdout.
# Output = profile.txt

[Grid]

# The energy grid edges, in keV, are either read from the first column of
# EnergyFile or spaced uniformly between EnergyMin and EnergyMax.
EnergyMin = 0.56
EnergyMax = 0.58
EnergyBins = 200
# EnergyFile = path/to/energy.txt

# Grids used by the lx and depth commands.
# XBins = 200
# DepthP = 0.5
# DepthZMin = -10
# DepthZMax = 10
# DepthBins = 200`

	ExampleWindtabsFile = `[Windtabs]

#######################
# Required Parameters #
#######################

# Two column file of wavelength (A) and opacity (cm^2/g).
KappaFile = path/to/kappa.txt
# Column density scale of the wind, rho * R_star, in g/cm^2.
RhoRStar = 0.01

# Two column file of TauStar and transmission, as written by the
# transmission command. If KappaHeIIFile is set, this must be a three column
# file of TauStar, kappa ratio and transmission.
TransmissionFile = path/to/transmission.txt

#######################
# Optional Parameters #
#######################

# Opacity of He+ alone.
# KappaHeIIFile = path/to/kappa_heii.txt

# Interpolate the transmission table with a cubic spline.
# Spline = false

# Ignore TransmissionFile and integrate the transmission of every bin with
# the wind below. This is slow.
# Computed = false
# Q = 0
# U0 = 0.667
# UMin = 0
# Beta = 1

# Output = windtabs.txt

[Grid]
EnergyMin = 0.3
EnergyMax = 10
EnergyBins = 500`

	ExampleTransmissionFile = `[Transmission]

#######################
# Required Parameters #
#######################

Output = path/to/transmission.txt

#######################
# Optional Parameters #
#######################

# Q = 0
# U0 = 0.667
# Emission stops at r = 1/UMin stellar radii.
# UMin = 0
# Beta = 1
# H = 0
# Anisotropy = 0
# Rosseland = false
# Numerical = false

# If not set, TauStar = 1000 linear points in [0, 1) and 3000 logarithmic
# points in [1, 1000).
# TauStarFile = path/to/tau_star.txt

# Tabulate transmission against the He+ kappa ratio too, using KappaRatioBins
# points in [0, KappaRatioMax].
# HeII = false
# KappaRatioMax = 1
# KappaRatioBins = 21

# Defaults to the number of CPUs.
# Workers = 0`

	ExampleSlabtabsFile = `[Slabtabs]

#######################
# Required Parameters #
#######################

# Two column file of wavelength (A) and opacity (cm^2/g). A "# mu = 1.3"
# header line gives the mean mass per hydrogen atom in proton masses.
KappaFile = path/to/kappa.txt
# Hydrogen column density in units of 1e22 cm^-2.
Column = 0.1

#######################
# Optional Parameters #
#######################

# Treat Column as a mass column density in g/cm^2 instead.
# MassColumn = false

# Output = slabtabs.txt

[Grid]
EnergyMin = 0.3
EnergyMax = 10
EnergyBins = 500`
)

// ModelConfig is the [Model] section of a model configuration file.
type ModelConfig struct {
	Type string

	Q, TauStar, U0, UMin, H     float64
	Tau0Star, Beta, BetaSobolev float64
	G, KappaRatio               float64

	Numerical, Rosseland, Expansion, OpticallyThick bool
	Anisotropy                                      int

	Wavelength   float64
	AtomicNumber int
	Shift        float64
	Velocity     float64
	P, N0        float64

	Verbose bool
	Output  string
}

// GridConfig is the [Grid] section shared by model and windtabs
// configuration files.
type GridConfig struct {
	EnergyFile           string
	EnergyMin, EnergyMax float64
	EnergyBins           int

	XBins                        int
	DepthP, DepthZMin, DepthZMax float64
	DepthBins                    int
}

type ModelWrapper struct {
	Model ModelConfig
	Grid  GridConfig
}

func DefaultModelWrapper() *ModelWrapper {
	p := profile.DefaultParameters()
	con := ModelConfig{Type: p.Type.String()}
	con.U0, con.Beta, con.Velocity = p.U0, p.Beta, p.Velocity
	con.Wavelength, con.AtomicNumber = p.Wavelength, p.AtomicNumber
	return &ModelWrapper{con, defaultGridConfig()}
}

func defaultGridConfig() GridConfig {
	return GridConfig{
		XBins: 200, DepthP: 0.5, DepthZMin: -10, DepthZMax: 10, DepthBins: 200,
	}
}

func (con *ModelConfig) ValidType() bool {
	_, err := profile.ParseModelType(con.Type)
	return err == nil
}
func (con *ModelConfig) ValidOutput() bool {
	return con.Output != ""
}

// Parameters converts the configuration to model parameters. The values are
// not checked: that's done by profile.NewModel.
func (con *ModelConfig) Parameters() (profile.Parameters, error) {
	typ, err := profile.ParseModelType(con.Type)
	if err != nil {
		return profile.Parameters{}, err
	}
	p := profile.Parameters{Type: typ}
	p.Q, p.TauStar, p.U0, p.UMin = con.Q, con.TauStar, con.U0, con.UMin
	p.H, p.Anisotropy, p.Rosseland = con.H, con.Anisotropy, con.Rosseland
	p.Expansion, p.Numerical = con.Expansion, con.Numerical
	p.Tau0Star, p.BetaSobolev = con.Tau0Star, con.BetaSobolev
	p.OpticallyThick = con.OpticallyThick
	p.Beta, p.G, p.KappaRatio = con.Beta, con.G, con.KappaRatio
	p.Wavelength, p.AtomicNumber = con.Wavelength, con.AtomicNumber
	p.Shift, p.Velocity, p.P, p.N0 = con.Shift, con.Velocity, con.P, con.N0
	p.Verbose = con.Verbose
	return p, nil
}

func (con *GridConfig) ValidEnergyFile() bool {
	return con.EnergyFile != ""
}
func (con *GridConfig) ValidEnergyRange() bool {
	return con.EnergyMin > 0 && con.EnergyMax > con.EnergyMin &&
		con.EnergyBins > 0
}
func (con *GridConfig) ValidXBins() bool {
	return con.XBins > 0
}
func (con *GridConfig) ValidDepthGrid() bool {
	return con.DepthBins > 0 && con.DepthZMax > con.DepthZMin &&
		con.DepthP >= 0
}

// CheckInit returns an error describing the first invalid grid parameter.
func (con *GridConfig) CheckInit() error {
	if !con.ValidEnergyFile() && !con.ValidEnergyRange() {
		return fmt.Errorf(
			"Need to specify either an 'EnergyFile' or a positive " +
				"'EnergyMin' < 'EnergyMax' and a positive 'EnergyBins'.",
		)
	} else if !con.ValidXBins() {
		return fmt.Errorf("'XBins' must be positive, but is %d.", con.XBins)
	} else if !con.ValidDepthGrid() {
		return fmt.Errorf(
			"The depth grid needs DepthP >= 0, DepthZMin < DepthZMax and " +
				"DepthBins > 0.",
		)
	}
	return nil
}

// Energy returns the edges of the energy grid in keV.
func (con *GridConfig) Energy() ([]float64, error) {
	if con.ValidEnergyFile() {
		return ReadEnergyGrid(con.EnergyFile)
	}
	return Linspace(con.EnergyMin, con.EnergyMax, con.EnergyBins+1), nil
}

// X returns the edges of a uniform grid of scaled wavelengths covering the
// line.
func (con *GridConfig) X() []float64 { return Linspace(-1, 1, con.XBins+1) }

// Z returns the z values of the depth grid.
func (con *GridConfig) Z() []float64 {
	return Linspace(con.DepthZMin, con.DepthZMax, con.DepthBins+1)
}

func (w *ModelWrapper) CheckInit() error {
	if !w.Model.ValidType() {
		return fmt.Errorf("Unrecognized 'Type' value, '%s'.", w.Model.Type)
	}
	return w.Grid.CheckInit()
}

// ReadModelConfig reads and checks a model configuration file.
func ReadModelConfig(fname string) (*ModelWrapper, error) {
	wrap := DefaultModelWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return wrap, nil
}

// WindtabsConfig is the [Windtabs] section of a windtabs configuration file.
type WindtabsConfig struct {
	KappaFile, KappaHeIIFile, TransmissionFile string
	RhoRStar                                   float64
	Spline                                     bool

	Computed          bool
	Q, U0, UMin, Beta float64

	Output string
}

type WindtabsWrapper struct {
	Windtabs WindtabsConfig
	Grid     GridConfig
}

func DefaultWindtabsWrapper() *WindtabsWrapper {
	wind := windtab.DefaultWindConfig()
	con := WindtabsConfig{Q: wind.Q, U0: wind.U0, Beta: wind.Beta}
	return &WindtabsWrapper{con, defaultGridConfig()}
}

func (con *WindtabsConfig) ValidKappaFile() bool {
	return con.KappaFile != ""
}
func (con *WindtabsConfig) ValidKappaHeIIFile() bool {
	return con.KappaHeIIFile != ""
}
func (con *WindtabsConfig) ValidTransmissionFile() bool {
	return con.TransmissionFile != ""
}
func (con *WindtabsConfig) ValidRhoRStar() bool {
	return con.RhoRStar >= 0
}
func (con *WindtabsConfig) ValidEmission() bool {
	return validEmission(con.U0, con.UMin)
}

// validEmission returns true if emission starts at an inverse radius u0
// inside the wind and stops at uMin further out.
func validEmission(u0, uMin float64) bool {
	return u0 > 0 && u0 < 1 && uMin >= 0 && uMin < u0
}

func (w *WindtabsWrapper) CheckInit() error {
	con := &w.Windtabs
	if !con.ValidKappaFile() {
		return fmt.Errorf("Invalid/non-existent 'KappaFile' value.")
	} else if !con.ValidRhoRStar() {
		return fmt.Errorf(
			"'RhoRStar' must be non-negative, but is %g.", con.RhoRStar,
		)
	} else if !con.Computed && !con.ValidTransmissionFile() {
		return fmt.Errorf(
			"Need to specify a 'TransmissionFile' unless 'Computed' is set.",
		)
	} else if con.Computed && con.ValidKappaHeIIFile() {
		return fmt.Errorf(
			"'KappaHeIIFile' can't be used with 'Computed' models.",
		)
	} else if con.Computed && !con.ValidEmission() {
		return fmt.Errorf(
			"Need 0 <= 'UMin' < 'U0' < 1, but UMin = %g and U0 = %g.",
			con.UMin, con.U0,
		)
	}
	return w.Grid.CheckInit()
}

// WindConfig returns the wind used by computed windtabs models.
func (con *WindtabsConfig) WindConfig() windtab.WindConfig {
	return windtab.WindConfig{
		Q: con.Q, U0: con.U0, UMin: con.UMin, Beta: con.Beta,
	}
}

// ReadWindtabsConfig reads and checks a windtabs configuration file.
func ReadWindtabsConfig(fname string) (*WindtabsWrapper, error) {
	wrap := DefaultWindtabsWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return wrap, nil
}

// TransmissionConfig is the [Transmission] section of a transmission table
// configuration file.
type TransmissionConfig struct {
	Q, U0, UMin, Beta, H float64
	Anisotropy           int
	Rosseland            bool
	Numerical            bool

	TauStarFile string

	HeII           bool
	KappaRatioMax  float64
	KappaRatioBins int

	Workers int
	Output  string
}

type TransmissionWrapper struct {
	Transmission TransmissionConfig
}

func DefaultTransmissionWrapper() *TransmissionWrapper {
	wind := windtab.DefaultWindConfig()
	con := TransmissionConfig{
		Q: wind.Q, U0: wind.U0, Beta: wind.Beta,
		KappaRatioMax: 1, KappaRatioBins: 21,
	}
	return &TransmissionWrapper{con}
}

func (con *TransmissionConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *TransmissionConfig) ValidEmission() bool {
	return validEmission(con.U0, con.UMin)
}
func (con *TransmissionConfig) ValidAnisotropy() bool {
	return con.Anisotropy >= 0 && con.Anisotropy <= 2
}
func (con *TransmissionConfig) ValidKappaRatioGrid() bool {
	return con.KappaRatioMax > 0 && con.KappaRatioBins >= 2
}

func (w *TransmissionWrapper) CheckInit() error {
	con := &w.Transmission
	if !con.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	} else if !con.ValidEmission() {
		return fmt.Errorf(
			"Need 0 <= 'UMin' < 'U0' < 1, but UMin = %g and U0 = %g.",
			con.UMin, con.U0,
		)
	} else if !con.ValidAnisotropy() {
		return fmt.Errorf(
			"'Anisotropy' must be one of [0 | 1 | 2], but is %d.",
			con.Anisotropy,
		)
	} else if con.HeII && !con.ValidKappaRatioGrid() {
		return fmt.Errorf(
			"HeII tables need a positive 'KappaRatioMax' and at least two " +
				"'KappaRatioBins'.",
		)
	}
	return nil
}

// WindConfig returns the wind the table is generated for.
func (con *TransmissionConfig) WindConfig() windtab.WindConfig {
	law := porosity.NewLaw(con.Anisotropy > 0, con.Rosseland)
	return windtab.WindConfig{
		Q: con.Q, U0: con.U0, UMin: con.UMin, Beta: con.Beta, H: con.H,
		Numerical: con.Numerical, Porosity: law, Workers: con.Workers,
	}
}

// TauStar returns the TauStar grid of the table.
func (con *TransmissionConfig) TauStar() ([]float64, error) {
	if con.TauStarFile == "" {
		return windtab.DefaultTauStarGrid(), nil
	}
	return ReadTauStarGrid(con.TauStarFile)
}

// KappaRatio returns the He+ kappa ratio grid of the table.
func (con *TransmissionConfig) KappaRatio() []float64 {
	return Linspace(0, con.KappaRatioMax, con.KappaRatioBins)
}

// ReadTransmissionConfig reads and checks a transmission configuration file.
func ReadTransmissionConfig(fname string) (*TransmissionWrapper, error) {
	wrap := DefaultTransmissionWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return wrap, nil
}

// SlabtabsConfig is the [Slabtabs] section of a slabtabs configuration file.
type SlabtabsConfig struct {
	KappaFile  string
	Column     float64
	MassColumn bool

	Output string
}

type SlabtabsWrapper struct {
	Slabtabs SlabtabsConfig
	Grid     GridConfig
}

func DefaultSlabtabsWrapper() *SlabtabsWrapper {
	return &SlabtabsWrapper{Grid: defaultGridConfig()}
}

func (con *SlabtabsConfig) ValidKappaFile() bool {
	return con.KappaFile != ""
}
func (con *SlabtabsConfig) ValidColumn() bool {
	return con.Column >= 0
}

func (w *SlabtabsWrapper) CheckInit() error {
	con := &w.Slabtabs
	if !con.ValidKappaFile() {
		return fmt.Errorf("Invalid/non-existent 'KappaFile' value.")
	} else if !con.ValidColumn() {
		return fmt.Errorf(
			"'Column' must be non-negative, but is %g.", con.Column,
		)
	}
	return w.Grid.CheckInit()
}

// Sigma returns the mass column density of the slab in g/cm^2.
func (con *SlabtabsConfig) Sigma(slab *windtab.Slab) float64 {
	if con.MassColumn {
		return con.Column
	}
	return slab.MassColumn(con.Column)
}

// ReadSlabtabsConfig reads and checks a slabtabs configuration file.
func ReadSlabtabsConfig(fname string) (*SlabtabsWrapper, error) {
	wrap := DefaultSlabtabsWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return wrap, nil
}

// ExampleConfig returns the example configuration file with the given name.
func ExampleConfig(name string) (string, error) {
	switch strings.ToLower(name) {
	case "model":
		return ExampleModelFile, nil
	case "windtabs":
		return ExampleWindtabsFile, nil
	case "transmission":
		return ExampleTransmissionFile, nil
	case "slabtabs":
		return ExampleSlabtabsFile, nil
	case "sweep":
		return ExampleSweepFile, nil
	}
	return "", fmt.Errorf(
		"Unrecognized example config '%s'. Only recognized arguments are "+
			"'model', 'windtabs', 'slabtabs', 'transmission', and 'sweep'.",
		name,
	)
}

// Linspace returns n uniformly spaced values from lo to hi, inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	xs[n-1] = hi
	return xs
}
