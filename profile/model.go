package profile

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/atomic"
	"github.com/phil-mansfield/windprof/depth"
	"github.com/phil-mansfield/windprof/helike"
	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/scatter"
	"github.com/phil-mansfield/windprof/wind"
)

// Model evaluates a line profile on an energy grid. A Model isn't safe for
// concurrent use.
type Model struct {
	p       Parameters
	vel     *wind.Velocity
	tau     *depth.OpticalDepth
	tauHeII *depth.OpticalDepth
	ratio   *helike.Ratio
	scat    *scatter.Scattering
	lx      *Lx
	fi      *FluxIntegral
}

// Spectrum is a binned line profile.
type Spectrum struct {
	// Flux[i] is the flux between Energy[i] and Energy[i+1]. Emission
	// profiles are normalized to unit sum. Absorption profiles are
	// transmitted fractions.
	Flux []float64
	// Total is the sum of the emission profile before normalization.
	Total float64
	// Normalized is false if the total flux was zero.
	Normalized bool
	// TransmittedFraction is the ratio of observed to emitted photons. It is
	// only computed for verbose, non-He-like models and is NaN otherwise.
	TransmittedFraction float64
	// FToI is the observed f / i ratio. It is only computed for verbose
	// He-like models and is NaN otherwise.
	FToI   float64
	Status integrate.Status
}

// NewModel checks p and builds the wind models it describes.
func NewModel(p Parameters) *Model {
	p.Check()
	if p.Type == Absorption {
		p = absorptionParameters(p)
	}

	m := &Model{p: p}
	m.vel = wind.NewVelocity(p.Beta, 0)

	cfg := depth.Config{
		TauStar: p.TauStar, H: p.H, Beta: p.Beta, Numerical: p.Numerical,
		Porosity: p.PorosityLaw(), Expansion: p.Expansion,
	}
	m.tau = depth.New(cfg)
	if p.HeII() {
		cfg.Numerical, cfg.HeII = true, true
		m.tauHeII = depth.New(cfg)
	}

	m.scat = scatter.New(p.Tau0Star, p.BetaSobolev, p.OpticallyThick, m.vel)
	if p.Type == HeLike {
		m.ratio = helike.New(atomic.NewHeLike(p.AtomicNumber).R0, p.P)
		if p.N0 > 0 {
			m.ratio.SetDensity(p.N0, m.vel)
		}
	}

	c := Components{
		Velocity: m.vel, Tau: m.tau, Ratio: m.ratio, Scattering: m.scat,
	}
	if m.tauHeII != nil {
		c.TauHeII = m.tauHeII
	}
	m.lx = NewLx(LxConfig{
		Q: p.Q, U0: p.U0, UMin: p.UMin, Beta: p.Beta,
		KappaRatio: p.KappaRatio, Type: helike.Resonance,
	}, c)
	m.fi = NewFluxIntegral(m.lx)

	return m
}

// absorptionParameters keeps only the parameters used by absorption
// troughs.
func absorptionParameters(p Parameters) Parameters {
	abs := DefaultParameters()
	abs.Type = Absorption
	abs.Q, abs.TauStar, abs.U0, abs.UMin = p.Q, p.TauStar, p.U0, p.UMin
	abs.Beta, abs.Wavelength, abs.Velocity = p.Beta, p.Wavelength, p.Velocity
	abs.Verbose = p.Verbose
	return abs
}

func (m *Model) Parameters() Parameters            { return m.p }
func (m *Model) Lx() *Lx                           { return m.lx }
func (m *Model) FluxIntegral() *FluxIntegral       { return m.fi }
func (m *Model) OpticalDepth() *depth.OpticalDepth { return m.tau }

// X converts the energy grid (keV) to scaled velocities for the line typ.
func (m *Model) X(energy []float64, typ helike.Type) []float64 {
	restEnergy := wind.HC / m.p.LineWavelength(typ)
	v := m.p.VelocityC()
	x := make([]float64, len(energy))
	for i, E := range energy {
		x[i] = (restEnergy/E - 1) / v
	}
	return x
}

// Spectrum evaluates the model on the bins between consecutive energies.
// Energies are in keV and must be positive.
func (m *Model) Spectrum(energy []float64) (*Spectrum, error) {
	if len(energy) < 2 {
		return nil, fmt.Errorf(
			"Energy grid has %d edges, but at least 2 are needed.", len(energy),
		)
	}
	for i, E := range energy {
		if !(E > 0) {
			return nil, fmt.Errorf(
				"Energy grid edge %d is %g, but energies must be positive.",
				i, E,
			)
		}
	}

	s := &Spectrum{TransmittedFraction: math.NaN(), FToI: math.NaN()}

	var x []float64
	if m.p.Type == HeLike {
		var rFlux, iFlux, fFlux []float64
		st := s.Status
		rFlux, _, st = m.lineFlux(energy, helike.Resonance, st)
		iFlux, _, st = m.lineFlux(energy, helike.IntercombinationY, st)
		fFlux, _, st = m.lineFlux(energy, helike.Forbidden, st)
		s.Status = st
		m.lx.SetType(helike.Resonance)

		if m.p.Verbose {
			s.FToI = fToI(fFlux, iFlux)
		}
		G := m.p.G
		s.Flux = make([]float64, len(rFlux))
		for i := range s.Flux {
			s.Flux[i] = (rFlux[i] + G*(iFlux[i]+fFlux[i])) / (1 + G)
		}
	} else {
		s.Flux, x, s.Status = m.lineFlux(energy, helike.Resonance, s.Status)
	}

	s.Total, s.Normalized = renormalize(s.Flux)

	if s.Normalized && m.p.Verbose && m.p.Type != HeLike {
		s.TransmittedFraction = m.transmittedFraction(x, s.Total)
		log.WithFields(log.Fields{"ratio": s.TransmittedFraction}).
			Info("(observed photons) / (emitted photons)")
	}

	if m.p.Type == Absorption {
		s.Flux = absorptionTrough(s.Flux)
	}
	return s, nil
}

// lineFlux integrates the line typ over each energy bin.
func (m *Model) lineFlux(
	energy []float64, typ helike.Type, status integrate.Status,
) ([]float64, []float64, integrate.Status) {
	m.lx.SetType(typ)
	x := m.X(energy, typ)
	flux := make([]float64, len(energy)-1)
	for i := range flux {
		var s integrate.Status
		flux[i], s = m.fi.Flux(x[i], x[i+1])
		status = worstStatus(status, s)
	}
	return flux, x, status
}

// transmittedFraction recomputes the profile without continuum absorption.
func (m *Model) transmittedFraction(x []float64, total float64) float64 {
	m.lx.SetTransparent(true)
	defer m.lx.SetTransparent(false)

	unabsorbed := 0.0
	for i := 0; i < len(x)-1; i++ {
		f, _ := m.fi.Flux(x[i], x[i+1])
		unabsorbed += f
	}
	if wind.Compare(unabsorbed, 0) != 1 {
		return math.NaN()
	}
	return total / unabsorbed
}

func fToI(fFlux, iFlux []float64) float64 {
	fSum, iSum := sum(fFlux), sum(iFlux)
	if wind.Compare(iSum, 0) != 1 {
		log.Info("Can't compute f/i ratio for zero i flux.")
		return math.NaN()
	}
	ratio := fSum / iSum
	log.WithFields(log.Fields{"R": ratio}).Info("R = f / i")
	return ratio
}

// renormalize scales flux to unit sum in place.
func renormalize(flux []float64) (total float64, ok bool) {
	total = sum(flux)
	if wind.Compare(total, 0) != 1 {
		log.WithFields(log.Fields{"total": total}).
			Error("Model: can't renormalize; total flux is zero.")
		return total, false
	}
	for i := range flux {
		flux[i] /= total
	}
	return total, true
}

// absorptionTrough turns a normalized emission profile into a transmitted
// fraction. Starting from the first bin with emission, each bin absorbs the
// emission of that bin on top of the absorption of the previous bin. Bins
// outside the first run of emission are unabsorbed.
func absorptionTrough(emission []float64) []float64 {
	trans := make([]float64, len(emission))
	for i := range trans {
		trans[i] = 1
	}

	i := 0
	for i < len(emission) && wind.Compare(emission[i], 0) != 1 {
		i++
	}
	prev := 1.0
	for ; i < len(emission) && wind.Compare(emission[i], 0) == 1; i++ {
		trans[i] = prev - emission[i]
		prev = trans[i]
	}
	return trans
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
