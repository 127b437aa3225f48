package windtab

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/wind"
)

// nHToSigma converts a hydrogen column density in units of 1e22 cm^-2 to a
// mass column density in g/cm^2 for material with one proton mass per
// hydrogen atom.
const nHToSigma = 1e22 * wind.MassProton

// Slab is the transmission of a uniform slab of material between the source
// and the observer.
type Slab struct {
	kappa KappaTable
	mu    float64
}

// NewSlab creates a slab model. mu is the mean mass per hydrogen atom in
// proton masses, and is only used by MassColumn.
func NewSlab(kappa KappaTable, mu float64) *Slab {
	return &Slab{kappa: kappa, mu: mu}
}

// MassColumn converts a hydrogen column density, in units of 1e22 cm^-2, to
// a mass column density in g/cm^2.
func (s *Slab) MassColumn(nH float64) float64 {
	return nH * nHToSigma * s.mu
}

// Transmission returns exp(-sigma * kappa) in the bins between consecutive
// energies (keV). sigma is the mass column density of the slab in g/cm^2.
func (s *Slab) Transmission(energy []float64, sigma float64) ([]float64, error) {
	if err := checkEnergy(energy); err != nil {
		return nil, err
	}
	if wind.Compare(sigma, 0) == -1 {
		log.WithFields(log.Fields{"sigma": sigma}).
			Warn("slabtabs: invalid column density; setting to 0.")
		sigma = 0
	}

	flux := make([]float64, len(energy)-1)
	for i := range flux {
		lambda := CentralWavelength(energy[i], energy[i+1])
		flux[i] = math.Exp(-sigma * s.kappa.Kappa(lambda))
	}
	return flux, nil
}
