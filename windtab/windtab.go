/*package windtab computes the continuum absorption of X-rays emitted
throughout a stellar wind, averaged over the whole wind.

The transmission of a wind depends on wavelength only through TauStar =
kappa(lambda) * rho * R_star, so tabulated models look up a precomputed
transmission curve, T(TauStar), at the TauStar of each energy bin. The
curves themselves are made by GenerateTransmission.
*/
package windtab

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/wind"
)

// Model is the tabulated wind absorption model.
type Model struct {
	kappa, kappaHeII KappaTable
	trans            TransmissionTable
	trans2D          TransmissionTable2D
}

// New creates a tabulated model with a single opacity source.
func New(kappa KappaTable, trans TransmissionTable) *Model {
	return &Model{kappa: kappa, trans: trans}
}

// NewHeII creates a tabulated model where He+ opacity is tracked separately
// from the rest of the opacity.
func NewHeII(
	kappa, kappaHeII KappaTable, trans TransmissionTable2D,
) *Model {
	return &Model{kappa: kappa, kappaHeII: kappaHeII, trans2D: trans}
}

// HeII returns true if the model tracks He+ opacity.
func (m *Model) HeII() bool { return m.trans2D != nil }

// Transmission returns the transmitted fraction in the bins between
// consecutive energies (keV). rhoRStar is the column density scale of the
// wind, rho * R_star, in g/cm^2.
func (m *Model) Transmission(energy []float64, rhoRStar float64) ([]float64, error) {
	if err := checkEnergy(energy); err != nil {
		return nil, err
	}
	if wind.Compare(rhoRStar, 0) == -1 {
		log.WithFields(log.Fields{"rhoRStar": rhoRStar}).
			Warn("windtabs: invalid column density; setting to 0.")
		rhoRStar = 0
	}

	flux := make([]float64, len(energy)-1)
	for i := range flux {
		lambda := CentralWavelength(energy[i], energy[i+1])
		kappa := m.kappa.Kappa(lambda)
		tauStar := rhoRStar * kappa

		if m.HeII() {
			kappaRatio := 0.0
			if kappa > 0 {
				kappaRatio = m.kappaHeII.Kappa(lambda) / kappa
			}
			flux[i] = m.trans2D.Transmission(tauStar, kappaRatio)
		} else {
			flux[i] = m.trans.Transmission(tauStar)
		}
	}
	return flux, nil
}

// CentralWavelength returns the wavelength (A) at the center of the energy
// bin [e1, e2] (keV).
func CentralWavelength(e1, e2 float64) float64 {
	return 2 * wind.HC / (e1 + e2)
}

func checkEnergy(energy []float64) error {
	if len(energy) < 2 {
		return fmt.Errorf(
			"Energy grid has %d edges, but at least 2 are needed.", len(energy),
		)
	}
	for i, E := range energy {
		if !(E > 0) {
			return fmt.Errorf(
				"Energy grid edge %d is %g, but energies must be positive.", i, E,
			)
		}
	}
	return nil
}

// computedEpsRel is the accuracy of the transmissions computed by Computed.
const computedEpsRel = 1e-2

// Computed is a wind absorption model which integrates the transmission
// of every energy bin directly instead of using a transmission table.
type Computed struct {
	kappa     KappaTable
	tr        *transmitter
	intrinsic float64
}

// NewComputed creates a Computed model for a smooth wind. The luminosity of
// the same wind without absorption, but with occultation, is used as the
// normalization.
func NewComputed(cfg WindConfig, kappa KappaTable) *Computed {
	tr := newTransmitter(cfg, false, integrate.EpsRel(computedEpsRel))
	tr.setTauStar(0, 0)
	intrinsic, _ := tr.l.Luminosity()
	return &Computed{kappa: kappa, tr: tr, intrinsic: intrinsic}
}

// Transmission returns the transmitted fraction in the bins between
// consecutive energies (keV).
func (c *Computed) Transmission(energy []float64, rhoRStar float64) ([]float64, error) {
	if err := checkEnergy(energy); err != nil {
		return nil, err
	}

	flux := make([]float64, len(energy)-1)
	for i := range flux {
		lambda := CentralWavelength(energy[i], energy[i+1])
		c.tr.setTauStar(rhoRStar*c.kappa.Kappa(lambda), 0)
		L, _ := c.tr.l.Luminosity()
		flux[i] = L / c.intrinsic
	}
	return flux, nil
}
