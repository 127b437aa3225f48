package wind

// Physical constants in cgs units.
const (
	SpeedOfLight   = 2.99792458e10   // cm/s
	PlanckConstant = 6.62606896e-27  // erg s
	ElectronVolt   = 1.602176487e-12 // erg
	MassProton     = 1.672621637e-24 // g

	// HC is h*c in keV Angstrom.
	HC = 1e5 * SpeedOfLight * PlanckConstant / ElectronVolt
)

// KMSToC converts a velocity in km/s to a fraction of the speed of light.
func KMSToC(v float64) float64 {
	return v * 1e5 / SpeedOfLight
}

// AngstromToKeV converts a wavelength in Angstroms to a photon energy in keV.
// The conversion is its own inverse.
func AngstromToKeV(lambda float64) float64 {
	return HC / lambda
}

// ShiftWavelength applies a velocity shift (km/s) and then a wavelength shift
// (mA) to a wavelength in Angstroms.
func ShiftWavelength(lambda, dvKMS, dLambdaMA float64) float64 {
	lambda *= 1 + KMSToC(dvKMS)
	return lambda + dLambdaMA/1000
}
