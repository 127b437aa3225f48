package windtab

import (
	"math"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/phil-mansfield/windprof/depth"
	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/porosity"
	"github.com/phil-mansfield/windprof/profile"
	"github.com/phil-mansfield/windprof/wind"
)

// WindConfig describes the wind used to generate transmission tables.
type WindConfig struct {
	Q, U0, Beta float64
	// UMin is the inverse radius where emission stops. It must be smaller
	// than U0.
	UMin float64
	// H is the clump optical depth in units of TauStar.
	H         float64
	Numerical bool
	Porosity  porosity.Law
	// Workers is the number of goroutines used to fill the table. If it is
	// not positive, runtime.NumCPU() is used.
	Workers int
}

// DefaultWindConfig is a smooth wind with a beta = 1 velocity law where
// emission starts at 1.5 stellar radii.
func DefaultWindConfig() WindConfig {
	return WindConfig{Q: 0, U0: 1 / 1.5, Beta: 1}
}

// DefaultTauStarGrid returns 1000 linearly spaced values in [0, 1) followed
// by 3000 logarithmically spaced values in [1, 1000).
func DefaultTauStarGrid() []float64 {
	const (
		linSize = 1000
		logSize = 3000
		decades = 3
	)
	tauStar := make([]float64, linSize+logSize)
	for i := 0; i < linSize; i++ {
		tauStar[i] = float64(i) / linSize
	}
	for i := 0; i < logSize; i++ {
		tauStar[linSize+i] = math.Pow(10, decades*float64(i)/logSize)
	}
	return tauStar
}

// transmitter computes wind averaged transmissions. Each worker owns its own.
type transmitter struct {
	tau, tauHeII *depth.OpticalDepth
	aat          *profile.AngleAveragedTransmission
	l            *profile.IntegratedLuminosity
	intrinsic    float64
}

func newTransmitter(cfg WindConfig, heII bool, opts ...integrate.Option) *transmitter {
	vel := wind.NewVelocity(cfg.Beta, 0)
	dcfg := depth.Config{
		H: cfg.H, Beta: cfg.Beta, Numerical: cfg.Numerical,
		Porosity: cfg.Porosity,
	}

	tr := &transmitter{tau: depth.New(dcfg)}
	if heII {
		dcfg.Numerical, dcfg.HeII = true, true
		tr.tauHeII = depth.New(dcfg)
		tr.aat = profile.NewAngleAveragedTransmission(
			tr.tau, tr.tauHeII, 0, opts...,
		)
	} else {
		tr.aat = profile.NewAngleAveragedTransmission(tr.tau, nil, 0, opts...)
	}
	tr.l = profile.NewIntegratedLuminosity(
		cfg.Q, cfg.U0, cfg.UMin, vel, tr.aat, opts...,
	)

	tr.l.SetTransparentCore(true)
	tr.intrinsic, _ = tr.l.Luminosity()
	tr.l.SetTransparentCore(false)
	return tr
}

func (tr *transmitter) setTauStar(tauStar, h float64) {
	tr.tau.SetParameters(tauStar, h)
	if tr.tauHeII != nil {
		tr.tauHeII.SetParameters(tauStar, h)
	}
}

func (tr *transmitter) transmission() float64 {
	L, status := tr.l.Luminosity()
	if status != integrate.Success {
		log.WithFields(log.Fields{
			"TauStar": tr.tau.TauStar(), "status": status,
		}).Warn("Transmission: integrated luminosity did not converge.")
	}
	return L / tr.intrinsic
}

// GenerateTransmission computes the fraction of the intrinsic luminosity of
// the wind which is transmitted at each TauStar.
func GenerateTransmission(cfg WindConfig, tauStar []float64) []float64 {
	trans := make([]float64, len(tauStar))
	parallel(cfg.Workers, len(tauStar), func() func(i int) {
		tr := newTransmitter(cfg, false)
		return func(i int) {
			tr.setTauStar(tauStar[i], cfg.H)
			trans[i] = tr.transmission()
		}
	})
	return trans
}

// GenerateTransmission2D is GenerateTransmission with He+ opacity. The
// transmission at (tauStar[i], kappaRatio[j]) is stored at index
// i*len(kappaRatio) + j.
func GenerateTransmission2D(
	cfg WindConfig, tauStar, kappaRatio []float64,
) []float64 {
	nk := len(kappaRatio)
	trans := make([]float64, len(tauStar)*nk)
	parallel(cfg.Workers, len(tauStar), func() func(i int) {
		tr := newTransmitter(cfg, true)
		return func(i int) {
			tr.setTauStar(tauStar[i], cfg.H)
			for j, kr := range kappaRatio {
				tr.aat.SetKappaRatio(kr)
				trans[i*nk+j] = tr.transmission()
			}
		}
	})
	return trans
}

// parallel calls the functions made by newWorker on every index in [0, n).
// Each worker handles every workers-th index, and the last worker runs on
// the calling goroutine.
func parallel(workers, n int, newWorker func() func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return
	}

	out := make(chan int, workers)
	run := func(id int, work func(i int)) {
		for i := id; i < n; i += workers {
			work(i)
		}
		out <- id
	}

	for id := 0; id < workers-1; id++ {
		go run(id, newWorker())
	}
	run(workers-1, newWorker())

	for i := 0; i < workers; i++ {
		<-out
	}
}
