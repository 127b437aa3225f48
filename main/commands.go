package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/windprof/io"
	"github.com/phil-mansfield/windprof/math/integrate"
	"github.com/phil-mansfield/windprof/profile"
	"github.com/phil-mansfield/windprof/windtab"
)

// readModel reads a model configuration file and builds its model.
func readModel(fname string) (*io.ModelWrapper, *profile.Model, error) {
	wrap, err := io.ReadModelConfig(fname)
	if err != nil {
		return nil, nil, err
	}
	p, err := wrap.Model.Parameters()
	if err != nil {
		return nil, nil, err
	}
	return wrap, profile.NewModel(p), nil
}

// spectrum computes the model flux on the configured energy grid.
func spectrum(
	wrap *io.ModelWrapper, m *profile.Model,
) (energy []float64, s *profile.Spectrum, err error) {
	energy, err = wrap.Grid.Energy()
	if err != nil {
		return nil, nil, err
	}
	s, err = m.Spectrum(energy)
	if err != nil {
		return nil, nil, err
	}
	if s.Status != integrate.Success {
		log.WithFields(log.Fields{"status": s.Status}).
			Warn("Profile: some flux integrals did not converge.")
	}
	return energy, s, nil
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile CONFIG",
		Short: "Compute a line profile on an energy grid",
		Long: `Computes the line profile described by a [Model] config file and
writes the lower bin edge, upper bin edge and flux of each energy bin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, m, err := readModel(args[0])
			if err != nil {
				return err
			}
			energy, s, err := spectrum(wrap, m)
			if err != nil {
				return err
			}
			lo, hi := io.Bins(energy)
			return io.WriteColumnsFile(
				wrap.Model.Output, []string{"E_lo", "E_hi", "flux"},
				lo, hi, s.Flux,
			)
		},
	}
}

func newLxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lx CONFIG",
		Short: "Tabulate the unnormalized line profile Lx(x)",
		Long: `Tabulates the line luminosity per unit scaled wavelength, Lx, on
the uniform x grid given by XBins in the [Grid] section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, m, err := readModel(args[0])
			if err != nil {
				return err
			}
			xs := wrap.Grid.X()
			lx := lxTable(m.Lx(), xs)
			return io.WriteColumnsFile(
				wrap.Model.Output, []string{"x", "Lx"}, xs, lx,
			)
		},
	}
}

func lxTable(lx *profile.Lx, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		var status integrate.Status
		out[i], status = lx.Lx(x)
		if status != integrate.Success {
			log.WithFields(log.Fields{"x": x, "status": status}).
				Warn("Lx: integral did not converge.")
		}
	}
	return out
}

func newDepthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "depth CONFIG",
		Short: "Tabulate the optical depth along a ray",
		Long: `Tabulates the optical depth from the point (DepthP, z) to the
observer for the z values given in the [Grid] section.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, m, err := readModel(args[0])
			if err != nil {
				return err
			}
			zs := wrap.Grid.Z()
			tau := make([]float64, len(zs))
			for i, z := range zs {
				tau[i] = m.OpticalDepth().Tau(wrap.Grid.DepthP, z)
			}
			return io.WriteColumnsFile(
				wrap.Model.Output, []string{"z", "tau"}, zs, tau,
			)
		},
	}
}

func newTransmissionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transmission CONFIG",
		Short: "Generate a wind transmission table",
		Long: `Computes the fraction of the intrinsic luminosity of a wind which
escapes as a function of TauStar and writes it as a table which can be used
by the windtabs command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, err := io.ReadTransmissionConfig(args[0])
			if err != nil {
				return err
			}
			con := &wrap.Transmission
			tauStar, err := con.TauStar()
			if err != nil {
				return err
			}
			cfg := con.WindConfig()

			if !con.HeII {
				trans := windtab.GenerateTransmission(cfg, tauStar)
				return io.WriteColumnsFile(
					con.Output, []string{"tau_star", "T"}, tauStar, trans,
				)
			}

			kappaRatio := con.KappaRatio()
			trans := windtab.GenerateTransmission2D(cfg, tauStar, kappaRatio)
			xs, ys := io.Flatten2D(tauStar, kappaRatio)
			return io.WriteColumnsFile(
				con.Output, []string{"tau_star", "kappa_ratio", "T"},
				xs, ys, trans,
			)
		},
	}
}

// absorber is a wind absorption model.
type absorber interface {
	Transmission(energy []float64, rhoRStar float64) ([]float64, error)
}

var (
	_ absorber = &windtab.Model{}
	_ absorber = &windtab.Computed{}
	_ absorber = &windtab.Slab{}
)

func newWindtabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windtabs CONFIG",
		Short: "Compute the continuum transmission of a wind",
		Long: `Computes the wind averaged continuum transmission in each energy
bin from an opacity table and a transmission table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, err := io.ReadWindtabsConfig(args[0])
			if err != nil {
				return err
			}
			con := &wrap.Windtabs
			abs, err := newAbsorber(con)
			if err != nil {
				return err
			}

			energy, err := wrap.Grid.Energy()
			if err != nil {
				return err
			}
			trans, err := abs.Transmission(energy, con.RhoRStar)
			if err != nil {
				return err
			}
			lo, hi := io.Bins(energy)
			return io.WriteColumnsFile(
				con.Output, []string{"E_lo", "E_hi", "T"}, lo, hi, trans,
			)
		},
	}
}

func newAbsorber(con *io.WindtabsConfig) (absorber, error) {
	kappa, err := io.ReadKappa(con.KappaFile)
	if err != nil {
		return nil, err
	}

	switch {
	case con.Computed:
		return windtab.NewComputed(con.WindConfig(), kappa), nil
	case con.ValidKappaHeIIFile():
		kappaHeII, err := io.ReadKappa(con.KappaHeIIFile)
		if err != nil {
			return nil, err
		}
		trans, err := io.ReadTransmission2D(con.TransmissionFile)
		if err != nil {
			return nil, err
		}
		return windtab.NewHeII(kappa, kappaHeII, trans), nil
	default:
		trans, err := io.ReadTransmission(con.TransmissionFile, con.Spline)
		if err != nil {
			return nil, err
		}
		return windtab.New(kappa, trans), nil
	}
}

func newSlabtabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slabtabs CONFIG",
		Short: "Compute the continuum transmission of a slab",
		Long: `Computes the transmission, exp(-Sigma * kappa), of a uniform slab of
absorbing material in each energy bin from an opacity table. The column is
given either as a hydrogen column density or as a mass column density.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, err := io.ReadSlabtabsConfig(args[0])
			if err != nil {
				return err
			}
			con := &wrap.Slabtabs
			kappa, err := io.ReadKappa(con.KappaFile)
			if err != nil {
				return err
			}
			slab := windtab.NewSlab(kappa, kappa.Mu())

			energy, err := wrap.Grid.Energy()
			if err != nil {
				return err
			}
			trans, err := slab.Transmission(energy, con.Sigma(slab))
			if err != nil {
				return err
			}
			lo, hi := io.Bins(energy)
			return io.WriteColumnsFile(
				con.Output, []string{"E_lo", "E_hi", "T"}, lo, hi, trans,
			)
		},
	}
}
