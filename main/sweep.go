package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/windprof/io"
	"github.com/phil-mansfield/windprof/windtab"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep SWEEP.toml",
		Short: "Compute transmitted fractions over a grid of winds",
		Long: `Computes the transmitted fraction of every combination of q, h
and TauStar in a TOML sweep file. Each wind is split across the configured
number of workers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := io.ReadSweepConfig(args[0])
			if err != nil {
				return err
			}
			q, h, tauStar, trans := runSweep(con)
			return io.WriteColumnsFile(
				con.Output, []string{"q", "h", "tau_star", "T"},
				q, h, tauStar, trans,
			)
		},
	}
}

// runSweep returns one row for every point and TauStar in the sweep.
func runSweep(con *io.SweepConfig) (q, h, tauStar, trans []float64) {
	for _, pt := range con.Points() {
		log.WithFields(log.Fields{"q": pt.Q, "h": pt.H}).
			Info("Sweep: starting wind.")

		ptTrans := windtab.GenerateTransmission(pt.Wind, con.TauStar)
		for i := range con.TauStar {
			q = append(q, pt.Q)
			h = append(h, pt.H)
			tauStar = append(tauStar, con.TauStar[i])
			trans = append(trans, ptTrans[i])
		}
	}
	return q, h, tauStar, trans
}
